package models

import (
	"fmt"
	"time"

	apperrors "posreport/internal/errors"
)

// PaymentMethod identifies how a sale was settled.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "CASH"
	PaymentCard          PaymentMethod = "CARD"
	PaymentMobileWalletA PaymentMethod = "MOBILE_WALLET_A"
	PaymentMobileWalletB PaymentMethod = "MOBILE_WALLET_B"
	PaymentMobileWalletC PaymentMethod = "MOBILE_WALLET_C"
)

// Valid reports whether p belongs to the closed set of payment methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentMobileWalletA, PaymentMobileWalletB, PaymentMobileWalletC:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a sale.
type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusPending   TransactionStatus = "PENDING"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusRefunded  TransactionStatus = "REFUNDED"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CustomerType distinguishes anonymous from loyalty customers.
type CustomerType string

const (
	CustomerWalkIn     CustomerType = "WALK_IN"
	CustomerRegistered CustomerType = "REGISTERED"
)

func (c CustomerType) Valid() bool {
	return c == CustomerWalkIn || c == CustomerRegistered
}

// DefaultCategory is used when a sale carries no category.
const DefaultCategory = "GENERAL"

// Transaction is a completed (or otherwise settled) point-of-sale record.
// Amounts are integer currency units. Values are passed by copy and never
// modified once built; every report produces new records instead.
type Transaction struct {
	ID            int64             `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderNumber   string            `gorm:"size:16;not null;uniqueIndex" json:"order_number"`
	BranchID      int64             `gorm:"not null;index" json:"branch_id"`
	BranchName    string            `gorm:"size:255;not null" json:"branch_name"`
	OccurredAt    time.Time         `gorm:"not null;index" json:"occurred_at"`
	Subtotal      int64             `gorm:"not null" json:"subtotal"`
	Tax           int64             `gorm:"not null" json:"tax"`
	TotalAmount   int64             `gorm:"not null" json:"total_amount"`
	PaymentMethod PaymentMethod     `gorm:"size:32;not null" json:"payment_method"`
	CashierName   string            `gorm:"size:255" json:"cashier_name"`
	ItemCount     int               `gorm:"not null" json:"item_count"`
	Status        TransactionStatus `gorm:"size:16;not null" json:"status"`
	CustomerType  CustomerType      `gorm:"size:16;not null" json:"customer_type"`
	Category      string            `gorm:"size:64" json:"category"`
}

func (Transaction) TableName() string {
	return "sales_transactions"
}

// NewTransaction validates t and returns it unchanged on success.
func NewTransaction(t Transaction) (Transaction, error) {
	if err := t.Validate(); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

// Validate checks the record invariants. Cancelled sales may have no items.
func (t Transaction) Validate() error {
	switch {
	case t.TotalAmount < 0:
		return fmt.Errorf("%w: total amount %d is negative", apperrors.ErrInvalidTransaction, t.TotalAmount)
	case t.Subtotal < 0 || t.Tax < 0:
		return fmt.Errorf("%w: subtotal %d / tax %d must not be negative", apperrors.ErrInvalidTransaction, t.Subtotal, t.Tax)
	case t.ItemCount < 0:
		return fmt.Errorf("%w: item count %d is negative", apperrors.ErrInvalidTransaction, t.ItemCount)
	case t.ItemCount < 1 && t.Status != StatusCancelled:
		return fmt.Errorf("%w: item count must be at least 1", apperrors.ErrInvalidTransaction)
	case !t.PaymentMethod.Valid():
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrInvalidTransaction, t.PaymentMethod)
	case !t.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", apperrors.ErrInvalidTransaction, t.Status)
	case !t.CustomerType.Valid():
		return fmt.Errorf("%w: unknown customer type %q", apperrors.ErrInvalidTransaction, t.CustomerType)
	}
	return nil
}

// OrderNumberFor formats the display order number for a sequential id.
func OrderNumberFor(id int64) string {
	return fmt.Sprintf("ORD-%06d", id)
}
