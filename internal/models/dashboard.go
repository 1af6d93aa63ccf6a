package models

import "time"

// StoreOverview is the headline card set of the store dashboard.
// Sales and average-order figures compare the last seven days with the
// seven before them; order and cashier counts compare today with yesterday.
type StoreOverview struct {
	GeneratedFor      time.Time     `json:"generated_for"`
	BranchID          *int64        `json:"branch_id,omitempty"`
	TotalSales        KPIComparison `json:"total_sales"`
	TodayOrders       KPIComparison `json:"today_orders"`
	AverageOrderValue KPIComparison `json:"average_order_value"`
	ActiveCashiers    KPIComparison `json:"active_cashiers"`
	TotalOrders       int64         `json:"total_orders"`
}

// DatasetInfo describes a registered transaction set without its rows.
type DatasetInfo struct {
	ID               string    `json:"id"`
	Source           string    `json:"source"`
	Seed             *uint64   `json:"seed,omitempty"`
	TransactionCount int       `json:"transaction_count"`
	TotalAmount      int64     `json:"total_amount"`
	CreatedAt        time.Time `json:"created_at"`
}
