package repositories

import (
	"context"
	"fmt"
	"time"

	apperrors "posreport/internal/errors"
	"posreport/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const saveBatchSize = 500

// TransactionRepository persists sales transactions.
type TransactionRepository interface {
	SaveBatch(ctx context.Context, txns []models.Transaction) error
	ListBetween(ctx context.Context, start, end time.Time, branchIDs []int64) ([]models.Transaction, error)
}

type transactionRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTransactionRepository returns a gorm-backed TransactionRepository.
func NewTransactionRepository(db *gorm.DB, log *zap.Logger) TransactionRepository {
	return &transactionRepository{db: db, log: log.Named("transactions")}
}

// SaveBatch upserts txns by id. Every record is validated before anything
// is written, so an invalid record leaves the table untouched.
func (r *transactionRepository) SaveBatch(ctx context.Context, txns []models.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", txns[i].ID, err)
		}
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		CreateInBatches(txns, saveBatchSize).Error
	if err != nil {
		return fmt.Errorf("%w: save transactions: %v", apperrors.ErrDatabaseUnavailable, err)
	}
	return nil
}

// ListBetween returns transactions with start <= occurred_at <= end,
// optionally restricted to branchIDs, ordered by time then id.
// Stored rows that no longer validate are skipped.
func (r *transactionRepository) ListBetween(ctx context.Context, start, end time.Time, branchIDs []int64) ([]models.Transaction, error) {
	query := r.db.WithContext(ctx).
		Where("occurred_at >= ? AND occurred_at <= ?", start, end)
	if len(branchIDs) > 0 {
		query = query.Where("branch_id = ANY(?)", pq.Array(branchIDs))
	}

	var rows []models.Transaction
	if err := query.Order("occurred_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: list transactions: %v", apperrors.ErrDatabaseUnavailable, err)
	}

	valid := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		if err := row.Validate(); err != nil {
			r.log.Warn("skipping invalid stored transaction",
				zap.Int64("id", row.ID), zap.Error(err))
			continue
		}
		valid = append(valid, row)
	}
	return valid, nil
}
