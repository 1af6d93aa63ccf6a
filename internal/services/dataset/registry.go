// Package dataset keeps immutable transaction sets in memory so reports can
// be computed repeatedly over the same data.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "posreport/internal/errors"
	"posreport/internal/metrics"
	"posreport/internal/models"
	"posreport/internal/repositories"
	"posreport/internal/services/aggregation"
	"posreport/internal/services/generator"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dataset sources.
const (
	SourceGenerated = "generated"
	SourceImported  = "imported"
)

var ErrInvalidRange = errors.New("dataset: start must not be after end")

// Dataset is a registered, read-only set of transactions.
type Dataset struct {
	info         models.DatasetInfo
	transactions []models.Transaction
}

func (d *Dataset) Info() models.DatasetInfo {
	return d.info
}

// Transactions returns the shared backing slice. Callers must not modify it.
func (d *Dataset) Transactions() []models.Transaction {
	return d.transactions
}

// GenerateParams drives a seeded generator run.
type GenerateParams struct {
	Now    time.Time
	Seed   uint64
	Config generator.Config
}

// ImportParams selects stored transactions with Start <= occurred_at <= End.
type ImportParams struct {
	Start     time.Time
	End       time.Time
	BranchIDs []int64
}

type Registry struct {
	mu       sync.RWMutex
	datasets map[uuid.UUID]*Dataset

	repo    repositories.TransactionRepository
	metrics metrics.Collector
	log     *zap.Logger
	maxDays int
	clock   func() time.Time
}

type Option func(*Registry)

// WithRepository enables Import. Without it Import fails with
// ErrDatabaseUnavailable.
func WithRepository(repo repositories.TransactionRepository) Option {
	return func(r *Registry) { r.repo = repo }
}

func WithMetrics(m metrics.Collector) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithMaxDays caps DayCount for generated datasets. Zero means no cap.
func WithMaxDays(n int) Option {
	return func(r *Registry) { r.maxDays = n }
}

func WithClock(clock func() time.Time) Option {
	return func(r *Registry) { r.clock = clock }
}

func NewRegistry(log *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		datasets: make(map[uuid.UUID]*Dataset),
		metrics:  metrics.NoopCollector{},
		log:      log.Named("datasets"),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Generate runs the seeded generator anchored at p.Now and registers the result.
func (r *Registry) Generate(ctx context.Context, p GenerateParams) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.maxDays > 0 && p.Config.DayCount > r.maxDays {
		return nil, fmt.Errorf("%w: day_count %d exceeds limit %d",
			generator.ErrInvalidConfig, p.Config.DayCount, r.maxDays)
	}

	gen, err := generator.NewSeeded(p.Config, p.Seed)
	if err != nil {
		return nil, err
	}

	seed := p.Seed
	ds := r.register(SourceGenerated, &seed, gen.Generate(p.Now))
	r.log.Info("dataset generated",
		zap.String("dataset_id", ds.info.ID),
		zap.Uint64("seed", p.Seed),
		zap.Int("transactions", ds.info.TransactionCount))
	return ds, nil
}

// Import loads a window of stored transactions and registers it.
func (r *Registry) Import(ctx context.Context, p ImportParams) (*Dataset, error) {
	if r.repo == nil {
		return nil, apperrors.ErrDatabaseUnavailable
	}
	if p.Start.After(p.End) {
		return nil, ErrInvalidRange
	}

	txns, err := r.repo.ListBetween(ctx, p.Start, p.End, p.BranchIDs)
	if err != nil {
		return nil, err
	}

	ds := r.register(SourceImported, nil, txns)
	r.log.Info("dataset imported",
		zap.String("dataset_id", ds.info.ID),
		zap.Time("start", p.Start),
		zap.Time("end", p.End),
		zap.Int("transactions", ds.info.TransactionCount))
	return ds, nil
}

// Add registers transactions produced elsewhere. Every record must validate.
func (r *Registry) Add(source string, txns []models.Transaction) (*Dataset, error) {
	for i := range txns {
		if err := txns[i].Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", txns[i].ID, err)
		}
	}
	return r.register(source, nil, append([]models.Transaction(nil), txns...)), nil
}

func (r *Registry) Get(id string) (*Dataset, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrDatasetNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ds, ok := r.datasets[key]
	if !ok {
		return nil, apperrors.ErrDatasetNotFound
	}
	return ds, nil
}

// List returns every dataset's summary, oldest first.
func (r *Registry) List() []models.DatasetInfo {
	r.mu.RLock()
	infos := make([]models.DatasetInfo, 0, len(r.datasets))
	for _, ds := range r.datasets {
		infos = append(infos, ds.info)
	}
	r.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.Before(infos[j].CreatedAt)
		}
		return infos[i].ID < infos[j].ID
	})
	return infos
}

func (r *Registry) Remove(id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return apperrors.ErrDatasetNotFound
	}

	r.mu.Lock()
	_, ok := r.datasets[key]
	delete(r.datasets, key)
	count := len(r.datasets)
	r.mu.Unlock()

	if !ok {
		return apperrors.ErrDatasetNotFound
	}
	r.metrics.SetDatasets(count)
	return nil
}

func (r *Registry) register(source string, seed *uint64, txns []models.Transaction) *Dataset {
	id := uuid.New()
	ds := &Dataset{
		info: models.DatasetInfo{
			ID:               id.String(),
			Source:           source,
			Seed:             seed,
			TransactionCount: len(txns),
			TotalAmount:      aggregation.Sum(txns),
			CreatedAt:        r.clock(),
		},
		transactions: txns,
	}

	r.mu.Lock()
	r.datasets[id] = ds
	count := len(r.datasets)
	r.mu.Unlock()

	r.metrics.RecordTransactions(source, len(txns))
	r.metrics.SetDatasets(count)
	return ds
}
