// Package dashboard computes store reports over registered datasets.
package dashboard

import (
	"context"
	"fmt"
	"time"

	apperrors "posreport/internal/errors"
	"posreport/internal/metrics"
	"posreport/internal/models"
	"posreport/internal/repositories/cache"
	"posreport/internal/services/aggregation"
	"posreport/internal/services/dataset"
	"posreport/internal/services/kpi"
	"posreport/internal/services/ranking"
	"posreport/internal/services/window"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OverviewDays is the comparison window of the sales and average-order cards.
const OverviewDays = 7

// Report names used for cache keys and metrics.
const (
	ReportOverview  = "overview"
	ReportDaily     = "daily"
	ReportBreakdown = "breakdown"
	ReportTop       = "top"
)

type Service interface {
	Overview(ctx context.Context, datasetID string, q Query) (*models.StoreOverview, error)
	DailySales(ctx context.Context, datasetID string, q Query) ([]models.Bucket, error)
	Breakdown(ctx context.Context, datasetID string, dim Dimension, q Query) ([]models.Bucket, error)
	Top(ctx context.Context, datasetID string, dim Dimension, metric models.Metric, n int, q Query) ([]models.RankedBucket, error)
	Invalidate(ctx context.Context, datasetID string) error
}

// DatasetStore resolves dataset ids.
type DatasetStore interface {
	Get(id string) (*dataset.Dataset, error)
}

// Cache stores computed reports. Implementations report a missing key as
// found == false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	InvalidateDataset(ctx context.Context, datasetID string) error
}

type service struct {
	datasets DatasetStore
	cache    Cache
	metrics  metrics.Collector
	log      *zap.Logger
}

// NewService wires the report service. reportCache and collector may be nil.
func NewService(datasets DatasetStore, reportCache Cache, collector metrics.Collector, log *zap.Logger) Service {
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		datasets: datasets,
		cache:    reportCache,
		metrics:  collector,
		log:      log.Named("dashboard"),
	}
}

func (s *service) Overview(ctx context.Context, datasetID string, q Query) (*models.StoreOverview, error) {
	ds, err := s.datasets.Get(datasetID)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey(datasetID, ReportOverview, q.cacheParams()...)
	return cached(ctx, s, ReportOverview, key, func() (*models.StoreOverview, error) {
		return overview(ctx, ds.Transactions(), q)
	})
}

func overview(ctx context.Context, txns []models.Transaction, q Query) (*models.StoreOverview, error) {
	scoped := q.filter(txns)

	var last, previous, today, yesterday []models.Transaction
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		last = window.LastNDays(scoped, q.Now, OverviewDays)
		return ctx.Err()
	})
	g.Go(func() error {
		previous = window.PreviousNDays(scoped, q.Now, OverviewDays)
		return ctx.Err()
	})
	g.Go(func() error {
		today = window.Today(scoped, q.Now)
		return ctx.Err()
	})
	g.Go(func() error {
		yesterday = window.Yesterday(scoped, q.Now)
		return ctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.StoreOverview{
		GeneratedFor:      q.Now,
		BranchID:          q.BranchID,
		TotalSales:        kpi.Compare(aggregation.Sum(last), aggregation.Sum(previous)),
		TodayOrders:       kpi.CompareCounts(today, yesterday),
		AverageOrderValue: kpi.Compare(aggregation.AverageOrder(last), aggregation.AverageOrder(previous)),
		ActiveCashiers:    kpi.CompareCounts(aggregation.DistinctCashiers(today), aggregation.DistinctCashiers(yesterday)),
		TotalOrders:       int64(len(last)),
	}, nil
}

// DailySales returns one bucket per calendar day with sales, oldest first.
// Days follow the location of q.Now, like the windows.
func (s *service) DailySales(ctx context.Context, datasetID string, q Query) ([]models.Bucket, error) {
	ds, err := s.datasets.Get(datasetID)
	if err != nil {
		return nil, err
	}

	key := cache.ReportKey(datasetID, ReportDaily, q.cacheParams()...)
	return cached(ctx, s, ReportDaily, key, func() ([]models.Bucket, error) {
		return aggregation.SortByKey(aggregation.ByDayIn(q.scope(ds.Transactions()), q.Now.Location())), nil
	})
}

// Breakdown groups the scoped transactions by dim, largest total first.
func (s *service) Breakdown(ctx context.Context, datasetID string, dim Dimension, q Query) ([]models.Bucket, error) {
	if _, ok := groupings[dim]; !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDimension, dim)
	}
	ds, err := s.datasets.Get(datasetID)
	if err != nil {
		return nil, err
	}

	params := append([]string{string(dim)}, q.cacheParams()...)
	key := cache.ReportKey(datasetID, ReportBreakdown, params...)
	return cached(ctx, s, ReportBreakdown, key, func() ([]models.Bucket, error) {
		return aggregation.SortByTotalDesc(dim.group(q.scope(ds.Transactions()), q.Now.Location())), nil
	})
}

// Top ranks the buckets of dim by metric and keeps the first n.
func (s *service) Top(ctx context.Context, datasetID string, dim Dimension, metric models.Metric, n int, q Query) ([]models.RankedBucket, error) {
	if _, ok := groupings[dim]; !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDimension, dim)
	}
	if !metric.Valid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownMetric, metric)
	}
	ds, err := s.datasets.Get(datasetID)
	if err != nil {
		return nil, err
	}

	params := append([]string{string(dim), string(metric), fmt.Sprintf("n=%d", n)}, q.cacheParams()...)
	key := cache.ReportKey(datasetID, ReportTop, params...)
	return cached(ctx, s, ReportTop, key, func() ([]models.RankedBucket, error) {
		return ranking.TopNFromMap(dim.group(q.scope(ds.Transactions()), q.Now.Location()), metric, n), nil
	})
}

// Invalidate drops cached reports of a dataset.
func (s *service) Invalidate(ctx context.Context, datasetID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateDataset(ctx, datasetID)
}

// cached serves a report from the cache when possible and stores freshly
// computed results. Cache failures are logged and otherwise ignored.
func cached[T any](ctx context.Context, s *service, report, key string, compute func() (T, error)) (T, error) {
	start := time.Now()

	if s.cache != nil {
		var hit T
		found, err := s.cache.Get(ctx, key, &hit)
		switch {
		case err != nil:
			s.log.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		case found:
			s.metrics.RecordCacheHit(report)
			s.metrics.ObserveReport(report, time.Since(start), nil)
			return hit, nil
		}
		s.metrics.RecordCacheMiss(report)
	}

	out, err := compute()
	s.metrics.ObserveReport(report, time.Since(start), err)
	if err != nil {
		return out, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out); err != nil {
			s.log.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return out, nil
}
