package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "posreport/internal/errors"
	"posreport/internal/models"
	"posreport/internal/repositories/cache"
	"posreport/internal/services/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) InvalidateDataset(ctx context.Context, datasetID string) error {
	args := m.Called(ctx, datasetID)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) ObserveReport(report string, duration time.Duration, err error) {
	m.Called(report, duration, err)
}

func (m *MockMetrics) RecordCacheHit(report string)  { m.Called(report) }
func (m *MockMetrics) RecordCacheMiss(report string) { m.Called(report) }
func (m *MockMetrics) RecordTransactions(source string, count int) {
	m.Called(source, count)
}
func (m *MockMetrics) SetDatasets(count int) { m.Called(count) }

var now = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 0, 0, 0, time.UTC)
}

func sale(id int64, when time.Time, branch int64, amount int64, cashier string, pm models.PaymentMethod) models.Transaction {
	names := map[int64]string{1: "Central", 2: "Airport"}
	return models.Transaction{
		ID: id, OrderNumber: models.OrderNumberFor(id),
		BranchID: branch, BranchName: names[branch], OccurredAt: when,
		Subtotal: amount, TotalAmount: amount, PaymentMethod: pm,
		CashierName: cashier, ItemCount: 1, Status: models.StatusCompleted,
		CustomerType: models.CustomerWalkIn, Category: models.DefaultCategory,
	}
}

func fixture() []models.Transaction {
	return []models.Transaction{
		sale(1, at(15, 10), 1, 1000, "Ana", models.PaymentCash),
		sale(2, at(15, 11), 2, 500, "Ben", models.PaymentCard),
		sale(3, at(14, 9), 1, 300, "Ana", models.PaymentCash),
		sale(4, at(10, 12), 1, 200, "Cy", models.PaymentMobileWalletA),
		sale(5, at(5, 13), 2, 400, "Ben", models.PaymentCard),
		sale(6, at(2, 8), 1, 100, "Ana", models.PaymentCash),
	}
}

func setup(t *testing.T, reportCache Cache) (Service, string) {
	t.Helper()
	reg := dataset.NewRegistry(zap.NewNop())
	ds, err := reg.Add("test", fixture())
	require.NoError(t, err)
	return NewService(reg, reportCache, nil, zap.NewNop()), ds.Info().ID
}

func TestOverview(t *testing.T) {
	svc, id := setup(t, nil)

	got, err := svc.Overview(context.Background(), id, Query{Now: now})
	require.NoError(t, err)

	assert.Equal(t, now, got.GeneratedFor)
	assert.Nil(t, got.BranchID)
	assert.Equal(t, models.KPIComparison{
		Current: 2000, Previous: 500, AbsoluteChange: 1500,
		PercentChange: 300, Direction: models.DirectionPositive, HasBaseline: true,
	}, got.TotalSales)
	assert.Equal(t, int64(500), got.AverageOrderValue.Current)
	assert.Equal(t, int64(250), got.AverageOrderValue.Previous)
	assert.Equal(t, 100.0, got.AverageOrderValue.PercentChange)
	assert.Equal(t, int64(2), got.TodayOrders.Current)
	assert.Equal(t, int64(1), got.TodayOrders.Previous)
	assert.Equal(t, int64(2), got.ActiveCashiers.Current)
	assert.Equal(t, int64(1), got.ActiveCashiers.Previous)
	assert.Equal(t, int64(4), got.TotalOrders)
}

func TestOverview_BranchScoped(t *testing.T) {
	svc, id := setup(t, nil)
	branch := int64(1)

	got, err := svc.Overview(context.Background(), id, Query{Now: now, BranchID: &branch})
	require.NoError(t, err)

	assert.Equal(t, &branch, got.BranchID)
	assert.Equal(t, int64(1500), got.TotalSales.Current)
	assert.Equal(t, int64(100), got.TotalSales.Previous)
	assert.Equal(t, 1400.0, got.TotalSales.PercentChange)
	assert.Equal(t, models.DirectionNeutral, got.TodayOrders.Direction)
	assert.Equal(t, int64(3), got.TotalOrders)
}

func TestOverview_EmptyPreviousWindow(t *testing.T) {
	svc, id := setup(t, nil)

	got, err := svc.Overview(context.Background(), id, Query{Now: at(3, 12)})
	require.NoError(t, err)

	assert.False(t, got.TotalSales.HasBaseline)
	assert.Zero(t, got.TotalSales.PercentChange)
	assert.Equal(t, models.DirectionPositive, got.TotalSales.Direction)
}

func TestDailySales(t *testing.T) {
	svc, id := setup(t, nil)

	got, err := svc.DailySales(context.Background(), id, Query{Now: now, Days: 7})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-10", got[0].Key)
	assert.Equal(t, "2024-01-14", got[1].Key)
	assert.Equal(t, models.Bucket{Key: "2024-01-15", TotalAmount: 1500, OrderCount: 2, AverageOrder: 750}, got[2])
}

func TestDailySales_FollowsNowLocation(t *testing.T) {
	reg := dataset.NewRegistry(zap.NewNop())
	ds, err := reg.Add("test", []models.Transaction{
		sale(1, at(14, 9), 1, 300, "Ana", models.PaymentCash),
		sale(2, at(14, 20), 1, 200, "Ana", models.PaymentCash),
	})
	require.NoError(t, err)
	svc := NewService(reg, nil, nil, zap.NewNop())
	bangkok := time.FixedZone("ICT", 7*3600)
	id := ds.Info().ID

	utc, err := svc.DailySales(context.Background(), id, Query{Now: now})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-14"}, bucketKeys(utc))

	// 20:00 UTC on the 14th is 03:00 on the 15th in Bangkok.
	local, err := svc.DailySales(context.Background(), id, Query{Now: now.In(bangkok)})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-14", "2024-01-15"}, bucketKeys(local))

	hours, err := svc.Breakdown(context.Background(), id, DimensionHour, Query{Now: now.In(bangkok)})
	require.NoError(t, err)
	assert.Equal(t, []string{"16", "03"}, bucketKeys(hours))
}

func bucketKeys(buckets []models.Bucket) []string {
	out := make([]string, len(buckets))
	for i, b := range buckets {
		out[i] = b.Key
	}
	return out
}

func TestDailySales_DateRangeWins(t *testing.T) {
	svc, id := setup(t, nil)
	start, end := at(2, 0), at(5, 23)

	got, err := svc.DailySales(context.Background(), id, Query{Now: now, Days: 7, Start: &start, End: &end})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-02", got[0].Key)
	assert.Equal(t, "2024-01-05", got[1].Key)
}

func TestBreakdown(t *testing.T) {
	svc, id := setup(t, nil)

	got, err := svc.Breakdown(context.Background(), id, DimensionBranch, Query{Now: now})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, models.Bucket{Key: "1", Label: "Central", TotalAmount: 1600, OrderCount: 4, AverageOrder: 400}, got[0])
	assert.Equal(t, models.Bucket{Key: "2", Label: "Airport", TotalAmount: 900, OrderCount: 2, AverageOrder: 450}, got[1])

	_, err = svc.Breakdown(context.Background(), id, Dimension("weather"), Query{Now: now})
	assert.ErrorIs(t, err, apperrors.ErrUnknownDimension)
}

func TestBreakdown_StatusFilter(t *testing.T) {
	reg := dataset.NewRegistry(zap.NewNop())
	txns := fixture()
	txns[0].Status = models.StatusRefunded
	ds, err := reg.Add("test", txns)
	require.NoError(t, err)
	svc := NewService(reg, nil, nil, zap.NewNop())

	got, err := svc.Breakdown(context.Background(), ds.Info().ID, DimensionPaymentMethod,
		Query{Now: now, Statuses: []models.TransactionStatus{models.StatusCompleted}})
	require.NoError(t, err)

	byKey := map[string]int64{}
	for _, b := range got {
		byKey[b.Key] = b.TotalAmount
	}
	assert.Equal(t, map[string]int64{"CASH": 400, "CARD": 900, "MOBILE_WALLET_A": 200}, byKey)
}

func TestTop(t *testing.T) {
	svc, id := setup(t, nil)

	got, err := svc.Top(context.Background(), id, DimensionCashier, models.MetricTotalAmount, 1, Query{Now: now})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Ana", got[0].Key)
	assert.Equal(t, 1, got[0].Rank)
	assert.InDelta(t, 56.0, got[0].PercentageOfTotal, 1e-9)

	_, err = svc.Top(context.Background(), id, DimensionCashier, models.Metric("profit"), 1, Query{Now: now})
	assert.ErrorIs(t, err, apperrors.ErrUnknownMetric)
}

func TestUnknownDataset(t *testing.T) {
	c := new(MockCache)
	svc, _ := setup(t, c)

	_, err := svc.Overview(context.Background(), "missing", Query{Now: now})
	assert.ErrorIs(t, err, apperrors.ErrDatasetNotFound)
	c.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestParseDimension(t *testing.T) {
	d, err := ParseDimension("payment_method")
	require.NoError(t, err)
	assert.Equal(t, DimensionPaymentMethod, d)

	_, err = ParseDimension("PAYMENT")
	assert.ErrorIs(t, err, apperrors.ErrUnknownDimension)
}

func TestCaching(t *testing.T) {
	ctx := context.Background()
	query := Query{Now: now, Days: 7}

	t.Run("hit skips computation", func(t *testing.T) {
		c := new(MockCache)
		m := new(MockMetrics)
		reg := dataset.NewRegistry(zap.NewNop())
		ds, err := reg.Add("test", fixture())
		require.NoError(t, err)
		svc := NewService(reg, c, m, zap.NewNop())

		key := cache.ReportKey(ds.Info().ID, ReportDaily, "now=2024-01-15T14:30:00Z", "days=7")
		stored := []models.Bucket{{Key: "cached", TotalAmount: 1}}
		c.On("Get", ctx, key, mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*[]models.Bucket) = stored
			}).
			Return(true, nil)
		m.On("RecordCacheHit", ReportDaily).Once()
		m.On("ObserveReport", ReportDaily, mock.Anything, nil).Once()

		got, err := svc.DailySales(ctx, ds.Info().ID, query)

		require.NoError(t, err)
		assert.Equal(t, stored, got)
		c.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
		c.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("miss computes and stores", func(t *testing.T) {
		c := new(MockCache)
		m := new(MockMetrics)
		reg := dataset.NewRegistry(zap.NewNop())
		ds, err := reg.Add("test", fixture())
		require.NoError(t, err)
		svc := NewService(reg, c, m, zap.NewNop())

		c.On("Get", ctx, mock.Anything, mock.Anything).Return(false, nil)
		c.On("Set", ctx, mock.Anything, mock.AnythingOfType("[]models.Bucket")).Return(nil)
		m.On("RecordCacheMiss", ReportDaily).Once()
		m.On("ObserveReport", ReportDaily, mock.Anything, nil).Once()

		got, err := svc.DailySales(ctx, ds.Info().ID, query)

		require.NoError(t, err)
		assert.Len(t, got, 3)
		c.AssertExpectations(t)
		m.AssertExpectations(t)
	})

	t.Run("cache failures never fail a report", func(t *testing.T) {
		c := new(MockCache)
		svc, id := setup(t, c)

		c.On("Get", ctx, mock.Anything, mock.Anything).Return(false, errors.New("redis down"))
		c.On("Set", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		got, err := svc.Overview(ctx, id, Query{Now: now})

		require.NoError(t, err)
		assert.Equal(t, int64(2000), got.TotalSales.Current)
		c.AssertExpectations(t)
	})

	t.Run("invalidate", func(t *testing.T) {
		c := new(MockCache)
		svc, id := setup(t, c)
		c.On("InvalidateDataset", ctx, id).Return(nil)

		require.NoError(t, svc.Invalidate(ctx, id))
		c.AssertExpectations(t)

		noCache, _ := setup(t, nil)
		assert.NoError(t, noCache.Invalidate(ctx, id))
	})
}

func TestQueryCacheParams(t *testing.T) {
	branch := int64(3)
	start, end := at(1, 0), at(7, 0)
	q := Query{
		Now: now, Days: 7, Start: &start, End: &end, BranchID: &branch,
		Statuses: []models.TransactionStatus{models.StatusCompleted, models.StatusRefunded},
	}

	assert.Equal(t, []string{
		"now=2024-01-15T14:30:00Z",
		"days=7",
		"start=2024-01-01T00:00:00Z",
		"end=2024-01-07T00:00:00Z",
		"branch=3",
		"status=COMPLETED,REFUNDED",
	}, q.cacheParams())
}

func TestQueryCacheParams_SubSecondBounds(t *testing.T) {
	start := at(14, 0)
	endOfDay := time.Date(2024, 1, 14, 23, 59, 59, 999999999, time.UTC)
	lastSecond := time.Date(2024, 1, 14, 23, 59, 59, 0, time.UTC)
	wide := Query{Now: now, Start: &start, End: &endOfDay}
	narrow := Query{Now: now, Start: &start, End: &lastSecond}

	assert.NotEqual(t, wide.cacheParams(), narrow.cacheParams())
	assert.Contains(t, wide.cacheParams(), "end=2024-01-14T23:59:59.999999999Z")
	assert.Contains(t, narrow.cacheParams(), "end=2024-01-14T23:59:59Z")

	txns := []models.Transaction{
		sale(1, at(14, 9), 1, 300, "Ana", models.PaymentCash),
		sale(2, lastSecond.Add(500*time.Millisecond), 1, 200, "Ana", models.PaymentCash),
	}
	assert.Len(t, wide.scope(txns), 2)
	assert.Len(t, narrow.scope(txns), 1)
}
