package models

// Bucket is the aggregate of all transactions sharing one group key.
type Bucket struct {
	Key          string `json:"key"`
	Label        string `json:"label,omitempty"`
	TotalAmount  int64  `json:"total_amount"`
	OrderCount   int64  `json:"order_count"`
	AverageOrder int64  `json:"average_order"`
}

// Metric selects the bucket field used for ranking.
type Metric string

const (
	MetricTotalAmount Metric = "totalAmount"
	MetricOrderCount  Metric = "orderCount"
)

func (m Metric) Valid() bool {
	return m == MetricTotalAmount || m == MetricOrderCount
}

// Value returns the bucket's value for the metric; unknown metrics read as 0.
func (m Metric) Value(b Bucket) int64 {
	switch m {
	case MetricTotalAmount:
		return b.TotalAmount
	case MetricOrderCount:
		return b.OrderCount
	}
	return 0
}

// RankedBucket is a bucket with its position and share of the ranked metric.
type RankedBucket struct {
	Bucket
	Rank              int     `json:"rank"`
	PercentageOfTotal float64 `json:"percentage_of_total"`
}

// Direction classifies a period-over-period change.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
	DirectionNeutral  Direction = "neutral"
)

// KPIComparison contrasts one metric across two periods.
// HasBaseline is false when the previous value was 0, in which case
// PercentChange is reported as 0.
type KPIComparison struct {
	Current        int64     `json:"current"`
	Previous       int64     `json:"previous"`
	AbsoluteChange int64     `json:"absolute_change"`
	PercentChange  float64   `json:"percent_change"`
	Direction      Direction `json:"direction"`
	HasBaseline    bool      `json:"has_baseline"`
}
