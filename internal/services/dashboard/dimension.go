package dashboard

import (
	"fmt"
	"time"

	apperrors "posreport/internal/errors"
	"posreport/internal/models"
	"posreport/internal/services/aggregation"
)

// Dimension names a breakdown axis.
type Dimension string

const (
	DimensionBranch        Dimension = "branch"
	DimensionPaymentMethod Dimension = "payment_method"
	DimensionCategory      Dimension = "category"
	DimensionCashier       Dimension = "cashier"
	DimensionDay           Dimension = "day"
	DimensionMonth         Dimension = "month"
	DimensionHour          Dimension = "hour"
)

type grouping func([]models.Transaction, *time.Location) map[string]models.Bucket

func anyLocation(fn func([]models.Transaction) map[string]models.Bucket) grouping {
	return func(txns []models.Transaction, _ *time.Location) map[string]models.Bucket {
		return fn(txns)
	}
}

var groupings = map[Dimension]grouping{
	DimensionBranch:        anyLocation(aggregation.ByBranch),
	DimensionPaymentMethod: anyLocation(aggregation.ByPaymentMethod),
	DimensionCategory:      anyLocation(aggregation.ByCategory),
	DimensionCashier:       anyLocation(aggregation.ByCashier),
	DimensionDay:           aggregation.ByDayIn,
	DimensionMonth:         aggregation.ByMonthIn,
	DimensionHour:          aggregation.ByHourIn,
}

// ParseDimension accepts the names above.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if _, ok := groupings[d]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownDimension, s)
	}
	return d, nil
}

// group buckets txns along d. Calendar dimensions use loc.
func (d Dimension) group(txns []models.Transaction, loc *time.Location) map[string]models.Bucket {
	return groupings[d](txns, loc)
}
