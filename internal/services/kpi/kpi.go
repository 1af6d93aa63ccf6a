// Package kpi compares a metric across two reporting periods.
package kpi

import (
	"posreport/internal/models"

	"github.com/shopspring/decimal"
)

// PercentPrecision is the number of decimals kept in PercentChange.
const PercentPrecision = 2

// Compare contrasts current with previous. A zero previous value has no
// baseline: PercentChange is 0 and the direction is neutral when current is
// also 0, positive otherwise.
func Compare(current, previous int64) models.KPIComparison {
	change := current - previous
	result := models.KPIComparison{
		Current:        current,
		Previous:       previous,
		AbsoluteChange: change,
	}

	if previous == 0 {
		result.Direction = models.DirectionPositive
		if current == 0 {
			result.Direction = models.DirectionNeutral
		}
		return result
	}
	result.Direction = direction(change)

	pct := decimal.NewFromInt(change).
		Div(decimal.NewFromInt(previous)).
		Mul(decimal.NewFromInt(100)).
		Round(PercentPrecision)
	result.PercentChange = pct.InexactFloat64()
	result.HasBaseline = true
	return result
}

// CompareCounts compares the lengths of two lists, e.g. orders or active cashiers.
func CompareCounts[T any](current, previous []T) models.KPIComparison {
	return Compare(int64(len(current)), int64(len(previous)))
}

func direction(change int64) models.Direction {
	switch {
	case change > 0:
		return models.DirectionPositive
	case change < 0:
		return models.DirectionNegative
	default:
		return models.DirectionNeutral
	}
}
