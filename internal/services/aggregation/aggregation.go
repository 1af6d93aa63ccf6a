// Package aggregation groups transactions into report buckets.
package aggregation

import (
	"sort"
	"strconv"
	"time"

	"posreport/internal/models"
)

// Key layouts for time-based groupings.
const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"
	HourLayout  = "15"
)

// KeyFunc maps a transaction to its group key.
type KeyFunc func(models.Transaction) string

// LabelFunc supplies a display label for a group from its first transaction.
type LabelFunc func(models.Transaction) string

// GroupBy sums totals and counts per key in a single pass and derives the
// floored average order. Buckets are rebuilt on every call. The map is never
// nil; its iteration order carries no meaning.
func GroupBy(txns []models.Transaction, keyFn KeyFunc) map[string]models.Bucket {
	return groupBy(txns, keyFn, nil)
}

func groupBy(txns []models.Transaction, keyFn KeyFunc, labelFn LabelFunc) map[string]models.Bucket {
	buckets := make(map[string]models.Bucket)
	for _, tx := range txns {
		key := keyFn(tx)
		b, ok := buckets[key]
		if !ok {
			b.Key = key
			if labelFn != nil {
				b.Label = labelFn(tx)
			}
		}
		b.TotalAmount += tx.TotalAmount
		b.OrderCount++
		buckets[key] = b
	}

	for key, b := range buckets {
		b.AverageOrder = floorDiv(b.TotalAmount, b.OrderCount)
		buckets[key] = b
	}
	return buckets
}

// ByDay groups by calendar date in each transaction's own location.
func ByDay(txns []models.Transaction) map[string]models.Bucket {
	return ByDayIn(txns, nil)
}

// ByDayIn groups by calendar date in loc, so buckets line up with windows
// anchored on a "now" in that location. A nil loc keeps each transaction's own.
func ByDayIn(txns []models.Transaction, loc *time.Location) map[string]models.Bucket {
	return GroupBy(txns, timeKey(DayLayout, loc))
}

// ByMonth groups by calendar month.
func ByMonth(txns []models.Transaction) map[string]models.Bucket {
	return ByMonthIn(txns, nil)
}

func ByMonthIn(txns []models.Transaction, loc *time.Location) map[string]models.Bucket {
	return GroupBy(txns, timeKey(MonthLayout, loc))
}

// ByHour groups by hour of day, "00" through "23".
func ByHour(txns []models.Transaction) map[string]models.Bucket {
	return ByHourIn(txns, nil)
}

func ByHourIn(txns []models.Transaction, loc *time.Location) map[string]models.Bucket {
	return GroupBy(txns, timeKey(HourLayout, loc))
}

func timeKey(layout string, loc *time.Location) KeyFunc {
	return func(tx models.Transaction) string {
		if loc == nil {
			return tx.OccurredAt.Format(layout)
		}
		return tx.OccurredAt.In(loc).Format(layout)
	}
}

// ByBranch groups by branch id and labels each bucket with the branch name
// of the first sale seen for it.
func ByBranch(txns []models.Transaction) map[string]models.Bucket {
	return groupBy(txns,
		func(tx models.Transaction) string { return strconv.FormatInt(tx.BranchID, 10) },
		func(tx models.Transaction) string { return tx.BranchName },
	)
}

func ByPaymentMethod(txns []models.Transaction) map[string]models.Bucket {
	return GroupBy(txns, func(tx models.Transaction) string {
		return string(tx.PaymentMethod)
	})
}

// ByCategory groups by sales category; uncategorised sales fall into DefaultCategory.
func ByCategory(txns []models.Transaction) map[string]models.Bucket {
	return GroupBy(txns, func(tx models.Transaction) string {
		if tx.Category == "" {
			return models.DefaultCategory
		}
		return tx.Category
	})
}

func ByCashier(txns []models.Transaction) map[string]models.Bucket {
	return GroupBy(txns, func(tx models.Transaction) string {
		return tx.CashierName
	})
}

// Sum returns the total amount of txns.
func Sum(txns []models.Transaction) int64 {
	var total int64
	for _, tx := range txns {
		total += tx.TotalAmount
	}
	return total
}

// AverageOrder is the floored mean ticket size, 0 for no sales.
func AverageOrder(txns []models.Transaction) int64 {
	if len(txns) == 0 {
		return 0
	}
	return floorDiv(Sum(txns), int64(len(txns)))
}

// floorDiv rounds toward negative infinity; d must be positive.
func floorDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 && n < 0 {
		q--
	}
	return q
}

// DistinctCashiers returns the distinct cashier names in first-seen order.
func DistinctCashiers(txns []models.Transaction) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, tx := range txns {
		if _, ok := seen[tx.CashierName]; ok {
			continue
		}
		seen[tx.CashierName] = struct{}{}
		names = append(names, tx.CashierName)
	}
	return names
}

// SortByKey flattens buckets in ascending key order.
func SortByKey(buckets map[string]models.Bucket) []models.Bucket {
	out := values(buckets)
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SortByTotalDesc flattens buckets by descending total, ties by ascending key.
func SortByTotalDesc(buckets map[string]models.Bucket) []models.Bucket {
	out := values(buckets)
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalAmount != out[j].TotalAmount {
			return out[i].TotalAmount > out[j].TotalAmount
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func values(buckets map[string]models.Bucket) []models.Bucket {
	out := make([]models.Bucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b)
	}
	return out
}
