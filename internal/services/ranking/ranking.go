// Package ranking orders aggregate buckets for leaderboard widgets.
package ranking

import (
	"sort"

	"posreport/internal/models"
)

// TopN ranks buckets by metric, highest first with ties broken by ascending
// key, and keeps the first n. Shares are computed against the sum over all
// buckets, not only the kept ones. The input slice is left untouched.
func TopN(buckets []models.Bucket, metric models.Metric, n int) []models.RankedBucket {
	if n <= 0 || len(buckets) == 0 {
		return []models.RankedBucket{}
	}

	sorted := append([]models.Bucket(nil), buckets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := metric.Value(sorted[i]), metric.Value(sorted[j])
		if vi != vj {
			return vi > vj
		}
		return sorted[i].Key < sorted[j].Key
	})

	var total int64
	for _, b := range sorted {
		total += metric.Value(b)
	}

	if n > len(sorted) {
		n = len(sorted)
	}
	ranked := make([]models.RankedBucket, n)
	for i := 0; i < n; i++ {
		ranked[i] = models.RankedBucket{
			Bucket:            sorted[i],
			Rank:              i + 1,
			PercentageOfTotal: share(metric.Value(sorted[i]), total),
		}
	}
	return ranked
}

// TopNFromMap is TopN over the output of an aggregation.
func TopNFromMap(buckets map[string]models.Bucket, metric models.Metric, n int) []models.RankedBucket {
	list := make([]models.Bucket, 0, len(buckets))
	for _, b := range buckets {
		list = append(list, b)
	}
	return TopN(list, metric, n)
}

func share(value, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(value) / float64(total) * 100
}
