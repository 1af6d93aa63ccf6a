package kpi

import (
	"testing"

	"posreport/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     models.KPIComparison
	}{
		{
			name: "both zero",
			want: models.KPIComparison{Direction: models.DirectionNeutral},
		},
		{
			name:    "zero baseline",
			current: 100,
			want: models.KPIComparison{
				Current: 100, AbsoluteChange: 100,
				PercentChange: 0, Direction: models.DirectionPositive,
			},
		},
		{
			name:    "zero baseline with negative current",
			current: -5,
			want: models.KPIComparison{
				Current: -5, AbsoluteChange: -5,
				PercentChange: 0, Direction: models.DirectionPositive,
			},
		},
		{
			name:     "growth",
			current:  150,
			previous: 100,
			want: models.KPIComparison{
				Current: 150, Previous: 100, AbsoluteChange: 50,
				PercentChange: 50, Direction: models.DirectionPositive, HasBaseline: true,
			},
		},
		{
			name:     "decline rounded to two decimals",
			current:  200,
			previous: 300,
			want: models.KPIComparison{
				Current: 200, Previous: 300, AbsoluteChange: -100,
				PercentChange: -33.33, Direction: models.DirectionNegative, HasBaseline: true,
			},
		},
		{
			name:     "rounds half away from zero",
			current:  31,
			previous: 32,
			want: models.KPIComparison{
				Current: 31, Previous: 32, AbsoluteChange: -1,
				PercentChange: -3.13, Direction: models.DirectionNegative, HasBaseline: true,
			},
		},
		{
			name:     "two thirds",
			current:  5,
			previous: 3,
			want: models.KPIComparison{
				Current: 5, Previous: 3, AbsoluteChange: 2,
				PercentChange: 66.67, Direction: models.DirectionPositive, HasBaseline: true,
			},
		},
		{
			name:     "unchanged",
			current:  42,
			previous: 42,
			want: models.KPIComparison{
				Current: 42, Previous: 42,
				Direction: models.DirectionNeutral, HasBaseline: true,
			},
		},
		{
			name:     "drop to zero",
			previous: 80,
			want: models.KPIComparison{
				Previous: 80, AbsoluteChange: -80,
				PercentChange: -100, Direction: models.DirectionNegative, HasBaseline: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(tt.current, tt.previous)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Compare(tt.current, tt.previous))
		})
	}
}

func TestCompareCounts(t *testing.T) {
	got := CompareCounts([]string{"a", "b", "c"}, []string{"a", "b"})

	assert.Equal(t, int64(3), got.Current)
	assert.Equal(t, int64(2), got.Previous)
	assert.Equal(t, 50.0, got.PercentChange)
	assert.Equal(t, models.DirectionPositive, got.Direction)

	empty := CompareCounts[int](nil, nil)
	assert.Equal(t, models.DirectionNeutral, empty.Direction)
	assert.False(t, empty.HasBaseline)
}
