// Package window slices transaction sets into reporting periods.
//
// Every function takes the reference time explicitly and returns a new slice;
// the input is never reordered or modified.
package window

import (
	"time"

	"posreport/internal/models"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns transactions at or after the start of now's day.
func Today(txns []models.Transaction, now time.Time) []models.Transaction {
	return filter(txns, func(tx models.Transaction) bool {
		return !tx.OccurredAt.Before(StartOfDay(now))
	})
}

// Yesterday returns transactions in the calendar day before now's day.
func Yesterday(txns []models.Transaction, now time.Time) []models.Transaction {
	end := StartOfDay(now)
	return between(txns, end.AddDate(0, 0, -1), end)
}

// LastNDays returns transactions at or after midnight n days before now's day.
// The window is open-ended, so today's sales are included.
func LastNDays(txns []models.Transaction, now time.Time, n int) []models.Transaction {
	start := StartOfDay(now).AddDate(0, 0, -n)
	return filter(txns, func(tx models.Transaction) bool {
		return !tx.OccurredAt.Before(start)
	})
}

// PreviousNDays returns the n-day window that ends where LastNDays begins.
func PreviousNDays(txns []models.Transaction, now time.Time, n int) []models.Transaction {
	end := StartOfDay(now).AddDate(0, 0, -n)
	return between(txns, end.AddDate(0, 0, -n), end)
}

// DateRange returns transactions with start <= OccurredAt <= end.
func DateRange(txns []models.Transaction, start, end time.Time) []models.Transaction {
	return filter(txns, func(tx models.Transaction) bool {
		return !tx.OccurredAt.Before(start) && !tx.OccurredAt.After(end)
	})
}

// ForBranch returns the transactions of a single branch.
func ForBranch(txns []models.Transaction, branchID int64) []models.Transaction {
	return filter(txns, func(tx models.Transaction) bool {
		return tx.BranchID == branchID
	})
}

// WithStatus returns the transactions whose status is one of statuses.
func WithStatus(txns []models.Transaction, statuses ...models.TransactionStatus) []models.Transaction {
	return filter(txns, func(tx models.Transaction) bool {
		for _, s := range statuses {
			if tx.Status == s {
				return true
			}
		}
		return false
	})
}

// between is the half-open interval [start, end).
func between(txns []models.Transaction, start, end time.Time) []models.Transaction {
	return filter(txns, func(tx models.Transaction) bool {
		return !tx.OccurredAt.Before(start) && tx.OccurredAt.Before(end)
	})
}

func filter(txns []models.Transaction, keep func(models.Transaction) bool) []models.Transaction {
	out := make([]models.Transaction, 0)
	for _, tx := range txns {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
