package dashboard

import (
	"strconv"
	"strings"
	"time"

	"posreport/internal/models"
	"posreport/internal/services/window"
)

// Query scopes a report. Now anchors every relative window; the service
// never reads the clock itself.
//
// Start and End, when both set, select an inclusive date range and take
// precedence over Days. Days selects the open-ended last-N-days window.
// With neither, the whole dataset is used.
type Query struct {
	Now      time.Time
	Days     int
	Start    *time.Time
	End      *time.Time
	BranchID *int64
	Statuses []models.TransactionStatus
}

func (q Query) scope(txns []models.Transaction) []models.Transaction {
	scoped := q.filter(txns)
	switch {
	case q.Start != nil && q.End != nil:
		return window.DateRange(scoped, *q.Start, *q.End)
	case q.Days > 0:
		return window.LastNDays(scoped, q.Now, q.Days)
	default:
		return scoped
	}
}

// filter applies the branch and status restrictions only.
func (q Query) filter(txns []models.Transaction) []models.Transaction {
	if q.BranchID != nil {
		txns = window.ForBranch(txns, *q.BranchID)
	}
	if len(q.Statuses) > 0 {
		txns = window.WithStatus(txns, q.Statuses...)
	}
	return txns
}

// cacheParams renders the query as cache key segments. Times keep their
// fractional seconds so bounds that select different rows never share a key.
func (q Query) cacheParams() []string {
	params := []string{
		"now=" + q.Now.Format(time.RFC3339Nano),
		"days=" + strconv.Itoa(q.Days),
	}
	if q.Start != nil && q.End != nil {
		params = append(params,
			"start="+q.Start.Format(time.RFC3339Nano),
			"end="+q.End.Format(time.RFC3339Nano))
	}
	if q.BranchID != nil {
		params = append(params, "branch="+strconv.FormatInt(*q.BranchID, 10))
	}
	if len(q.Statuses) > 0 {
		statuses := make([]string, len(q.Statuses))
		for i, s := range q.Statuses {
			statuses[i] = string(s)
		}
		params = append(params, "status="+strings.Join(statuses, ","))
	}
	return params
}
