package handlers

import (
	"fmt"
	"strings"
	"time"

	"posreport/internal/models"
	"posreport/internal/services/dashboard"
	"posreport/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// reportParams are the query parameters shared by every report.
type reportParams struct {
	Now      string `query:"now"`
	Days     int    `query:"days" validate:"min=0,max=366"`
	Start    string `query:"start" validate:"required_with=End"`
	End      string `query:"end" validate:"required_with=Start"`
	BranchID int64  `query:"branch_id" validate:"min=0"`
	Status   string `query:"status"`
}

type topParams struct {
	Metric string `query:"metric"`
	N      int    `query:"n" validate:"min=0,max=100"`
}

// parseReportQuery builds a dashboard query from the request, defaulting
// now to the server clock and forcing branch managers onto their branch.
func parseReportQuery(c *fiber.Ctx, claims *models.UserClaims, clock func() time.Time) (dashboard.Query, error) {
	var p reportParams
	if err := c.QueryParser(&p); err != nil {
		return dashboard.Query{}, validation.Errors{{Field: "query", Message: err.Error()}}
	}
	if err := validation.Struct(p); err != nil {
		return dashboard.Query{}, err
	}

	q := dashboard.Query{Now: clock(), Days: p.Days}
	if p.Now != "" {
		now, err := time.Parse(time.RFC3339, p.Now)
		if err != nil {
			return dashboard.Query{}, validation.Errors{{Field: "now", Message: "must be an RFC3339 timestamp"}}
		}
		q.Now = now
	}

	if p.Start != "" {
		start, err := parseBound(p.Start, q.Now.Location(), false)
		if err != nil {
			return dashboard.Query{}, validation.Errors{{Field: "start", Message: err.Error()}}
		}
		end, err := parseBound(p.End, q.Now.Location(), true)
		if err != nil {
			return dashboard.Query{}, validation.Errors{{Field: "end", Message: err.Error()}}
		}
		if start.After(end) {
			return dashboard.Query{}, validation.Errors{{Field: "start", Message: "must not be after end"}}
		}
		q.Start, q.End = &start, &end
	}

	if p.Status != "" {
		for _, s := range strings.Split(p.Status, ",") {
			status := models.TransactionStatus(strings.ToUpper(strings.TrimSpace(s)))
			if !status.Valid() {
				return dashboard.Query{}, validation.Errors{{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}}
			}
			q.Statuses = append(q.Statuses, status)
		}
	}

	branch, err := scopeBranch(claims, p.BranchID)
	if err != nil {
		return dashboard.Query{}, err
	}
	q.BranchID = branch
	return q, nil
}

// parseBound accepts RFC3339 or a bare date. A bare end date covers the
// whole day.
func parseBound(value string, loc *time.Location, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	day, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("must be RFC3339 or %s", dateLayout)
	}
	if endOfDay {
		return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return day, nil
}

// scopeBranch restricts branch managers to their own branch regardless of
// the requested one.
func scopeBranch(claims *models.UserClaims, requested int64) (*int64, error) {
	if claims.Role == models.RoleBranchManager {
		if claims.BranchID == nil {
			return nil, errNoBranchAssigned
		}
		branch := *claims.BranchID
		return &branch, nil
	}
	if requested > 0 {
		return &requested, nil
	}
	return nil, nil
}
