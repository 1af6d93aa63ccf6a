package handlers

import (
	"time"

	"posreport/internal/middleware"
	"posreport/internal/models"
	"posreport/internal/services/dashboard"
	"posreport/internal/utils/response"
	"posreport/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultTrendDays = 30
	defaultTopN      = 5
)

type DashboardHandler struct {
	dashboardService dashboard.Service
	clock            func() time.Time
	log              *zap.Logger
}

func NewDashboardHandler(dashboardService dashboard.Service, clock func() time.Time, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		clock:            clock,
		log:              log.Named("reports"),
	}
}

func (h *DashboardHandler) query(c *fiber.Ctx) (dashboard.Query, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return dashboard.Query{}, errNoBranchAssigned
	}
	return parseReportQuery(c, claims, h.clock)
}

// Overview returns the store KPI cards.
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return handleError(c, h.log, err)
	}

	overview, err := h.dashboardService.Overview(c.UserContext(), c.Params("id"), q)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Overview retrieved successfully", overview)
}

// DailySales returns the daily series, the last 30 days unless a range is given.
func (h *DashboardHandler) DailySales(c *fiber.Ctx) error {
	q, err := h.query(c)
	if err != nil {
		return handleError(c, h.log, err)
	}
	if q.Days == 0 && q.Start == nil {
		q.Days = defaultTrendDays
	}

	buckets, err := h.dashboardService.DailySales(c.UserContext(), c.Params("id"), q)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Daily sales retrieved successfully", buckets)
}

// Breakdown groups sales by the :dimension path parameter.
func (h *DashboardHandler) Breakdown(c *fiber.Ctx) error {
	dim, err := dashboard.ParseDimension(c.Params("dimension"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	q, err := h.query(c)
	if err != nil {
		return handleError(c, h.log, err)
	}

	buckets, err := h.dashboardService.Breakdown(c.UserContext(), c.Params("id"), dim, q)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Breakdown retrieved successfully", buckets)
}

// Top ranks the buckets of :dimension by metric.
func (h *DashboardHandler) Top(c *fiber.Ctx) error {
	dim, err := dashboard.ParseDimension(c.Params("dimension"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	q, err := h.query(c)
	if err != nil {
		return handleError(c, h.log, err)
	}

	var p topParams
	if err := c.QueryParser(&p); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if err := validation.Struct(p); err != nil {
		return handleError(c, h.log, err)
	}
	metric := models.MetricTotalAmount
	if p.Metric != "" {
		metric = models.Metric(p.Metric)
	}
	n := p.N
	if n == 0 {
		n = defaultTopN
	}

	ranked, err := h.dashboardService.Top(c.UserContext(), c.Params("id"), dim, metric, n, q)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Ranking retrieved successfully", ranked)
}
