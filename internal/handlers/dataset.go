package handlers

import (
	"time"

	"posreport/internal/services/dashboard"
	"posreport/internal/services/dataset"
	"posreport/internal/services/generator"
	"posreport/internal/utils/pagination"
	"posreport/internal/utils/response"
	"posreport/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GenerateDatasetRequest asks for a synthetic dataset. Omitted fields fall
// back to the server's generator profile, seed and clock.
type GenerateDatasetRequest struct {
	Seed     *uint64           `json:"seed"`
	Now      *time.Time        `json:"now"`
	DayCount int               `json:"day_count" validate:"min=0"`
	Config   *generator.Config `json:"config"`
}

// ImportDatasetRequest loads stored transactions with start <= occurred_at <= end.
type ImportDatasetRequest struct {
	Start     time.Time `json:"start" validate:"required"`
	End       time.Time `json:"end" validate:"required"`
	BranchIDs []int64   `json:"branch_ids" validate:"omitempty,dive,gt=0"`
}

type DatasetHandler struct {
	registry    *dataset.Registry
	reports     dashboard.Service
	profile     generator.Config
	defaultSeed uint64
	clock       func() time.Time
	log         *zap.Logger
}

func NewDatasetHandler(
	registry *dataset.Registry,
	reports dashboard.Service,
	profile generator.Config,
	defaultSeed uint64,
	clock func() time.Time,
	log *zap.Logger,
) *DatasetHandler {
	return &DatasetHandler{
		registry:    registry,
		reports:     reports,
		profile:     profile,
		defaultSeed: defaultSeed,
		clock:       clock,
		log:         log.Named("datasets"),
	}
}

// Generate runs the generator and registers the result.
func (h *DatasetHandler) Generate(c *fiber.Ctx) error {
	var req GenerateDatasetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if err := validation.Struct(req); err != nil {
		return handleError(c, h.log, err)
	}

	params := dataset.GenerateParams{
		Now:    h.clock(),
		Seed:   h.defaultSeed,
		Config: h.profile,
	}
	if req.Now != nil {
		params.Now = *req.Now
	}
	if req.Seed != nil {
		params.Seed = *req.Seed
	}
	if req.Config != nil {
		params.Config = *req.Config
	}
	if req.DayCount > 0 {
		params.Config.DayCount = req.DayCount
	}

	ds, err := h.registry.Generate(c.UserContext(), params)
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Created(c, "Dataset generated successfully", ds.Info())
}

// Import registers a window of stored transactions.
func (h *DatasetHandler) Import(c *fiber.Ctx) error {
	var req ImportDatasetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validation.Struct(req); err != nil {
		return handleError(c, h.log, err)
	}

	ds, err := h.registry.Import(c.UserContext(), dataset.ImportParams{
		Start:     req.Start,
		End:       req.End,
		BranchIDs: req.BranchIDs,
	})
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Created(c, "Dataset imported successfully", ds.Info())
}

func (h *DatasetHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, h.registry.List())
	return c.JSON(pagination.Response(p, page))
}

func (h *DatasetHandler) Get(c *fiber.Ctx) error {
	ds, err := h.registry.Get(c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err)
	}
	return response.Success(c, "Dataset retrieved successfully", ds.Info())
}

// Delete unregisters a dataset and drops its cached reports.
func (h *DatasetHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.registry.Remove(id); err != nil {
		return handleError(c, h.log, err)
	}
	if err := h.reports.Invalidate(c.UserContext(), id); err != nil {
		h.log.Warn("failed to drop cached reports", zap.String("dataset_id", id), zap.Error(err))
	}
	return response.Success(c, "Dataset removed successfully", nil)
}
