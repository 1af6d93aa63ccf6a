// Package handlers exposes datasets and reports over HTTP.
package handlers

import (
	"errors"

	apperrors "posreport/internal/errors"
	"posreport/internal/services/dataset"
	"posreport/internal/services/generator"
	"posreport/internal/utils/response"
	"posreport/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errNoBranchAssigned = errors.New("branch manager token carries no branch_id")

// handleError maps service errors to HTTP responses.
func handleError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return response.ValidationError(c, err.Error())
	}

	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return response.CodedError(c, statusFor(domainErr), domainErr.Code, err.Error())
	}

	switch {
	case errors.Is(err, generator.ErrInvalidConfig), errors.Is(err, dataset.ErrInvalidRange):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, errNoBranchAssigned):
		return response.Error(c, fiber.StatusForbidden, err.Error())
	}

	log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return response.ServerError(c, "internal server error")
}

func statusFor(err *apperrors.DomainError) int {
	switch err {
	case apperrors.ErrDatasetNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrDatabaseUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}
