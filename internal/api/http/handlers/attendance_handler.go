package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/api/validation"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
	apperrors "github.com/spec-kit/hrms-service/pkg/util/errorutil"
)

// AttendanceService records daily attendance.
type AttendanceService interface {
	Mark(ctx context.Context, input service.AttendanceMarkInput) (*domain.Attendance, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]domain.Attendance, error)
}

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance AttendanceService
	validator  *validation.Validator
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance AttendanceService, validator *validation.Validator) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, validator: validator}
}

// Mark handles POST /attendance.
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}
	input, err := req.ToInput()
	if err != nil {
		return apperrors.NewValidationError("request validation failed", map[string]any{"date": "must be a date in YYYY-MM-DD format"})
	}

	rec, err := h.attendance.Mark(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAttendanceResponse(rec))
}

// ListByEmployee handles GET /attendance/:employeeId.
func (h *AttendanceHandler) ListByEmployee(c *fiber.Ctx) error {
	records, err := h.attendance.ListByEmployee(c.UserContext(), employeeIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttendanceList(records))
}
