package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/hrms-service/internal/api/dto"
	"github.com/spec-kit/hrms-service/internal/api/validation"
	"github.com/spec-kit/hrms-service/internal/domain"
	"github.com/spec-kit/hrms-service/internal/service"
)

// EmployeeService is the registry as seen by the HTTP layer.
type EmployeeService interface {
	Create(ctx context.Context, input service.EmployeeCreateInput) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, employeeID string) (*domain.Employee, error)
	Delete(ctx context.Context, employeeID string) (*service.DeletedEmployee, error)
}

// EmployeesHandler exposes the employee registry.
type EmployeesHandler struct {
	employees EmployeeService
	validator *validation.Validator
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees EmployeeService, validator *validation.Validator) *EmployeesHandler {
	return &EmployeesHandler{employees: employees, validator: validator}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := h.validator.Bind(c, &req); err != nil {
		return err
	}

	emp, err := h.employees.Create(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(emp))
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	list, err := h.employees.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeList(list))
}

// Get handles GET /employees/:employeeId.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	emp, err := h.employees.Get(c.UserContext(), employeeIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeDetail(emp))
}

// Delete handles DELETE /employees/:employeeId.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.employees.Delete(c.UserContext(), employeeIDParam(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteEmployeeResponse{Message: deleted.Message, EmployeeID: deleted.EmployeeID})
}

// employeeIDParam decodes the path segment, so "HR%2001" names "HR 01". A
// malformed escape is kept as sent and simply matches no employee. Fiber
// reuses the request buffer, so the param is copied before it outlives the
// handler.
func employeeIDParam(c *fiber.Ctx) string {
	raw := utils.CopyString(c.Params("employeeId"))
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return id
}
