package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	APIPrefix  string
	Health     *handlers.HealthHandler
	System     *handlers.SystemHandler
	Employees  *handlers.EmployeesHandler
	Attendance *handlers.AttendanceHandler
	Dashboard  *handlers.DashboardHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.System.Info)

	api := app.Group(cfg.APIPrefix)
	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)
	api.Get("/metrics", cfg.System.Metrics)

	employees := api.Group("/employees")
	employees.Post("", cfg.Employees.Create)
	employees.Get("", cfg.Employees.List)
	employees.Get("/:employeeId", cfg.Employees.Get)
	employees.Delete("/:employeeId", cfg.Employees.Delete)

	attendance := api.Group("/attendance")
	attendance.Post("", cfg.Attendance.Mark)
	attendance.Get("/:employeeId", cfg.Attendance.ListByEmployee)

	api.Get("/dashboard/stats", cfg.Dashboard.Stats)
}
