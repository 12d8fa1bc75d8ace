package dto

import (
	"time"

	"github.com/spec-kit/hrms-service/internal/domain"
)

// DashboardStatsResponse summarizes the registry.
type DashboardStatsResponse struct {
	TotalEmployees    int64                      `json:"totalEmployees"`
	PresentToday      int64                      `json:"presentToday"`
	AbsentToday       int64                      `json:"absentToday"`
	ActiveDepartments int64                      `json:"activeDepartments"`
	RecentAttendance  []RecentAttendanceResponse `json:"recentAttendance"`
}

// RecentAttendanceResponse is an attendance row with employee context.
type RecentAttendanceResponse struct {
	ID           string                  `json:"id"`
	EmployeeID   string                  `json:"employeeId"`
	EmployeeName string                  `json:"employeeName"`
	Department   string                  `json:"department"`
	Date         string                  `json:"date"`
	Status       domain.AttendanceStatus `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
}

// NewDashboardStatsResponse maps aggregated stats.
func NewDashboardStatsResponse(stats *domain.DashboardStats) DashboardStatsResponse {
	recent := make([]RecentAttendanceResponse, 0, len(stats.RecentAttendance))
	for _, r := range stats.RecentAttendance {
		recent = append(recent, RecentAttendanceResponse{
			ID:           r.ID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: r.EmployeeName,
			Department:   r.Department,
			Date:         r.Date.Format(domain.DateLayout),
			Status:       r.Status,
			CreatedAt:    r.CreatedAt,
		})
	}
	return DashboardStatsResponse{
		TotalEmployees:    stats.TotalEmployees,
		PresentToday:      stats.PresentToday,
		AbsentToday:       stats.AbsentToday,
		ActiveDepartments: stats.ActiveDepartments,
		RecentAttendance:  recent,
	}
}
