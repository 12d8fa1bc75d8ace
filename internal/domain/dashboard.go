package domain

// DashboardStats aggregates counts for the overview page.
type DashboardStats struct {
	TotalEmployees    int64
	PresentToday      int64
	AbsentToday       int64
	ActiveDepartments int64
	RecentAttendance  []RecentAttendance
}

// RecentAttendance is an attendance row joined with its employee.
type RecentAttendance struct {
	Attendance
	EmployeeName string
	Department   string
}
