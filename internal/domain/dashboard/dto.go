package dashboard

import "github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"

// ManagerSnapshot is the manager dashboard for one calendar date.
type ManagerSnapshot struct {
	Date            string           `json:"date"`
	TotalEmployees  int64            `json:"totalEmployees"`
	PresentToday    int64            `json:"presentToday"` // Present or Late
	LateToday       int64            `json:"lateToday"`
	AbsentEmployees []AbsentEmployee `json:"absentEmployees"`
	WeeklyStats     []WeeklyStat     `json:"weeklyStats"`
	DepartmentStats []DepartmentStat `json:"departmentStats"`
}

// AbsentEmployee is an employee with no record for the date.
type AbsentEmployee struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
	Department string `json:"department"`
}

// WeeklyStat counts records created in the trailing week per record date.
type WeeklyStat struct {
	Date      string `json:"date"`
	Attendees int64  `json:"Attendees"` // chart series key
}

// DepartmentStat counts the date's records per department.
type DepartmentStat struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type EmployeeDashboard struct {
	TotalHours float64                     `json:"totalHours"`
	Recent     []attendance.RecordResponse `json:"recent"`
}
