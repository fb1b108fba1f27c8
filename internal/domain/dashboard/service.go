package dashboard

import "context"

type DashboardService interface {
	// Manager builds the snapshot for the current date.
	Manager(ctx context.Context) (ManagerSnapshot, error)

	// Employee returns the user's total hours and latest records.
	Employee(ctx context.Context, userID string) (EmployeeDashboard, error)
}
