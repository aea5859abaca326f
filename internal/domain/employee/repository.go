package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter ListFilter) ([]Employee, int64, error)
	Update(ctx context.Context, e Employee) error
	AssignWorkSite(ctx context.Context, employeeID string, workSiteID *string) error

	// ListActiveIDs returns ids of all active employees; used by the nightly
	// classification job.
	ListActiveIDs(ctx context.Context) ([]string, error)
}
