package employee

import "context"

type EmployeeService interface {
	Get(ctx context.Context, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context) (EmployeeResponse, error)
	List(ctx context.Context, filter ListFilter) (ListEmployeeResponse, error)
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// AssignWorkSite binds the employee to a work site; nil clears the
	// assignment and with it any geofence enforcement.
	AssignWorkSite(ctx context.Context, employeeID string, workSiteID *string) error
}
