package worksite

import "context"

type WorkSiteRepository interface {
	Create(ctx context.Context, site WorkSite) (WorkSite, error)
	GetByID(ctx context.Context, id string) (WorkSite, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*WorkSite, error)
	List(ctx context.Context) ([]WorkSite, error)
	Replace(ctx context.Context, site WorkSite) error
	Delete(ctx context.Context, id string) error
}
