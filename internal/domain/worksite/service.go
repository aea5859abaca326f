package worksite

import "context"

// WorkSiteService manages geofenced work sites. Admin only for writes.
type WorkSiteService interface {
	Create(ctx context.Context, req UpsertWorkSiteRequest) (WorkSiteResponse, error)
	Get(ctx context.Context, id string) (WorkSiteResponse, error)
	List(ctx context.Context) ([]WorkSiteResponse, error)
	Replace(ctx context.Context, req UpsertWorkSiteRequest) (WorkSiteResponse, error)
	Delete(ctx context.Context, id string) error
}
