package lead

import "context"

type LeadRepository interface {
	Create(ctx context.Context, l Lead) (Lead, error)
	GetByID(ctx context.Context, id string) (Lead, error)
	List(ctx context.Context, filter ListFilter) ([]Lead, int64, error)
	Update(ctx context.Context, l Lead) error
	Delete(ctx context.Context, id string) error

	// CountByStatus powers the pipeline report.
	CountByStatus(ctx context.Context) (map[LeadStatus]int64, error)
}
