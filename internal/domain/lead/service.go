package lead

import "context"

// LeadService defines business logic for the sales-lead pipeline.
type LeadService interface {
	Create(ctx context.Context, req CreateLeadRequest) (LeadResponse, error)
	Get(ctx context.Context, id string) (LeadResponse, error)
	List(ctx context.Context, filter ListFilter) (ListLeadResponse, error)
	Update(ctx context.Context, req UpdateLeadRequest) (LeadResponse, error)
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (LeadResponse, error)
	Assign(ctx context.Context, req AssignLeadRequest) (LeadResponse, error)
	Delete(ctx context.Context, id string) error
}
