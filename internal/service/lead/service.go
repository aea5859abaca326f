package lead

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
)

type LeadServiceImpl struct {
	lead.LeadRepository
}

func NewLeadService(leadRepo lead.LeadRepository) lead.LeadService {
	return &LeadServiceImpl{LeadRepository: leadRepo}
}

// canAccess reports whether the actor may touch the lead. Employees are
// limited to leads assigned to them; managers and admins see everything.
func canAccess(claims jwt.Claims, l lead.Lead) bool {
	if claims.IsManager() {
		return true
	}
	return l.AssignedTo != nil && *l.AssignedTo == claims.EmployeeID
}

// Create implements lead.LeadService. Leads created by an employee are
// assigned to that employee unless the request says otherwise.
func (s *LeadServiceImpl) Create(ctx context.Context, req lead.CreateLeadRequest) (lead.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return lead.LeadResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.LeadResponse{}, err
	}

	assignedTo := req.AssignedTo
	if assignedTo == nil && !claims.IsManager() && claims.EmployeeID != "" {
		employeeID := claims.EmployeeID
		assignedTo = &employeeID
	}

	created, err := s.LeadRepository.Create(ctx, lead.Lead{
		Name:           req.Name,
		Company:        req.Company,
		Email:          req.Email,
		Phone:          req.Phone,
		Source:         req.Source,
		Status:         lead.StatusNew,
		AssignedTo:     assignedTo,
		EstimatedValue: req.EstimatedValue,
		Notes:          req.Notes,
	})
	if err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead.ToResponse(created), nil
}

// Get implements lead.LeadService.
func (s *LeadServiceImpl) Get(ctx context.Context, id string) (lead.LeadResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.LeadResponse{}, err
	}

	l, err := s.LeadRepository.GetByID(ctx, id)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	if !canAccess(claims, l) {
		return lead.LeadResponse{}, lead.ErrLeadAccessDenied
	}

	return lead.ToResponse(l), nil
}

// List implements lead.LeadService. Employee listings are forced onto
// their own assignments.
func (s *LeadServiceImpl) List(ctx context.Context, filter lead.ListFilter) (lead.ListLeadResponse, error) {
	if err := filter.Validate(); err != nil {
		return lead.ListLeadResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.ListLeadResponse{}, err
	}
	if !claims.IsManager() {
		employeeID := claims.EmployeeID
		filter.AssignedTo = &employeeID
	}

	leads, total, err := s.LeadRepository.List(ctx, filter)
	if err != nil {
		return lead.ListLeadResponse{}, fmt.Errorf("failed to list leads: %w", err)
	}

	responses := make([]lead.LeadResponse, 0, len(leads))
	for _, l := range leads {
		responses = append(responses, lead.ToResponse(l))
	}

	return lead.ListLeadResponse{
		Leads:      responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements lead.LeadService. Status changes go through
// ChangeStatus, not here.
func (s *LeadServiceImpl) Update(ctx context.Context, req lead.UpdateLeadRequest) (lead.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return lead.LeadResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.LeadResponse{}, err
	}

	l, err := s.LeadRepository.GetByID(ctx, req.ID)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	if !canAccess(claims, l) {
		return lead.LeadResponse{}, lead.ErrLeadAccessDenied
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Company != nil {
		l.Company = req.Company
	}
	if req.Email != nil {
		l.Email = req.Email
	}
	if req.Phone != nil {
		l.Phone = req.Phone
	}
	if req.Source != nil {
		l.Source = req.Source
	}
	if req.EstimatedValue != nil {
		l.EstimatedValue = req.EstimatedValue
	}
	if req.Notes != nil {
		l.Notes = req.Notes
	}

	if err := s.LeadRepository.Update(ctx, l); err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to update lead: %w", err)
	}

	return lead.ToResponse(l), nil
}

// ChangeStatus implements lead.LeadService. Only transitions allowed by the
// pipeline are accepted.
func (s *LeadServiceImpl) ChangeStatus(ctx context.Context, req lead.ChangeStatusRequest) (lead.LeadResponse, error) {
	if err := req.Validate(); err != nil {
		return lead.LeadResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.LeadResponse{}, err
	}

	l, err := s.LeadRepository.GetByID(ctx, req.ID)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	if !canAccess(claims, l) {
		return lead.LeadResponse{}, lead.ErrLeadAccessDenied
	}

	next := lead.LeadStatus(req.Status)
	if !lead.CanTransition(l.Status, next) {
		return lead.LeadResponse{}, lead.ErrInvalidStatusTransition
	}

	l.Status = next
	if err := s.LeadRepository.Update(ctx, l); err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to change lead status: %w", err)
	}

	return lead.ToResponse(l), nil
}

// Assign implements lead.LeadService. Manager and admin only.
func (s *LeadServiceImpl) Assign(ctx context.Context, req lead.AssignLeadRequest) (lead.LeadResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return lead.LeadResponse{}, err
	}
	if !claims.IsManager() {
		return lead.LeadResponse{}, lead.ErrLeadAccessDenied
	}

	l, err := s.LeadRepository.GetByID(ctx, req.ID)
	if err != nil {
		return lead.LeadResponse{}, err
	}

	l.AssignedTo = req.AssignedTo
	l.AssignedToName = nil
	if err := s.LeadRepository.Update(ctx, l); err != nil {
		return lead.LeadResponse{}, fmt.Errorf("failed to assign lead: %w", err)
	}

	return lead.ToResponse(l), nil
}

// Delete implements lead.LeadService. Manager and admin only.
func (s *LeadServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsManager() {
		return lead.ErrLeadAccessDenied
	}

	return s.LeadRepository.Delete(ctx, id)
}
