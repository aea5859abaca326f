package employee

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/employee"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
)

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	worksite.WorkSiteRepository
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	workSiteRepo worksite.WorkSiteRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		WorkSiteRepository: workSiteRepo,
	}
}

// Get implements employee.EmployeeService. Employees may read their own
// profile; reading others requires manager access.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !claims.IsManager() && claims.EmployeeID != id {
		return employee.EmployeeResponse{}, user.ErrManagerAccessRequired
	}

	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// GetMe implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMe(ctx context.Context) (employee.EmployeeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// List implements employee.EmployeeService. Manager and admin only.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if !claims.IsManager() {
		return employee.ListEmployeeResponse{}, user.ErrManagerAccessRequired
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}

	return employee.ListEmployeeResponse{
		Employees:  responses,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Update implements employee.EmployeeService. Admin only; deactivation is a
// field update, never a row delete, so attendance history survives.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !claims.IsAdmin() {
		return employee.EmployeeResponse{}, user.ErrAdminPrivilegeRequired
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		e.FullName = *req.FullName
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.Phone != nil {
		e.Phone = req.Phone
	}
	if req.Active != nil {
		e.Active = *req.Active
	}

	if err := s.EmployeeRepository.Update(ctx, e); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.ToResponse(e), nil
}

// AssignWorkSite implements employee.EmployeeService. Admin only. The site
// must exist before it can be assigned.
func (s *EmployeeServiceImpl) AssignWorkSite(ctx context.Context, employeeID string, workSiteID *string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}

	if workSiteID != nil {
		if _, err := s.WorkSiteRepository.GetByID(ctx, *workSiteID); err != nil {
			return err
		}
	}

	return s.EmployeeRepository.AssignWorkSite(ctx, employeeID, workSiteID)
}
