package worksite

import (
	"context"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/jwt"
)

type WorkSiteServiceImpl struct {
	worksite.WorkSiteRepository
	defaultRadiusMeters float64
}

func NewWorkSiteService(workSiteRepo worksite.WorkSiteRepository, defaultRadiusMeters float64) worksite.WorkSiteService {
	return &WorkSiteServiceImpl{
		WorkSiteRepository:  workSiteRepo,
		defaultRadiusMeters: defaultRadiusMeters,
	}
}

func requireAdmin(ctx context.Context) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}
	if !claims.IsAdmin() {
		return user.ErrAdminPrivilegeRequired
	}
	return nil
}

// Create implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Create(ctx context.Context, req worksite.UpsertWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return worksite.WorkSiteResponse{}, err
	}
	if req.RadiusMeters == 0 {
		req.RadiusMeters = s.defaultRadiusMeters
	}
	if err := req.Validate(); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	created, err := s.WorkSiteRepository.Create(ctx, worksite.WorkSite{
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		WorkStartsAt: req.WorkStartsAt,
		WorkEndsAt:   req.WorkEndsAt,
		GraceMinutes: req.GraceMinutes,
	})
	if err != nil {
		return worksite.WorkSiteResponse{}, fmt.Errorf("failed to create work site: %w", err)
	}

	return worksite.ToResponse(created), nil
}

// Get implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Get(ctx context.Context, id string) (worksite.WorkSiteResponse, error) {
	site, err := s.WorkSiteRepository.GetByID(ctx, id)
	if err != nil {
		return worksite.WorkSiteResponse{}, err
	}
	return worksite.ToResponse(site), nil
}

// List implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) List(ctx context.Context) ([]worksite.WorkSiteResponse, error) {
	sites, err := s.WorkSiteRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sites: %w", err)
	}

	responses := make([]worksite.WorkSiteResponse, 0, len(sites))
	for _, site := range sites {
		responses = append(responses, worksite.ToResponse(site))
	}
	return responses, nil
}

// Replace implements worksite.WorkSiteService. The fence is immutable
// configuration, so the whole site is rewritten at once.
func (s *WorkSiteServiceImpl) Replace(ctx context.Context, req worksite.UpsertWorkSiteRequest) (worksite.WorkSiteResponse, error) {
	if err := requireAdmin(ctx); err != nil {
		return worksite.WorkSiteResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	site := worksite.WorkSite{
		ID:           req.ID,
		Name:         req.Name,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		WorkStartsAt: req.WorkStartsAt,
		WorkEndsAt:   req.WorkEndsAt,
		GraceMinutes: req.GraceMinutes,
	}
	if err := s.WorkSiteRepository.Replace(ctx, site); err != nil {
		return worksite.WorkSiteResponse{}, err
	}

	return worksite.ToResponse(site), nil
}

// Delete implements worksite.WorkSiteService.
func (s *WorkSiteServiceImpl) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return s.WorkSiteRepository.Delete(ctx, id)
}
