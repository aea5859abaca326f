package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/worksite"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workSiteRepository struct {
	db *database.DB
}

func NewWorkSiteRepository(db *database.DB) worksite.WorkSiteRepository {
	return &workSiteRepository{db: db}
}

// Create implements worksite.WorkSiteRepository.
func (r *workSiteRepository) Create(ctx context.Context, site worksite.WorkSite) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_sites (name, latitude, longitude, radius_meters,
			work_starts_at, work_ends_at, grace_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		site.Name, site.Latitude, site.Longitude, site.RadiusMeters,
		site.WorkStartsAt, site.WorkEndsAt, site.GraceMinutes,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
	if err != nil {
		return worksite.WorkSite{}, fmt.Errorf("failed to create work site: %w", err)
	}

	return site, nil
}

// GetByID implements worksite.WorkSiteRepository.
func (r *workSiteRepository) GetByID(ctx context.Context, id string) (worksite.WorkSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters,
			   work_starts_at, work_ends_at, grace_minutes,
			   created_at, updated_at
		FROM work_sites
		WHERE id = $1
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, id).Scan(
		&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters,
		&site.WorkStartsAt, &site.WorkEndsAt, &site.GraceMinutes,
		&site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worksite.WorkSite{}, worksite.ErrWorkSiteNotFound
		}
		return worksite.WorkSite{}, fmt.Errorf("failed to get work site: %w", err)
	}

	return site, nil
}

// GetByEmployeeID implements worksite.WorkSiteRepository. Returns nil when
// the employee has no assigned site.
func (r *workSiteRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*worksite.WorkSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT w.id, w.name, w.latitude, w.longitude, w.radius_meters,
			   w.work_starts_at, w.work_ends_at, w.grace_minutes,
			   w.created_at, w.updated_at
		FROM work_sites w
		JOIN employees e ON e.work_site_id = w.id
		WHERE e.id = $1
	`

	var site worksite.WorkSite
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters,
		&site.WorkStartsAt, &site.WorkEndsAt, &site.GraceMinutes,
		&site.CreatedAt, &site.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work site by employee: %w", err)
	}

	return &site, nil
}

// List implements worksite.WorkSiteRepository.
func (r *workSiteRepository) List(ctx context.Context) ([]worksite.WorkSite, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, latitude, longitude, radius_meters,
			   work_starts_at, work_ends_at, grace_minutes,
			   created_at, updated_at
		FROM work_sites
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list work sites: %w", err)
	}
	defer rows.Close()

	var sites []worksite.WorkSite
	for rows.Next() {
		var site worksite.WorkSite
		if err := rows.Scan(
			&site.ID, &site.Name, &site.Latitude, &site.Longitude, &site.RadiusMeters,
			&site.WorkStartsAt, &site.WorkEndsAt, &site.GraceMinutes,
			&site.CreatedAt, &site.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan work site: %w", err)
		}
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate work sites: %w", err)
	}

	return sites, nil
}

// Replace implements worksite.WorkSiteRepository. The fence is immutable
// configuration, so an update rewrites every field of the row at once.
func (r *workSiteRepository) Replace(ctx context.Context, site worksite.WorkSite) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE work_sites
		SET name = $2, latitude = $3, longitude = $4, radius_meters = $5,
			work_starts_at = $6, work_ends_at = $7, grace_minutes = $8,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		site.ID, site.Name, site.Latitude, site.Longitude, site.RadiusMeters,
		site.WorkStartsAt, site.WorkEndsAt, site.GraceMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to replace work site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorkSiteNotFound
	}
	return nil
}

// Delete implements worksite.WorkSiteRepository.
func (r *workSiteRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM work_sites WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return worksite.ErrWorkSiteInUse
		}
		return fmt.Errorf("failed to delete work site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worksite.ErrWorkSiteNotFound
	}
	return nil
}
