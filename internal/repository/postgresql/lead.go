package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/lead"
	"github.com/arketra-labs/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leadRepository struct {
	db *database.DB
}

func NewLeadRepository(db *database.DB) lead.LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `
	l.id, l.name, l.company, l.email, l.phone, l.source, l.status,
	l.assigned_to, l.estimated_value, l.notes, l.created_at, l.updated_at,
	e.full_name AS assigned_to_name
`

func scanLead(row pgx.Row) (lead.Lead, error) {
	var l lead.Lead
	err := row.Scan(
		&l.ID, &l.Name, &l.Company, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.AssignedTo, &l.EstimatedValue, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
		&l.AssignedToName,
	)
	return l, err
}

// Create implements lead.LeadRepository.
func (r *leadRepository) Create(ctx context.Context, l lead.Lead) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leads (name, company, email, phone, source, status,
			assigned_to, estimated_value, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		l.Name, l.Company, l.Email, l.Phone, l.Source, l.Status,
		l.AssignedTo, l.EstimatedValue, l.Notes,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return lead.Lead{}, fmt.Errorf("failed to create lead: %w", err)
	}

	return l, nil
}

// GetByID implements lead.LeadRepository.
func (r *leadRepository) GetByID(ctx context.Context, id string) (lead.Lead, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leadColumns + `
		FROM leads l
		LEFT JOIN employees e ON e.id = l.assigned_to
		WHERE l.id = $1
	`

	l, err := scanLead(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return lead.Lead{}, lead.ErrLeadNotFound
		}
		return lead.Lead{}, fmt.Errorf("failed to get lead: %w", err)
	}

	return l, nil
}

// List implements lead.LeadRepository.
func (r *leadRepository) List(ctx context.Context, filter lead.ListFilter) ([]lead.Lead, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("l.status = $%d", argPos))
		args = append(args, *filter.Status)
		argPos++
	}
	if filter.AssignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("l.assigned_to = $%d", argPos))
		args = append(args, *filter.AssignedTo)
		argPos++
	}
	if filter.Search != nil {
		conditions = append(conditions, fmt.Sprintf("(l.name ILIKE $%d OR l.company ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := `SELECT COUNT(*) FROM leads l WHERE ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads l
		LEFT JOIN employees e ON e.id = l.assigned_to
		WHERE %s
		ORDER BY l.created_at DESC
		LIMIT $%d OFFSET $%d
	`, leadColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []lead.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate leads: %w", err)
	}

	return leads, total, nil
}

// Update implements lead.LeadRepository.
func (r *leadRepository) Update(ctx context.Context, l lead.Lead) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leads
		SET name = $2, company = $3, email = $4, phone = $5, source = $6,
			status = $7, assigned_to = $8, estimated_value = $9, notes = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		l.ID, l.Name, l.Company, l.Email, l.Phone, l.Source,
		l.Status, l.AssignedTo, l.EstimatedValue, l.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// Delete implements lead.LeadRepository.
func (r *leadRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// CountByStatus implements lead.LeadRepository.
func (r *leadRepository) CountByStatus(ctx context.Context) (map[lead.LeadStatus]int64, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[lead.LeadStatus]int64)
	for rows.Next() {
		var status lead.LeadStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan lead count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lead counts: %w", err)
	}

	return counts, nil
}
