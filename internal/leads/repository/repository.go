package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"quotewidget_backend/platform/apperr"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, widget_id, tenant_id, status, lead_data, contact_info, estimated_value, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create stores a captured lead with status "new".
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (widget_id, tenant_id, status, lead_data, contact_info, estimated_value)
		VALUES ($1, $2, 'new', $3, $4, $5)
		RETURNING ` + leadColumns

	row := r.pool.QueryRow(ctx, query,
		params.WidgetID, params.TenantID,
		orEmptyObject(params.LeadData), orEmptyObject(params.ContactInfo),
		params.EstimatedValue,
	)

	lead, err := scanLead(row)
	if err != nil {
		return Lead{}, fmt.Errorf("create lead: %w", err)
	}
	return lead, nil
}

// GetByID retrieves a lead, tenant-scoped.
func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 AND tenant_id = $2`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("get lead by id: %w", err)
	}
	return lead, nil
}

// List retrieves leads for a tenant, newest first, optionally scoped to one
// widget. The second return value is the total matching count for paging.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	where := `WHERE tenant_id = $1`
	args := []any{params.TenantID}
	if params.WidgetID != nil {
		where += ` AND widget_id = $2`
		args = append(args, *params.WidgetID)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM leads `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	limit := params.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM leads %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		leadColumns, where, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var results []Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan lead: %w", err)
		}
		results = append(results, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate leads: %w", err)
	}
	return results, total, nil
}

// SetStatus moves a lead through the pipeline.
func (r *Repo) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (Lead, error) {
	query := `
		UPDATE leads SET status = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + leadColumns

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id, tenantID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, fmt.Errorf("set lead status: %w", err)
	}
	return lead, nil
}

// Delete removes a lead.
func (r *Repo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// DeleteOlderThan purges leads created before the cutoff. Used by the
// retention worker.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge leads: %w", err)
	}
	return result.RowsAffected(), nil
}

func orEmptyObject(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte(`{}`)
	}
	return raw
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var l Lead
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&l.ID, &l.WidgetID, &l.TenantID, &l.Status,
		&l.LeadData, &l.ContactInfo, &l.EstimatedValue,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Lead{}, err
	}

	l.CreatedAt = createdAt.Format(time.RFC3339)
	l.UpdatedAt = updatedAt.Format(time.RFC3339)
	return l, nil
}
