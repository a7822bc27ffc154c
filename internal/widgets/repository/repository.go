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

const widgetNotFoundMessage = "widget not found"

const widgetColumns = `id, tenant_id, widget_key, name, status, enabled_modules, module_configs, branding, settings, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new widgets repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Create inserts a new widget in draft status.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Widget, error) {
	query := `
		INSERT INTO widgets (tenant_id, widget_key, name, status, enabled_modules, module_configs, branding, settings)
		VALUES ($1, $2, $3, 'draft', $4, $5, $6, $7)
		RETURNING ` + widgetColumns

	row := r.pool.QueryRow(ctx, query,
		params.TenantID, params.WidgetKey, params.Name,
		orEmptyArray(params.EnabledModules), orEmptyObject(params.ModuleConfigs),
		orEmptyObject(params.Branding), orEmptyObject(params.Settings),
	)

	widget, err := scanWidget(row)
	if err != nil {
		return Widget{}, fmt.Errorf("create widget: %w", err)
	}
	return widget, nil
}

// GetByID retrieves a widget by its internal ID, tenant-scoped.
func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (Widget, error) {
	query := `SELECT ` + widgetColumns + ` FROM widgets WHERE id = $1 AND tenant_id = $2`

	widget, err := scanWidget(r.pool.QueryRow(ctx, query, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Widget{}, apperr.NotFound(widgetNotFoundMessage)
		}
		return Widget{}, fmt.Errorf("get widget by id: %w", err)
	}
	return widget, nil
}

// GetByKey retrieves a widget by its opaque public key. Used by the public
// configuration and lead-submission paths, so it is not tenant-scoped.
func (r *Repo) GetByKey(ctx context.Context, widgetKey string) (Widget, error) {
	query := `SELECT ` + widgetColumns + ` FROM widgets WHERE widget_key = $1`

	widget, err := scanWidget(r.pool.QueryRow(ctx, query, widgetKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Widget{}, apperr.NotFound(widgetNotFoundMessage)
		}
		return Widget{}, fmt.Errorf("get widget by key: %w", err)
	}
	return widget, nil
}

// List retrieves all widgets for a tenant ordered by creation time.
func (r *Repo) List(ctx context.Context, tenantID uuid.UUID) ([]Widget, error) {
	query := `SELECT ` + widgetColumns + ` FROM widgets WHERE tenant_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}
	defer rows.Close()

	var results []Widget
	for rows.Next() {
		widget, err := scanWidget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan widget: %w", err)
		}
		results = append(results, widget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate widgets: %w", err)
	}
	return results, nil
}

// Update updates the mutable widget fields. widget_key and status are
// immutable through this path.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Widget, error) {
	query := `
		UPDATE widgets SET
			name = COALESCE($3, name),
			enabled_modules = COALESCE($4, enabled_modules),
			module_configs = COALESCE($5, module_configs),
			branding = COALESCE($6, branding),
			settings = COALESCE($7, settings),
			updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + widgetColumns

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.TenantID, params.Name,
		params.EnabledModules, params.ModuleConfigs, params.Branding, params.Settings,
	)

	widget, err := scanWidget(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Widget{}, apperr.NotFound(widgetNotFoundMessage)
		}
		return Widget{}, fmt.Errorf("update widget: %w", err)
	}
	return widget, nil
}

// SetStatus flips the widget lifecycle status.
func (r *Repo) SetStatus(ctx context.Context, tenantID, id uuid.UUID, status string) (Widget, error) {
	query := `
		UPDATE widgets SET status = $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + widgetColumns

	widget, err := scanWidget(r.pool.QueryRow(ctx, query, id, tenantID, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Widget{}, apperr.NotFound(widgetNotFoundMessage)
		}
		return Widget{}, fmt.Errorf("set widget status: %w", err)
	}
	return widget, nil
}

// Delete removes a widget. Steps, pricing rules, and leads cascade at the
// database level.
func (r *Repo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM widgets WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete widget: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(widgetNotFoundMessage)
	}
	return nil
}

func orEmptyArray(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte(`[]`)
	}
	return raw
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

func scanWidget(row rowScanner) (Widget, error) {
	var w Widget
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&w.ID, &w.TenantID, &w.WidgetKey, &w.Name, &w.Status,
		&w.EnabledModules, &w.ModuleConfigs, &w.Branding, &w.Settings,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Widget{}, err
	}

	w.CreatedAt = createdAt.Format(time.RFC3339)
	w.UpdatedAt = updatedAt.Format(time.RFC3339)
	return w, nil
}
