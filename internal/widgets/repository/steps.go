package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const stepColumns = `id, widget_id, step_key, title, subtitle, prompt, options, buttons, layout, validation, order_index`

// ReplaceSteps swaps the full explicit step set for a widget in one
// transaction. An empty slice clears the rows and hands the widget back
// to module synthesis.
func (r *Repo) ReplaceSteps(ctx context.Context, widgetID uuid.UUID, steps []StepParams) ([]Step, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin replace steps: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM widget_steps WHERE widget_id = $1`, widgetID); err != nil {
		return nil, fmt.Errorf("clear widget steps: %w", err)
	}

	inserted := make([]Step, 0, len(steps))
	for _, params := range steps {
		query := `
			INSERT INTO widget_steps (widget_id, step_key, title, subtitle, prompt, options, buttons, layout, validation, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING ` + stepColumns

		row := tx.QueryRow(ctx, query,
			widgetID, params.StepKey, params.Title, params.Subtitle,
			orEmptyObject(params.Prompt), orEmptyArray(params.Options),
			orEmptyObject(params.Buttons), orEmptyObject(params.Layout),
			orEmptyObject(params.Validation), params.OrderIndex,
		)

		step, err := scanStep(row)
		if err != nil {
			return nil, fmt.Errorf("insert widget step: %w", err)
		}
		inserted = append(inserted, step)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit replace steps: %w", err)
	}
	return inserted, nil
}

// ListSteps returns the explicit steps for a widget ordered by order_index.
// Ties keep insertion order so the assembler's sort stays stable.
func (r *Repo) ListSteps(ctx context.Context, widgetID uuid.UUID) ([]Step, error) {
	query := `SELECT ` + stepColumns + ` FROM widget_steps WHERE widget_id = $1 ORDER BY order_index ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, widgetID)
	if err != nil {
		return nil, fmt.Errorf("list widget steps: %w", err)
	}
	defer rows.Close()

	var results []Step
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, fmt.Errorf("scan widget step: %w", err)
		}
		results = append(results, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate widget steps: %w", err)
	}
	return results, nil
}

func scanStep(row pgx.Row) (Step, error) {
	var s Step
	err := row.Scan(
		&s.ID, &s.WidgetID, &s.StepKey, &s.Title, &s.Subtitle,
		&s.Prompt, &s.Options, &s.Buttons, &s.Layout, &s.Validation,
		&s.OrderIndex,
	)
	return s, err
}
