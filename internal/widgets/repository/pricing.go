package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UpsertPricingRule writes the rules object for one category, replacing any
// existing rules for the same (widget, category) pair.
func (r *Repo) UpsertPricingRule(ctx context.Context, widgetID uuid.UUID, category string, rules json.RawMessage) (PricingRule, error) {
	query := `
		INSERT INTO widget_pricing_rules (widget_id, category, rules)
		VALUES ($1, $2, $3)
		ON CONFLICT (widget_id, category) DO UPDATE SET rules = EXCLUDED.rules, updated_at = now()
		RETURNING id, widget_id, category, rules`

	var rule PricingRule
	err := r.pool.QueryRow(ctx, query, widgetID, category, orEmptyObject(rules)).Scan(
		&rule.ID, &rule.WidgetID, &rule.Category, &rule.Rules,
	)
	if err != nil {
		return PricingRule{}, fmt.Errorf("upsert pricing rule: %w", err)
	}
	return rule, nil
}

// ListPricingRules returns all pricing rules for a widget.
func (r *Repo) ListPricingRules(ctx context.Context, widgetID uuid.UUID) ([]PricingRule, error) {
	query := `SELECT id, widget_id, category, rules FROM widget_pricing_rules WHERE widget_id = $1 ORDER BY category ASC`

	rows, err := r.pool.Query(ctx, query, widgetID)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	defer rows.Close()

	var results []PricingRule
	for rows.Next() {
		var rule PricingRule
		if err := rows.Scan(&rule.ID, &rule.WidgetID, &rule.Category, &rule.Rules); err != nil {
			return nil, fmt.Errorf("scan pricing rule: %w", err)
		}
		results = append(results, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing rules: %w", err)
	}
	return results, nil
}
