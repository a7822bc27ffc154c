package service

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"quotewidget_backend/internal/widgets/repository"
)

// The renderer contract: buildConfiguration output is served verbatim as
// the widget's public configuration document. Field names and nesting are
// load-bearing for the embedded renderer and must not change.

// Per-module prompt types. Anything unlisted renders as a plain text prompt.
var promptTypes = map[string]string{
	"service-selection":    "avatar",
	"date-selection":       "calendar",
	"origin-location":      "address",
	"target-location":      "address",
	"distance-calculation": "calculation",
	"chat-integration":     "chat",
}

// Per-module button sets. The default is a single Continue/next primary.
var stepButtons = map[string]map[string]interface{}{
	"supply-inquiry": {
		"primary": map[string]interface{}{"text": "Continue", "action": "auto"},
	},
	"contact-info": {
		"primary": map[string]interface{}{"text": "Get Quote", "action": "submit"},
	},
	"review-quote": {
		"primary":   map[string]interface{}{"text": "Confirm", "action": "submit"},
		"secondary": map[string]interface{}{"text": "Back", "action": "back"},
	},
}

// Per-module layouts. The default is a centered single-column grid.
var stepLayouts = map[string]map[string]interface{}{
	"date-selection":       {"type": "calendar", "columns": 1, "centered": true},
	"contact-info":         {"type": "form", "columns": 1, "centered": true},
	"origin-challenges":    {"type": "challenges", "columns": 2, "centered": false},
	"target-challenges":    {"type": "challenges", "columns": 2, "centered": false},
	"distance-calculation": {"type": "route-calculation", "columns": 1, "centered": true},
	"project-scope":        {"type": "catalog", "columns": 2, "centered": false},
	"additional-services":  {"type": "list", "columns": 1, "centered": false},
}

// Modules whose step must be answered before the wizard can advance.
var requiredModules = map[string]bool{
	"service-selection": true,
	"contact-info":      true,
	"review-quote":      true,
}

// buildConfiguration assembles the full public configuration document for a
// widget. Explicit step rows, when present, replace module synthesis
// entirely; merging the two per module is deliberately not supported.
func buildConfiguration(widget repository.Widget, steps []repository.Step, rules []repository.PricingRule) map[string]interface{} {
	stepsData, stepOrder := resolveSteps(widget, steps)

	pricing := map[string]interface{}{}
	for _, rule := range rules {
		pricing[rule.Category] = decodeObject(rule.Rules)
	}

	return map[string]interface{}{
		"widget_id":           widget.WidgetKey,
		"steps_data":          stepsData,
		"step_order":          stepOrder,
		"branding":            decodeObject(widget.Branding),
		"pricing":             pricing,
		"estimation_settings": buildEstimationSettings(decodeObject(widget.Settings)),
	}
}

func resolveSteps(widget repository.Widget, steps []repository.Step) (map[string]interface{}, []string) {
	if len(steps) > 0 {
		return explicitSteps(steps)
	}
	return synthesizeSteps(decodeStringList(widget.EnabledModules), decodeConfigMap(widget.ModuleConfigs))
}

// explicitSteps keys stored step rows by step_key without re-derivation.
// The repository returns rows ordered by order_index with a stable
// tiebreak, so iteration order is already the step order.
func explicitSteps(steps []repository.Step) (map[string]interface{}, []string) {
	ordered := make([]repository.Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	stepsData := make(map[string]interface{}, len(ordered))
	stepOrder := make([]string, 0, len(ordered))
	for _, step := range ordered {
		stepsData[step.StepKey] = map[string]interface{}{
			"title":      step.Title,
			"subtitle":   step.Subtitle,
			"prompt":     decodeObject(step.Prompt),
			"options":    decodeList(step.Options),
			"buttons":    decodeObject(step.Buttons),
			"layout":     decodeObject(step.Layout),
			"validation": decodeObject(step.Validation),
		}
		stepOrder = append(stepOrder, step.StepKey)
	}
	return stepsData, stepOrder
}

// synthesizeSteps derives steps from the enabled-module list. Module keys
// without a matching config entry are skipped, not emitted as empty steps.
func synthesizeSteps(enabledModules []string, moduleConfigs map[string]map[string]interface{}) (map[string]interface{}, []string) {
	stepsData := map[string]interface{}{}
	stepOrder := make([]string, 0, len(enabledModules))

	for _, moduleKey := range enabledModules {
		cfg, ok := moduleConfigs[moduleKey]
		if !ok {
			continue
		}

		title := stringField(cfg, "title")
		if title == "" {
			title = humanizeModuleKey(moduleKey)
		}

		promptType, ok := promptTypes[moduleKey]
		if !ok {
			promptType = "text"
		}

		buttons, ok := stepButtons[moduleKey]
		if !ok {
			buttons = map[string]interface{}{
				"primary": map[string]interface{}{"text": "Continue", "action": "next"},
			}
		}

		layout, ok := stepLayouts[moduleKey]
		if !ok {
			layout = map[string]interface{}{"type": "grid", "columns": 1, "centered": true}
		}

		stepsData[moduleKey] = map[string]interface{}{
			"title":    title,
			"subtitle": stringField(cfg, "subtitle"),
			"prompt": map[string]interface{}{
				"message": title,
				"type":    promptType,
			},
			"options": formatModuleOptions(moduleKey, cfg),
			"buttons": buttons,
			"layout":  layout,
			"validation": map[string]interface{}{
				"required": requiredModules[moduleKey],
				"field":    moduleKey,
			},
		}
		stepOrder = append(stepOrder, moduleKey)
	}

	return stepsData, stepOrder
}

// formatModuleOptions normalizes a module's raw option list and attaches
// the module-specific estimation object. The distance-calculation module
// additionally gets a synthetic settings option that does not come from
// the raw list.
func formatModuleOptions(moduleKey string, cfg map[string]interface{}) []interface{} {
	rawOptions := listField(cfg, "options")

	formatted := make([]interface{}, 0, len(rawOptions)+1)
	for index, rawValue := range rawOptions {
		raw, ok := rawValue.(map[string]interface{})
		if !ok {
			raw = map[string]interface{}{}
		}

		option := map[string]interface{}{
			"id":          moduleKey + "_option_" + strconv.Itoa(index),
			"value":       optionValue(raw),
			"title":       stringField(raw, "title"),
			"description": stringField(raw, "description"),
			"icon":        stringField(raw, "icon"),
			"type":        "service",
		}

		if estimation := buildEstimation(moduleKey, raw); estimation != nil {
			option["estimation"] = estimation
		}

		formatted = append(formatted, option)
	}

	if moduleKey == "distance-calculation" {
		formatted = append(formatted, map[string]interface{}{
			"id":   "distance_settings",
			"type": "distance_calculation",
			"estimation": map[string]interface{}{
				"cost_per_mile":    coerceFloatDefault(cfg["cost_per_mile"], 4.00),
				"minimum_distance": coerceFloat(cfg["minimum_distance"]),
			},
		})
	}

	return formatted
}

// buildEstimation dispatches on the exact module key. Unknown keys carry
// no estimation object at all.
func buildEstimation(moduleKey string, raw map[string]interface{}) map[string]interface{} {
	switch moduleKey {
	case "project-scope":
		return map[string]interface{}{
			"base_price":      coerceFloat(raw["base_price"]),
			"estimated_hours": coerceFloat(raw["estimated_hours"]),
			"price_range_min": coerceFloat(raw["price_range_min"]),
			"price_range_max": coerceFloat(raw["price_range_max"]),
		}
	case "service-type", "location-type", "time-selection":
		if _, ok := raw["price_multiplier"]; !ok {
			return nil
		}
		return map[string]interface{}{
			"price_multiplier": coerceFloat(raw["price_multiplier"]),
		}
	case "origin-challenges", "target-challenges":
		return map[string]interface{}{
			"pricing_type":  stringFieldDefault(raw, "pricing_type", "fixed"),
			"pricing_value": coerceFloat(raw["pricing_value"]),
			"max_units":     coerceIntDefault(raw["max_units"], 1),
		}
	case "additional-services":
		return map[string]interface{}{
			"pricing_type":  stringFieldDefault(raw, "pricing_type", "fixed"),
			"pricing_value": coerceFloat(raw["pricing_value"]),
		}
	default:
		return nil
	}
}

// buildEstimationSettings merges stored settings over typed defaults. The
// output always carries exactly these six keys. service_area_miles stays
// an int while the money fields stay floats; consumers depend on the split.
func buildEstimationSettings(settings map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"tax_rate":           coerceFloatDefault(settings["tax_rate"], 0.08),
		"service_area_miles": coerceIntDefault(settings["service_area_miles"], 100),
		"minimum_job_price":  coerceFloatDefault(settings["minimum_job_price"], 0.0),
		"show_price_ranges":  coerceBoolDefault(settings["show_price_ranges"], true),
		"currency":           "USD",
		"currency_symbol":    "$",
	}
}

// humanizeModuleKey turns "project-scope" into "Project Scope".
func humanizeModuleKey(moduleKey string) string {
	words := strings.Split(moduleKey, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func optionValue(raw map[string]interface{}) interface{} {
	if value, ok := raw["value"]; ok && value != nil {
		return value
	}
	return stringField(raw, "title")
}

// =============================================================================
// Defensive decoding. Admin-authored JSON arrives as arbitrary blobs; a
// malformed container degrades to an empty one instead of failing the
// whole configuration build.
// =============================================================================

func decodeObject(raw json.RawMessage) map[string]interface{} {
	var decoded map[string]interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &decoded) != nil || decoded == nil {
		return map[string]interface{}{}
	}
	return decoded
}

func decodeList(raw json.RawMessage) []interface{} {
	var decoded []interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &decoded) != nil || decoded == nil {
		return []interface{}{}
	}
	return decoded
}

func decodeStringList(raw json.RawMessage) []string {
	decoded := decodeList(raw)
	result := make([]string, 0, len(decoded))
	for _, item := range decoded {
		if text, ok := item.(string); ok && text != "" {
			result = append(result, text)
		}
	}
	return result
}

func decodeConfigMap(raw json.RawMessage) map[string]map[string]interface{} {
	decoded := decodeObject(raw)
	result := make(map[string]map[string]interface{}, len(decoded))
	for key, value := range decoded {
		if cfg, ok := value.(map[string]interface{}); ok {
			result[key] = cfg
		}
	}
	return result
}

func stringField(doc map[string]interface{}, key string) string {
	if text, ok := doc[key].(string); ok {
		return text
	}
	return ""
}

func stringFieldDefault(doc map[string]interface{}, key, fallback string) string {
	if text, ok := doc[key].(string); ok && text != "" {
		return text
	}
	return fallback
}

func listField(doc map[string]interface{}, key string) []interface{} {
	if list, ok := doc[key].([]interface{}); ok {
		return list
	}
	return nil
}

// coerceFloat converts a dynamic JSON value to float64, treating anything
// unparseable as zero rather than erroring.
func coerceFloat(value interface{}) float64 {
	return coerceFloatDefault(value, 0)
}

func coerceFloatDefault(value interface{}, fallback float64) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		if parsed, err := typed.Float64(); err == nil {
			return parsed
		}
		return 0
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64); err == nil {
			return parsed
		}
		return 0
	case nil:
		return fallback
	default:
		return 0
	}
}

func coerceIntDefault(value interface{}, fallback int) int {
	if value == nil {
		return fallback
	}
	return int(coerceFloat(value))
}

func coerceBoolDefault(value interface{}, fallback bool) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(typed)); err == nil {
			return parsed
		}
		return fallback
	case nil:
		return fallback
	default:
		return fallback
	}
}
