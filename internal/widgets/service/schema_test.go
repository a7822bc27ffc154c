package service

import (
	"encoding/json"
	"reflect"
	"testing"

	"quotewidget_backend/internal/widgets/repository"
)

func testWidget(enabledModules, moduleConfigs, branding, settings string) repository.Widget {
	return repository.Widget{
		WidgetKey:      "abc123",
		Name:           "Test Widget",
		Status:         repository.StatusPublished,
		EnabledModules: json.RawMessage(enabledModules),
		ModuleConfigs:  json.RawMessage(moduleConfigs),
		Branding:       json.RawMessage(branding),
		Settings:       json.RawMessage(settings),
	}
}

func TestBuildConfiguration_ExplicitStepsOverrideSynthesis(t *testing.T) {
	widget := testWidget(
		`["service-selection","contact-info"]`,
		`{"service-selection":{"title":"Pick a service"},"contact-info":{}}`,
		`{}`, `{}`,
	)
	steps := []repository.Step{
		{StepKey: "custom-two", Title: "Second", OrderIndex: 20},
		{StepKey: "custom-one", Title: "First", OrderIndex: 10},
	}

	doc := buildConfiguration(widget, steps, nil)

	order, ok := doc["step_order"].([]string)
	if !ok {
		t.Fatalf("step_order has unexpected type %T", doc["step_order"])
	}
	if !reflect.DeepEqual(order, []string{"custom-one", "custom-two"}) {
		t.Fatalf("expected explicit steps sorted by order_index, got %v", order)
	}

	stepsData := doc["steps_data"].(map[string]interface{})
	if _, synthesized := stepsData["service-selection"]; synthesized {
		t.Fatal("module synthesis ran despite explicit steps")
	}
	if _, present := stepsData["custom-one"]; !present {
		t.Fatal("explicit step missing from steps_data")
	}
}

func TestBuildConfiguration_SynthesisFollowsEnabledModuleOrder(t *testing.T) {
	widget := testWidget(
		`["service-selection","project-scope","contact-info","chat-integration"]`,
		`{"service-selection":{},"contact-info":{},"project-scope":{}}`,
		`{}`, `{}`,
	)

	doc := buildConfiguration(widget, nil, nil)

	order := doc["step_order"].([]string)
	expected := []string{"service-selection", "project-scope", "contact-info"}
	if !reflect.DeepEqual(order, expected) {
		t.Fatalf("expected modules with configs in original order %v, got %v", expected, order)
	}
}

func TestBuildEstimationSettings_DefaultsForEmptySettings(t *testing.T) {
	settings := buildEstimationSettings(map[string]interface{}{})

	if len(settings) != 6 {
		t.Fatalf("expected exactly 6 settings keys, got %d: %v", len(settings), settings)
	}
	if got := settings["tax_rate"]; got != 0.08 {
		t.Fatalf("expected tax_rate 0.08, got %v", got)
	}
	if got := settings["service_area_miles"]; got != 100 {
		t.Fatalf("expected service_area_miles 100, got %v (%T)", got, got)
	}
	if got := settings["minimum_job_price"]; got != 0.0 {
		t.Fatalf("expected minimum_job_price 0.0, got %v", got)
	}
	if got := settings["show_price_ranges"]; got != true {
		t.Fatalf("expected show_price_ranges true, got %v", got)
	}
	if got := settings["currency"]; got != "USD" {
		t.Fatalf("expected currency USD, got %v", got)
	}
	if got := settings["currency_symbol"]; got != "$" {
		t.Fatalf("expected currency_symbol $, got %v", got)
	}
}

func TestBuildEstimationSettings_TypeSplitPreserved(t *testing.T) {
	settings := buildEstimationSettings(map[string]interface{}{
		"tax_rate":           0.1,
		"service_area_miles": 50.0,
	})

	if _, ok := settings["service_area_miles"].(int); !ok {
		t.Fatalf("service_area_miles must stay an int, got %T", settings["service_area_miles"])
	}
	if _, ok := settings["tax_rate"].(float64); !ok {
		t.Fatalf("tax_rate must stay a float64, got %T", settings["tax_rate"])
	}
}

func TestFormatModuleOptions_ProjectScopeCoercesStringNumerals(t *testing.T) {
	cfg := map[string]interface{}{
		"options": []interface{}{
			map[string]interface{}{"title": "1BR", "base_price": "350"},
		},
	}

	options := formatModuleOptions("project-scope", cfg)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}

	option := options[0].(map[string]interface{})
	if got := option["id"]; got != "project-scope_option_0" {
		t.Fatalf("expected id project-scope_option_0, got %v", got)
	}

	estimation := option["estimation"].(map[string]interface{})
	if got := estimation["base_price"]; got != 350.0 {
		t.Fatalf("expected base_price coerced to 350.0, got %v (%T)", got, got)
	}
	if got := estimation["estimated_hours"]; got != 0.0 {
		t.Fatalf("expected missing estimated_hours to coerce to 0.0, got %v", got)
	}
}

func TestFormatModuleOptions_DistanceCalculationSyntheticOption(t *testing.T) {
	cfg := map[string]interface{}{"cost_per_mile": 4.5}

	options := formatModuleOptions("distance-calculation", cfg)
	if len(options) != 1 {
		t.Fatalf("expected exactly the synthetic option, got %d options", len(options))
	}

	option := options[0].(map[string]interface{})
	if got := option["id"]; got != "distance_settings" {
		t.Fatalf("expected id distance_settings, got %v", got)
	}
	if got := option["type"]; got != "distance_calculation" {
		t.Fatalf("expected type distance_calculation, got %v", got)
	}

	estimation := option["estimation"].(map[string]interface{})
	if got := estimation["cost_per_mile"]; got != 4.5 {
		t.Fatalf("expected cost_per_mile 4.5, got %v", got)
	}
	if got := estimation["minimum_distance"]; got != 0.0 {
		t.Fatalf("expected minimum_distance 0, got %v", got)
	}
}

func TestFormatModuleOptions_DistanceCalculationDefaultCostPerMile(t *testing.T) {
	options := formatModuleOptions("distance-calculation", map[string]interface{}{})

	option := options[len(options)-1].(map[string]interface{})
	estimation := option["estimation"].(map[string]interface{})
	if got := estimation["cost_per_mile"]; got != 4.00 {
		t.Fatalf("expected default cost_per_mile 4.00, got %v", got)
	}
}

func TestBuildConfiguration_PricingRoundTrip(t *testing.T) {
	widget := testWidget(`[]`, `{}`, `{}`, `{}`)
	rules := []repository.PricingRule{
		{Category: "moveSize", Rules: json.RawMessage(`{"studio":{"basePrice":350}}`)},
	}

	doc := buildConfiguration(widget, nil, rules)

	pricing := doc["pricing"].(map[string]interface{})
	moveSize, ok := pricing["moveSize"].(map[string]interface{})
	if !ok {
		t.Fatalf("pricing.moveSize missing or wrong type: %v", pricing)
	}
	studio := moveSize["studio"].(map[string]interface{})
	if got := studio["basePrice"]; got != 350.0 {
		t.Fatalf("expected pricing.moveSize.studio.basePrice 350, got %v", got)
	}
}

func TestBuildConfiguration_MalformedContainersDegradeToEmpty(t *testing.T) {
	widget := testWidget(`"not-an-array"`, `[1,2,3]`, `"nope"`, `[]`)

	doc := buildConfiguration(widget, nil, nil)

	if order := doc["step_order"].([]string); len(order) != 0 {
		t.Fatalf("expected empty step_order for malformed inputs, got %v", order)
	}
	if branding := doc["branding"].(map[string]interface{}); len(branding) != 0 {
		t.Fatalf("expected empty branding, got %v", branding)
	}
	settings := doc["estimation_settings"].(map[string]interface{})
	if len(settings) != 6 {
		t.Fatalf("expected default estimation_settings, got %v", settings)
	}
}

func TestSynthesizeSteps_DispatchTables(t *testing.T) {
	stepsData, _ := synthesizeSteps(
		[]string{"date-selection", "review-quote", "supply-inquiry"},
		map[string]map[string]interface{}{
			"date-selection": {},
			"review-quote":   {},
			"supply-inquiry": {},
		},
	)

	date := stepsData["date-selection"].(map[string]interface{})
	prompt := date["prompt"].(map[string]interface{})
	if got := prompt["type"]; got != "calendar" {
		t.Fatalf("expected date-selection prompt type calendar, got %v", got)
	}
	layout := date["layout"].(map[string]interface{})
	if got := layout["type"]; got != "calendar" {
		t.Fatalf("expected date-selection layout calendar, got %v", got)
	}

	review := stepsData["review-quote"].(map[string]interface{})
	buttons := review["buttons"].(map[string]interface{})
	if _, ok := buttons["secondary"]; !ok {
		t.Fatal("expected review-quote to carry a secondary Back button")
	}
	validation := review["validation"].(map[string]interface{})
	if got := validation["required"]; got != true {
		t.Fatalf("expected review-quote to be required, got %v", got)
	}

	supply := stepsData["supply-inquiry"].(map[string]interface{})
	supplyButtons := supply["buttons"].(map[string]interface{})
	primary := supplyButtons["primary"].(map[string]interface{})
	if got := primary["action"]; got != "auto" {
		t.Fatalf("expected supply-inquiry primary action auto, got %v", got)
	}
	supplyValidation := supply["validation"].(map[string]interface{})
	if got := supplyValidation["required"]; got != false {
		t.Fatalf("expected supply-inquiry to be optional, got %v", got)
	}
}

func TestSynthesizeSteps_TitleFallsBackToHumanizedKey(t *testing.T) {
	stepsData, _ := synthesizeSteps(
		[]string{"project-scope"},
		map[string]map[string]interface{}{"project-scope": {}},
	)

	step := stepsData["project-scope"].(map[string]interface{})
	if got := step["title"]; got != "Project Scope" {
		t.Fatalf("expected humanized title Project Scope, got %v", got)
	}
}

func TestBuildEstimation_MultiplierModulesRequireExplicitKey(t *testing.T) {
	if est := buildEstimation("service-type", map[string]interface{}{}); est != nil {
		t.Fatalf("expected no estimation without price_multiplier, got %v", est)
	}

	est := buildEstimation("service-type", map[string]interface{}{"price_multiplier": 1.5})
	if est == nil || est["price_multiplier"] != 1.5 {
		t.Fatalf("expected price_multiplier 1.5, got %v", est)
	}
}

func TestBuildEstimation_ChallengesDefaults(t *testing.T) {
	est := buildEstimation("origin-challenges", map[string]interface{}{"pricing_value": 25})
	if est["pricing_type"] != "fixed" {
		t.Fatalf("expected default pricing_type fixed, got %v", est["pricing_type"])
	}
	if est["pricing_value"] != 25.0 {
		t.Fatalf("expected pricing_value 25.0, got %v", est["pricing_value"])
	}
	if est["max_units"] != 1 {
		t.Fatalf("expected default max_units 1, got %v", est["max_units"])
	}
}

func TestCoerceFloat_BadStringIsZeroNotFallback(t *testing.T) {
	if got := coerceFloatDefault("not a number", 4.0); got != 0 {
		t.Fatalf("expected unparseable string to coerce to 0, got %v", got)
	}
	if got := coerceFloatDefault(nil, 4.0); got != 4.0 {
		t.Fatalf("expected nil to use the fallback, got %v", got)
	}
}
