// Package smartmoving forwards captured leads to a SmartMoving style
// lead-intake API authenticated with a provider key.
package smartmoving

import (
	"encoding/json"
	"strconv"

	"quotewidget_backend/platform/fields"
)

const moveDateLayout = "2006-01-02"

// affiliateLabel tags leads that arrive with an operator note attached.
const affiliateLabel = "Quote Widget"

// buildPayload flattens a captured lead document into the intake API's
// field names. Empty values are dropped so the upstream does not store
// blank strings.
func buildPayload(data map[string]interface{}, note string) map[string]interface{} {
	payload := make(map[string]interface{})

	fullName := fields.FirstString(data, "name", "full_name", "fullName", "contact_name")
	first, last := fields.SplitName(fullName)
	if fullName == "" {
		first = fields.FirstString(data, "first_name", "firstName")
		last = fields.FirstString(data, "last_name", "lastName")
	}
	setString(payload, "first_name", first)
	setString(payload, "last_name", last)

	setString(payload, "email", fields.FirstString(data, "email", "email_address", "contact_email"))
	setString(payload, "phone", fields.NormalizePhone(fields.FirstPresent(data, "phone", "phone_number", "contact_phone")))

	origin := fields.FirstPresent(data, "origin_address", "from_address", "origin-location")
	setString(payload, "from_address", fields.Stringify(origin))
	setString(payload, "from_zip", fields.ExtractZip(origin))
	destination := fields.FirstPresent(data, "destination_address", "to_address", "target-location")
	setString(payload, "to_address", fields.Stringify(destination))
	setString(payload, "to_zip", fields.ExtractZip(destination))

	setString(payload, "move_date", fields.NormalizeDate(fields.FirstPresent(data, "move_date", "moving_date", "date", "date-selection"), moveDateLayout))
	setString(payload, "move_size", fields.FirstString(data, "move_size", "size", "home_size", "project-scope"))

	if miles, ok := estimatedMiles(data); ok {
		payload["estimated_miles"] = miles
	}

	setString(payload, "notes", buildNotes(data, note))
	if note != "" {
		payload["affiliateName"] = affiliateLabel
	}

	return payload
}

func setString(payload map[string]interface{}, key, value string) {
	if value == "" {
		return
	}
	payload[key] = value
}

// estimatedMiles reads the driving distance off the nested
// distance-calculation answer, falling back to top-level spellings.
func estimatedMiles(data map[string]interface{}) (float64, bool) {
	raw := fields.FirstPresent(data, "estimated_miles", "distance", "miles")
	if nested, ok := data["distance-calculation"].(map[string]interface{}); ok {
		if value := fields.FirstPresent(nested, "distance", "miles", "estimated_miles"); value != nil {
			raw = value
		}
	}
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case string:
		if parsed, err := strconv.ParseFloat(typed, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

// buildNotes concatenates the operator note with a pretty-printed dump of
// everything the widget captured, so nothing is lost when a field has no
// column upstream.
func buildNotes(data map[string]interface{}, note string) string {
	dump, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		dump = nil
	}
	if note == "" {
		return string(dump)
	}
	if len(dump) == 0 {
		return note
	}
	return note + "\n\n" + string(dump)
}
