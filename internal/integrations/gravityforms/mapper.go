package gravityforms

import (
	"strings"
	"time"

	"quotewidget_backend/platform/fields"
)

// Numbered form-field keys on the receiving form. The name field is a
// composite input, hence the 1.3/1.6 sub-keys.
const (
	fieldFullName       = "input_1"
	fieldFirstName      = "input_1.3"
	fieldLastName       = "input_1.6"
	fieldEmail          = "input_2"
	fieldPhone          = "input_3"
	fieldOriginZip      = "input_4"
	fieldDestinationZip = "input_5"
	fieldMoveDate       = "input_6"
	fieldMoveSize       = "input_7"
)

const moveDateLayout = "01/02/2006"

// moveSizeLabels maps keyword substrings in the captured move-size answer
// to the canonical labels the receiving form expects. Order matters:
// "1 bedroom" must win before a broader match could.
var moveSizeLabels = []struct {
	keyword string
	label   string
}{
	{"studio", "Studio Apartment"},
	{"1 bedroom", "1 Bedroom Apartment"},
	{"2 bedroom", "2 Bedroom House"},
	{"3 bedroom", "3 Bedroom House"},
	{"4 bedroom", "4 Bedroom House"},
	{"office", "Office"},
}

// buildEntry maps a captured lead document to the numbered form-field keys.
// Booleans become "Yes"/"No", empty values are dropped, and every numbered
// key gets a bare-numeric alias the receiving API also accepts.
func buildEntry(data map[string]interface{}, now time.Time) map[string]string {
	entry := make(map[string]string)

	fullName := fields.FirstString(data, "name", "full_name", "fullName", "contact_name")
	if fullName == "" {
		first := fields.FirstString(data, "first_name", "firstName")
		last := fields.FirstString(data, "last_name", "lastName")
		fullName = strings.TrimSpace(first + " " + last)
	}
	first, last := fields.SplitName(fullName)
	setField(entry, fieldFullName, fullName)
	setField(entry, fieldFirstName, first)
	setField(entry, fieldLastName, last)

	setField(entry, fieldEmail, fields.FirstString(data, "email", "email_address", "contact_email"))
	setField(entry, fieldPhone, fields.NormalizePhone(fields.FirstPresent(data, "phone", "phone_number", "contact_phone")))

	origin := fields.FirstPresent(data, "origin_zip", "from_zip", "pickup_zip", "origin_address", "from_address", "origin-location")
	setField(entry, fieldOriginZip, fields.ExtractZip(origin))
	destination := fields.FirstPresent(data, "destination_zip", "to_zip", "dropoff_zip", "destination_address", "to_address", "target-location")
	setField(entry, fieldDestinationZip, fields.ExtractZip(destination))

	moveDate := fields.NormalizeDate(fields.FirstPresent(data, "move_date", "moving_date", "date", "date-selection"), moveDateLayout)
	if moveDate == "" {
		moveDate = now.Format(moveDateLayout)
	}
	entry[fieldMoveDate] = moveDate

	setField(entry, fieldMoveSize, normalizeMoveSize(fields.FirstString(data, "move_size", "size", "home_size", "project-scope")))

	addNumericAliases(entry)
	return entry
}

func setField(entry map[string]string, key string, value interface{}) {
	text := stringify(value)
	if text == "" {
		return
	}
	entry[key] = text
}

// stringify is the adapter's value rendering: booleans go out as the
// form's "Yes"/"No" convention, everything else as plain text.
func stringify(value interface{}) string {
	if b, ok := value.(bool); ok {
		if b {
			return "Yes"
		}
		return "No"
	}
	return fields.Stringify(value)
}

// normalizeMoveSize matches the answer against the keyword table,
// case-insensitively as a substring. Unknown sizes pass through unchanged.
func normalizeMoveSize(size string) string {
	lowered := strings.ToLower(size)
	for _, candidate := range moveSizeLabels {
		if strings.Contains(lowered, candidate.keyword) {
			return candidate.label
		}
	}
	return size
}

// addNumericAliases duplicates every input_N / input_N.M key under its bare
// numeric form. Already-set numeric keys are never overwritten.
func addNumericAliases(entry map[string]string) {
	for key, value := range entry {
		alias := strings.TrimPrefix(key, "input_")
		if alias == key {
			continue
		}
		if _, taken := entry[alias]; taken {
			continue
		}
		entry[alias] = value
	}
}
