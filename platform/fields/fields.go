// Package fields provides best-effort field extraction and normalization
// utilities for captured lead documents. Both outbound forwarding adapters
// map through this package so the fallback key lists cannot drift apart.
// This is part of the platform layer and contains no business logic.
package fields

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var zipPattern = regexp.MustCompile(`\b(\d{5})(-\d{4})?\b`)

// FirstPresent returns the value of the first key whose value is present
// and not nil or an empty string. Returns nil when no key matches.
// Lead documents carry several historical spellings for the same logical
// field; callers pass the spellings in preference order.
func FirstPresent(doc map[string]interface{}, keys ...string) interface{} {
	if doc == nil {
		return nil
	}
	for _, key := range keys {
		value, ok := doc[key]
		if !ok || value == nil {
			continue
		}
		if text, isString := value.(string); isString && strings.TrimSpace(text) == "" {
			continue
		}
		return value
	}
	return nil
}

// FirstString is FirstPresent with the result stringified.
func FirstString(doc map[string]interface{}, keys ...string) string {
	return Stringify(FirstPresent(doc, keys...))
}

// Stringify renders a dynamic JSON value as a string. Floats that carry no
// fractional part render without a decimal point.
func Stringify(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	default:
		return ""
	}
}

// ExtractZip pulls a US 5-digit zip code out of free text, tolerating
// ZIP+4 suffixes. Returns "" when the input is not a string or no zip
// is found.
func ExtractZip(value interface{}) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	match := zipPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return match[1]
}

// Layouts tried before falling back to dateparse. Entries without a year
// get the current year substituted after parsing.
var dateLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
}

var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"1/2",
}

// NormalizeDate parses a free-form date value and renders it in the given
// Go layout. Returns "" when the value is not a parseable date string;
// each caller owns its target layout and its own unparseable fallback.
func NormalizeDate(value interface{}, layout string) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	for _, candidate := range dateLayouts {
		if parsed, err := time.Parse(candidate, text); err == nil {
			return parsed.Format(layout)
		}
	}

	for _, candidate := range yearlessLayouts {
		if parsed, err := time.Parse(candidate, text); err == nil {
			parsed = time.Date(time.Now().Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return parsed.Format(layout)
		}
	}

	if parsed, err := dateparse.ParseAny(text); err == nil {
		return parsed.Format(layout)
	}

	return ""
}

// NormalizePhone strips all non-digit characters; when at least ten digits
// remain it returns the last ten. Shorter inputs come back unchanged so a
// partial number is never silently rewritten into a wrong one.
func NormalizePhone(value interface{}) string {
	raw := Stringify(value)
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	compact := digits.String()
	if len(compact) >= 10 {
		return compact[len(compact)-10:]
	}
	return raw
}

// SplitName splits a full name into first and last. The first whitespace
// token is the first name, the rest join into the last name. When fewer
// than two tokens are present the last name defaults to "Customer" so
// downstream CRMs with a required surname field still accept the lead.
func SplitName(fullName string) (first, last string) {
	tokens := strings.Fields(fullName)
	if len(tokens) == 0 {
		return "", "Customer"
	}
	if len(tokens) == 1 {
		return tokens[0], "Customer"
	}
	return tokens[0], strings.Join(tokens[1:], " ")
}
