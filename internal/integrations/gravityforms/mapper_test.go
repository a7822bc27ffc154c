package gravityforms

import (
	"fmt"
	"testing"
	"time"
)

var mapperNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestBuildEntry_ContactFields(t *testing.T) {
	entry := buildEntry(map[string]interface{}{
		"name":  "Jane Doe",
		"email": "jane@example.com",
		"phone": "(404) 555-0123",
	}, mapperNow)

	if got := entry[fieldFullName]; got != "Jane Doe" {
		t.Fatalf("expected full name, got %q", got)
	}
	if got := entry[fieldFirstName]; got != "Jane" {
		t.Fatalf("expected first name Jane, got %q", got)
	}
	if got := entry[fieldLastName]; got != "Doe" {
		t.Fatalf("expected last name Doe, got %q", got)
	}
	if got := entry[fieldEmail]; got != "jane@example.com" {
		t.Fatalf("expected email, got %q", got)
	}
	if got := entry[fieldPhone]; got != "4045550123" {
		t.Fatalf("expected normalized phone, got %q", got)
	}
}

func TestBuildEntry_MoveDateNormalizesYearImplyingString(t *testing.T) {
	entry := buildEntry(map[string]interface{}{
		"name":      "Jane Doe",
		"move_date": "March 5",
	}, mapperNow)

	want := fmt.Sprintf("03/05/%d", time.Now().Year())
	if got := entry[fieldMoveDate]; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestBuildEntry_UnparseableMoveDateFallsBackToToday(t *testing.T) {
	entry := buildEntry(map[string]interface{}{
		"move_date": "whenever works",
	}, mapperNow)

	if got := entry[fieldMoveDate]; got != "09/01/2026" {
		t.Fatalf("expected fallback to today, got %q", got)
	}
}

func TestBuildEntry_ZipExtraction(t *testing.T) {
	entry := buildEntry(map[string]interface{}{
		"origin_address":      "123 Main St, Atlanta, GA 30301-1234",
		"destination_address": "456 Oak Ave, Decatur, GA 30030",
	}, mapperNow)

	if got := entry[fieldOriginZip]; got != "30301" {
		t.Fatalf("expected origin zip 30301, got %q", got)
	}
	if got := entry[fieldDestinationZip]; got != "30030" {
		t.Fatalf("expected destination zip 30030, got %q", got)
	}
}

func TestNormalizeMoveSize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Studio", "Studio Apartment"},
		{"a 1 bedroom place", "1 Bedroom Apartment"},
		{"2 Bedroom", "2 Bedroom House"},
		{"3 BEDROOM house", "3 Bedroom House"},
		{"4 bedroom", "4 Bedroom House"},
		{"small office downtown", "Office"},
		{"warehouse", "warehouse"},
	}
	for _, tc := range cases {
		if got := normalizeMoveSize(tc.in); got != tc.want {
			t.Fatalf("normalizeMoveSize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestStringify_BooleansBecomeYesNo(t *testing.T) {
	if got := stringify(true); got != "Yes" {
		t.Fatalf("expected Yes, got %q", got)
	}
	if got := stringify(false); got != "No" {
		t.Fatalf("expected No, got %q", got)
	}
}

func TestBuildEntry_EmptyValuesDropped(t *testing.T) {
	entry := buildEntry(map[string]interface{}{
		"name":  "Jane Doe",
		"email": "   ",
	}, mapperNow)

	if _, present := entry[fieldEmail]; present {
		t.Fatal("expected blank email to be dropped")
	}
}

func TestAddNumericAliases(t *testing.T) {
	entry := map[string]string{
		"input_1":   "Jane Doe",
		"input_1.3": "Jane",
		"input_2":   "jane@example.com",
		"2":         "already set",
	}

	addNumericAliases(entry)

	if got := entry["1"]; got != "Jane Doe" {
		t.Fatalf("expected alias 1, got %q", got)
	}
	if got := entry["1.3"]; got != "Jane" {
		t.Fatalf("expected alias 1.3, got %q", got)
	}
	if got := entry["2"]; got != "already set" {
		t.Fatalf("expected existing numeric key to survive, got %q", got)
	}
}
