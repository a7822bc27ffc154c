package smartmoving

import (
	"strings"
	"testing"
)

func TestBuildPayload_ContactFields(t *testing.T) {
	data := map[string]interface{}{
		"name":                "Jane Doe",
		"email":               "jane@example.com",
		"phone":               "(404) 555-0123",
		"origin_address":      "12 Peach St, Atlanta, GA 30301",
		"destination_address": "99 Oak Ave, Decatur, GA 30030",
		"move_size":           "2 bedroom apartment",
	}

	payload := buildPayload(data, "")

	if payload["first_name"] != "Jane" || payload["last_name"] != "Doe" {
		t.Fatalf("expected split name, got %v / %v", payload["first_name"], payload["last_name"])
	}
	if payload["email"] != "jane@example.com" {
		t.Fatalf("expected email, got %v", payload["email"])
	}
	if payload["phone"] != "4045550123" {
		t.Fatalf("expected normalized phone, got %v", payload["phone"])
	}
	if payload["from_zip"] != "30301" || payload["to_zip"] != "30030" {
		t.Fatalf("expected zips extracted, got %v / %v", payload["from_zip"], payload["to_zip"])
	}
	if payload["move_size"] != "2 bedroom apartment" {
		t.Fatalf("expected move size passed through, got %v", payload["move_size"])
	}
}

func TestBuildPayload_MoveDateLayout(t *testing.T) {
	payload := buildPayload(map[string]interface{}{"move_date": "03/05/2026"}, "")
	if payload["move_date"] != "2026-03-05" {
		t.Fatalf("expected ISO move date, got %v", payload["move_date"])
	}
}

func TestBuildPayload_EmptyFieldsDropped(t *testing.T) {
	payload := buildPayload(map[string]interface{}{
		"name":  "Jo",
		"email": "",
		"phone": "   ",
	}, "")

	if _, ok := payload["email"]; ok {
		t.Fatal("expected blank email to be dropped")
	}
	if _, ok := payload["phone"]; ok {
		t.Fatal("expected blank phone to be dropped")
	}
}

func TestBuildPayload_NotesAndAffiliate(t *testing.T) {
	data := map[string]interface{}{"name": "Jo"}

	withNote := buildPayload(data, "call after 5pm")
	notes, _ := withNote["notes"].(string)
	if !strings.HasPrefix(notes, "call after 5pm\n\n") {
		t.Fatalf("expected note prefixed to dump, got %q", notes)
	}
	if !strings.Contains(notes, `"name": "Jo"`) {
		t.Fatalf("expected captured data dumped into notes, got %q", notes)
	}
	if withNote["affiliateName"] != affiliateLabel {
		t.Fatalf("expected affiliate label with note, got %v", withNote["affiliateName"])
	}

	withoutNote := buildPayload(data, "")
	if _, ok := withoutNote["affiliateName"]; ok {
		t.Fatal("expected no affiliate label without a note")
	}
	notes, _ = withoutNote["notes"].(string)
	if !strings.Contains(notes, `"name": "Jo"`) {
		t.Fatalf("expected dump-only notes, got %q", notes)
	}
}

func TestEstimatedMiles(t *testing.T) {
	tests := []struct {
		name string
		data map[string]interface{}
		want float64
		ok   bool
	}{
		{"top level float", map[string]interface{}{"estimated_miles": 42.5}, 42.5, true},
		{"top level string", map[string]interface{}{"distance": "17.3"}, 17.3, true},
		{
			"nested answer wins",
			map[string]interface{}{
				"distance": 5.0,
				"distance-calculation": map[string]interface{}{
					"distance": 128.4,
				},
			},
			128.4, true,
		},
		{"unparseable string", map[string]interface{}{"miles": "far"}, 0, false},
		{"absent", map[string]interface{}{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := estimatedMiles(tt.data)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("estimatedMiles = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBuildPayload_EstimatedMilesWired(t *testing.T) {
	payload := buildPayload(map[string]interface{}{
		"distance-calculation": map[string]interface{}{"miles": 60},
	}, "")
	if payload["estimated_miles"] != 60.0 {
		t.Fatalf("expected estimated_miles 60, got %v", payload["estimated_miles"])
	}
}
