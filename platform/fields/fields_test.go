package fields

import (
	"fmt"
	"testing"
	"time"
)

func TestExtractZip(t *testing.T) {
	if got := ExtractZip("123 Main St, Atlanta, GA 30301-1234"); got != "30301" {
		t.Fatalf("expected 30301, got %q", got)
	}
	if got := ExtractZip("no zip here"); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
	if got := ExtractZip(30301); got != "" {
		t.Fatalf("expected empty result for non-string, got %q", got)
	}
	if got := ExtractZip("90210"); got != "90210" {
		t.Fatalf("expected bare zip to pass through, got %q", got)
	}
}

func TestSplitName(t *testing.T) {
	first, last := SplitName("Jo")
	if first != "Jo" || last != "Customer" {
		t.Fatalf("expected Jo / Customer, got %q / %q", first, last)
	}

	first, last = SplitName("  Jane   Q Public ")
	if first != "Jane" || last != "Q Public" {
		t.Fatalf("expected Jane / Q Public, got %q / %q", first, last)
	}

	first, last = SplitName("")
	if first != "" || last != "Customer" {
		t.Fatalf("expected empty / Customer, got %q / %q", first, last)
	}
}

func TestFirstPresent(t *testing.T) {
	doc := map[string]interface{}{
		"a": nil,
		"b": "   ",
		"c": "value",
		"d": "other",
	}

	if got := FirstPresent(doc, "a", "b", "c", "d"); got != "value" {
		t.Fatalf("expected first non-empty value, got %v", got)
	}
	if got := FirstPresent(doc, "a", "b"); got != nil {
		t.Fatalf("expected nil when all candidates are empty, got %v", got)
	}
	if got := FirstPresent(nil, "a"); got != nil {
		t.Fatalf("expected nil for nil doc, got %v", got)
	}

	withFalse := map[string]interface{}{"flag": false}
	if got := FirstPresent(withFalse, "flag"); got != false {
		t.Fatalf("expected false to count as present, got %v", got)
	}
}

func TestStringify(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{true, "true"},
		{float64(3), "3"},
		{3.5, "3.5"},
		{42, "42"},
		{[]string{"x"}, ""},
	}
	for _, tc := range cases {
		if got := Stringify(tc.in); got != tc.want {
			t.Fatalf("Stringify(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"03/05/2026", "03/05/2026"},
		{"3/5/2026", "03/05/2026"},
		{"2026-03-05", "03/05/2026"},
		{"March 5, 2026", "03/05/2026"},
		{"Mar 5, 2026", "03/05/2026"},
	}
	for _, tc := range cases {
		if got := NormalizeDate(tc.in, "01/02/2006"); got != tc.want {
			t.Fatalf("NormalizeDate(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}

	if got := NormalizeDate("not a date at all", "01/02/2006"); got != "" {
		t.Fatalf("expected empty result for unparseable date, got %q", got)
	}
	if got := NormalizeDate(12345, "01/02/2006"); got != "" {
		t.Fatalf("expected empty result for non-string, got %q", got)
	}
}

func TestNormalizeDate_YearlessUsesCurrentYear(t *testing.T) {
	want := fmt.Sprintf("03/05/%d", time.Now().Year())
	if got := NormalizeDate("March 5", "01/02/2006"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestNormalizeDate_TargetLayout(t *testing.T) {
	if got := NormalizeDate("03/05/2026", "2006-01-02"); got != "2026-03-05" {
		t.Fatalf("expected 2026-03-05, got %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"(404) 555-0123", "4045550123"},
		{"+1 404 555 0123", "4045550123"},
		{"404-555-0123", "4045550123"},
		{"555-0123", "555-0123"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Fatalf("NormalizePhone(%v): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
