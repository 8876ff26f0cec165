package option

import (
	"testing"
)

func firstLabel(records []map[string]any) string {
	if len(records) == 0 {
		return ""
	}
	label, _ := records[0]["label"].(string)
	return label
}

func TestUnwrapEnvelopes(t *testing.T) {
	record := map[string]any{"id": "1", "label": "Oakwood"}

	cases := []struct {
		name   string
		parsed any
		count  int
		label  string
	}{
		{"BareArray", []any{record}, 1, "Oakwood"},
		{"SitesKey", map[string]any{"sites": []any{record}}, 1, "Oakwood"},
		{"TasksKey", map[string]any{"tasks": []any{record}}, 1, "Oakwood"},
		{"DataKey", map[string]any{"data": []any{record}}, 1, "Oakwood"},
		{"ResultsKey", map[string]any{"results": []any{record}}, 1, "Oakwood"},
		{"ItemsKey", map[string]any{"items": []any{record}}, 1, "Oakwood"},
		{"NestedDataData", map[string]any{"data": map[string]any{"data": []any{record}}}, 1, "Oakwood"},
		{"NestedResultsData", map[string]any{"results": map[string]any{"data": []any{record}}}, 1, "Oakwood"},
		{"NestedDataRows", map[string]any{"data": map[string]any{"rows": []any{record}}}, 1, "Oakwood"},
		{"UnknownArrayProperty", map[string]any{"widgets": []any{record}}, 1, "Oakwood"},
		{"NoArrayAnywhere", map[string]any{"count": float64(3)}, 0, ""},
		{"Scalar", "nope", 0, ""},
		{"Nil", nil, 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			records := Unwrap(tc.parsed)
			if len(records) != tc.count {
				t.Fatalf("expected %d records, got %d", tc.count, len(records))
			}
			if got := firstLabel(records); got != tc.label {
				t.Fatalf("expected label %q, got %q", tc.label, got)
			}
		})
	}
}

func TestUnwrapPrefersWellKnownKeysOverFallback(t *testing.T) {
	parsed := map[string]any{
		"aaa":  []any{map[string]any{"label": "fallback"}},
		"data": []any{map[string]any{"label": "envelope"}},
	}
	records := Unwrap(parsed)
	if got := firstLabel(records); got != "envelope" {
		t.Fatalf("expected the data envelope to win, got %q", got)
	}
}

func TestUnwrapFallbackIsDeterministic(t *testing.T) {
	// Two unknown array properties: the sorted-key scan always picks the same
	// one regardless of map iteration order.
	parsed := map[string]any{
		"zebra": []any{map[string]any{"label": "zebra"}},
		"alpha": []any{map[string]any{"label": "alpha"}},
	}
	for range 10 {
		if got := firstLabel(Unwrap(parsed)); got != "alpha" {
			t.Fatalf("expected sorted-key fallback to pick alpha, got %q", got)
		}
	}
}

func TestUnwrapScalarArrayBecomesLabels(t *testing.T) {
	records := Unwrap([]any{"North", "South"})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["label"] != "North" || records[0]["value"] != "North" {
		t.Fatalf("expected label-only record, got %+v", records[0])
	}
}

func TestDecode(t *testing.T) {
	t.Run("ValidBody", func(t *testing.T) {
		records, err := Decode([]byte(`{"results":[{"id":"1","label":"Oakwood"}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 1 || records[0]["label"] != "Oakwood" {
			t.Fatalf("unexpected records: %+v", records)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		if _, err := Decode([]byte(`{nope`)); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}
