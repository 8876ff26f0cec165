package option

import (
	"testing"
)

func TestNormalizeTotality(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"Empty", map[string]any{}},
		{"Nil", nil},
		{"OnlyGarbage", map[string]any{"wat": 42}},
		{"NumericID", map[string]any{"id": float64(7)}},
		{"OnlyValue", map[string]any{"value": "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opt := Normalize(tc.raw, Fields{})
			if opt.ID == "" {
				t.Error("expected non-empty id")
			}
			if opt.Label == "" {
				t.Error("expected non-empty label")
			}
		})
	}
}

func TestNormalizeFallbackChains(t *testing.T) {
	t.Run("LabelPrefersConfiguredField", func(t *testing.T) {
		opt := Normalize(map[string]any{"title": "Crew A", "label": "ignored"}, Fields{Label: "title"})
		if opt.Label != "Crew A" {
			t.Errorf("expected configured field to win, got %q", opt.Label)
		}
	})

	t.Run("LabelFallsThroughNameAndText", func(t *testing.T) {
		if got := Normalize(map[string]any{"name": "North Crew"}, Fields{}).Label; got != "North Crew" {
			t.Errorf("expected name fallback, got %q", got)
		}
		if got := Normalize(map[string]any{"text": "South Crew"}, Fields{}).Label; got != "South Crew" {
			t.Errorf("expected text fallback, got %q", got)
		}
	})

	t.Run("LabelStringifiesValue", func(t *testing.T) {
		if got := Normalize(map[string]any{"id": "x", "value": float64(12)}, Fields{}).Label; got != "12" {
			t.Errorf("expected stringified value, got %q", got)
		}
	})

	t.Run("ValueDefaultsToID", func(t *testing.T) {
		opt := Normalize(map[string]any{"id": "abc", "label": "L"}, Fields{})
		if opt.Value != "abc" {
			t.Errorf("expected value to default to id, got %v", opt.Value)
		}
	})

	t.Run("NumericIDBecomesCleanString", func(t *testing.T) {
		opt := Normalize(map[string]any{"id": float64(1), "label": "A"}, Fields{})
		if opt.ID != "1" {
			t.Errorf("expected id \"1\", got %q", opt.ID)
		}
	})

	t.Run("FieldRemapping", func(t *testing.T) {
		raw := map[string]any{"site_id": "s9", "site_name": "Harbor", "region": "West"}
		opt := Normalize(raw, Fields{ID: "site_id", Label: "site_name", Group: "region"})
		if opt.ID != "s9" || opt.Label != "Harbor" || opt.Group != "West" {
			t.Errorf("remapping failed: %+v", opt)
		}
	})
}

func TestNormalizeDoesNotMutateSource(t *testing.T) {
	raw := map[string]any{"label": "A"}
	opt := Normalize(raw, Fields{})
	if len(raw) != 1 {
		t.Fatalf("source map was mutated: %v", raw)
	}
	if opt.Original == nil {
		t.Fatal("expected Original to reference the source record")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	raw := []map[string]any{
		{"id": "a", "label": "Alpha", "value": 1.0},
		{"id": "b", "label": "Beta"},
	}
	first := NormalizeAll(raw, Fields{})

	// Re-normalizing the canonical projection yields the same triples.
	reprojected := make([]map[string]any, 0, len(first))
	for _, o := range first {
		reprojected = append(reprojected, map[string]any{"id": o.ID, "label": o.Label, "value": o.Value})
	}
	second := NormalizeAll(reprojected, Fields{})

	if len(first) != len(second) {
		t.Fatalf("length changed on re-normalization: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].Label != second[i].Label ||
			!ValueEqual(first[i].Value, second[i].Value) {
			t.Errorf("triple %d changed: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSetPreservesOrderAndGroups(t *testing.T) {
	raws := []map[string]any{
		{"id": "1", "label": "Loose"},
		{"id": "2", "label": "East A", "group": "East"},
		{"id": "3", "label": "West A", "group": "West"},
		{"id": "4", "label": "East B", "group": "East"},
		{"id": "5", "label": "Also loose"},
	}
	s := NewSet(raws, Fields{})

	if s.Len() != 5 {
		t.Fatalf("expected 5 options, got %d", s.Len())
	}

	ungrouped, groups := s.Grouped()
	if len(ungrouped) != 2 {
		t.Fatalf("expected 2 ungrouped, got %d", len(ungrouped))
	}
	if len(groups) != 2 || groups[0].Name != "East" || groups[1].Name != "West" {
		t.Fatalf("expected groups in first-seen order [East West], got %+v", groups)
	}
	if len(groups[0].Options) != 2 {
		t.Fatalf("expected 2 options in East, got %d", len(groups[0].Options))
	}
	if !s.HasGroups() {
		t.Fatal("expected HasGroups to be true")
	}
}

func TestSetReplaceKeepsPosition(t *testing.T) {
	s := NewSet([]map[string]any{
		{"id": "a", "label": "One"},
		{"id": "b", "label": "Two"},
	}, Fields{})
	s.Add(Option{ID: "a", Label: "One updated"})

	all := s.All()
	if all[0].ID != "a" || all[0].Label != "One updated" {
		t.Fatalf("expected replacement in place, got %+v", all)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 options after replace, got %d", s.Len())
	}
}
