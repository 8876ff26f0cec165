// Package option normalizes heterogeneous option records into the canonical
// shape shared by every hybrid control. Records arrive from static slices or
// remote JSON with wildly different field names; normalization is total and
// never fails - worst case the option gets a generated id and a stringified
// label.
package option

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Fields configures which record keys supply the canonical fields.
type Fields struct {
	ID    string
	Label string
	Value string
	Group string
}

// DefaultFields matches records that already use the canonical key names.
var DefaultFields = Fields{ID: "id", Label: "label", Value: "value", Group: "group"}

func (f Fields) withDefaults() Fields {
	d := DefaultFields
	if f.ID != "" {
		d.ID = f.ID
	}
	if f.Label != "" {
		d.Label = f.Label
	}
	if f.Value != "" {
		d.Value = f.Value
	}
	if f.Group != "" {
		d.Group = f.Group
	}
	return d
}

// Option is the canonical post-normalization shape.
type Option struct {
	ID          string
	Label       string
	Value       any
	Disabled    bool
	Icon        string
	Image       string
	Description string
	Badge       string
	BadgeColor  string
	Group       string
	Meta        map[string]any
	IsNew       bool

	// Original keeps the pre-normalization record for caller introspection.
	Original map[string]any
}

// Normalize maps an arbitrary record into an Option. The source map is never
// mutated. Missing fields degrade along the fallback chains; the absolute
// last resort is a generated id used as the label.
func Normalize(raw map[string]any, f Fields) Option {
	f = f.withDefaults()
	if raw == nil {
		raw = map[string]any{}
	}

	id := stringValue(raw[f.ID])
	if id == "" {
		id = stringValue(raw["id"])
	}
	if id == "" {
		id = uuid.NewString()
	}

	label := stringValue(raw[f.Label])
	if label == "" {
		label = stringValue(raw["label"])
	}
	if label == "" {
		label = stringValue(raw["name"])
	}
	if label == "" {
		label = stringValue(raw["text"])
	}
	if label == "" {
		if v, ok := lookup(raw, f.Value, "value"); ok {
			label = stringValue(v)
		}
	}
	if label == "" {
		label = id
	}

	value, ok := lookup(raw, f.Value, "value")
	if !ok {
		value = id
	}

	group := stringValue(raw[f.Group])
	if group == "" {
		group = stringValue(raw["group"])
	}

	var meta map[string]any
	if m, ok := raw["meta"].(map[string]any); ok {
		meta = m
	}

	return Option{
		ID:          id,
		Label:       label,
		Value:       value,
		Disabled:    boolValue(raw["disabled"]),
		Icon:        stringValue(raw["icon"]),
		Image:       stringValue(raw["image"]),
		Description: stringValue(raw["description"]),
		Badge:       stringValue(raw["badge"]),
		BadgeColor:  stringValue(raw["badgeColor"]),
		Group:       group,
		Meta:        meta,
		Original:    raw,
	}
}

// NormalizeAll maps a slice of records preserving source order.
func NormalizeAll(raws []map[string]any, f Fields) []Option {
	opts := make([]Option, 0, len(raws))
	for _, raw := range raws {
		opts = append(opts, Normalize(raw, f))
	}
	return opts
}

// ValueEqual reports whether a candidate value matches an option's value.
// JSON decoding yields scalars and the occasional nested container, so the
// comparison has to tolerate uncomparable dynamic types.
func ValueEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func lookup(raw map[string]any, primary, fallback string) (any, bool) {
	if v, ok := raw[primary]; ok && v != nil {
		return v, true
	}
	if v, ok := raw[fallback]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case float64:
		// JSON numbers decode as float64; render integers without the
		// trailing ".0" so ids like 1 round-trip as "1".
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func boolValue(v any) bool {
	b, _ := v.(bool)
	return b
}
