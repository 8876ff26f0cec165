package option

import (
	"encoding/json"
	"sort"

	apperrors "hybridsel/internal/errors"
)

// envelopeKeys are searched in priority order when a response body is an
// object rather than a bare array.
var envelopeKeys = []string{"sites", "tasks", "data", "results", "rows", "items", "payload"}

// Unwrap extracts the option records from a decoded response body. APIs wrap
// their lists in a variety of envelopes; this tolerates a bare array, any of
// the well-known envelope keys (searched one level deeper for data/results),
// and finally falls back to the first array-valued property. Keys are walked
// in sorted order for the fallback so unwrapping is deterministic.
func Unwrap(parsed any) []map[string]any {
	if arr, ok := parsed.([]any); ok {
		return toRecords(arr)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil
	}

	for _, k := range envelopeKeys {
		val, ok := obj[k]
		if !ok {
			continue
		}
		if arr, ok := val.([]any); ok {
			return toRecords(arr)
		}
		if nested, ok := val.(map[string]any); ok {
			if arr, ok := nested["data"].([]any); ok {
				return toRecords(arr)
			}
			if arr, ok := nested["results"].([]any); ok {
				return toRecords(arr)
			}
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return toRecords(arr)
		}
	}

	// Nested data shapes that slipped past the envelope keys.
	if nested, ok := obj["data"].(map[string]any); ok {
		if arr, ok := nested["rows"].([]any); ok {
			return toRecords(arr)
		}
		if arr, ok := nested["data"].([]any); ok {
			return toRecords(arr)
		}
	}

	return nil
}

// Decode parses a JSON body and unwraps the contained records.
func Decode(data []byte) ([]map[string]any, error) {
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, apperrors.New(apperrors.CodeParseFailed, "parse response body", err)
	}
	return Unwrap(parsed), nil
}

func toRecords(arr []any) []map[string]any {
	records := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
			continue
		}
		// Scalars become label-only records so string arrays still render.
		records = append(records, map[string]any{"label": stringValue(item), "value": item})
	}
	return records
}
