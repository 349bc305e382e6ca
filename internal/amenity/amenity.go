// Package amenity converts between stored amenity representations and an
// ordered list of amenity keys.
//
// Rows written by older versions of the application hold a comma-separated
// string ("wifi, ac"); current rows hold a JSON array. Both decode to the
// same list.
package amenity

import (
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var knownLabels = map[string]string{
	"wifi":    "Free Wi-Fi",
	"ac":      "Air Conditioning",
	"tv":      "Flat-screen TV",
	"balcony": "Private Balcony",
	"bathtub": "Bathtub",
	"coffee":  "Coffee Maker",
}

// Decode parses a stored amenity column. It never fails: unreadable input
// yields an empty list.
func Decode(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}
	if strings.Contains(raw, "[") {
		return []string{}
	}
	return splitCSV(raw)
}

// Normalize accepts any representation a caller may hold (nil, a list, a
// JSON or CSV string, raw JSON bytes) and returns the list of keys.
func Normalize(v any) []string {
	switch val := v.(type) {
	case nil:
		return []string{}
	case []string:
		if val == nil {
			return []string{}
		}
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return Decode(val)
	case []byte:
		trimmed := strings.TrimSpace(string(val))
		if strings.HasPrefix(trimmed, `"`) {
			var s string
			if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
				return []string{}
			}
			return Decode(s)
		}
		return Decode(trimmed)
	default:
		return []string{}
	}
}

// Encode returns the canonical stored form: a JSON array.
func Encode(keys []string) string {
	if len(keys) == 0 {
		return "[]"
	}
	b, err := json.Marshal(keys)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Label returns the display label for key.
func Label(key string) string {
	if label, ok := knownLabels[strings.ToLower(strings.TrimSpace(key))]; ok {
		return label
	}
	// Casers carry state; one per call.
	return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(key, "_", " "))
}

// Labels maps every key to its display label, preserving order.
func Labels(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, Label(k))
	}
	return out
}

func splitCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
