package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TagList tolerates both ["a","b"] and "a, b" in JSON payloads; the admin
// portfolio form posts the comma-separated text field as-is.
type TagList []string

func (t *TagList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*t = nil
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = SplitTags(s)
		return nil
	default:
		var arr []string
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		*t = cleanTags(arr)
		return nil
	}
}

// SplitTags splits on commas, trims and drops empties.
func SplitTags(raw string) TagList {
	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(in []string) TagList {
	out := TagList{}
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
