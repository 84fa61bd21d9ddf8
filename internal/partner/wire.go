package partner

import "time"

// Path-based extraction over wire payloads. Partner payloads are weakly
// typed and not guaranteed to populate every nested object, so lookups on
// missing or mistyped paths degrade to zero values instead of failing.

// Collection returns the records under the top-level collection key. The
// key being absent (or not a list) is the one fatal shape: the mapper
// cannot interpret the payload at all.
func Collection(resp Response, key string) ([]Response, error) {
	raw, ok := resp[key]
	if !ok {
		return nil, &MalformedResponseError{Key: key}
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, &MalformedResponseError{Key: key}
	}
	records := make([]Response, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Response(m))
		}
	}
	return records, nil
}

// Dig walks nested maps along path, returning nil when any step is absent.
func (r Response) Dig(path ...string) any {
	var current any = map[string]any(r)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// String returns the string at path, or "" when absent or not a string.
func (r Response) String(path ...string) string {
	s, _ := r.Dig(path...).(string)
	return s
}

// Int returns the integer at path, tolerating the float64 values JSON
// decoding produces. Absent or mistyped values yield 0.
func (r Response) Int(path ...string) int {
	switch v := r.Dig(path...).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Int64 is Int for identifier-sized values.
func (r Response) Int64(path ...string) int64 {
	switch v := r.Dig(path...).(type) {
	case int:
		return int64(v)
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses the timestamp at path, yielding the zero time when absent or
// unparseable.
func (r Response) Time(path ...string) time.Time {
	s := r.String(path...)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
