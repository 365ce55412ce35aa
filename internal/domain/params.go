package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params holds the slot values of one intent invocation.
type Params map[string]any

// NormalizeParams copies raw, collapsing single-element lists to scalars and
// dropping the ".original" echo keys the NLU layer attaches to contexts.
func NormalizeParams(raw map[string]any) Params {
	out := make(Params, len(raw))
	for k, v := range raw {
		if strings.HasSuffix(k, ".original") {
			continue
		}
		if list, ok := v.([]any); ok && len(list) == 1 {
			v = list[0]
		}
		out[k] = v
	}
	return out
}

// Merge returns a new Params with base as the starting point and every
// non-empty value of override applied on top. Neither input is modified.
func Merge(base, override Params) Params {
	out := make(Params, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if IsEmpty(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// Without returns a copy of p minus the named keys.
func (p Params) Without(keys ...string) Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Value returns the raw value for key if it is present and non-empty.
func (p Params) Value(key string) (any, bool) {
	v, ok := p[key]
	if !ok || IsEmpty(v) {
		return nil, false
	}
	return v, true
}

// String returns the trimmed text form of a scalar slot, or "".
func (p Params) String(key string) string {
	v, ok := p.Value(key)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case json.Number:
		return s.String()
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// IsEmpty reports whether a slot value carries no information.
func IsEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case Params:
		return len(t) == 0
	default:
		return false
	}
}
