package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Raw is a loosely-typed JSON object as returned by the backend.
type Raw map[string]any

// value returns the first non-nil value stored under one of keys. Keys are
// tried in order, so the canonical name goes first and legacy aliases after.
func (r Raw) value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func (r Raw) has(keys ...string) bool {
	_, ok := r.value(keys...)
	return ok
}

func (r Raw) str(def string, keys ...string) string {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	s, ok := toString(v)
	if !ok {
		return def
	}
	return s
}

func (r Raw) optStr(keys ...string) *string {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	s, ok := toString(v)
	if !ok {
		return nil
	}
	return &s
}

func (r Raw) float(def float64, keys ...string) float64 {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return f
}

func (r Raw) optFloat(keys ...string) *float64 {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &f
}

func (r Raw) int(def int64, keys ...string) int64 {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	n, ok := toInt(v)
	if !ok {
		return def
	}
	return n
}

func (r Raw) optInt(keys ...string) *int64 {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	n, ok := toInt(v)
	if !ok {
		return nil
	}
	return &n
}

func (r Raw) bool(def bool, keys ...string) bool {
	v, ok := r.value(keys...)
	if !ok {
		return def
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := cast.ToBoolE(strings.TrimSpace(b))
		if err != nil {
			return def
		}
		return parsed
	}
	return def
}

func (r Raw) strings(keys ...string) []string {
	v, ok := r.value(keys...)
	if !ok {
		return []string{}
	}
	items, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string{}, ss...)
		}
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := toString(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func (r Raw) object(keys ...string) Raw {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	switch m := v.(type) {
	case map[string]any:
		return Raw(m)
	case Raw:
		return m
	}
	return nil
}

func (r Raw) objects(keys ...string) []Raw {
	v, ok := r.value(keys...)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Raw, 0, len(items))
	for _, item := range items {
		m, _ := item.(map[string]any)
		out = append(out, Raw(m))
	}
	return out
}

// toFloat accepts numbers and numeric strings. Booleans, objects, NaN and
// infinities are rejected so the caller falls back to the field default.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case bool, map[string]any, []any:
		return 0, false
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		parsed, err := cast.ToFloat64E(s)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		parsed, err := cast.ToFloat64E(n)
		if err != nil {
			return 0, false
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// toInt reads whole numbers exactly, so ids beyond 2^53 survive. Decimals
// truncate; values outside the int64 range are unparsable.
func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	case string:
		if i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return i, true
		}
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	f, ok := toFloat(v)
	if !ok || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func toString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case map[string]any, []any:
		return "", false
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}
