// Package normalize turns decoded backend payloads into canonical domain
// records, one list or object at a time.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ositopolar/fleet-console/internal/domain"
)

// ErrPayloadShape is matched by every *ShapeError.
var ErrPayloadShape = errors.New("unexpected payload shape")

// ShapeError reports a payload that is a list where an object was expected,
// or the other way round.
type ShapeError struct {
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", ErrPayloadShape, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error { return ErrPayloadShape }

// Decode parses body keeping numbers as json.Number so that large ids and
// decimal prices reach the coercion layer untouched. An empty body decodes
// to nil.
func Decode(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return v, nil
}

// Many builds one record per list element, preserving order. Elements that
// are not objects build from empty input. A null payload yields an empty
// slice.
func Many[T any](payload any, build func(domain.Raw) T) ([]T, error) {
	if payload == nil {
		return []T{}, nil
	}
	items, ok := payload.([]any)
	if !ok {
		return nil, &ShapeError{Want: "list", Got: kind(payload)}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, build(asRaw(item)))
	}
	return out, nil
}

// One builds a single record from an object. A null payload builds from
// empty input; lists and scalars are shape errors.
func One[T any](payload any, build func(domain.Raw) T) (T, error) {
	switch payload.(type) {
	case nil, map[string]any, domain.Raw:
		return build(asRaw(payload)), nil
	}
	var zero T
	return zero, &ShapeError{Want: "object", Got: kind(payload)}
}

// Data unwraps the {"data": ...} envelope used by the analytics endpoints.
// Payloads without the envelope are returned unchanged.
func Data(payload any) any {
	m, ok := payload.(map[string]any)
	if !ok {
		return payload
	}
	if inner, ok := m["data"]; ok {
		return inner
	}
	return payload
}

func asRaw(v any) domain.Raw {
	switch m := v.(type) {
	case map[string]any:
		return domain.Raw(m)
	case domain.Raw:
		return m
	}
	return domain.Raw{}
}

func kind(v any) string {
	switch v.(type) {
	case map[string]any, domain.Raw:
		return "object"
	case []any:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case json.Number, float64, int, int64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
