// Package decode maps JSON documents onto typed values through explicit
// field schemas.
//
// A Schema lists the JSON members a model cares about together with their
// expected kind. Parsing a document against a Schema yields a Record, and a
// Mapping turns a Record into the caller's type:
//
//	var posts = decode.Mapping[Post]{
//		Schema: decode.Schema{decode.Int("id").Require(), decode.String("title")},
//		Build: func(r decode.Record) Post {
//			return Post{ID: r.Int("id"), Title: r.String("title")}
//		},
//	}
//
// Members not named in the Schema are ignored. A member that is absent or
// null is treated as missing, which is an error only for required fields.
package decode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

func Int(name string) Field    { return Field{Name: name, Kind: KindInt} }
func Float(name string) Field  { return Field{Name: name, Kind: KindFloat} }
func String(name string) Field { return Field{Name: name, Kind: KindString} }
func Bool(name string) Field   { return Field{Name: name, Kind: KindBool} }

// Require returns a copy of f that must be present and non-null.
func (f Field) Require() Field {
	f.Required = true
	return f
}

type Schema []Field

// Parse checks raw against the schema. raw must be a JSON object.
func (s Schema) Parse(raw []byte) (Record, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(raw, &members); err != nil {
		return Record{}, &Error{Index: -1, Reason: "not a JSON object", Err: err}
	}
	if members == nil {
		return Record{}, &Error{Index: -1, Reason: "not a JSON object", Err: ErrNull}
	}

	rec := Record{values: make(map[string]any, len(s))}
	for _, f := range s {
		m, ok := members[f.Name]
		if !ok || isNull(m) {
			if f.Required {
				return Record{}, &Error{Index: -1, Field: f.Name, Reason: "missing required field", Err: ErrMissing}
			}
			continue
		}
		v, err := convert(f.Kind, m)
		if err != nil {
			return Record{}, &Error{Index: -1, Field: f.Name, Reason: "want " + f.Kind.String(), Err: err}
		}
		rec.values[f.Name] = v
	}
	return rec, nil
}

func isNull(m json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(m), []byte("null"))
}

func convert(kind Kind, m json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(m))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	switch kind {
	case KindInt:
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", ErrType, describe(v))
		}
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not an integer", ErrType, n)
		}
		return int(i), nil
	case KindFloat:
		n, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", ErrType, describe(v))
		}
		return n.Float64()
	case KindString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", ErrType, describe(v))
		}
		return s, nil
	case KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("%w: got %s", ErrType, describe(v))
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %s", ErrType, kind)
}

func describe(v any) string {
	switch v.(type) {
	case json.Number:
		return "number"
	case string:
		return "string"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// Record holds the schema-checked members of one JSON object.
// Accessors return the zero value for absent members.
type Record struct {
	values map[string]any
}

func (r Record) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

func (r Record) Int(name string) int {
	v, _ := r.values[name].(int)
	return v
}

func (r Record) Float(name string) float64 {
	v, _ := r.values[name].(float64)
	return v
}

func (r Record) String(name string) string {
	v, _ := r.values[name].(string)
	return v
}

func (r Record) Bool(name string) bool {
	v, _ := r.values[name].(bool)
	return v
}

// Mapping pairs a schema with the constructor of the model it describes.
type Mapping[T any] struct {
	Schema Schema
	Build  func(Record) T
}

func (m Mapping[T]) Decode(raw []byte) (T, error) {
	var zero T
	rec, err := m.Schema.Parse(raw)
	if err != nil {
		return zero, err
	}
	if m.Build == nil {
		return zero, &Error{Index: -1, Reason: "mapping has no constructor"}
	}
	return m.Build(rec), nil
}

// One decodes a body holding a single JSON object.
func One[T any](body []byte, m Mapping[T]) (T, error) {
	return m.Decode(body)
}

// List decodes a body holding a JSON array. Every element must decode;
// the first failing element fails the whole list.
func List[T any](body []byte, m Mapping[T]) ([]T, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, &Error{Index: -1, Reason: "not a JSON array", Err: err}
	}
	if elems == nil {
		return nil, &Error{Index: -1, Reason: "not a JSON array", Err: ErrNull}
	}
	out := make([]T, 0, len(elems))
	for i, raw := range elems {
		v, err := m.Decode(raw)
		if err != nil {
			var de *Error
			if errors.As(err, &de) {
				de.Index = i
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Message returns the "message" (or else "error") string member of a JSON
// object body, or "" when there is none.
func Message(body []byte) string {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		var s string
		if raw, ok := members[key]; ok && json.Unmarshal(raw, &s) == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
