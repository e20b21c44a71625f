// Package models defines data structures for the cleaning and validation pipeline.
package models

import (
	"bytes"
	"encoding/json"
)

// Known record field names.
const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldAuthor  = "author"
	FieldDate    = "date"
	FieldTags    = "tags"
	FieldURL     = "url"
)

// TextFields lists the scalar fields the cleaner runs the full text pipeline on.
var TextFields = []string{FieldTitle, FieldContent, FieldAuthor}

// ReportFields lists the fields the quality report tracks, in report order.
var ReportFields = []string{FieldTitle, FieldContent, FieldURL, FieldDate, FieldAuthor, FieldTags}

// Kind identifies the shape of a record field value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindText
	KindList
	KindRaw
)

// Value is one record field value: text, an ordered list of text entries,
// an explicit null, or raw passthrough JSON for shapes the pipeline does not
// touch. Values are treated as immutable once constructed.
type Value struct {
	kind Kind
	text string
	list []Value
	raw  json.RawMessage
}

// Text constructs a textual value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Null constructs an explicit null value.
func Null() Value {
	return Value{kind: KindNull}
}

// List constructs an ordered list value.
func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

// Raw constructs a passthrough value carrying unmodified JSON.
func Raw(data json.RawMessage) Value {
	return Value{kind: KindRaw, raw: data}
}

// Kind returns the value's shape.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is an explicit null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Text returns the textual content for text values, and the empty string for
// every other kind.
func (v Value) Text() string {
	if v.kind == KindText {
		return v.text
	}

	return ""
}

// List returns the element slice for list values, nil otherwise.
func (v Value) List() []Value {
	if v.kind == KindList {
		return v.list
	}

	return nil
}

// UnmarshalJSON decodes a loosely-typed JSON value. Strings stay text, null
// stays null, arrays become lists, and numbers/booleans are coerced to their
// textual representation. Objects are carried through untouched.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*v = Null()

		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}

		*v = Text(s)
	case 'n':
		*v = Null()
	case '[':
		var elems []Value
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return err
		}

		*v = Value{kind: KindList, list: elems}
	case '{':
		*v = Raw(append(json.RawMessage(nil), trimmed...))
	default:
		// Numbers and booleans keep their literal spelling.
		*v = Text(string(trimmed))
	}

	return nil
}

// MarshalJSON encodes the value back to JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.list)
	case KindRaw:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

// Record is one semi-structured input item. Keys outside the known field set
// pass through the pipeline untouched. A missing key means the field is
// absent, which is distinct from an explicit null.
type Record map[string]Value

// Get returns the value for field and whether the field is present.
func (r Record) Get(field string) (Value, bool) {
	v, ok := r[field]

	return v, ok
}

// Has reports whether field is present, regardless of its value.
func (r Record) Has(field string) bool {
	_, ok := r[field]

	return ok
}

// Clone returns a copy of the record that can be modified without touching
// the original. Values are immutable, so a key-level copy is sufficient.
func (r Record) Clone() Record {
	cloned := make(Record, len(r))
	for k, v := range r {
		cloned[k] = v
	}

	return cloned
}
