// Package jsonobj provides a JSON object that keeps its keys in document order.
//
// Client configuration files are owned by other programs. Rewriting them
// through a Go map would reorder every top-level key; an [Object] round-trips
// untouched fields byte-for-byte (modulo whitespace) and in their original
// position.
package jsonobj

import (
	"bytes"
	"encoding/json"
	"io"
	"iter"

	"github.com/thoreinstein/mcpsync/internal/errors"
)

// ErrNotObject is returned by Parse when the document is not a JSON object.
var ErrNotObject = errors.New("JSON value is not an object")

// Field is a single key/value pair.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Object is an ordered JSON object. The zero value is an empty object.
type Object struct {
	fields []Field
	index  map[string]int
}

// New returns an empty object.
func New() *Object {
	return &Object{}
}

// Parse decodes data, which must hold exactly one JSON object.
// Duplicate keys keep the position of their first occurrence and the value
// of their last, matching what most JSON readers do.
func Parse(data []byte) (*Object, error) {
	o := New()
	if err := o.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return o, nil
}

// Len returns the number of fields.
func (o *Object) Len() int {
	return len(o.fields)
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.fields))
	for i, f := range o.fields {
		keys[i] = f.Key
	}
	return keys
}

// All iterates over the fields in document order.
func (o *Object) All() iter.Seq2[string, json.RawMessage] {
	return func(yield func(string, json.RawMessage) bool) {
		for _, f := range o.fields {
			if !yield(f.Key, f.Value) {
				return
			}
		}
	}
}

// Get returns the raw value stored under key.
func (o *Object) Get(key string) (json.RawMessage, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.fields[i].Value, true
}

// Set replaces the value of an existing key in place or appends a new field.
func (o *Object) Set(key string, value json.RawMessage) {
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

// SetFirst behaves like Set but inserts a new key at the front.
func (o *Object) SetFirst(key string, value json.RawMessage) {
	if _, ok := o.index[key]; ok {
		o.Set(key, value)
		return
	}
	o.fields = append([]Field{{Key: key, Value: value}}, o.fields...)
	o.reindex()
}

// Delete removes key if present.
func (o *Object) Delete(key string) {
	i, ok := o.index[key]
	if !ok {
		return
	}
	o.fields = append(o.fields[:i], o.fields[i+1:]...)
	o.reindex()
}

func (o *Object) reindex() {
	o.index = make(map[string]int, len(o.fields))
	for i, f := range o.fields {
		o.index[f.Key] = i
	}
}

// MarshalJSON writes the fields in order. A nil value is written as null.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if f.Value == nil {
			buf.WriteString("null")
		} else {
			buf.Write(f.Value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the contents of o with the object in data.
func (o *Object) UnmarshalJSON(data []byte) error {
	o.fields = nil
	o.index = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrap(err, "reading object start")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errors.Wrap(err, "reading key")
		}
		key, ok := tok.(string)
		if !ok {
			return errors.Newf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return errors.Wrapf(err, "reading value of %q", key)
		}
		o.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return errors.Wrap(err, "reading object end")
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after object")
	}
	return nil
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
