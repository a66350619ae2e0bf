package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Field is a single key/value pair of a Document. Value is one of int32,
// string or bool.
type Field struct {
	Key   string
	Value interface{}
}

// Document is an ordered set of fields ready to be handed to the encoder of
// the surrounding command. The zero value is the empty document.
type Document struct {
	fields []Field
}

// NewDocument builds a document from fields, keeping their order. A repeated
// key replaces the earlier value in place.
func NewDocument(fields ...Field) Document {
	var doc Document
	for _, f := range fields {
		doc = doc.With(f.Key, f.Value)
	}
	return doc
}

// With returns a copy of the document with key set to value. Existing keys
// keep their position, new keys are appended.
func (d Document) With(key string, value interface{}) Document {
	fields := make([]Field, len(d.fields), len(d.fields)+1)
	copy(fields, d.fields)

	for i := range fields {
		if fields[i].Key == key {
			fields[i].Value = value
			return Document{fields: fields}
		}
	}

	return Document{fields: append(fields, Field{Key: key, Value: value})}
}

// Len returns the number of fields in the document.
func (d Document) Len() int {
	return len(d.fields)
}

// Get returns the value stored under key.
func (d Document) Get(key string) (interface{}, bool) {
	for _, f := range d.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Keys returns the field names in document order.
func (d Document) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the document's fields in order.
func (d Document) Fields() []Field {
	fields := make([]Field, len(d.fields))
	copy(fields, d.fields)
	return fields
}

func (d Document) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range d.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Key)
		sb.WriteString(": ")
		switch v := f.Value.(type) {
		case string:
			sb.WriteString(strconv.Quote(v))
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
	}
	sb.WriteString("}")
	return sb.String()
}

// MarshalJSON encodes the document as a JSON object, preserving field order.
func (d Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal field %s: %w", f.Key, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
