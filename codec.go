package ackspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/docdb/ackspec/wire"
)

// MarshalText encodes the write concern as its registry name. Values without a
// name in DefaultRegistry cannot be encoded as text.
func (s AckSpec) MarshalText() ([]byte, error) {
	name, ok := defaultRegistry.NameOf(s)
	if !ok {
		return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("%s has no registered name", s))
	}
	return []byte(name), nil
}

// UnmarshalText resolves a registry name, case-insensitively.
func (s *AckSpec) UnmarshalText(text []byte) error {
	spec, ok := defaultRegistry.Resolve(string(text))
	if !ok {
		return wrapError(ErrUnknownName, redactUserData(string(text)))
	}
	*s = spec
	return nil
}

// MarshalJSON encodes the wire document as a JSON object.
func (s AckSpec) MarshalJSON() ([]byte, error) {
	return s.AsWireDocument().MarshalJSON()
}

// UnmarshalJSON accepts either a registry name as a JSON string or a JSON object
// holding the wire fields.
func (s *AckSpec) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		return s.UnmarshalText([]byte(name))
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return wrapError(ErrInvalidArgument, fmt.Sprintf("write concern must be a name or an object: %s", err))
	}

	for key := range raw {
		if !wire.IsKnownField(key) {
			return wrapError(ErrInvalidArgument, fmt.Sprintf("unknown write concern field %s", key))
		}
	}

	var doc wire.Document
	for _, key := range []string{wire.FieldW, wire.FieldWTimeout, wire.FieldFsync, wire.FieldJournal} {
		val, ok := raw[key]
		if !ok {
			continue
		}

		v, err := decodeJSONWireValue(val)
		if err != nil {
			return wrapError(ErrInvalidArgument, fmt.Sprintf("invalid value for %s: %s", key, err))
		}
		doc = doc.With(key, v)
	}

	spec, err := FromWireDocument(doc)
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

func decodeJSONWireValue(data json.RawMessage) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	switch tv := v.(type) {
	case json.Number:
		n, err := strconv.ParseInt(tv.String(), 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case string, bool:
		return tv, nil
	}
	return nil, fmt.Errorf("unsupported json value %s", data)
}

// MarshalYAML encodes the write concern as its registry name when it has one, and
// as a mapping of the wire fields otherwise.
func (s AckSpec) MarshalYAML() (interface{}, error) {
	if name, ok := defaultRegistry.NameOf(s); ok {
		return name, nil
	}

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range s.AsWireDocument().Fields() {
		val := &yaml.Node{Kind: yaml.ScalarNode}
		switch v := field.Value.(type) {
		case int32:
			val.Tag = "!!int"
			val.Value = strconv.FormatInt(int64(v), 10)
		case string:
			val.Tag = "!!str"
			val.Value = v
		case bool:
			val.Tag = "!!bool"
			val.Value = strconv.FormatBool(v)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: field.Key},
			val,
		)
	}
	return node, nil
}

// UnmarshalYAML accepts either a registry name or a mapping of the wire fields.
func (s *AckSpec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		return s.UnmarshalText([]byte(value.Value))
	case yaml.MappingNode:
	default:
		return wrapError(ErrInvalidArgument, fmt.Sprintf("write concern must be a name or a mapping, line %d", value.Line))
	}

	var doc wire.Document
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		val := value.Content[i+1]

		if !wire.IsKnownField(key) {
			return wrapError(ErrInvalidArgument, fmt.Sprintf("unknown write concern field %s, line %d", key, value.Content[i].Line))
		}

		v, err := decodeYAMLWireValue(key, val)
		if err != nil {
			return err
		}
		doc = doc.With(key, v)
	}

	spec, err := FromWireDocument(doc)
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

func decodeYAMLWireValue(key string, val *yaml.Node) (interface{}, error) {
	switch val.ShortTag() {
	case "!!int":
		var n int32
		if err := val.Decode(&n); err != nil {
			return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("invalid value for %s, line %d: %s", key, val.Line, err))
		}
		return n, nil
	case "!!bool":
		var b bool
		if err := val.Decode(&b); err != nil {
			return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("invalid value for %s, line %d: %s", key, val.Line, err))
		}
		return b, nil
	case "!!str":
		return val.Value, nil
	}
	return nil, wrapError(ErrInvalidArgument, fmt.Sprintf("unsupported value for %s, line %d", key, val.Line))
}
