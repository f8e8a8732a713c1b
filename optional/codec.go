package optional

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

var errMissingValueField = errors.New("optional: missing 'value' field in JSON")

// FromPointer converts a pointer into a Value: nil becomes None, anything
// else becomes Some of the pointed-to value.
func FromPointer[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}

	return Some(*p)
}

// Pointer converts the Value into a pointer: None becomes nil, Some becomes
// a pointer to a copy of the value.
func (o Value[T]) Pointer() *T {
	if !o.isSet {
		return nil
	}

	value := o.value

	return &value
}

// MarshalJSON implements json.Marshaler.
// None is marshaled as null, Some(value) as {"value": ...}.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.isSet {
		return []byte("null"), nil
	}

	return json.Marshal(map[string]T{"value": o.value})
}

// UnmarshalJSON implements json.Unmarshaler.
// null becomes None, {"value": ...} becomes Some(value).
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()

		return nil
	}

	var wrapper map[string]T
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return err
	}

	value, ok := wrapper["value"]
	if !ok {
		return errMissingValueField
	}

	*o = Some(value)

	return nil
}

// MarshalYAML implements yaml.Marshaler. None is marshaled as null and Some
// as the bare value, so optional fields read naturally in config files.
func (o Value[T]) MarshalYAML() (any, error) {
	if !o.isSet {
		return nil, nil //nolint:nilnil
	}

	return o.value, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. A null (or absent) node becomes
// None; any other node is decoded as the value itself.
func (o *Value[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*o = None[T]()

		return nil
	}

	var value T
	if err := node.Decode(&value); err != nil {
		return err
	}

	*o = Some(value)

	return nil
}
