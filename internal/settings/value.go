package settings

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// ValueType tags the shape of a stored config value.
type ValueType string

// The closed set of value tags persisted in the configs table.
const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeObject  ValueType = "object"
	TypeNull    ValueType = "null"
)

// TaggedValue is the persisted envelope for a config value.
type TaggedValue struct {
	Type  ValueType `json:"type"`
	Value any       `json:"value"`
}

// TagOf derives the value tag from a JSON-decoded value.
func TagOf(value any) ValueType {
	switch value.(type) {
	case nil:
		return TypeNull
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case float64, float32, int, int64, uint64, json.Number:
		return TypeNumber
	default:
		return TypeObject
	}
}

// EncodeValue wraps a value in its tagged envelope for storage.
func EncodeValue(value any) (datatypes.JSON, error) {
	raw, err := json.Marshal(TaggedValue{Type: TagOf(value), Value: value})
	if err != nil {
		return nil, fmt.Errorf("settings: encode value: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// DecodeValue unwraps a stored tagged envelope and returns the value.
func DecodeValue(raw datatypes.JSON) (any, error) {
	var tagged TaggedValue
	if err := json.Unmarshal(raw, &tagged); err != nil {
		return nil, fmt.Errorf("settings: decode value: %w", err)
	}
	return tagged.Value, nil
}
