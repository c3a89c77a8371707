package converter

import (
	"encoding/json"
	"fmt"
)

// Codec serializes the document-valued portfolio columns (holdings, target
// state, user/RM details). It is injected rather than shared process-wide so
// callers can swap the encoding without touching repositories.
type Codec interface {
	Marshal(v any) (string, error)
	Unmarshal(data string, v any) error
}

type jsonCodec struct{}

func NewJSONCodec() Codec {
	return jsonCodec{}
}

func (jsonCodec) Marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to serialize json column: %w", err)
	}
	return string(b), nil
}

func (jsonCodec) Unmarshal(data string, v any) error {
	if data == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return fmt.Errorf("failed to deserialize json column: %w", err)
	}
	return nil
}
