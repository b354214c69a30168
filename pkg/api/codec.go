package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// CodecName is the Connect codec name; it maps to Content-Type application/json.
const CodecName = "json"

// Codec is a strict JSON codec for the api messages. Unknown fields and
// trailing data are rejected. An empty body decodes as the zero message.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(msg); err != nil {
		return fmt.Errorf("decode %T: %w", msg, err)
	}
	if dec.More() {
		return errors.New("unexpected data after JSON message")
	}
	return nil
}
