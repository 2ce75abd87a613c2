// Package jsonx decodes the JSON payloads carried by Kagi stream records.
package jsonx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty is returned when a payload holds no JSON value at all.
var ErrEmpty = errors.New("empty payload")

// DecodeFirst decodes the first top-level JSON value of payload into v.
// Anything after that value (a trailing newline, a second document, stray
// bytes) is ignored.
func DecodeFirst(payload string, v any) error {
	if strings.TrimSpace(payload) == "" {
		return ErrEmpty
	}

	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	return nil
}

// DecodeReader decodes the first JSON value read from r into v.
func DecodeReader(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmpty
		}
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// Object decodes the first value of payload as a JSON object. It returns
// false when the payload is malformed or is not an object.
func Object(payload string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := DecodeFirst(payload, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}
