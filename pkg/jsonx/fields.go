package jsonx

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Record decodes the first value of payload and returns it for field by
// field reads. It returns false when the payload is malformed or is not an
// object.
func Record(payload string) (gjson.Result, bool) {
	var raw json.RawMessage
	if DecodeFirst(payload, &raw) != nil {
		return gjson.Result{}, false
	}
	rec := gjson.ParseBytes(raw)
	if !rec.IsObject() {
		return gjson.Result{}, false
	}
	return rec, true
}

// String returns v when it is a JSON string, else "".
func String(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}

// Int returns v when it is a JSON number, else 0. Fractions are truncated.
func Int(v gjson.Result) int {
	if v.Type != gjson.Number {
		return 0
	}
	return int(v.Int())
}

// Float returns v when it is a JSON number, else 0.
func Float(v gjson.Result) float64 {
	if v.Type != gjson.Number {
		return 0
	}
	return v.Float()
}

// OptString is String for optional fields: nil unless v is a JSON string.
func OptString(v gjson.Result) *string {
	if v.Type != gjson.String {
		return nil
	}
	s := v.String()
	return &s
}

// OptInt is Int for optional fields: nil unless v is a JSON number.
func OptInt(v gjson.Result) *int {
	if v.Type != gjson.Number {
		return nil
	}
	n := int(v.Int())
	return &n
}

// OptFloat is Float for optional fields: nil unless v is a JSON number.
func OptFloat(v gjson.Result) *float64 {
	if v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}

// OptBool is nil unless v is a JSON boolean.
func OptBool(v gjson.Result) *bool {
	if !v.IsBool() {
		return nil
	}
	b := v.Bool()
	return &b
}
