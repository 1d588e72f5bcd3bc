package listing

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a primitive filter value as it will appear in the query string.
// The zero Value is unset and is never serialized.
type Value struct {
	raw string
	set bool
}

// Patch is a partial update merged into the current FilterState.
type Patch map[string]Value

// String returns a Value carrying s verbatim, including the empty string.
func String(s string) Value {
	return Value{raw: s, set: true}
}

// Int returns a Value carrying the decimal form of n.
func Int(n int) Value {
	return Value{raw: strconv.Itoa(n), set: true}
}

// Bool returns a Value carrying "true" or "false".
func Bool(b bool) Value {
	return Value{raw: strconv.FormatBool(b), set: true}
}

// Unset returns the value that removes its key on merge.
func Unset() Value {
	return Value{}
}

// FromAny converts a decoded JSON scalar into a Value. nil maps to Unset.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Unset()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int64:
		return String(strconv.FormatInt(t, 10))
	case float64:
		return String(strconv.FormatFloat(t, 'f', -1, 64))
	case json.Number:
		return String(t.String())
	default:
		return String(fmt.Sprint(t))
	}
}

// IsSet reports whether the value will be serialized.
func (v Value) IsSet() bool {
	return v.set
}

// String returns the serialized form. Unset values return "".
func (v Value) String() string {
	return v.raw
}

// hasContent reports whether the value is set and not the empty string.
func (v Value) hasContent() bool {
	return v.set && v.raw != ""
}
