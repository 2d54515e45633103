package hook

import "encoding/json"

// Value is a loosely-typed JSON value. Accessors never fail loudly: a missing
// key or a value of the wrong shape reports ok=false.
type Value struct {
	v any
}

// NewValue wraps an already-decoded JSON value (map[string]any, []any, string...).
func NewValue(v any) Value {
	return Value{v: v}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.v = raw
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.v)
}

// IsZero reports whether the value is absent or JSON null.
func (v Value) IsZero() bool {
	return v.v == nil
}

// Raw returns the underlying decoded value.
func (v Value) Raw() any {
	return v.v
}

// Field returns the member key of an object value, or a zero Value.
func (v Value) Field(key string) Value {
	obj, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	return Value{v: obj[key]}
}

// Text returns the value as a string.
func (v Value) Text() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// Str is shorthand for v.Field(key).Text().
func (v Value) Str(key string) (string, bool) {
	return v.Field(key).Text()
}

// Array returns the elements of an array value.
func (v Value) Array() ([]Value, bool) {
	arr, ok := v.v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{v: e}
	}
	return out, true
}

// FirstPresent returns the member of the first of keys present in an object
// value, whatever its content. Empty and non-string members are not skipped.
func (v Value) FirstPresent(keys ...string) Value {
	obj, ok := v.v.(map[string]any)
	if !ok {
		return Value{}
	}
	for _, k := range keys {
		if m, ok := obj[k]; ok {
			return Value{v: m}
		}
	}
	return Value{}
}

// OptStr returns a pointer to the string under key, or nil when absent.
// Used where "absent" and "empty" must stay distinguishable.
func (v Value) OptStr(key string) *string {
	s, ok := v.Str(key)
	if !ok {
		return nil
	}
	return &s
}
