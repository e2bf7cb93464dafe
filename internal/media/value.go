package media

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a single scalar track attribute: either a string or a number.
// The zero Value is the empty string. Values are comparable with ==, and a
// string never compares equal to a number even when their renderings match.
type Value struct {
	str   string
	num   float64
	isNum bool
}

// String constructs a string-valued attribute.
func String(s string) Value {
	return Value{str: s}
}

// Number constructs a numeric attribute.
func Number(n float64) Value {
	return Value{num: n, isNum: true}
}

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool {
	return v.isNum
}

// Number returns the numeric value and whether the value is numeric.
func (v Value) Number() (float64, bool) {
	return v.num, v.isNum
}

// Text returns the string value. It is empty for numeric values.
func (v Value) Text() string {
	if v.isNum {
		return ""
	}
	return v.str
}

// IsEmpty reports whether the value is the empty string. Numbers, including
// zero, are never empty.
func (v Value) IsEmpty() bool {
	return !v.isNum && v.str == ""
}

// String renders the value for display. Numbers use the shortest exact
// decimal representation (29.97 renders as "29.97", 8666688 as "8666688").
func (v Value) String() string {
	if v.isNum {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
	return v.str
}

// MarshalJSON encodes strings as JSON strings and numbers as JSON numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.isNum {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.str)
}

// UnmarshalJSON accepts JSON strings and numbers. Any other JSON type
// violates the flat-scalar track invariant and is rejected.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = String(t)
	case float64:
		*v = Number(t)
	default:
		return fmt.Errorf("track attribute must be a string or number, got %T", raw)
	}
	return nil
}
