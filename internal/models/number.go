package models

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Number is a float that decodes leniently: JSON numbers, numeric strings,
// "" and null are all accepted, and anything that does not start with a
// number decodes as 0. It always encodes as a plain JSON number.
type Number float64

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading numeric part of s. Input without one, or a
// result that is not finite, yields 0.
func ParseNumber(s string) float64 {
	m := numericPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Float returns n as a float64, mapping NaN and infinities to 0.
func (n Number) Float() float64 {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Float())
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*n = 0
			return nil
		}
		*n = Number(ParseNumber(s))
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			// true/false, objects and arrays carry no number
			*n = 0
			return nil
		}
		*n = Number(f)
	}
	return nil
}
