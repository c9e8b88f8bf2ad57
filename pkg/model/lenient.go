package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Int, Float and Bool accept their JSON literal or the same value quoted as a
// string, the way form-driven clients submit fields. An empty string decodes
// to the zero value. All three store as plain BSON ints, doubles and bools.
type (
	Int   int
	Float float64
	Bool  bool
)

// scalar returns the raw token, unquoting it when it is a JSON string.
func scalar(data []byte) (string, bool, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(s), true, nil
	}
	return string(data), false, nil
}

func (i *Int) UnmarshalJSON(data []byte) error {
	s, _, err := scalar(data)
	if err != nil {
		return err
	}
	switch s {
	case "null", "":
		*i = 0
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 0); err == nil {
		*i = Int(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return fmt.Errorf("expected an integer, got %q", s)
	}
	*i = Int(f)
	return nil
}

func (f *Float) UnmarshalJSON(data []byte) error {
	s, _, err := scalar(data)
	if err != nil {
		return err
	}
	switch s {
	case "null", "":
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("expected a number, got %q", s)
	}
	*f = Float(v)
	return nil
}

func (b *Bool) UnmarshalJSON(data []byte) error {
	s, quoted, err := scalar(data)
	if err != nil {
		return err
	}
	if !quoted && s == "null" {
		*b = false
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		*b = true
	case "false", "0", "no", "":
		*b = false
	default:
		return fmt.Errorf("expected a boolean, got %q", s)
	}
	return nil
}

func IntPtr(v int) *Int { i := Int(v); return &i }

func FloatPtr(v float64) *Float { f := Float(v); return &f }

func BoolPtr(v bool) *Bool { b := Bool(v); return &b }
