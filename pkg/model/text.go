package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a display value that clients send either as a JSON string or as a
// bare number. Numbers keep their literal form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected a string or number: %w", err)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}
