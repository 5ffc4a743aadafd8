package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a numeric field that the API sends either as a JSON number, a
// numeric string or null. A string that is not a finite number decodes to zero.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*n = 0
		return nil
	case bytes.Equal(data, []byte("true")):
		*n = 1
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode numeric string: %w", err)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}

	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	*n = Number(f)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

// Text is a string field that may arrive as a number (vendor codes do).
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode string: %w", err)
		}
		*t = Text(s)
	case '{', '[':
		return fmt.Errorf("expected scalar, got %s", data)
	default:
		// numbers and booleans keep their literal form
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Flag decodes JSON truthiness: true, non-zero numbers and non-empty strings.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 {
		*f = false
		return nil
	}

	switch data[0] {
	case 't':
		*f = true
	case 'f', 'n':
		*f = false
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode flag: %w", err)
		}
		*f = s != ""
	case '[':
		*f = Flag(!bytes.Equal(bytes.Join(bytes.Fields(data), nil), []byte("[]")))
	case '{':
		*f = Flag(!bytes.Equal(bytes.Join(bytes.Fields(data), nil), []byte("{}")))
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid flag %s: %w", data, err)
		}
		*f = v != 0
	}
	return nil
}

// Labels is a list of display labels. Elements may be plain strings or objects
// carrying a title (or name); other element kinds are ignored.
type Labels []string

func (l *Labels) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	*l = Labels{}
	if len(data) == 0 || data[0] != '[' {
		return nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return fmt.Errorf("failed to decode labels: %w", err)
	}

	for _, element := range elements {
		element = bytes.TrimSpace(element)
		if len(element) == 0 {
			continue
		}

		switch element[0] {
		case '"':
			var s string
			if err := json.Unmarshal(element, &s); err == nil {
				*l = append(*l, s)
			}
		case '{':
			var obj struct {
				Title Text `json:"title"`
				Name  Text `json:"name"`
			}
			if err := json.Unmarshal(element, &obj); err != nil {
				continue
			}
			if obj.Title != "" {
				*l = append(*l, obj.Title.String())
			} else if obj.Name != "" {
				*l = append(*l, obj.Name.String())
			}
		}
	}
	return nil
}
