package models

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrUnknownField indicates a field name that the target form does not define.
var ErrUnknownField = errors.New("unknown form field")

// ErrorMap maps a field key to the message displayed next to it. Keys of nested rows
// are namespaced as "<list>[<index>].<field>".
type ErrorMap map[string]string

// Valid reports whether the map carries no errors.
func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// NoticeLevel classifies a transient notification shown after an operation.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is the payload of a toast-style notification.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// NavigationCommand asks the view to move to another section of the console.
type NavigationCommand struct {
	Target string `json:"target"`
}

// Option is one entry of a select list. Entries carrying Navigate do not set a value;
// the view follows the command instead.
type Option struct {
	Label    string             `json:"label"`
	Value    string             `json:"value,omitempty"`
	Navigate *NavigationCommand `json:"navigate,omitempty"`
}

// SubmitOutcome reports what a submit attempt did.
type SubmitOutcome struct {
	Submitted bool     `json:"submitted"`
	Errors    ErrorMap `json:"errors,omitempty"`
	Notice    *Notice  `json:"notice,omitempty"`
	// Refresh tells the parent list to reload.
	Refresh bool `json:"refresh"`
}

// NumericText holds user-entered numeric input verbatim. It decodes from either a JSON
// string or a JSON number so records seeded from the backend keep their values.
type NumericText string

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumericText) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*n = ""
	case strings.HasPrefix(raw, `"`):
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		*n = NumericText(unquoted)
	default:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return err
		}
		*n = NumericText(raw)
	}
	return nil
}

// Bound is a numeric limit that the backend may send as a number or a numeric string.
// Missing or empty values decode to zero.
type Bound float64

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bound) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*b = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	*b = Bound(f)
	return nil
}

const dateLayout = "2006-01-02"

// NormalizeDate reduces a timestamp to the YYYY-MM-DD form used by date inputs.
// Values that are not recognisable dates are returned unchanged.
func NormalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC().Format(dateLayout)
	}
	if len(value) >= len(dateLayout) {
		if t, err := time.Parse(dateLayout, value[:len(dateLayout)]); err == nil {
			return t.Format(dateLayout)
		}
	}
	return value
}
