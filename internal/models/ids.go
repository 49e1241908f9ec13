package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ID is a backend identifier that may arrive as a JSON string or number.
// It always marshals back as a string.
type ID string

// UnmarshalJSON accepts "abc", 42, and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("models: id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the identifier text.
func (id ID) String() string { return string(id) }

// Timestamp holds a backend time value. Values that do not parse as RFC 3339
// or as a Slack epoch ("1700000000.000100") are kept verbatim in Raw.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// UnmarshalJSON accepts RFC 3339 strings, epoch numbers, epoch strings, and
// arbitrary text.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = Timestamp{}
	if bytes.Equal(b, []byte("null")) || len(b) == 0 {
		return nil
	}
	if b[0] != '"' {
		t.Raw = string(b)
		if ts, ok := parseEpoch(t.Raw); ok {
			t.Time = ts
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTimestamp(s)
	return nil
}

// MarshalJSON writes parsed times as RFC 3339 and anything else verbatim.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Time.IsZero() {
		return json.Marshal(t.Time.UTC().Format(time.RFC3339))
	}
	if t.Raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.Raw)
}

// ParseTimestamp interprets s the same way UnmarshalJSON does for strings.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	t := Timestamp{Raw: s}
	if s == "" {
		return t
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t.Time = ts
		return t
	}
	if ts, ok := parseEpoch(s); ok {
		t.Time = ts
	}
	return t
}

// String renders the time for display, or the raw text, or "—" when empty.
func (t Timestamp) String() string {
	if !t.Time.IsZero() {
		return t.Time.UTC().Format("2006-01-02 15:04 UTC")
	}
	if t.Raw != "" {
		return t.Raw
	}
	return "—"
}

// IsZero reports whether no value was supplied.
func (t Timestamp) IsZero() bool { return t.Time.IsZero() && t.Raw == "" }

func parseEpoch(s string) (time.Time, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return time.Time{}, false
	}
	sec := int64(f)
	nsec := int64((f - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC(), true
}
