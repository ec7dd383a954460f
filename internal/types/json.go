package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexID accepts a JSON string or number and canonicalizes it to a string.
// Clients send millisecond epoch timestamps as numeric identifiers; storage
// treats identifiers as opaque strings.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n.String())
		return nil
	}

	return fmt.Errorf("id: must be a string or a number, got %s", data)
}

// DateOnly is a calendar date on the wire, formatted YYYY-MM-DD.
type DateOnly struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha: expected a YYYY-MM-DD string, got %s", data)
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("fecha: invalid date %q, expected YYYY-MM-DD", s)
	}

	d.Time = t
	return nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateLayout))
}

// ClockTime is a time of day on the wire. Accepts HH:MM and HH:MM:SS,
// always emits HH:MM.
type ClockTime string

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("hora: expected a HH:MM string, got %s", data)
	}

	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*c = ClockTime(t.Format("15:04"))
			return nil
		}
	}

	return fmt.Errorf("hora: invalid time %q, expected HH:MM or HH:MM:SS", s)
}
