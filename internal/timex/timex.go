// Package timex holds small time types with JSON encodings used by config
// files and by the event API.
package timex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Duration wraps time.Duration so JSON can carry either a Go duration
// string ("3s", "1m30s") or an integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// LocalLayout is the zone-less timestamp format the event API speaks.
const LocalLayout = "2006-01-02T15:04:05"

// DateLayout is the calendar-day format used for user input.
const DateLayout = "2006-01-02"

var localLayouts = []string{
	LocalLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	DateLayout,
}

// LocalTime is a wall-clock timestamp without a zone. Values are kept in UTC
// so that day arithmetic never shifts across a DST boundary.
type LocalTime struct {
	time.Time
}

// NewLocalTime drops the zone of t, keeping its wall-clock reading.
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseLocal accepts the API layout, fractional seconds, RFC 3339 and a bare date.
func ParseLocal(s string) (LocalTime, error) {
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewLocalTime(t), nil
		}
	}
	return LocalTime{}, fmt.Errorf("invalid timestamp %q", s)
}

// MustLocal is ParseLocal for literals; it panics on malformed input.
func MustLocal(s string) LocalTime {
	t, err := ParseLocal(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Day truncates to midnight of the same calendar day.
func (t LocalTime) Day() LocalTime {
	return LocalTime{Time: time.Date(t.Year(), t.Month(), t.Time.Day(), 0, 0, 0, 0, time.UTC)}
}

// Noon returns midday of the same calendar day; guesses are submitted at noon.
func (t LocalTime) Noon() LocalTime {
	return LocalTime{Time: time.Date(t.Year(), t.Month(), t.Time.Day(), 12, 0, 0, 0, time.UTC)}
}

func (t LocalTime) String() string {
	return t.Format(LocalLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(LocalLayout))
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseLocal(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
