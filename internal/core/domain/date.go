package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const dateLayout = "2006-01-02"

const day = 24 * time.Hour

// Date is a rental calendar date. Plain dates travel as "2006-01-02"; values
// that carry a time of day (older clients sent ISO timestamps) keep it so the
// billed-day rounding stays faithful.
type Date struct {
	t time.Time
}

// NewDate returns midnight UTC of the given calendar day.
func NewDate(year int, month time.Month, d int) Date {
	return Date{t: time.Date(year, month, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	if d.isCalendarDay() {
		return d.t.Format(dateLayout)
	}
	return d.t.Format(time.RFC3339)
}

// CalendarString is the calendar day in the date's own zone, with any time of
// day dropped. The backend takes order dates in this form only.
func (d Date) CalendarString() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) isCalendarDay() bool {
	h, m, s := d.t.Clock()
	_, offset := d.t.Zone()
	return h == 0 && m == 0 && s == 0 && d.t.Nanosecond() == 0 && offset == 0
}

// DaysUntil returns the span to end in whole days, rounded up.
func (d Date) DaysUntil(end Date) int {
	return int(math.Ceil(float64(end.t.Sub(d.t)) / float64(day)))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
