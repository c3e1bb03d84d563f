package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// ISODate is the wire and storage format for calendar dates.
const ISODate = "2006-01-02"

// Date is a day-granular calendar date. Time-of-day and timezone are
// ignored: internally every Date is midnight UTC, so the embedded
// time.Time comparisons compare calendar days.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date in YYYY-MM-DD form.
func (d Date) String() string {
	return d.Format(ISODate)
}

// AddDays returns the date n calendar days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(ISODate) + `"`), nil
}

// UnmarshalJSON accepts a YYYY-MM-DD string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
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

// Value implements driver.Valuer so a Date binds as a DATE column value.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Format(ISODate), nil
}

// Scan implements sql.Scanner. MySQL drivers hand DATE columns back as
// time.Time (parseTime=True) or raw bytes; both are normalized to
// midnight UTC.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date{time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)}
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// GormDataType maps Date to a DATE column.
func (Date) GormDataType() string {
	return "date"
}

// DateRange is an inclusive interval of calendar days. Both endpoints
// are part of the range, so Start == End is a valid single-day range.
type DateRange struct {
	Start Date
	End   Date
}

// Valid reports whether the range is well-formed (start on or before
// end). Reversed ranges are a caller error and are never corrected
// silently.
func (r DateRange) Valid() bool {
	return !r.Start.After(r.End.Time)
}

// Overlaps reports whether two inclusive day ranges share at least one
// day: a1 <= b2 AND b1 <= a2. Ranges touching on a single boundary day
// overlap; this is the one overlap predicate used everywhere.
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End.Time) && !other.Start.After(r.End.Time)
}

// Clamp narrows the range to the given window. The caller is expected
// to have checked Overlaps first; a disjoint window yields an invalid
// range.
func (r DateRange) Clamp(window DateRange) DateRange {
	out := r
	if out.Start.Before(window.Start.Time) {
		out.Start = window.Start
	}
	if out.End.After(window.End.Time) {
		out.End = window.End
	}
	return out
}

// Days returns every day in the range in order, both endpoints
// included. A single-day range yields one element.
func (r DateRange) Days() []Date {
	if !r.Valid() {
		return nil
	}
	var days []Date
	for d := r.Start; !d.After(r.End.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}
