package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone. Stored and serialized as "2006-01-02".
type Date struct {
	t time.Time
}

// NewDate returns the Date for year/month/day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses "2006-01-02".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. Drivers hand back time.Time for date columns, sqlite may hand back text.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return errors.New("unsupported type for Date")
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	if d.t.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// GormDataType keeps migrations on a date column for every dialect.
func (Date) GormDataType() string {
	return "date"
}

// DatesOverlap reports whether the inclusive ranges [aStart,aEnd] and [bStart,bEnd] share a day.
func DatesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}

// OpenDatesOverlap is DatesOverlap where a nil end means the range never ends.
func OpenDatesOverlap(aStart Date, aEnd *Date, bStart Date, bEnd *Date) bool {
	if aEnd != nil && bStart.After(*aEnd) {
		return false
	}
	if bEnd != nil && aStart.After(*bEnd) {
		return false
	}
	return true
}

// PeriodsOverlap is the timestamp-granular form of OpenDatesOverlap.
func PeriodsOverlap(aStart time.Time, aEnd *time.Time, bStart time.Time, bEnd *time.Time) bool {
	if aEnd != nil && bStart.After(*aEnd) {
		return false
	}
	if bEnd != nil && aStart.After(*bEnd) {
		return false
	}
	return true
}
