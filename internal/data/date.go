package data

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDateFormat is returned when a JSON date is not "YYYY-MM-DD".
var ErrInvalidDateFormat = errors.New(`invalid date format, expected "YYYY-MM-DD"`)

// Date is a calendar date with no time-of-day or zone. It is stored as UTC
// midnight so two Dates for the same day compare equal.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDateFormat
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return ErrInvalidDateFormat
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Value writes the date as "YYYY-MM-DD", which both postgres date columns and
// SQLite text dates accept.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepts the time.Time the drivers produce for date columns as well as
// the raw text SQLite returns when it has no declared column type.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v.Year(), v.Month(), v.Day())
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanText(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("cannot scan %q into Date", s)
	}

	parsed, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date: %w", s, err)
	}

	*d = Date{parsed}
	return nil
}
