// Package dates parses the calendar dates accepted on the pypin command line.
//
// A target date may be written in any of nine layouts (see [Formats]). The
// first layout that consumes the whole string wins, so "01-02-2020" is read
// day-first (1 February) while "01/02/2020" is read month-first (2 January).
// Month names are English and case-insensitive; day and month numbers may
// omit the leading zero.
package dates

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pypin/pkg/errors"
)

// layout pairs a Go reference layout with the human-readable form shown to users.
type layout struct {
	ref  string
	name string
}

// layouts are tried in order; the first full match wins.
var layouts = []layout{
	{"2-1-2006", "DD-MM-YYYY"},
	{"2006-1-2", "YYYY-MM-DD"},
	{"1/2/2006", "MM/DD/YYYY"},
	{"2/1/2006", "DD/MM/YYYY"},
	{"2006/1/2", "YYYY/MM/DD"},
	{"Jan 2 2006", "Mon DD YYYY"},
	{"January 2 2006", "Month DD YYYY"},
	{"2 Jan 2006", "DD Mon YYYY"},
	{"2 January 2006", "DD Month YYYY"},
}

// Date is a calendar day with no time-of-day or zone.
// The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the Date for the given year, month and day. It does not
// normalize out-of-range values.
func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Of returns the calendar day of t in UTC.
func Of(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{Year: y, Month: m, Day: d}
}

// Parse reads text in one of the supported layouts. Surrounding whitespace is
// ignored. It returns an INVALID_DATE_FORMAT error listing the accepted
// layouts when none matches.
func Parse(text string) (Date, error) {
	s := strings.TrimSpace(text)
	for _, l := range layouts {
		if t, err := time.Parse(l.ref, s); err == nil {
			return Of(t), nil
		}
	}
	return Date{}, errors.New(errors.ErrCodeInvalidDateFormat,
		"could not parse date %q; supported formats: %s", text, strings.Join(Formats(), ", "))
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level values.
func MustParse(text string) Date {
	d, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return d
}

// Formats returns the accepted layouts in the order they are tried.
func Formats() []string {
	out := make([]string, len(layouts))
	for i, l := range layouts {
		out[i] = l.name
	}
	return out
}

// Time returns midnight UTC at the start of d. Releases uploaded at or before
// this instant count as published "as of" d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool { return d == Date{} }

// Before reports whether d is an earlier day than o.
func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d == o }

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler using the YYYY-MM-DD form.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting any supported layout.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
