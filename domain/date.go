package domain

import (
	"fmt"
	"time"
)

const plainDateLayout = "2006-01-02"

// PlainDate is a calendar date with year/month/day precision and no
// time-of-day or zone component. Backends store it however they like but must
// round-trip it losslessly.
type PlainDate struct {
	Year  int        `json:"-"`
	Month time.Month `json:"-"`
	Day   int        `json:"-"`
}

// ParsePlainDate is the single parsing boundary for incoming date strings.
// Expects strict YYYY-MM-DD with two-digit month and day.
func ParsePlainDate(s string) (PlainDate, error) {
	t, err := time.Parse(plainDateLayout, s)
	if err != nil {
		return PlainDate{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return PlainDateOf(t), nil
}

// PlainDateOf truncates a time.Time to its calendar date.
func PlainDateOf(t time.Time) PlainDate {
	return PlainDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d PlainDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

func (d PlainDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time returns the date at UTC midnight, for backends with native date types.
func (d PlainDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d PlainDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *PlainDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*d = PlainDate{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date literal %s: expected a YYYY-MM-DD string", s)
	}
	parsed, err := ParsePlainDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
