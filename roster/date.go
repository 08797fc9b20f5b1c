package roster

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granular calendar date
// =============================================================================
// Every date in the model (hire dates, record dates) is day-granular and
// serializes as "2006-01-02", the format the original console used for its
// ISO date strings.

const dateLayout = "2006-01-02"

type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

func (d Date) String() string { return d.Time.Format(dateLayout) }

// OnOrBefore reports whether d is on or before the instant t.
func (d Date) OnOrBefore(t time.Time) bool { return !d.Time.After(t) }

// StrictlyAfter reports whether d is strictly after the instant t.
func (d Date) StrictlyAfter(t time.Time) bool { return d.Time.After(t) }

// MonthIndex returns a sortable scalar for the calendar month this date
// falls in (year*12 + month).
func (d Date) MonthIndex() int {
	return d.Year()*12 + int(d.Month()) - 1
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date value %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
