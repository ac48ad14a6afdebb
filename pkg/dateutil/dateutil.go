package dateutil

import (
	"fmt"
	"time"
)

// YearMonthLayout is the wire format of a YearMonth ("2006-01")
const YearMonthLayout = "2006-01"

// YearMonth identifies a calendar month. The zero value means "not set".
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth builds a YearMonth, normalizing months outside 1..12
func NewYearMonth(year int, month time.Month) YearMonth {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "YYYY-MM"
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// MustYearMonth parses "YYYY-MM" and panics on error (tests and fixtures only)
func MustYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// IsZero reports whether the month is unset
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Start returns the first day of the month (UTC)
func (ym YearMonth) Start() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month (UTC, midnight)
func (ym YearMonth) End() time.Time {
	return ym.Start().AddDate(0, 1, -1)
}

// AddMonths shifts the month by n (negative allowed)
func (ym YearMonth) AddMonths(n int) YearMonth {
	return NewYearMonth(ym.Year, ym.Month+time.Month(n))
}

// Index returns a monotonically increasing month number, useful for differences
func (ym YearMonth) Index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

// Before reports whether ym is strictly earlier than other
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// After reports whether ym is strictly later than other
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Index() > other.Index()
}

// Between reports whether from <= ym <= to
func (ym YearMonth) Between(from, to YearMonth) bool {
	return !ym.Before(from) && !ym.After(to)
}

// String formats as "YYYY-MM"
func (ym YearMonth) String() string {
	if ym.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MarshalText implements encoding.TextMarshaler
func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; an empty value leaves the month unset
func (ym *YearMonth) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*ym = YearMonth{}
		return nil
	}
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// MonthsBetween returns to - from in months
func MonthsBetween(from, to YearMonth) int {
	return to.Index() - from.Index()
}

// AttainmentDate returns the date on which a person born on birthDate legally attains
// age n: the day before the n-th birthday.
func AttainmentDate(birthDate time.Time, n int) time.Time {
	birthday := time.Date(birthDate.Year()+n, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, time.UTC)
	// Feb 29 births normalise to Mar 1 in common years, so the day before is Feb 28.
	return birthday.AddDate(0, 0, -1)
}

// AttainmentMonth returns the month in which age n is attained
func AttainmentMonth(birthDate time.Time, n int) YearMonth {
	return MonthOf(AttainmentDate(birthDate, n))
}

// InAgeWindow reports whether month lies in [AttainmentMonth(from), AttainmentMonth(to))
func InAgeWindow(birthDate time.Time, month YearMonth, from, to int) bool {
	return !month.Before(AttainmentMonth(birthDate, from)) && month.Before(AttainmentMonth(birthDate, to))
}

// StatutoryAge returns the age reached by the end of the given month
func StatutoryAge(birthDate time.Time, month YearMonth) int {
	age := month.Year - birthDate.Year() + 1
	for age > 0 && AttainmentMonth(birthDate, age).After(month) {
		age--
	}
	return age
}

// Age calculates the civil age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FiscalYear returns the April-March fiscal year that contains month
func FiscalYear(month YearMonth) int {
	if month.Month >= time.April {
		return month.Year
	}
	return month.Year - 1
}

// FiscalYearStart returns April of the fiscal year that contains month
func FiscalYearStart(month YearMonth) YearMonth {
	return YearMonth{Year: FiscalYear(month), Month: time.April}
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
