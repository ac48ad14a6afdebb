package calculation

import "time"

// Clock supplies the calculation timestamp. Records carry it as CalculatedAt; nothing
// else in a calculation depends on the current time.
type Clock func() time.Time

// SystemClock returns the current UTC time.
func SystemClock() time.Time { return time.Now().UTC() }

// FixedClock always returns t (tests and reproducible CLI output).
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
