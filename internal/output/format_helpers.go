package output

import (
	"strconv"

	"github.com/shakaihoken/premium-calculator/pkg/yen"
	"github.com/shopspring/decimal"
)

// FormatYen formats whole yen with thousands separators, e.g. ¥1,234,000.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatYen(amount int64) string { return yen.Format(amount) }

// FormatRate formats a contribution rate fraction as a percentage with 3 decimals (0.0499 -> 4.990%).
func FormatRate(rate decimal.Decimal) string { return rate.Mul(decimalHundred).StringFixed(3) + "%" }

// FormatGrade renders a grade number, or "-" when no grade applied.
func FormatGrade(grade int) string {
	if grade == 0 {
		return "-"
	}
	return strconv.Itoa(grade)
}

func intToString(i int) string { return strconv.Itoa(i) }

func int64ToString(i int64) string { return strconv.FormatInt(i, 10) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
