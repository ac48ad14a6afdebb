package yen

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Yen represents a yen amount that may carry sen (fractions) until it is rounded
type Yen struct {
	decimal.Decimal
}

var (
	thousand = decimal.NewFromInt(1000)
	hundred  = decimal.NewFromInt(100)
	ten      = decimal.NewFromInt(10)
	five     = decimal.NewFromInt(5)
)

// New creates a Yen amount from whole yen
func New(value int64) Yen {
	return Yen{decimal.NewFromInt(value)}
}

// FromDecimal creates a Yen amount from a decimal.Decimal
func FromDecimal(d decimal.Decimal) Yen {
	return Yen{d}
}

// FromString creates a Yen amount from a string such as "1234.56"
func FromString(value string) (Yen, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Yen{}, err
	}
	return Yen{d}, nil
}

// Zero returns a zero amount
func Zero() Yen {
	return Yen{decimal.Zero}
}

// Floor truncates the sen part
func (y Yen) Floor() Yen {
	return Yen{y.Decimal.Floor()}
}

// Ceil rounds any sen part up to the next yen
func (y Yen) Ceil() Yen {
	return Yen{y.Decimal.Ceil()}
}

// RoundHundredths applies the payroll deduction rule on the hundredths digit of the
// amount: below 5 the sen are truncated, otherwise the amount is rounded up to one yen.
// 1000.60 becomes 1000 and 1000.05 becomes 1001.
func (y Yen) RoundHundredths() Yen {
	digit := y.Decimal.Mul(hundred).Floor().Mod(ten)
	if digit.LessThan(five) {
		return Yen{y.Decimal.Floor()}
	}
	return Yen{y.Decimal.Ceil()}
}

// FloorThousand truncates to the nearest thousand yen (standard bonus amount)
func (y Yen) FloorThousand() Yen {
	return Yen{y.Decimal.Div(thousand).Floor().Mul(thousand)}
}

// Mul multiplies by a decimal factor such as a contribution rate
func (y Yen) Mul(factor decimal.Decimal) Yen {
	return Yen{y.Decimal.Mul(factor)}
}

// Add adds another amount
func (y Yen) Add(other Yen) Yen {
	return Yen{y.Decimal.Add(other.Decimal)}
}

// Sub subtracts another amount
func (y Yen) Sub(other Yen) Yen {
	return Yen{y.Decimal.Sub(other.Decimal)}
}

// Int64 returns the whole-yen value; callers round first
func (y Yen) Int64() int64 {
	return y.Decimal.IntPart()
}

// Min returns the smaller of two amounts
func Min(a, b Yen) Yen {
	if a.LessThan(b.Decimal) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b Yen) Yen {
	if a.GreaterThan(b.Decimal) {
		return a
	}
	return b
}

// String returns the amount with sen only when present
func (y Yen) String() string {
	return y.Decimal.String()
}

// Format renders whole yen with thousands separators, e.g. ¥1,234,000
func Format(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := decimal.NewFromInt(amount).String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-¥" + b.String()
	}
	return "¥" + b.String()
}
