package calculation

import (
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/yen"
	"github.com/shopspring/decimal"
)

// Calc splits the premium on base. The employee share follows the payroll deduction
// rule on the hundredths digit of rate*base (below 5 truncated, otherwise rounded up);
// the employer share is truncated. Total is the sum of the two shares, never rounded on its own.
func Calc(rate domain.RatePair, base decimal.Decimal) domain.PremiumBreakdown {
	amount := yen.FromDecimal(base)
	employee := amount.Mul(rate.Employee).RoundHundredths().Int64()
	company := amount.Mul(rate.Company).Floor().Int64()
	return domain.PremiumBreakdown{
		Employee: employee,
		Company:  company,
		Total:    employee + company,
	}
}
