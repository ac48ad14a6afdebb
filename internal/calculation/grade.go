package calculation

import (
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// LookupGrade returns the first bracket with lower <= amount < upper. A negative amount,
// an empty table or an amount outside every bracket yields false; callers treat that
// as a zero premium for the insurance type.
func LookupGrade(amount decimal.Decimal, grades []domain.SalaryGrade) (domain.SalaryGrade, bool) {
	if amount.IsNegative() {
		return domain.SalaryGrade{}, false
	}
	for _, g := range grades {
		if g.Contains(amount) {
			return g, true
		}
	}
	return domain.SalaryGrade{}, false
}

// GradeByNumber returns the bracket with the given grade number
func GradeByNumber(grade int, grades []domain.SalaryGrade) (domain.SalaryGrade, bool) {
	for _, g := range grades {
		if g.Grade == grade {
			return g, true
		}
	}
	return domain.SalaryGrade{}, false
}
