package domain

import (
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Allowance is one line of monthly pay beyond the base amount
type Allowance struct {
	Name   string          `yaml:"name" json:"name"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	// nil means fixed; only an explicit false marks the allowance variable
	IsFixed *bool `yaml:"is_fixed,omitempty" json:"is_fixed,omitempty"`
}

// Fixed reports whether the allowance counts as fixed wage
func (a Allowance) Fixed() bool {
	return a.IsFixed == nil || *a.IsFixed
}

// IncomeRecord is one calendar month's compensation
type IncomeRecord struct {
	ApplicableMonth    dateutil.YearMonth `yaml:"applicable_month" json:"applicable_month"`
	BaseAmount         decimal.Decimal    `yaml:"base_amount" json:"base_amount"`
	TotalMonthlyIncome decimal.Decimal    `yaml:"total_monthly_income,omitempty" json:"total_monthly_income,omitempty"`
	WorkDays           int                `yaml:"work_days" json:"work_days"`
	Allowances         []Allowance        `yaml:"allowances,omitempty" json:"allowances,omitempty"`
}

// Total returns the total monthly income, deriving it from base plus allowances when unset
func (r IncomeRecord) Total() decimal.Decimal {
	if !r.TotalMonthlyIncome.IsZero() {
		return r.TotalMonthlyIncome
	}
	total := r.BaseAmount
	for _, a := range r.Allowances {
		total = total.Add(a.Amount)
	}
	return total
}

// FixedAllowances returns the allowances that count as fixed wage
func (r IncomeRecord) FixedAllowances() []Allowance {
	var fixed []Allowance
	for _, a := range r.Allowances {
		if a.Fixed() {
			fixed = append(fixed, a)
		}
	}
	return fixed
}

// BonusRecord is a single bonus payment
type BonusRecord struct {
	ApplicableMonth dateutil.YearMonth `yaml:"applicable_month" json:"applicable_month"`
	Amount          decimal.Decimal    `yaml:"amount" json:"amount"`
	// True when the payment is averaged into monthly remuneration (paid four or more
	// times a year) instead of being assessed as a standalone bonus.
	IncludedInStandardBonus bool `yaml:"included_in_standard_bonus,omitempty" json:"included_in_standard_bonus,omitempty"`
}
