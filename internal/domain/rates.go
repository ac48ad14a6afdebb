package domain

import "github.com/shopspring/decimal"

// RatePair holds the employee and employer contribution rates as fractions
type RatePair struct {
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Company  decimal.Decimal `yaml:"company" json:"company"`
}

// IsZero reports whether both rates are zero
func (r RatePair) IsZero() bool {
	return r.Employee.IsZero() && r.Company.IsZero()
}

// InsuranceRates are the contribution rates for each insurance type
type InsuranceRates struct {
	Health  RatePair `yaml:"health" json:"health"`
	Pension RatePair `yaml:"pension" json:"pension"`
	Care    RatePair `yaml:"care" json:"care"`
}

// For returns the rate pair of insuranceType
func (r InsuranceRates) For(insuranceType InsuranceType) RatePair {
	switch insuranceType {
	case InsuranceHealth:
		return r.Health
	case InsurancePension:
		return r.Pension
	case InsuranceCare:
		return r.Care
	}
	return RatePair{}
}

// PrefectureRates maps a prefecture name (e.g. 東京都) to its rates
type PrefectureRates map[string]InsuranceRates
