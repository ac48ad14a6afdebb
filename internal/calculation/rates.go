package calculation

import "github.com/shakaihoken/premium-calculator/internal/domain"

// ResolveRates is the single place contribution rates are chosen. Precedence:
//
//  1. override, when the caller supplies one
//  2. the company's custom rates for health and care, taken as given, when it belongs
//     to a health insurance society (健保組合) and declares them
//  3. the prefecture table
//  4. zero rates
//
// Pension is statutory and always comes from the prefecture table, whatever the
// company declares.
func ResolveRates(company *domain.Company, table domain.PrefectureRates, override *domain.InsuranceRates) domain.InsuranceRates {
	if override != nil {
		return *override
	}

	var resolved domain.InsuranceRates
	if company == nil {
		return resolved
	}
	if prefecture, ok := table[company.Prefecture]; ok {
		resolved = prefecture
	}

	if company.IsHealthUnion() && company.CustomRates != nil {
		resolved.Health = company.CustomRates.Health
		resolved.Care = company.CustomRates.Care
	}
	return resolved
}
