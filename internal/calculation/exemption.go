package calculation

import (
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// ResolveExemptions returns the insurance types whose premium is waived in month.
// A non-nil override is the caller's manual list and wins outright. Otherwise the
// employee's own exemption window applies unless disableAuto is set.
func ResolveExemptions(employee *domain.Employee, month dateutil.YearMonth, override []domain.InsuranceType, disableAuto bool) map[domain.InsuranceType]bool {
	exempt := make(map[domain.InsuranceType]bool)
	if override != nil {
		for _, t := range override {
			exempt[t] = true
		}
		return exempt
	}
	if disableAuto {
		return exempt
	}

	details := employee.ActiveExemption()
	if details == nil {
		return exempt
	}
	for _, t := range domain.AllInsuranceTypes {
		if details.Covers(t, month) {
			exempt[t] = true
		}
	}
	return exempt
}

// exemptedList returns the exempted types in display order
func exemptedList(exempt map[domain.InsuranceType]bool) []domain.InsuranceType {
	var list []domain.InsuranceType
	for _, t := range domain.AllInsuranceTypes {
		if exempt[t] {
			list = append(list, t)
		}
	}
	return list
}
