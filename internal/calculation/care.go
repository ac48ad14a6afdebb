package calculation

import (
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// Long-term care age bands
const (
	CareType2FromAge = 40
	CareType1FromAge = 65
	CareType1ToAge   = 75
)

const (
	ReasonCareMissingBirthday = "生年月日未登録"
	ReasonCareUnder40         = "40歳未満"
	ReasonCareType1           = "第1号被保険者（65歳以上・市区町村徴収）"
	ReasonCareOver75          = "75歳以上"
)

// EvaluateCare classifies the employee for long-term care insurance. It is banded on age
// only: 40-64 is type-2, 65-74 is type-1 and collected by the municipality, anything else
// is not applicable. A type-2 insured stays enrolled whatever the health decision; the
// HealthEnrolled tag says whether the premium is collected with health insurance.
// The headcount and short-time rules are not re-run here.
func EvaluateCare(employee *domain.Employee, month dateutil.YearMonth, healthEnrolled bool) domain.CareCoverage {
	result := domain.CareCoverage{Category: domain.CareNone, HealthEnrolled: healthEnrolled}
	if employee.Birthday.IsZero() {
		result.Coverage = domain.ExcludedCoverage(ReasonCareMissingBirthday)
		return result
	}

	switch {
	case dateutil.InAgeWindow(employee.Birthday, month, CareType2FromAge, CareType1FromAge):
		result.Category = domain.CareType2
		result.Coverage = domain.EnrolledCoverage()
	case dateutil.InAgeWindow(employee.Birthday, month, CareType1FromAge, CareType1ToAge):
		result.Category = domain.CareType1
		result.Coverage = domain.ExcludedCoverage(ReasonCareType1)
	case month.Before(dateutil.AttainmentMonth(employee.Birthday, CareType2FromAge)):
		result.Coverage = domain.ExcludedCoverage(ReasonCareUnder40)
	default:
		result.Coverage = domain.ExcludedCoverage(ReasonCareOver75)
	}
	return result
}
