package calculation

import (
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Statutory age limits. Coverage runs from birth up to the month the limit is attained.
const (
	HealthAgeLimit  = 75
	PensionAgeLimit = 70
)

// Short-time worker thresholds (特定適用事業所 rules)
const (
	ShortTimeMinWeeklyHours    = 20
	ShortTimeMinMonthlyWage    = 88000
	SpecificOfficeMinHeadcount = 51
	ShortTimeHoursRatioPercent = 75
)

// Exclusion reasons. Several short-time reasons may be reported together.
const (
	ReasonSocialAgreement     = "社会保障協定による適用除外"
	ReasonDependentInsured    = "被扶養者として他制度に加入"
	ReasonNotEmployed         = "在籍期間外"
	ReasonHealthAgeLimit      = "75歳到達（後期高齢者医療制度へ移行）"
	ReasonPensionAgeLimit     = "70歳到達"
	ReasonNonApplicableOffice = "適用事業所ではない"
	ReasonWeeklyHoursUnder20  = "週所定労働時間20時間未満"
	ReasonShortContract       = "雇用期間2ヶ月以内"
	ReasonDaytimeStudent      = "昼間学生"
	ReasonWageUnder88000      = "月額賃金88,000円未満"
	ReasonNotSpecificOffice   = "特定適用事業所ではない"
)

var (
	shortTimeMinHours = decimal.NewFromInt(ShortTimeMinWeeklyHours)
	shortTimeMinWage  = decimal.NewFromInt(ShortTimeMinMonthlyWage)
	threeQuarters     = decimal.NewFromInt(ShortTimeHoursRatioPercent).Div(decimal.NewFromInt(100))
)

// EvaluateEligibility decides health, pension and care coverage for employee in month.
// roster is the company's full employee list, needed for the headcount test; employee
// may or may not be part of it. Status fields already on the employee are ignored.
func EvaluateEligibility(employee *domain.Employee, company *domain.Company, month dateutil.YearMonth, roster []domain.Employee) domain.EligibilityResult {
	health := evaluateInsurance(domain.InsuranceHealth, employee, company, month, roster)
	pension := evaluateInsurance(domain.InsurancePension, employee, company, month, roster)
	return domain.EligibilityResult{
		EmpNo:   employee.EmpNo,
		Health:  health,
		Pension: pension,
		Care:    EvaluateCare(employee, month, health.IsEnrolled()),
	}
}

func evaluateInsurance(insuranceType domain.InsuranceType, employee *domain.Employee, company *domain.Company, month dateutil.YearMonth, roster []domain.Employee) domain.Coverage {
	if reason, excluded := hardExclusion(insuranceType, employee, month); excluded {
		return domain.ExcludedCoverage(reason)
	}

	if !company.IsApplicableOffice(insuranceType) {
		return domain.ExcludedCoverage(ReasonNonApplicableOffice)
	}

	if employee.EmploymentType.IsRegular() {
		return domain.EnrolledCoverage()
	}

	reasons := shortTimeReasons(employee, company, month, roster)
	if len(reasons) == 0 {
		return domain.EnrolledCoverage()
	}
	return domain.ExcludedCoverage(reasons...)
}

// hardExclusion checks the conditions that short-circuit evaluation with a single reason
func hardExclusion(insuranceType domain.InsuranceType, employee *domain.Employee, month dateutil.YearMonth) (string, bool) {
	if employee.SocialAgreementExcluded {
		return ReasonSocialAgreement, true
	}
	if employee.IsDependentInsured {
		return ReasonDependentInsured, true
	}
	if !employee.IsEmployedIn(month) {
		return ReasonNotEmployed, true
	}
	if employee.Birthday.IsZero() {
		return "", false
	}

	switch insuranceType {
	case domain.InsuranceHealth:
		if !dateutil.InAgeWindow(employee.Birthday, month, 0, HealthAgeLimit) {
			return ReasonHealthAgeLimit, true
		}
	case domain.InsurancePension:
		if !dateutil.InAgeWindow(employee.Birthday, month, 0, PensionAgeLimit) {
			return ReasonPensionAgeLimit, true
		}
	}
	return "", false
}

// shortTimeReasons applies the short-time worker sub-rules and returns every failed condition
func shortTimeReasons(employee *domain.Employee, company *domain.Company, month dateutil.YearMonth, roster []domain.Employee) []string {
	var reasons []string

	if employee.WeeklyHours.LessThan(shortTimeMinHours) {
		reasons = append(reasons, ReasonWeeklyHoursUnder20)
	}
	if employee.ExpectedDuration == domain.DurationWithinTwoMonths {
		reasons = append(reasons, ReasonShortContract)
	}
	if employee.StudentStatus.IsDaytimeStudent() {
		reasons = append(reasons, ReasonDaytimeStudent)
	}
	if employee.MonthlyWage.LessThan(shortTimeMinWage) {
		reasons = append(reasons, ReasonWageUnder88000)
	}
	if belowThreeQuarters(employee, company) && !IsSpecificApplicableOffice(company, month, roster) {
		reasons = append(reasons, ReasonNotSpecificOffice)
	}
	return reasons
}

func belowThreeQuarters(employee *domain.Employee, company *domain.Company) bool {
	return employee.WeeklyHours.LessThan(company.StandardHours().Mul(threeQuarters))
}

// IsSpecificApplicableOffice reports whether the office counts as a specific applicable
// office: declared as such, or employing at least 51 people who would be insured under
// the ordinary (three-quarters) rules in month.
func IsSpecificApplicableOffice(company *domain.Company, month dateutil.YearMonth, roster []domain.Employee) bool {
	if company.SpecificApplicableOffice {
		return true
	}
	return CountOrdinaryInsured(company, month, roster) >= SpecificOfficeMinHeadcount
}

// CountOrdinaryInsured counts roster members meeting the age, hours, duration and
// student criteria of an ordinary insured person in month.
func CountOrdinaryInsured(company *domain.Company, month dateutil.YearMonth, roster []domain.Employee) int {
	count := 0
	for i := range roster {
		e := &roster[i]
		if !e.IsEmployedIn(month) {
			continue
		}
		if !e.Birthday.IsZero() && !dateutil.InAgeWindow(e.Birthday, month, 0, PensionAgeLimit) {
			continue
		}
		if belowThreeQuarters(e, company) {
			continue
		}
		if e.ExpectedDuration == domain.DurationWithinTwoMonths || e.StudentStatus.IsDaytimeStudent() {
			continue
		}
		count++
	}
	return count
}
