package calculation

import (
	"time"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// MonthlyPremiumInput carries everything the monthly calculator needs. All of it is
// read-only; the returned record never aliases caller data.
type MonthlyPremiumInput struct {
	Salary        decimal.Decimal
	Employee      *domain.Employee
	Company       *domain.Company
	Rates         domain.InsuranceRates
	HealthGrades  []domain.SalaryGrade
	PensionGrades []domain.SalaryGrade

	// Bonus paid four or more times a year, already averaged to one month
	BonusMonthlyEquivalent decimal.Decimal
	ApplicableMonth        dateutil.YearMonth

	// Manual exemption list; nil means "use the employee's exemption window"
	ExemptionsOverride   []domain.InsuranceType
	DisableAutoExemption bool

	// Optional evaluator decision; when set its exclusions also zero the premium
	Eligibility *domain.EligibilityResult
	// Optional income record used only for the audit breakdown
	Income *domain.IncomeRecord

	Method       domain.CalculationMethod
	CalculatedAt time.Time
}

// CalculateMonthlyPremium computes the monthly premium record. It fails with an
// ErrNotComputable error when salary, month or birthday are missing or when neither grade
// table has a bracket for the salary. An ineligible or exempted type yields a zero
// breakdown, never an error.
func CalculateMonthlyPremium(in MonthlyPremiumInput) (*domain.PremiumRecord, error) {
	if !in.Salary.IsPositive() {
		return nil, ErrNoSalary
	}
	if in.ApplicableMonth.IsZero() {
		return nil, ErrMissingApplicableMonth
	}
	if in.Employee == nil || in.Employee.Birthday.IsZero() {
		return nil, ErrMissingBirthday
	}

	effective := in.Salary
	if in.BonusMonthlyEquivalent.IsPositive() {
		effective = effective.Add(in.BonusMonthlyEquivalent)
	}

	healthGrade, healthFound := LookupGrade(effective, in.HealthGrades)
	pensionGrade, pensionFound := LookupGrade(effective, in.PensionGrades)
	if !healthFound && !pensionFound {
		return nil, ErrNoGrade
	}

	month := in.ApplicableMonth
	birthday := in.Employee.Birthday
	healthActive := dateutil.InAgeWindow(birthday, month, 0, HealthAgeLimit) && evaluatorAllows(in.Eligibility, domain.InsuranceHealth)
	pensionActive := dateutil.InAgeWindow(birthday, month, 0, PensionAgeLimit) && evaluatorAllows(in.Eligibility, domain.InsurancePension)
	careActive := healthActive && dateutil.InAgeWindow(birthday, month, CareType2FromAge, CareType1FromAge) &&
		evaluatorAllows(in.Eligibility, domain.InsuranceCare)

	exempt := ResolveExemptions(in.Employee, month, in.ExemptionsOverride, in.DisableAutoExemption)

	method := in.Method
	if method == "" {
		method = domain.MethodManual
	}
	companyID := ""
	if in.Company != nil {
		companyID = in.Company.ID
	}

	record := &domain.PremiumRecord{
		ID:              RecordKey(companyID, in.Employee.EmpNo, month, method),
		CompanyID:       companyID,
		EmpNo:           in.Employee.EmpNo,
		ApplicableMonth: month,
		Method:          method,
		Exempted:        exemptedList(exempt),
		Components:      salaryComponents(in.Salary, in.BonusMonthlyEquivalent, effective, in.Income),
		CalculatedAt:    in.CalculatedAt,
	}

	if healthFound {
		base := decimal.NewFromInt(healthGrade.Monthly)
		record.StandardMonthlyAmount = healthGrade.Monthly
		record.HealthGrade = healthGrade.Grade
		record.CareGrade = healthGrade.Grade
		if healthActive && !exempt[domain.InsuranceHealth] {
			record.HealthPremium = Calc(in.Rates.Health, base)
		}
		if careActive && !exempt[domain.InsuranceCare] {
			record.CarePremium = Calc(in.Rates.Care, base)
		}
	}
	if pensionFound {
		record.PensionStandardMonthlyAmount = pensionGrade.Monthly
		record.PensionGrade = pensionGrade.Grade
		if pensionActive && !exempt[domain.InsurancePension] {
			record.PensionPremium = Calc(in.Rates.Pension, decimal.NewFromInt(pensionGrade.Monthly))
		}
	}
	return record, nil
}

func evaluatorAllows(result *domain.EligibilityResult, insuranceType domain.InsuranceType) bool {
	if result == nil {
		return true
	}
	return result.For(insuranceType).IsEnrolled()
}

func salaryComponents(salary, bonusEquivalent, effective decimal.Decimal, income *domain.IncomeRecord) domain.SalaryComponents {
	components := domain.SalaryComponents{
		BaseSalary:             salary.Floor().IntPart(),
		BonusMonthlyEquivalent: bonusEquivalent.Floor().IntPart(),
		Total:                  effective.Floor().IntPart(),
	}
	if income == nil {
		return components
	}
	components.BaseSalary = income.BaseAmount.Floor().IntPart()
	for _, a := range income.Allowances {
		components.Allowances = append(components.Allowances, domain.AllowanceAmount{
			Name:    a.Name,
			Amount:  a.Amount.Floor().IntPart(),
			IsFixed: a.Fixed(),
		})
	}
	return components
}
