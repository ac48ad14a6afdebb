package domain

import (
	"time"

	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// CalculationMethod records how the standard monthly amount was determined
type CalculationMethod string

const (
	MethodAcquisition CalculationMethod = "acquisition" // 資格取得時決定
	MethodRegular     CalculationMethod = "regular"     // 定時決定
	MethodRevision    CalculationMethod = "revision"    // 随時改定
	MethodManual      CalculationMethod = "manual"
	MethodBonus       CalculationMethod = "bonus"
)

// PremiumBreakdown is a premium split in whole yen; Total is always Employee + Company
type PremiumBreakdown struct {
	Employee int64 `json:"employee" yaml:"employee"`
	Company  int64 `json:"company" yaml:"company"`
	Total    int64 `json:"total" yaml:"total"`
}

// IsZero reports whether nothing is payable
func (b PremiumBreakdown) IsZero() bool {
	return b.Total == 0 && b.Employee == 0 && b.Company == 0
}

// Add sums two breakdowns
func (b PremiumBreakdown) Add(other PremiumBreakdown) PremiumBreakdown {
	return PremiumBreakdown{
		Employee: b.Employee + other.Employee,
		Company:  b.Company + other.Company,
		Total:    b.Total + other.Total,
	}
}

// AllowanceAmount is an allowance line in the audit breakdown
type AllowanceAmount struct {
	Name    string `json:"name" yaml:"name"`
	Amount  int64  `json:"amount" yaml:"amount"`
	IsFixed bool   `json:"is_fixed" yaml:"is_fixed"`
}

// SalaryComponents shows what made up the remuneration that was graded
type SalaryComponents struct {
	BaseSalary             int64             `json:"base_salary" yaml:"base_salary"`
	Allowances             []AllowanceAmount `json:"allowances,omitempty" yaml:"allowances,omitempty"`
	BonusMonthlyEquivalent int64             `json:"bonus_monthly_equivalent" yaml:"bonus_monthly_equivalent"`
	Total                  int64             `json:"total" yaml:"total"`
}

// PremiumRecord is the monthly premium snapshot persisted per (company, employee, month, method)
type PremiumRecord struct {
	ID              string             `json:"id" yaml:"id"`
	CompanyID       string             `json:"company_id" yaml:"company_id"`
	EmpNo           string             `json:"emp_no" yaml:"emp_no"`
	ApplicableMonth dateutil.YearMonth `json:"applicable_month" yaml:"applicable_month"`
	Method          CalculationMethod  `json:"method" yaml:"method"`

	// Health bracket value; used as the canonical standard amount for every type
	StandardMonthlyAmount        int64 `json:"standard_monthly_amount" yaml:"standard_monthly_amount"`
	PensionStandardMonthlyAmount int64 `json:"pension_standard_monthly_amount" yaml:"pension_standard_monthly_amount"`
	HealthGrade                  int   `json:"health_grade" yaml:"health_grade"`
	PensionGrade                 int   `json:"pension_grade" yaml:"pension_grade"`
	CareGrade                    int   `json:"care_grade" yaml:"care_grade"`

	HealthPremium  PremiumBreakdown `json:"health_premium" yaml:"health_premium"`
	PensionPremium PremiumBreakdown `json:"pension_premium" yaml:"pension_premium"`
	CarePremium    PremiumBreakdown `json:"care_premium" yaml:"care_premium"`

	Exempted   []InsuranceType  `json:"exempted,omitempty" yaml:"exempted,omitempty"`
	Components SalaryComponents `json:"components" yaml:"components"`

	CalculatedAt time.Time `json:"calculated_at" yaml:"calculated_at"`
}

// Total sums all three breakdowns
func (r *PremiumRecord) Total() PremiumBreakdown {
	return r.HealthPremium.Add(r.PensionPremium).Add(r.CarePremium)
}

// BonusPremiumRecord is the premium on one bonus payment. A nil breakdown means the
// insurance type did not apply; an exempted type carries a zero breakdown.
type BonusPremiumRecord struct {
	ID              string             `json:"id" yaml:"id"`
	CompanyID       string             `json:"company_id" yaml:"company_id"`
	EmpNo           string             `json:"emp_no" yaml:"emp_no"`
	ApplicableMonth dateutil.YearMonth `json:"applicable_month" yaml:"applicable_month"`

	Amount              int64 `json:"amount" yaml:"amount"`
	StandardBonusAmount int64 `json:"standard_bonus_amount" yaml:"standard_bonus_amount"`
	ApplicableAmount    int64 `json:"applicable_amount" yaml:"applicable_amount"` // premium base after the per-payment and annual caps
	FiscalYear          int   `json:"fiscal_year" yaml:"fiscal_year"`
	FiscalYearTotal     int64 `json:"fiscal_year_total" yaml:"fiscal_year_total"`

	HealthPremium  *PremiumBreakdown `json:"health_premium,omitempty" yaml:"health_premium,omitempty"`
	PensionPremium *PremiumBreakdown `json:"pension_premium,omitempty" yaml:"pension_premium,omitempty"`
	CarePremium    *PremiumBreakdown `json:"care_premium,omitempty" yaml:"care_premium,omitempty"`

	Exempted     []InsuranceType `json:"exempted,omitempty" yaml:"exempted,omitempty"`
	CalculatedAt time.Time       `json:"calculated_at" yaml:"calculated_at"`
}

// Total sums the breakdowns that are present
func (r *BonusPremiumRecord) Total() PremiumBreakdown {
	var total PremiumBreakdown
	for _, b := range []*PremiumBreakdown{r.HealthPremium, r.PensionPremium, r.CarePremium} {
		if b != nil {
			total = total.Add(*b)
		}
	}
	return total
}
