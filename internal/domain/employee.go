package domain

import (
	"time"

	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// EmploymentType is the employment classification recorded on the employee master
type EmploymentType string

const (
	EmploymentRegular  EmploymentType = "正社員"
	EmploymentContract EmploymentType = "契約社員"
	EmploymentOfficer  EmploymentType = "役員"
	EmploymentPartTime EmploymentType = "パート"
	EmploymentArbeit   EmploymentType = "アルバイト"
)

// IsRegular reports whether the classification is a full-time-equivalent role.
// Everything else is evaluated with the short-time worker rules.
func (t EmploymentType) IsRegular() bool {
	switch t {
	case EmploymentRegular, EmploymentContract, EmploymentOfficer:
		return true
	}
	return false
}

// StudentStatus describes whether the employee is enrolled at a school
type StudentStatus string

const (
	StudentNone          StudentStatus = ""
	StudentDaytime       StudentStatus = "昼間学生"
	StudentEvening       StudentStatus = "夜間学生"
	StudentCorrespondent StudentStatus = "通信制"
	StudentOnLeave       StudentStatus = "休学中"
)

// IsDaytimeStudent reports whether the short-time student exclusion applies
func (s StudentStatus) IsDaytimeStudent() bool {
	return s == StudentDaytime
}

// ExpectedDuration is the expected length of employment at hire
type ExpectedDuration string

const (
	DurationWithinTwoMonths ExpectedDuration = "2ヶ月以内"
	DurationOverTwoMonths   ExpectedDuration = "2ヶ月超"
	DurationIndefinite      ExpectedDuration = "定めなし"
)

// InsuranceType identifies one of the three social insurances handled by the engine
type InsuranceType string

const (
	InsuranceHealth  InsuranceType = "health"
	InsurancePension InsuranceType = "pension"
	InsuranceCare    InsuranceType = "care"
)

// AllInsuranceTypes lists the insurance types in display order
var AllInsuranceTypes = []InsuranceType{InsuranceHealth, InsurancePension, InsuranceCare}

// Valid reports whether t is a known insurance type
func (t InsuranceType) Valid() bool {
	return t == InsuranceHealth || t == InsurancePension || t == InsuranceCare
}

// ExemptionDetails is a time-bounded premium waiver (e.g. childcare leave)
type ExemptionDetails struct {
	TargetInsurances []InsuranceType    `yaml:"target_insurances" json:"target_insurances"`
	StartMonth       dateutil.YearMonth `yaml:"start_month" json:"start_month"`
	EndMonth         dateutil.YearMonth `yaml:"end_month" json:"end_month"`
}

// Covers reports whether the exemption waives insuranceType in month
func (e ExemptionDetails) Covers(insuranceType InsuranceType, month dateutil.YearMonth) bool {
	if e.StartMonth.IsZero() || e.EndMonth.IsZero() || !month.Between(e.StartMonth, e.EndMonth) {
		return false
	}
	for _, t := range e.TargetInsurances {
		if t == insuranceType {
			return true
		}
	}
	return false
}

// InsuranceStatusFields are the derived status strings kept on the employee document.
// They are recomputed on every evaluation and never read as input.
type InsuranceStatusFields struct {
	HealthInsuranceStatus string `yaml:"health_insurance_status,omitempty" json:"health_insurance_status,omitempty"`
	HealthInsuranceReason string `yaml:"health_insurance_reason,omitempty" json:"health_insurance_reason,omitempty"`
	PensionStatus         string `yaml:"pension_status,omitempty" json:"pension_status,omitempty"`
	PensionReason         string `yaml:"pension_reason,omitempty" json:"pension_reason,omitempty"`
	CareInsuranceStatus   string `yaml:"care_insurance_status,omitempty" json:"care_insurance_status,omitempty"`
	CareInsuranceReason   string `yaml:"care_insurance_reason,omitempty" json:"care_insurance_reason,omitempty"`
}

// Employee is the employee master record as supplied by the caller
type Employee struct {
	EmpNo            string           `yaml:"emp_no" json:"emp_no"`
	Name             string           `yaml:"name" json:"name"`
	EmploymentType   EmploymentType   `yaml:"employment_type" json:"employment_type"`
	WeeklyHours      decimal.Decimal  `yaml:"weekly_hours" json:"weekly_hours"`
	MonthlyWage      decimal.Decimal  `yaml:"monthly_wage" json:"monthly_wage"` // contractual monthly wage used by the short-time ¥88,000 test
	JoinDate         time.Time        `yaml:"join_date" json:"join_date"`
	LeaveDate        time.Time        `yaml:"leave_date,omitempty" json:"leave_date,omitempty"`
	Birthday         time.Time        `yaml:"birthday" json:"birthday"`
	StudentStatus    StudentStatus    `yaml:"student_status,omitempty" json:"student_status,omitempty"`
	ExpectedDuration ExpectedDuration `yaml:"expected_duration,omitempty" json:"expected_duration,omitempty"`

	HasExemption     bool              `yaml:"has_exemption,omitempty" json:"has_exemption,omitempty"`
	ExemptionDetails *ExemptionDetails `yaml:"exemption_details,omitempty" json:"exemption_details,omitempty"`

	// Covered as a dependent under another insured person's plan
	IsDependentInsured bool `yaml:"is_dependent_insured,omitempty" json:"is_dependent_insured,omitempty"`
	// Excluded by a bilateral social security agreement (posted foreign worker)
	SocialAgreementExcluded bool `yaml:"social_agreement_excluded,omitempty" json:"social_agreement_excluded,omitempty"`

	// Current health grade from the last determination; baseline for revision checks
	CurrentHealthGrade int `yaml:"current_health_grade,omitempty" json:"current_health_grade,omitempty"`

	Incomes []IncomeRecord `yaml:"incomes,omitempty" json:"incomes,omitempty"`
	Bonuses []BonusRecord  `yaml:"bonuses,omitempty" json:"bonuses,omitempty"`

	InsuranceStatusFields `yaml:",inline"`
}

// IsEmployedIn reports whether the employment period overlaps month
func (e *Employee) IsEmployedIn(month dateutil.YearMonth) bool {
	if !e.JoinDate.IsZero() && e.JoinDate.After(month.End()) {
		return false
	}
	if !e.LeaveDate.IsZero() && e.LeaveDate.Before(month.Start()) {
		return false
	}
	return true
}

// ActiveExemption returns the employee's own exemption window if it is switched on
func (e *Employee) ActiveExemption() *ExemptionDetails {
	if !e.HasExemption {
		return nil
	}
	return e.ExemptionDetails
}

// IncomeFor returns the income record for month, if any
func (e *Employee) IncomeFor(month dateutil.YearMonth) (IncomeRecord, bool) {
	for _, r := range e.Incomes {
		if r.ApplicableMonth == month {
			return r, true
		}
	}
	return IncomeRecord{}, false
}

// Age returns the statutory age reached by the end of month
func (e *Employee) Age(month dateutil.YearMonth) int {
	return dateutil.StatutoryAge(e.Birthday, month)
}
