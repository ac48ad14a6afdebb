package domain

import "strings"

// Status strings written to the employee document
const (
	StatusEnrolledLabel = "加入"
	StatusExcludedLabel = "対象外"
)

// ReasonSeparator joins multiple exclusion reasons
const ReasonSeparator = "、"

// CoverageStatus is the outcome of an eligibility decision
type CoverageStatus int

const (
	Excluded CoverageStatus = iota
	Enrolled
)

func (s CoverageStatus) String() string {
	if s == Enrolled {
		return "enrolled"
	}
	return "excluded"
}

// MarshalText encodes the status as enrolled/excluded
func (s CoverageStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Label returns the status string stored on the employee document
func (s CoverageStatus) Label() string {
	if s == Enrolled {
		return StatusEnrolledLabel
	}
	return StatusExcludedLabel
}

// Coverage is the eligibility decision for one insurance type
type Coverage struct {
	Status  CoverageStatus `json:"status"`
	Reasons []string       `json:"reasons,omitempty"`
}

// EnrolledCoverage returns an enrolled decision
func EnrolledCoverage() Coverage {
	return Coverage{Status: Enrolled}
}

// ExcludedCoverage returns an excluded decision carrying the given reasons
func ExcludedCoverage(reasons ...string) Coverage {
	return Coverage{Status: Excluded, Reasons: reasons}
}

// IsEnrolled reports whether the employee is insured
func (c Coverage) IsEnrolled() bool {
	return c.Status == Enrolled
}

// Reason joins the exclusion reasons; empty when enrolled
func (c Coverage) Reason() string {
	return strings.Join(c.Reasons, ReasonSeparator)
}

// CareCategory distinguishes the two classes of long-term care insured persons
type CareCategory string

const (
	CareNone  CareCategory = "none"
	CareType1 CareCategory = "type1" // 65-74, collected by the municipality
	CareType2 CareCategory = "type2" // 40-64, collected with health insurance
)

// CareCoverage is the care insurance decision
type CareCoverage struct {
	Coverage
	Category       CareCategory `json:"category"`
	HealthEnrolled bool         `json:"health_enrolled"`
}

// EligibilityResult bundles the decisions for one employee and month
type EligibilityResult struct {
	EmpNo   string       `json:"emp_no"`
	Health  Coverage     `json:"health"`
	Pension Coverage     `json:"pension"`
	Care    CareCoverage `json:"care"`
}

// For returns the coverage of insuranceType
func (r EligibilityResult) For(insuranceType InsuranceType) Coverage {
	switch insuranceType {
	case InsuranceHealth:
		return r.Health
	case InsurancePension:
		return r.Pension
	case InsuranceCare:
		return r.Care.Coverage
	}
	return ExcludedCoverage()
}

// StatusPatch renders the result as the derived status fields of the employee document
func (r EligibilityResult) StatusPatch() InsuranceStatusFields {
	return InsuranceStatusFields{
		HealthInsuranceStatus: r.Health.Status.Label(),
		HealthInsuranceReason: r.Health.Reason(),
		PensionStatus:         r.Pension.Status.Label(),
		PensionReason:         r.Pension.Reason(),
		CareInsuranceStatus:   r.Care.Status.Label(),
		CareInsuranceReason:   r.Care.Reason(),
	}
}
