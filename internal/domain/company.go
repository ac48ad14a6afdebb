package domain

import "github.com/shopspring/decimal"

// HealthInsurerType is the kind of health insurer the office belongs to
type HealthInsurerType string

const (
	// HealthInsurerKyokai is the national association plan with prefecture rates
	HealthInsurerKyokai HealthInsurerType = "協会けんぽ"
	// HealthInsurerUnion is a company or industry health insurance society
	HealthInsurerUnion HealthInsurerType = "健保組合"
)

// DefaultStandardWeeklyHours is used when the company does not declare its own
var DefaultStandardWeeklyHours = decimal.NewFromInt(40)

// Company is the employer office configuration
type Company struct {
	ID         string            `yaml:"id" json:"id"`
	Name       string            `yaml:"name" json:"name"`
	Prefecture string            `yaml:"prefecture" json:"prefecture"`
	HealthType HealthInsurerType `yaml:"health_type" json:"health_type"`

	IsApplicableToHealthInsurance bool `yaml:"is_applicable_to_health_insurance" json:"is_applicable_to_health_insurance"`
	IsApplicableToPension         bool `yaml:"is_applicable_to_pension" json:"is_applicable_to_pension"`
	VoluntaryHealthApplicable     bool `yaml:"voluntary_health_applicable,omitempty" json:"voluntary_health_applicable,omitempty"`
	VoluntaryPensionApplicable    bool `yaml:"voluntary_pension_applicable,omitempty" json:"voluntary_pension_applicable,omitempty"`

	// Declared specific applicable office; skips the roster headcount test when true
	SpecificApplicableOffice bool `yaml:"specific_applicable_office,omitempty" json:"specific_applicable_office,omitempty"`

	StandardWeeklyHours decimal.Decimal `yaml:"standard_weekly_hours" json:"standard_weekly_hours"`

	// Union rates for health and care, applied as given when present (an omitted pair is
	// a zero rate); a pension entry here is ignored
	CustomRates *InsuranceRates `yaml:"custom_rates,omitempty" json:"custom_rates,omitempty"`
}

// StandardHours returns the company's standard weekly hours, defaulting to 40
func (c *Company) StandardHours() decimal.Decimal {
	if c.StandardWeeklyHours.IsPositive() {
		return c.StandardWeeklyHours
	}
	return DefaultStandardWeeklyHours
}

// IsHealthUnion reports whether the office belongs to a health insurance society
func (c *Company) IsHealthUnion() bool {
	return c.HealthType == HealthInsurerUnion
}

// IsApplicableOffice reports whether the office is mandatory or voluntary for insuranceType.
// Care follows health.
func (c *Company) IsApplicableOffice(insuranceType InsuranceType) bool {
	switch insuranceType {
	case InsuranceHealth, InsuranceCare:
		return c.IsApplicableToHealthInsurance || c.VoluntaryHealthApplicable
	case InsurancePension:
		return c.IsApplicableToPension || c.VoluntaryPensionApplicable
	}
	return false
}

// IsShortTime reports whether the employee works fewer hours than the company standard
func (c *Company) IsShortTime(e *Employee) bool {
	return e.WeeklyHours.LessThan(c.StandardHours())
}
