package domain

import "github.com/shakaihoken/premium-calculator/pkg/dateutil"

// ReferenceMetadata describes where a reference table set came from
type ReferenceMetadata struct {
	EffectiveFrom dateutil.YearMonth `yaml:"effective_from" json:"effective_from"`
	Description   string             `yaml:"description" json:"description"`
}

// ReferenceTables are the grade tables and prefecture rates supplied by the reference provider
type ReferenceTables struct {
	Metadata      ReferenceMetadata `yaml:"metadata" json:"metadata"`
	HealthGrades  []SalaryGrade     `yaml:"health_grades" json:"health_grades"`
	PensionGrades []SalaryGrade     `yaml:"pension_grades" json:"pension_grades"`
	Rates         PrefectureRates   `yaml:"rates" json:"rates"`
}

// CalculationOptions tune a calculation run
type CalculationOptions struct {
	Method               CalculationMethod `yaml:"method,omitempty" json:"method,omitempty"`
	DisableAutoExemption bool              `yaml:"disable_auto_exemption,omitempty" json:"disable_auto_exemption,omitempty"`
	// Manual exemptions keyed by employee number; take precedence over exemption windows
	ExemptionOverrides map[string][]InsuranceType `yaml:"exemption_overrides,omitempty" json:"exemption_overrides,omitempty"`
	// Explicit rates replacing prefecture and union resolution
	RateOverride *InsuranceRates `yaml:"rate_override,omitempty" json:"rate_override,omitempty"`
}

// Configuration is the complete input document for one company
type Configuration struct {
	Company         Company            `yaml:"company" json:"company"`
	ApplicableMonth dateutil.YearMonth `yaml:"applicable_month" json:"applicable_month"`
	Employees       []Employee         `yaml:"employees" json:"employees"`
	Options         CalculationOptions `yaml:"options,omitempty" json:"options,omitempty"`
	Reference       *ReferenceTables   `yaml:"reference,omitempty" json:"reference,omitempty"`
}

// FindEmployee returns the employee with empNo
func (c *Configuration) FindEmployee(empNo string) (*Employee, bool) {
	for i := range c.Employees {
		if c.Employees[i].EmpNo == empNo {
			return &c.Employees[i], true
		}
	}
	return nil, false
}
