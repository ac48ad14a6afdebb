package config

import (
	"fmt"
	"os"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration. Missing salaries and
// birthdays are left to the calculator, which reports them per employee.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateCompany(&config.Company); err != nil {
		return fmt.Errorf("company validation failed: %w", err)
	}

	if len(config.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}

	seen := make(map[string]bool, len(config.Employees))
	for i := range config.Employees {
		employee := &config.Employees[i]
		if seen[employee.EmpNo] {
			return fmt.Errorf("duplicate employee number %q", employee.EmpNo)
		}
		seen[employee.EmpNo] = true
		if err := ip.validateEmployee(employee); err != nil {
			return fmt.Errorf("employee %s validation failed: %w", employee.EmpNo, err)
		}
	}

	if err := ip.validateOptions(&config.Options, seen); err != nil {
		return fmt.Errorf("options validation failed: %w", err)
	}

	if config.Reference != nil {
		if err := ValidateReferenceTables(config.Reference); err != nil {
			return fmt.Errorf("reference tables validation failed: %w", err)
		}
	}

	return nil
}

func (ip *InputParser) validateCompany(company *domain.Company) error {
	if company.ID == "" {
		return fmt.Errorf("company id is required")
	}
	if company.Prefecture == "" {
		return fmt.Errorf("prefecture is required")
	}
	switch company.HealthType {
	case "", domain.HealthInsurerKyokai, domain.HealthInsurerUnion:
	default:
		return fmt.Errorf("unknown health insurer type %q", company.HealthType)
	}
	if company.StandardWeeklyHours.IsNegative() || company.StandardWeeklyHours.GreaterThan(decimal.NewFromInt(168)) {
		return fmt.Errorf("standard weekly hours must be between 0 and 168")
	}
	if company.CustomRates != nil {
		if err := ValidateRates(company.CustomRates); err != nil {
			return fmt.Errorf("custom rates: %w", err)
		}
	}
	return nil
}

// validateEmployee validates a single employee's data
func (ip *InputParser) validateEmployee(employee *domain.Employee) error {
	if employee.EmpNo == "" {
		return fmt.Errorf("employee number is required")
	}
	if employee.WeeklyHours.IsNegative() {
		return fmt.Errorf("weekly hours cannot be negative")
	}
	if employee.MonthlyWage.IsNegative() {
		return fmt.Errorf("monthly wage cannot be negative")
	}

	// Validate date logic
	if !employee.LeaveDate.IsZero() && !employee.JoinDate.IsZero() && employee.LeaveDate.Before(employee.JoinDate) {
		return fmt.Errorf("leave date cannot be before join date")
	}
	if !employee.Birthday.IsZero() && !employee.JoinDate.IsZero() && employee.Birthday.After(employee.JoinDate) {
		return fmt.Errorf("birthday cannot be after join date")
	}

	if employee.HasExemption {
		details := employee.ExemptionDetails
		if details == nil {
			return fmt.Errorf("exemption details are required when has_exemption is set")
		}
		if details.StartMonth.IsZero() || details.EndMonth.IsZero() {
			return fmt.Errorf("exemption start and end months are required")
		}
		if details.EndMonth.Before(details.StartMonth) {
			return fmt.Errorf("exemption end month %s is before start month %s", details.EndMonth, details.StartMonth)
		}
		if err := validateInsuranceTypes(details.TargetInsurances); err != nil {
			return fmt.Errorf("exemption: %w", err)
		}
	}

	months := make(map[string]bool, len(employee.Incomes))
	for _, income := range employee.Incomes {
		if income.ApplicableMonth.IsZero() {
			return fmt.Errorf("income record without applicable month")
		}
		key := income.ApplicableMonth.String()
		if months[key] {
			return fmt.Errorf("duplicate income record for %s", key)
		}
		months[key] = true
		if income.BaseAmount.IsNegative() {
			return fmt.Errorf("income %s: base amount cannot be negative", key)
		}
		if income.WorkDays < 0 || income.WorkDays > 31 {
			return fmt.Errorf("income %s: work days must be between 0 and 31", key)
		}
	}

	for _, bonus := range employee.Bonuses {
		if bonus.ApplicableMonth.IsZero() {
			return fmt.Errorf("bonus record without applicable month")
		}
		if bonus.Amount.IsNegative() {
			return fmt.Errorf("bonus %s: amount cannot be negative", bonus.ApplicableMonth)
		}
	}

	return nil
}

func (ip *InputParser) validateOptions(options *domain.CalculationOptions, employees map[string]bool) error {
	switch options.Method {
	case "", domain.MethodAcquisition, domain.MethodRegular, domain.MethodRevision, domain.MethodManual:
	default:
		return fmt.Errorf("unknown calculation method %q", options.Method)
	}
	for empNo, types := range options.ExemptionOverrides {
		if !employees[empNo] {
			return fmt.Errorf("exemption override for unknown employee %q", empNo)
		}
		if err := validateInsuranceTypes(types); err != nil {
			return fmt.Errorf("exemption override for %s: %w", empNo, err)
		}
	}
	if options.RateOverride != nil {
		if err := ValidateRates(options.RateOverride); err != nil {
			return fmt.Errorf("rate override: %w", err)
		}
	}
	return nil
}

func validateInsuranceTypes(types []domain.InsuranceType) error {
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("unknown insurance type %q", t)
		}
	}
	return nil
}
