package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
company:
  id: C001
  prefecture: 東京都
  is_applicable_to_health_insurance: true
  is_applicable_to_pension: true
applicable_month: "2025-06"
employees:
  - emp_no: "0001"
    employment_type: 正社員
    weekly_hours: 40
    monthly_wage: 300000
    join_date: 2020-04-01
    birthday: 1985-03-10
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o600))

	parser := NewInputParser()
	config, err := parser.LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "C001", config.Company.ID)
	assert.Equal(t, dateutil.MustYearMonth("2025-06"), config.ApplicableMonth)
	require.Len(t, config.Employees, 1)
	assert.Equal(t, domain.EmploymentRegular, config.Employees[0].EmploymentType)
	assert.Equal(t, 1985, config.Employees[0].Birthday.Year())
	assert.Nil(t, config.Reference)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("company: [unclosed"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_ExampleConfiguration(t *testing.T) {
	config, err := NewInputParser().Parse(ExampleConfiguration())
	require.NoError(t, err)
	assert.Len(t, config.Employees, 5)
	assert.Equal(t, domain.MethodRegular, config.Options.Method)

	e, ok := config.FindEmployee("0004")
	require.True(t, ok)
	require.NotNil(t, e.ActiveExemption())
	assert.Equal(t, []domain.InsuranceType{domain.InsuranceHealth, domain.InsurancePension}, e.ExemptionDetails.TargetInsurances)

	_, ok = config.FindEmployee("9999")
	assert.False(t, ok)
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name        string
		edit        func(doc string) string
		errContains string
	}{
		{
			name:        "Missing company id",
			edit:        func(doc string) string { return strings.Replace(doc, "id: C001", "id: \"\"", 1) },
			errContains: "company id is required",
		},
		{
			name:        "Missing prefecture",
			edit:        func(doc string) string { return strings.Replace(doc, "prefecture: 東京都", "prefecture: \"\"", 1) },
			errContains: "prefecture is required",
		},
		{
			name:        "Unknown insurer type",
			edit:        func(doc string) string { return strings.Replace(doc, "prefecture: 東京都", "prefecture: 東京都\n  health_type: 共済", 1) },
			errContains: "unknown health insurer type",
		},
		{
			name:        "No employees",
			edit:        func(doc string) string { return doc[:strings.Index(doc, "employees:")] + "employees: []\n" },
			errContains: "no employees provided",
		},
		{
			name:        "Negative wage",
			edit:        func(doc string) string { return strings.Replace(doc, "monthly_wage: 300000", "monthly_wage: -1", 1) },
			errContains: "monthly wage cannot be negative",
		},
		{
			name:        "Leave before join",
			edit:        func(doc string) string { return doc + "    leave_date: 2019-03-31\n" },
			errContains: "leave date cannot be before join date",
		},
		{
			name: "Duplicate employee",
			edit: func(doc string) string {
				return doc + "  - emp_no: \"0001\"\n    employment_type: パート\n"
			},
			errContains: "duplicate employee number",
		},
		{
			name:        "Exemption without details",
			edit:        func(doc string) string { return doc + "    has_exemption: true\n" },
			errContains: "exemption details are required",
		},
		{
			name: "Exemption window reversed",
			edit: func(doc string) string {
				return doc + "    has_exemption: true\n    exemption_details:\n      target_insurances: [health]\n      start_month: \"2025-06\"\n      end_month: \"2025-01\"\n"
			},
			errContains: "is before start month",
		},
		{
			name: "Unknown insurance type",
			edit: func(doc string) string {
				return doc + "    has_exemption: true\n    exemption_details:\n      target_insurances: [dental]\n      start_month: \"2025-01\"\n      end_month: \"2025-06\"\n"
			},
			errContains: "unknown insurance type",
		},
		{
			name: "Duplicate income month",
			edit: func(doc string) string {
				return doc + "    incomes:\n      - { applicable_month: \"2025-05\", base_amount: 300000, work_days: 20 }\n      - { applicable_month: \"2025-05\", base_amount: 300000, work_days: 20 }\n"
			},
			errContains: "duplicate income record",
		},
		{
			name: "Work days out of range",
			edit: func(doc string) string {
				return doc + "    incomes:\n      - { applicable_month: \"2025-05\", base_amount: 300000, work_days: 40 }\n"
			},
			errContains: "work days must be between 0 and 31",
		},
		{
			name:        "Unknown method",
			edit:        func(doc string) string { return doc + "options:\n  method: guess\n" },
			errContains: "unknown calculation method",
		},
		{
			name:        "Override for unknown employee",
			edit:        func(doc string) string { return doc + "options:\n  exemption_overrides:\n    \"9999\": [health]\n" },
			errContains: "unknown employee",
		},
		{
			name: "Rate above one",
			edit: func(doc string) string {
				return doc + "options:\n  rate_override:\n    health: { employee: \"1.5\", company: \"0.05\" }\n"
			},
			errContains: "must be a fraction between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewInputParser().Parse([]byte(tt.edit(minimalConfig)))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestValidateConfiguration_InlineReference(t *testing.T) {
	doc := minimalConfig + `reference:
  health_grades:
    - { grade: 1, lower: 0, upper: 100000, monthly: 80000 }
    - { grade: 2, lower: 120000, upper: Infinity, monthly: 150000 }
  pension_grades:
    - { grade: 1, lower: 0, upper: Infinity, monthly: 88000 }
`
	_, err := NewInputParser().Parse([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGradeTableGap)
}
