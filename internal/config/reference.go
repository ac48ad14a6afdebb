package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed reference_tables.yaml
var defaultReferenceYAML []byte

// Grade table validation errors
var (
	ErrGradeTableEmpty     = errors.New("grade table is empty")
	ErrGradeTableUnordered = errors.New("grade table is not in ascending order")
	ErrGradeTableGap       = errors.New("grade table brackets are not contiguous")
	ErrGradeTableBounded   = errors.New("only the last grade may be unbounded")
)

// DefaultReferenceTables returns the embedded 協会けんぽ tables
func DefaultReferenceTables() (*domain.ReferenceTables, error) {
	return ParseReferenceTables(defaultReferenceYAML)
}

// LoadReferenceTables reads and validates a reference table file
func LoadReferenceTables(filename string) (*domain.ReferenceTables, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseReferenceTables(data)
}

// ParseReferenceTables decodes and validates a reference table document
func ParseReferenceTables(data []byte) (*domain.ReferenceTables, error) {
	var tables domain.ReferenceTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ValidateReferenceTables(&tables); err != nil {
		return nil, fmt.Errorf("reference tables validation failed: %w", err)
	}
	return &tables, nil
}

// ValidateReferenceTables checks both grade tables and every prefecture's rates
func ValidateReferenceTables(tables *domain.ReferenceTables) error {
	if err := ValidateGradeTable(tables.HealthGrades); err != nil {
		return fmt.Errorf("health grades: %w", err)
	}
	if err := ValidateGradeTable(tables.PensionGrades); err != nil {
		return fmt.Errorf("pension grades: %w", err)
	}
	for prefecture, rates := range tables.Rates {
		if err := ValidateRates(&rates); err != nil {
			return fmt.Errorf("rates for %s: %w", prefecture, err)
		}
	}
	return nil
}

// ValidateGradeTable rejects tables the lookup cannot handle: brackets must ascend, each
// upper bound must be the next bracket's lower bound, and only the last may be unbounded.
func ValidateGradeTable(grades []domain.SalaryGrade) error {
	if len(grades) == 0 {
		return ErrGradeTableEmpty
	}
	for i, g := range grades {
		if g.Lower < 0 || g.Monthly <= 0 {
			return fmt.Errorf("grade %d: lower bound and monthly amount must be positive", g.Grade)
		}
		if !g.Upper.Infinite && g.Upper.Value <= g.Lower {
			return fmt.Errorf("grade %d: %w", g.Grade, ErrGradeTableUnordered)
		}
		if i == 0 {
			continue
		}
		prev := grades[i-1]
		if g.Grade <= prev.Grade || g.Lower <= prev.Lower {
			return fmt.Errorf("grade %d: %w", g.Grade, ErrGradeTableUnordered)
		}
		if prev.Upper.Infinite {
			return fmt.Errorf("grade %d: %w", prev.Grade, ErrGradeTableBounded)
		}
		if prev.Upper.Value != g.Lower {
			return fmt.Errorf("grades %d and %d: %w", prev.Grade, g.Grade, ErrGradeTableGap)
		}
	}
	return nil
}

// ValidateRates checks that every rate is a fraction in [0, 1)
func ValidateRates(rates *domain.InsuranceRates) error {
	for _, t := range domain.AllInsuranceTypes {
		pair := rates.For(t)
		for _, r := range []decimal.Decimal{pair.Employee, pair.Company} {
			if r.IsNegative() || r.GreaterThanOrEqual(decimal.NewFromInt(1)) {
				return fmt.Errorf("%s rate %s must be a fraction between 0 and 1", t, r)
			}
		}
	}
	return nil
}
