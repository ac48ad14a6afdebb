package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"golang.org/x/sync/errgroup"
)

// ErrNoReference is returned when neither the engine nor the configuration carries reference tables
var ErrNoReference = errors.New("no reference tables configured")

// CalculationEngine ties the reference tables, eligibility evaluator, premium calculators
// and revision checker together for one company configuration.
type CalculationEngine struct {
	Reference *domain.ReferenceTables
	Clock     Clock
	Logger    Logger
	// Upper bound on employees calculated concurrently; 0 means GOMAXPROCS
	Workers int
}

// NewCalculationEngine creates an engine over the given reference tables
func NewCalculationEngine(reference *domain.ReferenceTables) *CalculationEngine {
	return &CalculationEngine{
		Reference: reference,
		Clock:     SystemClock,
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// SetClock replaces the timestamp source; nil restores the system clock
func (ce *CalculationEngine) SetClock(c Clock) {
	if c == nil {
		ce.Clock = SystemClock
		return
	}
	ce.Clock = c
}

// ReferenceFor returns the tables in force for cfg: its own block when present, the engine's otherwise
func (ce *CalculationEngine) ReferenceFor(cfg *domain.Configuration) (*domain.ReferenceTables, error) {
	if cfg.Reference != nil {
		return cfg.Reference, nil
	}
	if ce.Reference == nil {
		return nil, ErrNoReference
	}
	return ce.Reference, nil
}

// Rates resolves the contribution rates for the configured company
func (ce *CalculationEngine) Rates(cfg *domain.Configuration) (domain.InsuranceRates, error) {
	ref, err := ce.ReferenceFor(cfg)
	if err != nil {
		return domain.InsuranceRates{}, err
	}
	if _, ok := ref.Rates[cfg.Company.Prefecture]; !ok && cfg.Options.RateOverride == nil {
		ce.Logger.Warnf("no rates for prefecture %q; health and pension rates fall back to zero", cfg.Company.Prefecture)
	}
	return ResolveRates(&cfg.Company, ref.Rates, cfg.Options.RateOverride), nil
}

// Evaluate runs the eligibility evaluator for employee against the configuration's roster
func (ce *CalculationEngine) Evaluate(cfg *domain.Configuration, employee *domain.Employee, month dateutil.YearMonth) domain.EligibilityResult {
	return EvaluateEligibility(employee, &cfg.Company, month, cfg.Employees)
}

// MonthlySalary returns the remuneration graded for month: the month's income record
// total when one exists, the contractual monthly wage otherwise.
func MonthlySalary(employee *domain.Employee, month dateutil.YearMonth) (domain.IncomeRecord, bool) {
	if r, ok := employee.IncomeFor(month); ok {
		return r, true
	}
	return domain.IncomeRecord{ApplicableMonth: month, BaseAmount: employee.MonthlyWage}, false
}

// CalculateMonthly computes the monthly premium record of employee for month
func (ce *CalculationEngine) CalculateMonthly(cfg *domain.Configuration, employee *domain.Employee, month dateutil.YearMonth) (*domain.PremiumRecord, error) {
	ref, err := ce.ReferenceFor(cfg)
	if err != nil {
		return nil, err
	}
	rates, err := ce.Rates(cfg)
	if err != nil {
		return nil, err
	}

	eligibility := ce.Evaluate(cfg, employee, month)
	income, recorded := MonthlySalary(employee, month)
	in := MonthlyPremiumInput{
		Salary:                 income.Total(),
		Employee:               employee,
		Company:                &cfg.Company,
		Rates:                  rates,
		HealthGrades:           ref.HealthGrades,
		PensionGrades:          ref.PensionGrades,
		BonusMonthlyEquivalent: BonusMonthlyEquivalent(employee.Bonuses, month),
		ApplicableMonth:        month,
		ExemptionsOverride:     cfg.Options.ExemptionOverrides[employee.EmpNo],
		DisableAutoExemption:   cfg.Options.DisableAutoExemption,
		Eligibility:            &eligibility,
		Method:                 cfg.Options.Method,
		CalculatedAt:           ce.Clock(),
	}
	if recorded {
		in.Income = &income
	}

	record, err := CalculateMonthlyPremium(in)
	if err != nil {
		return nil, fmt.Errorf("employee %s %s: %w", employee.EmpNo, month, err)
	}
	ce.Logger.Debugf("employee %s %s: health grade %d, pension grade %d, total %d",
		employee.EmpNo, month, record.HealthGrade, record.PensionGrade, record.Total().Total)
	return record, nil
}

// CalculateBonuses computes every standalone bonus of employee in chronological order
func (ce *CalculationEngine) CalculateBonuses(cfg *domain.Configuration, employee *domain.Employee) ([]*domain.BonusPremiumRecord, error) {
	rates, err := ce.Rates(cfg)
	if err != nil {
		return nil, err
	}
	records, err := CalculateBonusPremiumsForEmployee(BonusBatchInput{
		Employee:             employee,
		Company:              &cfg.Company,
		Rates:                rates,
		ExemptionsOverride:   cfg.Options.ExemptionOverrides[employee.EmpNo],
		DisableAutoExemption: cfg.Options.DisableAutoExemption,
		Evaluate: func(month dateutil.YearMonth) *domain.EligibilityResult {
			result := ce.Evaluate(cfg, employee, month)
			return &result
		},
		CalculatedAt: ce.Clock(),
	})
	if err != nil {
		return nil, fmt.Errorf("employee %s bonuses: %w", employee.EmpNo, err)
	}
	return records, nil
}

// CheckRevision runs the revision checker for the window ending at month
func (ce *CalculationEngine) CheckRevision(cfg *domain.Configuration, employee *domain.Employee, month dateutil.YearMonth) (*domain.RevisionCheck, error) {
	ref, err := ce.ReferenceFor(cfg)
	if err != nil {
		return nil, err
	}
	return CheckRevision(RevisionInput{
		Employee:               employee,
		Company:                &cfg.Company,
		HealthGrades:           ref.HealthGrades,
		CandidateMonth:         month,
		BonusMonthlyEquivalent: BonusMonthlyEquivalent(employee.Bonuses, month),
	})
}

// RegularDetermination averages April to June of year for employee
func (ce *CalculationEngine) RegularDetermination(cfg *domain.Configuration, employee *domain.Employee, year int) (*domain.RegularDetermination, error) {
	ref, err := ce.ReferenceFor(cfg)
	if err != nil {
		return nil, err
	}
	return AverageMonthlyRemuneration(RegularDeterminationInput{
		Employee:      employee,
		Company:       &cfg.Company,
		HealthGrades:  ref.HealthGrades,
		PensionGrades: ref.PensionGrades,
		Year:          year,
	})
}

// CalculateRoster evaluates and calculates every employee of cfg for its applicable month.
// Employees are processed concurrently; results keep roster order. Not-computable
// employees are reported as skipped rather than failing the run.
func (ce *CalculationEngine) CalculateRoster(ctx context.Context, cfg *domain.Configuration) (*domain.RosterResult, error) {
	month := cfg.ApplicableMonth
	if month.IsZero() {
		return nil, ErrMissingApplicableMonth
	}
	ref, err := ce.ReferenceFor(cfg)
	if err != nil {
		return nil, err
	}
	rates, err := ce.Rates(cfg)
	if err != nil {
		return nil, err
	}

	ce.Logger.Infof("calculating %d employees of %s for %s", len(cfg.Employees), cfg.Company.ID, month)

	results := make([]domain.EmployeeResult, len(cfg.Employees))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.workers())
	for i := range cfg.Employees {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := ce.calculateEmployee(cfg, &cfg.Employees[i], month)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roster := &domain.RosterResult{
		CompanyID:       cfg.Company.ID,
		CompanyName:     cfg.Company.Name,
		Prefecture:      cfg.Company.Prefecture,
		ApplicableMonth: month,
		Reference:       ref.Metadata,
		Rates:           rates,
		Employees:       results,
		CalculatedAt:    ce.Clock(),
	}
	for _, r := range results {
		if r.Premium != nil {
			roster.MonthlyTotal = roster.MonthlyTotal.Add(r.Premium.Total())
		}
		for _, b := range r.Bonuses {
			roster.BonusTotal = roster.BonusTotal.Add(b.Total())
		}
	}
	ce.Logger.Infof("calculated %d of %d employees, monthly total %d", roster.Computed(), len(results), roster.MonthlyTotal.Total)
	return roster, nil
}

func (ce *CalculationEngine) calculateEmployee(cfg *domain.Configuration, employee *domain.Employee, month dateutil.YearMonth) (domain.EmployeeResult, error) {
	eligibility := ce.Evaluate(cfg, employee, month)
	result := domain.EmployeeResult{
		EmpNo:       employee.EmpNo,
		Name:        employee.Name,
		Eligibility: eligibility,
		Status:      eligibility.StatusPatch(),
	}

	premium, err := ce.CalculateMonthly(cfg, employee, month)
	switch {
	case IsNotComputable(err):
		ce.Logger.Warnf("skipping employee %s: %v", employee.EmpNo, err)
		result.Skipped = err.Error()
	case err != nil:
		return result, err
	default:
		result.Premium = premium
	}

	bonuses, err := ce.CalculateBonuses(cfg, employee)
	switch {
	case IsNotComputable(err):
		ce.Logger.Warnf("skipping bonuses of employee %s: %v", employee.EmpNo, err)
	case err != nil:
		return result, err
	default:
		for _, b := range bonuses {
			if b.ApplicableMonth == month {
				result.Bonuses = append(result.Bonuses, b)
			}
		}
	}

	revision, err := ce.CheckRevision(cfg, employee, month)
	if err != nil {
		return result, err
	}
	result.Revision = revision
	return result, nil
}

func (ce *CalculationEngine) workers() int {
	if ce.Workers > 0 {
		return ce.Workers
	}
	return runtime.GOMAXPROCS(0)
}
