package calculation

import (
	"time"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// RegularDeterminationInput selects the employee and year for a 定時決定
type RegularDeterminationInput struct {
	Employee      *domain.Employee
	Company       *domain.Company
	HealthGrades  []domain.SalaryGrade
	PensionGrades []domain.SalaryGrade
	Year          int
}

// AverageMonthlyRemuneration averages the April to June income of Year, counting only
// months that meet the work-day floor, and grades the average. The merged-bonus monthly
// equivalent as of June is added before grading.
func AverageMonthlyRemuneration(in RegularDeterminationInput) (*domain.RegularDetermination, error) {
	if in.Employee == nil {
		return nil, ErrNoSalary
	}

	floor := WorkDayFloor(in.Employee, in.Company)
	result := &domain.RegularDetermination{
		EmpNo:         in.Employee.EmpNo,
		Year:          in.Year,
		WorkDayFloor:  floor,
		EffectiveFrom: dateutil.NewYearMonth(in.Year, time.September),
	}

	sum := decimal.Zero
	for m := time.April; m <= time.June; m++ {
		month := dateutil.NewYearMonth(in.Year, m)
		r, ok := in.Employee.IncomeFor(month)
		if !ok || r.WorkDays < floor {
			continue
		}
		sum = sum.Add(r.Total())
		result.QualifyingMonths = append(result.QualifyingMonths, month)
	}
	if len(result.QualifyingMonths) == 0 {
		return nil, ErrNoQualifyingMonths
	}

	average := sum.Div(decimal.NewFromInt(int64(len(result.QualifyingMonths)))).Floor()
	bonus := BonusMonthlyEquivalent(in.Employee.Bonuses, dateutil.NewYearMonth(in.Year, time.June))
	average = average.Add(bonus)
	result.AverageRemuneration = average.IntPart()
	result.BonusMonthlyEquivalent = bonus.IntPart()

	health, healthFound := LookupGrade(average, in.HealthGrades)
	pension, pensionFound := LookupGrade(average, in.PensionGrades)
	if !healthFound && !pensionFound {
		return nil, ErrNoGrade
	}
	if healthFound {
		result.HealthGrade = health.Grade
		result.StandardMonthlyAmount = health.Monthly
	}
	if pensionFound {
		result.PensionGrade = pension.Grade
	}
	return result, nil
}
