package calculation

import (
	"sort"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Revision thresholds
const (
	RevisionWindowMonths   = 3
	RevisionGradeThreshold = 2
	WorkDayFloorStandard   = 17
	WorkDayFloorShortTime  = 11
)

// RevisionInput describes the window to check. CurrentGrade falls back to the
// employee's CurrentHealthGrade when zero.
type RevisionInput struct {
	Employee               *domain.Employee
	Company                *domain.Company
	HealthGrades           []domain.SalaryGrade
	CandidateMonth         dateutil.YearMonth
	CurrentGrade           int
	BonusMonthlyEquivalent decimal.Decimal
}

// CheckRevision evaluates the three revision conditions over the window of three
// consecutive months ending at CandidateMonth. Missing income records or grade history
// leave the affected condition false; they are not errors.
func CheckRevision(in RevisionInput) (*domain.RevisionCheck, error) {
	if in.CandidateMonth.IsZero() {
		return nil, ErrMissingApplicableMonth
	}
	if in.Employee == nil {
		return nil, ErrNoSalary
	}

	window := make([]dateutil.YearMonth, RevisionWindowMonths)
	for i := range window {
		window[i] = in.CandidateMonth.AddMonths(i - RevisionWindowMonths + 1)
	}

	check := &domain.RevisionCheck{
		EmpNo:          in.Employee.EmpNo,
		CandidateMonth: in.CandidateMonth,
		WindowMonths:   window,
		ChangeMonth:    in.CandidateMonth,
		WorkDayFloor:   WorkDayFloor(in.Employee, in.Company),
	}

	records := make([]domain.IncomeRecord, 0, len(window))
	for _, m := range window {
		if r, ok := in.Employee.IncomeFor(m); ok {
			records = append(records, r)
		}
	}
	complete := len(records) == len(window)

	checkFixedWageChange(check, in.Employee)
	if complete {
		checkGradeDifference(check, in, records)
		checkWorkDays(check, records)
	}

	check.Eligible = check.FixedWageChanged && check.GradeDifferenceMet && check.WorkDaysMet
	return check, nil
}

// WorkDayFloor returns the monthly work-day minimum for the employee: 17 days, or 11 for
// employees working fewer hours than the company standard.
func WorkDayFloor(employee *domain.Employee, company *domain.Company) int {
	if company != nil && company.IsShortTime(employee) {
		return WorkDayFloorShortTime
	}
	return WorkDayFloorStandard
}

// checkFixedWageChange compares the latest month of the window with the record preceding it
func checkFixedWageChange(check *domain.RevisionCheck, employee *domain.Employee) {
	current, ok := employee.IncomeFor(check.ChangeMonth)
	if !ok {
		return
	}
	baseline, ok := previousIncome(employee.Incomes, check.ChangeMonth)
	if !ok {
		return
	}
	check.BaselineMonth = baseline.ApplicableMonth
	check.BaseChanged = !current.BaseAmount.Equal(baseline.BaseAmount)
	check.AllowanceChanged = !sameFixedAllowances(current, baseline)
	check.FixedWageChanged = check.BaseChanged || check.AllowanceChanged
}

func checkGradeDifference(check *domain.RevisionCheck, in RevisionInput, records []domain.IncomeRecord) {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(r.Total())
	}
	average := sum.Div(decimal.NewFromInt(int64(len(records)))).Floor()
	bonus := in.BonusMonthlyEquivalent.Floor()
	average = average.Add(bonus)

	check.AverageRemuneration = average.IntPart()
	check.BonusMonthlyEquivalent = bonus.IntPart()

	grade, ok := LookupGrade(average, in.HealthGrades)
	if !ok {
		return
	}
	check.NewGrade = grade.Grade
	check.NewStandardMonthlyAmount = grade.Monthly

	current := in.CurrentGrade
	if current == 0 {
		current = in.Employee.CurrentHealthGrade
	}
	if current == 0 {
		return
	}
	check.CurrentGrade = current
	check.GradeDifference = grade.Grade - current
	check.GradeDifferenceMet = abs(check.GradeDifference) >= RevisionGradeThreshold
}

func checkWorkDays(check *domain.RevisionCheck, records []domain.IncomeRecord) {
	check.WorkDaysMet = true
	for _, r := range records {
		check.WorkDays = append(check.WorkDays, r.WorkDays)
		if r.WorkDays < check.WorkDayFloor {
			check.WorkDaysMet = false
		}
	}
}

// previousIncome returns the latest record strictly before month
func previousIncome(incomes []domain.IncomeRecord, month dateutil.YearMonth) (domain.IncomeRecord, bool) {
	var (
		found  domain.IncomeRecord
		exists bool
	)
	for _, r := range incomes {
		if !r.ApplicableMonth.Before(month) {
			continue
		}
		if !exists || r.ApplicableMonth.After(found.ApplicableMonth) {
			found = r
			exists = true
		}
	}
	return found, exists
}

// sameFixedAllowances compares the fixed allowances of two records pairwise by name
func sameFixedAllowances(a, b domain.IncomeRecord) bool {
	left := sortedByName(a.FixedAllowances())
	right := sortedByName(b.FixedAllowances())
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i].Name != right[i].Name || !left[i].Amount.Equal(right[i].Amount) {
			return false
		}
	}
	return true
}

func sortedByName(allowances []domain.Allowance) []domain.Allowance {
	sort.SliceStable(allowances, func(i, j int) bool {
		return allowances[i].Name < allowances[j].Name
	})
	return allowances
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
