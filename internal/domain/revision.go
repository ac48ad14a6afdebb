package domain

import "github.com/shakaihoken/premium-calculator/pkg/dateutil"

// RevisionCheck is the audit record of a 随時改定 eligibility check. Each condition is
// reported with the data it was decided on.
type RevisionCheck struct {
	EmpNo          string               `json:"emp_no"`
	CandidateMonth dateutil.YearMonth   `json:"candidate_month"`
	WindowMonths   []dateutil.YearMonth `json:"window_months"`

	// Condition A: fixed wage of the latest month differs from the preceding record
	FixedWageChanged bool               `json:"fixed_wage_changed"`
	ChangeMonth      dateutil.YearMonth `json:"change_month"`
	BaselineMonth    dateutil.YearMonth `json:"baseline_month,omitempty"`
	BaseChanged      bool               `json:"base_changed"`
	AllowanceChanged bool               `json:"allowance_changed"`

	// Condition B: regraded window average differs by two grades or more
	GradeDifferenceMet       bool  `json:"grade_difference_met"`
	AverageRemuneration      int64 `json:"average_remuneration"`
	BonusMonthlyEquivalent   int64 `json:"bonus_monthly_equivalent"`
	CurrentGrade             int   `json:"current_grade"`
	NewGrade                 int   `json:"new_grade"`
	GradeDifference          int   `json:"grade_difference"`
	NewStandardMonthlyAmount int64 `json:"new_standard_monthly_amount"`

	// Condition C: every window month meets the work-day floor
	WorkDaysMet  bool  `json:"work_days_met"`
	WorkDayFloor int   `json:"work_day_floor"`
	WorkDays     []int `json:"work_days"`

	Eligible bool `json:"eligible"`
}

// RegularDetermination is the 定時決定 result for one employee and year
type RegularDetermination struct {
	EmpNo                  string               `json:"emp_no"`
	Year                   int                  `json:"year"`
	QualifyingMonths       []dateutil.YearMonth `json:"qualifying_months"`
	WorkDayFloor           int                  `json:"work_day_floor"`
	AverageRemuneration    int64                `json:"average_remuneration"`
	BonusMonthlyEquivalent int64                `json:"bonus_monthly_equivalent"`
	HealthGrade            int                  `json:"health_grade"`
	PensionGrade           int                  `json:"pension_grade"`
	StandardMonthlyAmount  int64                `json:"standard_monthly_amount"`
	// September of Year, when the determined amount takes effect
	EffectiveFrom dateutil.YearMonth `json:"effective_from"`
}
