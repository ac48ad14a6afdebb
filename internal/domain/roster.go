package domain

import (
	"time"

	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// EmployeeResult is everything computed for one employee in a roster run
type EmployeeResult struct {
	EmpNo       string                `json:"emp_no"`
	Name        string                `json:"name"`
	Eligibility EligibilityResult     `json:"eligibility"`
	Status      InsuranceStatusFields `json:"status"`
	Premium     *PremiumRecord        `json:"premium,omitempty"`
	Bonuses     []*BonusPremiumRecord `json:"bonuses,omitempty"`
	Revision    *RevisionCheck        `json:"revision,omitempty"`
	// Why no monthly premium could be computed, when Premium is nil
	Skipped string `json:"skipped,omitempty"`
}

// RosterResult is the outcome of calculating a whole company for one month
type RosterResult struct {
	CompanyID       string             `json:"company_id"`
	CompanyName     string             `json:"company_name"`
	Prefecture      string             `json:"prefecture"`
	ApplicableMonth dateutil.YearMonth `json:"applicable_month"`
	Reference       ReferenceMetadata  `json:"reference"`
	Rates           InsuranceRates     `json:"rates"`
	Employees       []EmployeeResult   `json:"employees"`
	MonthlyTotal    PremiumBreakdown   `json:"monthly_total"`
	BonusTotal      PremiumBreakdown   `json:"bonus_total"`
	CalculatedAt    time.Time          `json:"calculated_at"`
}

// Computed counts the employees that have a monthly premium record
func (r *RosterResult) Computed() int {
	n := 0
	for _, e := range r.Employees {
		if e.Premium != nil {
			n++
		}
	}
	return n
}

// RevisionCandidates returns the employees whose revision check came out eligible
func (r *RosterResult) RevisionCandidates() []EmployeeResult {
	var out []EmployeeResult
	for _, e := range r.Employees {
		if e.Revision != nil && e.Revision.Eligible {
			out = append(out, e)
		}
	}
	return out
}
