package output

import (
	"sort"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// RosterSummary holds the headline counts of a roster run.
type RosterSummary struct {
	Employees       int
	Computed        int
	Skipped         int
	HealthEnrolled  int
	PensionEnrolled int
	CareEnrolled    int // collected with health insurance
	// Employees with at least one exempted insurance type
	Exempted           int
	BonusPayments      int
	RevisionCandidates []string
	// Employee with the highest monthly total; empty when nothing was computed
	LargestEmpNo   string
	LargestMonthly int64
}

// AnalyzeRoster derives the summary shown by the console and HTML reports.
// Extracted from the formatters for testability.
func AnalyzeRoster(results *domain.RosterResult) RosterSummary {
	s := RosterSummary{Employees: len(results.Employees)}
	for _, e := range results.Employees {
		if e.Eligibility.Health.IsEnrolled() {
			s.HealthEnrolled++
		}
		if e.Eligibility.Pension.IsEnrolled() {
			s.PensionEnrolled++
		}
		if e.Eligibility.Care.IsEnrolled() && e.Eligibility.Care.HealthEnrolled {
			s.CareEnrolled++
		}
		s.BonusPayments += len(e.Bonuses)
		if e.Revision != nil && e.Revision.Eligible {
			s.RevisionCandidates = append(s.RevisionCandidates, e.EmpNo)
		}
		if e.Premium == nil {
			s.Skipped++
			continue
		}
		s.Computed++
		if len(e.Premium.Exempted) > 0 {
			s.Exempted++
		}
		if total := e.Premium.Total().Total; total > s.LargestMonthly {
			s.LargestEmpNo, s.LargestMonthly = e.EmpNo, total
		}
	}
	sort.Strings(s.RevisionCandidates)
	return s
}
