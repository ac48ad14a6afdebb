package output

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.RosterResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PREMIUM CALCULATION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Company: %s %s (%s)\n", results.CompanyID, results.CompanyName, results.Prefecture)
	fmt.Fprintf(&buf, "Month: %s\n", results.ApplicableMonth)
	summary := AnalyzeRoster(results)
	fmt.Fprintf(&buf, "Employees: %d (computed %d, skipped %d)\n", summary.Employees, summary.Computed, summary.Skipped)
	fmt.Fprintln(&buf)

	for _, e := range sortedEmployees(results.Employees) {
		if e.Premium == nil {
			fmt.Fprintf(&buf, "%s %s: skipped (%s)\n", e.EmpNo, e.Name, e.Skipped)
			continue
		}
		p := e.Premium
		fmt.Fprintf(&buf, "%s %s: Health=%s Pension=%s Care=%s Total=%s\n",
			e.EmpNo,
			e.Name,
			FormatYen(p.HealthPremium.Total),
			FormatYen(p.PensionPremium.Total),
			FormatYen(p.CarePremium.Total),
			FormatYen(p.Total().Total),
		)
	}

	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Monthly Total: %s\n", formatBreakdown(results.MonthlyTotal))
	if summary.BonusPayments > 0 {
		fmt.Fprintf(&buf, "Bonus Total:   %s\n", formatBreakdown(results.BonusTotal))
	}
	if len(summary.RevisionCandidates) > 0 {
		fmt.Fprintf(&buf, "Revision candidates: %s\n", strings.Join(summary.RevisionCandidates, ", "))
	}
	return buf.Bytes(), nil
}

// sortedEmployees returns a copy ordered by employee number
func sortedEmployees(employees []domain.EmployeeResult) []domain.EmployeeResult {
	out := append([]domain.EmployeeResult(nil), employees...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].EmpNo < out[j].EmpNo })
	return out
}

func formatBreakdown(b domain.PremiumBreakdown) string {
	return fmt.Sprintf("employee %s / company %s / total %s", FormatYen(b.Employee), FormatYen(b.Company), FormatYen(b.Total))
}
