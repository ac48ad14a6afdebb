package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed per-employee console report via the pluggable interface.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.RosterResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DETAILED SOCIAL INSURANCE PREMIUM REPORT")
	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Company:          %s %s\n", results.CompanyID, results.CompanyName)
	fmt.Fprintf(&buf, "Prefecture:       %s\n", results.Prefecture)
	fmt.Fprintf(&buf, "Applicable Month: %s\n", results.ApplicableMonth)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, e := range results.Employees {
		fmt.Fprintf(&buf, "EMPLOYEE %d: %s %s\n", i+1, e.EmpNo, e.Name)
		fmt.Fprintln(&buf, strings.Repeat("=", 50))
		writeEligibility(&buf, e.Eligibility)
		if e.Premium == nil {
			fmt.Fprintf(&buf, "Premium: skipped (%s)\n", e.Skipped)
		} else {
			writePremium(&buf, e.Premium)
		}
		for _, b := range e.Bonuses {
			writeBonus(&buf, b)
		}
		if e.Revision != nil {
			writeRevision(&buf, e.Revision)
		}
		fmt.Fprintln(&buf)
	}

	summary := AnalyzeRoster(results)
	fmt.Fprintln(&buf, "TOTALS")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	fmt.Fprintf(&buf, "Employees computed: %d of %d\n", summary.Computed, summary.Employees)
	fmt.Fprintf(&buf, "Monthly premiums:   %s\n", formatBreakdown(results.MonthlyTotal))
	fmt.Fprintf(&buf, "Bonus premiums:     %s\n", formatBreakdown(results.BonusTotal))
	if summary.LargestEmpNo != "" {
		fmt.Fprintf(&buf, "Largest monthly:    %s (%s)\n", summary.LargestEmpNo, FormatYen(summary.LargestMonthly))
	}
	return buf.Bytes(), nil
}

func writeEligibility(w io.Writer, r domain.EligibilityResult) {
	fmt.Fprintln(w, "ELIGIBILITY:")
	for _, t := range domain.AllInsuranceTypes {
		c := r.For(t)
		if c.IsEnrolled() {
			fmt.Fprintf(w, "  %-8s %s\n", t, c.Status.Label())
			continue
		}
		fmt.Fprintf(w, "  %-8s %s %s\n", t, c.Status.Label(), c.Reason())
	}
}

func writePremium(w io.Writer, p *domain.PremiumRecord) {
	fmt.Fprintf(w, "MONTHLY PREMIUM (%s):\n", p.Method)
	fmt.Fprintf(w, "  Remuneration:            %s", FormatYen(p.Components.Total))
	if p.Components.BonusMonthlyEquivalent > 0 {
		fmt.Fprintf(w, " (incl. bonus equivalent %s)", FormatYen(p.Components.BonusMonthlyEquivalent))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Standard monthly amount: %s (health grade %s, pension grade %s)\n",
		FormatYen(p.StandardMonthlyAmount), FormatGrade(p.HealthGrade), FormatGrade(p.PensionGrade))
	fmt.Fprintf(w, "  %-8s %12s %12s %12s\n", "", "Employee", "Company", "Total")
	rows := []struct {
		label string
		b     domain.PremiumBreakdown
	}{
		{"health", p.HealthPremium},
		{"pension", p.PensionPremium},
		{"care", p.CarePremium},
		{"total", p.Total()},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-8s %12s %12s %12s\n", row.label, FormatYen(row.b.Employee), FormatYen(row.b.Company), FormatYen(row.b.Total))
	}
	if len(p.Exempted) > 0 {
		fmt.Fprintf(w, "  Exempted: %s\n", joinTypes(p.Exempted))
	}
}

func writeBonus(w io.Writer, b *domain.BonusPremiumRecord) {
	fmt.Fprintf(w, "BONUS %s: %s (standard %s, FY%d total %s)\n",
		b.ApplicableMonth, FormatYen(b.Amount), FormatYen(b.StandardBonusAmount), b.FiscalYear, FormatYen(b.FiscalYearTotal))
	for _, row := range []struct {
		label string
		b     *domain.PremiumBreakdown
	}{
		{"health", b.HealthPremium},
		{"pension", b.PensionPremium},
		{"care", b.CarePremium},
	} {
		if row.b == nil {
			fmt.Fprintf(w, "  %-8s %12s\n", row.label, "n/a")
			continue
		}
		fmt.Fprintf(w, "  %-8s %12s %12s %12s\n", row.label, FormatYen(row.b.Employee), FormatYen(row.b.Company), FormatYen(row.b.Total))
	}
}

func writeRevision(w io.Writer, r *domain.RevisionCheck) {
	verdict := "not eligible"
	if r.Eligible {
		verdict = "ELIGIBLE"
	}
	fmt.Fprintf(w, "REVISION CHECK (%s): %s\n", r.CandidateMonth, verdict)
	fmt.Fprintf(w, "  fixed wage changed: %s, grade difference met: %s (grade %s -> %s), work days met: %s\n",
		boolToString(r.FixedWageChanged), boolToString(r.GradeDifferenceMet),
		FormatGrade(r.CurrentGrade), FormatGrade(r.NewGrade), boolToString(r.WorkDaysMet))
}

func joinTypes(types []domain.InsuranceType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
