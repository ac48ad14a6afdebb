package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per employee).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.RosterResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"EmpNo", "Name", "Month", "HealthStatus", "PensionStatus", "CareStatus", "HealthGrade", "PensionGrade", "StandardMonthlyAmount", "HealthEmployee", "HealthCompany", "PensionEmployee", "PensionCompany", "CareEmployee", "CareCompany", "EmployeeTotal", "CompanyTotal", "Total", "Skipped"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range sortedEmployees(results.Employees) {
		row := []string{
			e.EmpNo,
			e.Name,
			results.ApplicableMonth.String(),
			e.Status.HealthInsuranceStatus,
			e.Status.PensionStatus,
			e.Status.CareInsuranceStatus,
		}
		if p := e.Premium; p != nil {
			total := p.Total()
			row = append(row,
				intToString(p.HealthGrade),
				intToString(p.PensionGrade),
				int64ToString(p.StandardMonthlyAmount),
				int64ToString(p.HealthPremium.Employee),
				int64ToString(p.HealthPremium.Company),
				int64ToString(p.PensionPremium.Employee),
				int64ToString(p.PensionPremium.Company),
				int64ToString(p.CarePremium.Employee),
				int64ToString(p.CarePremium.Company),
				int64ToString(total.Employee),
				int64ToString(total.Company),
				int64ToString(total.Total),
				"",
			)
		} else {
			// blank amounts rather than zeros: nothing was calculated
			row = append(row, "", "", "", "", "", "", "", "", "", "", "", "", e.Skipped)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
