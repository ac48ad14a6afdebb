package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// CSVDetailedExporter provides one row per employee, record and insurance type,
// covering the monthly record and each bonus record of the run.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.RosterResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"EmpNo", "RecordID", "Kind", "Month", "Insurance", "Base", "Employee", "Company", "Total", "Applicable", "Exempted"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range sortedEmployees(results.Employees) {
		if p := e.Premium; p != nil {
			bases := map[domain.InsuranceType]int64{
				domain.InsuranceHealth:  p.StandardMonthlyAmount,
				domain.InsurancePension: p.PensionStandardMonthlyAmount,
				domain.InsuranceCare:    p.StandardMonthlyAmount,
			}
			breakdowns := map[domain.InsuranceType]domain.PremiumBreakdown{
				domain.InsuranceHealth:  p.HealthPremium,
				domain.InsurancePension: p.PensionPremium,
				domain.InsuranceCare:    p.CarePremium,
			}
			for _, t := range domain.AllInsuranceTypes {
				b := breakdowns[t]
				row := []string{
					e.EmpNo,
					p.ID,
					string(p.Method),
					p.ApplicableMonth.String(),
					string(t),
					int64ToString(bases[t]),
					int64ToString(b.Employee),
					int64ToString(b.Company),
					int64ToString(b.Total),
					boolToString(e.Eligibility.For(t).IsEnrolled()),
					boolToString(containsType(p.Exempted, t)),
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
		for _, bonus := range e.Bonuses {
			rows := []struct {
				t    domain.InsuranceType
				base int64
				b    *domain.PremiumBreakdown
			}{
				{domain.InsuranceHealth, bonus.ApplicableAmount, bonus.HealthPremium},
				{domain.InsurancePension, bonus.ApplicableAmount, bonus.PensionPremium},
				{domain.InsuranceCare, bonus.ApplicableAmount, bonus.CarePremium},
			}
			for _, r := range rows {
				row := []string{e.EmpNo, bonus.ID, string(domain.MethodBonus), bonus.ApplicableMonth.String(), string(r.t), int64ToString(r.base)}
				if r.b == nil {
					row = append(row, "", "", "", "false", "false")
				} else {
					row = append(row,
						int64ToString(r.b.Employee),
						int64ToString(r.b.Company),
						int64ToString(r.b.Total),
						"true",
						boolToString(containsType(bonus.Exempted, r.t)),
					)
				}
				if err := w.Write(row); err != nil {
					return nil, err
				}
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func containsType(types []domain.InsuranceType, t domain.InsuranceType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
