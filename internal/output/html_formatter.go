package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"yen":   FormatYen,
	"rate":  FormatRate,
	"grade": FormatGrade,
	"label": func(c domain.Coverage) string { return c.Status.Label() },
	"add":   func(i, j int) int { return i + j },
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(results *domain.RosterResult) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.RosterResult
		Summary     RosterSummary
		Assumptions []string
		Sorted      []domain.EmployeeResult
	}{results, AnalyzeRoster(results), GenerateAssumptions(results), sortedEmployees(results.Employees)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
