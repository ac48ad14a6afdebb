package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

func breakdown(employee, company int64) domain.PremiumBreakdown {
	return domain.PremiumBreakdown{Employee: employee, Company: company, Total: employee + company}
}

func breakdownPtr(employee, company int64) *domain.PremiumBreakdown {
	b := breakdown(employee, company)
	return &b
}

func buildTestRoster() *domain.RosterResult {
	month := dateutil.MustYearMonth("2025-06")
	at := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	enrolled := domain.EligibilityResult{
		Health:  domain.EnrolledCoverage(),
		Pension: domain.EnrolledCoverage(),
		Care:    domain.CareCoverage{Coverage: domain.EnrolledCoverage(), Category: domain.CareType2, HealthEnrolled: true},
	}
	partTimer := domain.EligibilityResult{
		Health:  domain.ExcludedCoverage("週所定労働時間20時間未満"),
		Pension: domain.ExcludedCoverage("週所定労働時間20時間未満"),
		Care:    domain.CareCoverage{Coverage: domain.ExcludedCoverage("40歳未満"), Category: domain.CareNone},
	}

	premium := &domain.PremiumRecord{
		ID:                           "rec-0001",
		CompanyID:                    "C001",
		EmpNo:                        "0001",
		ApplicableMonth:              month,
		Method:                       domain.MethodRegular,
		StandardMonthlyAmount:        380000,
		PensionStandardMonthlyAmount: 380000,
		HealthGrade:                  26,
		PensionGrade:                 23,
		CareGrade:                    26,
		HealthPremium:                breakdown(18962, 18962),
		PensionPremium:               breakdown(34770, 34770),
		CarePremium:                  breakdown(3040, 3040),
		Components:                   domain.SalaryComponents{BaseSalary: 360000, Total: 370000},
		CalculatedAt:                 at,
	}
	zero := &domain.PremiumRecord{ID: "rec-0002", CompanyID: "C001", EmpNo: "0002", ApplicableMonth: month, Method: domain.MethodRegular, CalculatedAt: at}
	bonus := &domain.BonusPremiumRecord{
		ID:                  "bonus-0001",
		CompanyID:           "C001",
		EmpNo:               "0001",
		ApplicableMonth:     month,
		Amount:              500000,
		StandardBonusAmount: 500000,
		ApplicableAmount:    500000,
		FiscalYear:          2025,
		FiscalYearTotal:     500000,
		HealthPremium:       breakdownPtr(24950, 24950),
		PensionPremium:      breakdownPtr(45750, 45750),
		CarePremium:         breakdownPtr(4000, 4000),
		CalculatedAt:        at,
	}

	r := &domain.RosterResult{
		CompanyID:       "C001",
		CompanyName:     "株式会社テスト",
		Prefecture:      "東京都",
		ApplicableMonth: month,
		Reference:       domain.ReferenceMetadata{EffectiveFrom: dateutil.MustYearMonth("2024-03"), Description: "協会けんぽ"},
		Rates: domain.InsuranceRates{
			Health:  domain.RatePair{Employee: decimal.RequireFromString("0.0499"), Company: decimal.RequireFromString("0.0499")},
			Pension: domain.RatePair{Employee: decimal.RequireFromString("0.0915"), Company: decimal.RequireFromString("0.0915")},
			Care:    domain.RatePair{Employee: decimal.RequireFromString("0.008"), Company: decimal.RequireFromString("0.008")},
		},
		Employees: []domain.EmployeeResult{
			{
				EmpNo: "0003", Name: "鈴木 一郎", Eligibility: enrolled, Status: enrolled.StatusPatch(),
				Skipped: "premium not computable: birthday is missing",
			},
			{
				EmpNo: "0001", Name: "山田 太郎", Eligibility: enrolled, Status: enrolled.StatusPatch(),
				Premium: premium, Bonuses: []*domain.BonusPremiumRecord{bonus},
				Revision: &domain.RevisionCheck{EmpNo: "0001", CandidateMonth: month, FixedWageChanged: true, GradeDifferenceMet: true, CurrentGrade: 22, NewGrade: 26, WorkDaysMet: true, Eligible: true},
			},
			{EmpNo: "0002", Name: "佐藤 花子", Eligibility: partTimer, Status: partTimer.StatusPatch(), Premium: zero},
		},
		MonthlyTotal: premium.Total(),
		BonusTotal:   bonus.Total(),
		CalculatedAt: at,
	}
	return r
}

func TestConsoleLiteFormatter(t *testing.T) {
	f := ConsoleFormatter{}
	out, err := f.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"Employees: 3 (computed 2, skipped 1)",
		"0001 山田 太郎: Health=¥37,924 Pension=¥69,540 Care=¥6,080 Total=¥113,544",
		"0003 鈴木 一郎: skipped (premium not computable: birthday is missing)",
		"Monthly Total: employee ¥56,772 / company ¥56,772 / total ¥113,544",
		"Revision candidates: 0001",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, content)
		}
	}
	if strings.Index(content, "0001 山田") > strings.Index(content, "0002 佐藤") {
		t.Fatalf("employees not ordered by number:\n%s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	f := ConsoleVerboseFormatter{}
	out, err := f.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"DETAILED SOCIAL INSURANCE PREMIUM REPORT",
		"Health insurance rate (東京都): employee 4.990%, company 4.990%",
		"health grade 26, pension grade 23",
		"pension  対象外 週所定労働時間20時間未満",
		"BONUS 2025-06: ¥500,000",
		"REVISION CHECK (2025-06): ELIGIBLE",
		"Largest monthly:    0001 (¥113,544)",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, content)
		}
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	f := CSVSummarizer{}
	out, err := f.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (header+3 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "0001,") || !strings.HasPrefix(lines[2], "0002,") || !strings.HasPrefix(lines[3], "0003,") {
		t.Fatalf("rows not sorted deterministically: %v", lines)
	}
	if !strings.Contains(lines[1], ",26,23,380000,18962,18962,34770,34770,3040,3040,56772,56772,113544,") {
		t.Fatalf("unexpected amounts in row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",,,,,,,,,,,,,premium not computable: birthday is missing") {
		t.Fatalf("skipped row should carry blank amounts and the reason: %s", lines[3])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	// header + 0001 monthly (3) + 0001 bonus (3) + 0002 monthly (3)
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), out)
	}
	if lines[4] != "0001,bonus-0001,bonus,2025-06,health,500000,24950,24950,49900,true,false" {
		t.Fatalf("unexpected bonus row: %s", lines[4])
	}
	if lines[8] != "0002,rec-0002,regular,2025-06,pension,0,0,0,0,false,false" {
		t.Fatalf("unexpected excluded row: %s", lines[8])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded struct {
		CompanyID       string                  `json:"company_id"`
		ApplicableMonth string                  `json:"applicable_month"`
		MonthlyTotal    domain.PremiumBreakdown `json:"monthly_total"`
		Employees       []struct {
			EmpNo   string `json:"emp_no"`
			Skipped string `json:"skipped"`
		} `json:"employees"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.CompanyID != "C001" || decoded.ApplicableMonth != "2025-06" {
		t.Fatalf("unexpected header fields: %+v", decoded)
	}
	if decoded.MonthlyTotal.Total != 113544 {
		t.Fatalf("monthly total = %d, want 113544", decoded.MonthlyTotal.Total)
	}
	if len(decoded.Employees) != 3 || decoded.Employees[0].Skipped == "" {
		t.Fatalf("employees not preserved in roster order: %+v", decoded.Employees)
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	roster := buildTestRoster()
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(roster)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	f := HTMLFormatter{}
	out, err := f.Format(buildTestRoster())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Key Assumptions", "Revision candidates: 0001", "¥113,544", "skipped: premium not computable", "4.990%"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
	found := false
	for _, a := range DefaultAssumptions {
		if strings.Contains(content, a) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected at least one default assumption to be rendered in HTML")
	}
}

func TestAnalyzeRoster(t *testing.T) {
	s := AnalyzeRoster(buildTestRoster())
	if s.Employees != 3 || s.Computed != 2 || s.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.HealthEnrolled != 2 || s.PensionEnrolled != 2 || s.CareEnrolled != 2 {
		t.Fatalf("unexpected enrollment counts: %+v", s)
	}
	if s.BonusPayments != 1 || len(s.RevisionCandidates) != 1 || s.RevisionCandidates[0] != "0001" {
		t.Fatalf("unexpected bonus/revision summary: %+v", s)
	}
	if s.LargestEmpNo != "0001" || s.LargestMonthly != 113544 {
		t.Fatalf("unexpected largest premium: %+v", s)
	}

	empty := AnalyzeRoster(&domain.RosterResult{})
	if empty.LargestEmpNo != "" || empty.Computed != 0 {
		t.Fatalf("empty roster should yield zero summary: %+v", empty)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	f := GetFormatterByName("console-verbose")
	if f == nil {
		t.Fatalf("alias console-verbose did not resolve to a formatter")
	}
	if f.Name() != "console" {
		t.Fatalf("alias resolved to %q, want 'console'", f.Name())
	}
	if got := GetFormatterByName(" Summary "); got == nil || got.Name() != "console-lite" {
		t.Fatalf("alias summary did not resolve to console-lite")
	}
	if Extension("csv-detailed") != "csv" || Extension("console") != "txt" || Extension("json") != "json" {
		t.Fatalf("unexpected extensions")
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	_, err := GenerateReport(&domain.RosterResult{}, "definitely-not-a-format", t.TempDir())
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	msg := err.Error()
	if !strings.Contains(msg, "unsupported report format") || !strings.Contains(msg, "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", msg)
	}
}
