package calculation

import (
	"time"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Lower bounds and standard amounts of the 協会けんぽ tables (March 2024 onwards)
var (
	healthLowers = []int64{
		0, 63000, 73000, 83000, 93000, 101000, 107000, 114000, 122000, 130000,
		138000, 146000, 155000, 165000, 175000, 185000, 195000, 210000, 230000, 250000,
		270000, 290000, 310000, 330000, 350000, 370000, 395000, 425000, 455000, 485000,
		515000, 545000, 575000, 605000, 635000, 665000, 695000, 730000, 770000, 810000,
		855000, 905000, 955000, 1005000, 1055000, 1115000, 1175000, 1235000, 1295000, 1355000,
	}
	healthMonthlies = []int64{
		58000, 68000, 78000, 88000, 98000, 104000, 110000, 118000, 126000, 134000,
		142000, 150000, 160000, 170000, 180000, 190000, 200000, 220000, 240000, 260000,
		280000, 300000, 320000, 340000, 360000, 380000, 410000, 440000, 470000, 500000,
		530000, 560000, 590000, 620000, 650000, 680000, 710000, 750000, 790000, 830000,
		880000, 930000, 980000, 1030000, 1090000, 1150000, 1210000, 1270000, 1330000, 1390000,
	}
)

func buildGrades(lowers, monthlies []int64) []domain.SalaryGrade {
	grades := make([]domain.SalaryGrade, len(lowers))
	for i := range lowers {
		upper := domain.Unbounded()
		if i+1 < len(lowers) {
			upper = domain.Limit(lowers[i+1])
		}
		grades[i] = domain.SalaryGrade{Grade: i + 1, Lower: lowers[i], Upper: upper, Monthly: monthlies[i]}
	}
	return grades
}

func testHealthGrades() []domain.SalaryGrade {
	return buildGrades(healthLowers, healthMonthlies)
}

// pension grades 2-31 coincide with health grades 5-34
func testPensionGrades() []domain.SalaryGrade {
	lowers := append([]int64{0}, healthLowers[4:34]...)
	monthlies := append([]int64{88000}, healthMonthlies[4:34]...)
	lowers = append(lowers, 635000)
	monthlies = append(monthlies, 650000)
	return buildGrades(lowers, monthlies)
}

func rate(employee, company string) domain.RatePair {
	return domain.RatePair{Employee: decimal.RequireFromString(employee), Company: decimal.RequireFromString(company)}
}

func tokyoRates() domain.InsuranceRates {
	return domain.InsuranceRates{
		Health:  rate("0.0499", "0.0499"),
		Pension: rate("0.0915", "0.0915"),
		Care:    rate("0.008", "0.008"),
	}
}

func testReference() *domain.ReferenceTables {
	return &domain.ReferenceTables{
		Metadata:      domain.ReferenceMetadata{EffectiveFrom: dateutil.MustYearMonth("2024-03"), Description: "test tables"},
		HealthGrades:  testHealthGrades(),
		PensionGrades: testPensionGrades(),
		Rates: domain.PrefectureRates{
			"東京都": tokyoRates(),
			"大阪府": {
				Health:  rate("0.0517", "0.0517"),
				Pension: rate("0.0915", "0.0915"),
				Care:    rate("0.008", "0.008"),
			},
		},
	}
}

func testCompany() domain.Company {
	return domain.Company{
		ID:                            "C001",
		Name:                          "テスト株式会社",
		Prefecture:                    "東京都",
		HealthType:                    domain.HealthInsurerKyokai,
		IsApplicableToHealthInsurance: true,
		IsApplicableToPension:         true,
		StandardWeeklyHours:           decimal.NewFromInt(40),
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ym(s string) dateutil.YearMonth {
	return dateutil.MustYearMonth(s)
}

func yenDec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// regularEmployee is a full-time employee born on birthday
func regularEmployee(empNo string, birthday time.Time) domain.Employee {
	return domain.Employee{
		EmpNo:            empNo,
		Name:             "社員" + empNo,
		EmploymentType:   domain.EmploymentRegular,
		WeeklyHours:      decimal.NewFromInt(40),
		MonthlyWage:      yenDec(300000),
		JoinDate:         date(2015, 4, 1),
		Birthday:         birthday,
		ExpectedDuration: domain.DurationIndefinite,
	}
}

func partTimer(empNo string, hours, wage int64) domain.Employee {
	e := regularEmployee(empNo, date(1990, 7, 7))
	e.EmploymentType = domain.EmploymentPartTime
	e.WeeklyHours = decimal.NewFromInt(hours)
	e.MonthlyWage = yenDec(wage)
	e.ExpectedDuration = domain.DurationOverTwoMonths
	return e
}

func income(month string, base int64, workDays int, allowances ...domain.Allowance) domain.IncomeRecord {
	return domain.IncomeRecord{
		ApplicableMonth: ym(month),
		BaseAmount:      yenDec(base),
		WorkDays:        workDays,
		Allowances:      allowances,
	}
}

func allowance(name string, amount int64, fixed bool) domain.Allowance {
	return domain.Allowance{Name: name, Amount: yenDec(amount), IsFixed: &fixed}
}

var fixedNow = date(2025, 7, 10)
