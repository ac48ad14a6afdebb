package calculation

import (
	"sort"
	"time"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
	"github.com/shakaihoken/premium-calculator/pkg/yen"
	"github.com/shopspring/decimal"
)

// Bonus caps. Every payment is capped on its own and the fiscal year (April to March)
// is capped as a whole; the same applicable amount is the base of every insurance type.
const (
	BonusPerPaymentCap = 1500000
	BonusAnnualCap     = 5730000
)

var (
	perPaymentCap = yen.New(BonusPerPaymentCap)
	annualCap     = yen.New(BonusAnnualCap)
	twelve        = decimal.NewFromInt(12)
)

// BonusPremiumInput describes a single bonus payment
type BonusPremiumInput struct {
	Bonus    domain.BonusRecord
	Employee *domain.Employee
	Company  *domain.Company
	Rates    domain.InsuranceRates

	// Applicable amounts already counted in the payment's fiscal year
	FiscalYearTotal int64
	// Position of the payment among the bonuses paid in the same month
	Index int

	ExemptionsOverride   []domain.InsuranceType
	DisableAutoExemption bool
	Eligibility          *domain.EligibilityResult

	CalculatedAt time.Time
}

// CalculateBonusPremium computes the premium on one bonus payment. Age is checked
// against the bonus's own month. Unlike the monthly record, a type that does not apply
// is left nil; an exempted type that applies gets a zero breakdown.
func CalculateBonusPremium(in BonusPremiumInput) (*domain.BonusPremiumRecord, error) {
	if !in.Bonus.Amount.IsPositive() {
		return nil, ErrNoBonusAmount
	}
	month := in.Bonus.ApplicableMonth
	if month.IsZero() {
		return nil, ErrMissingApplicableMonth
	}
	if in.Employee == nil || in.Employee.Birthday.IsZero() {
		return nil, ErrMissingBirthday
	}

	standard := yen.FromDecimal(in.Bonus.Amount).FloorThousand()
	remaining := yen.Max(annualCap.Sub(yen.New(in.FiscalYearTotal)), yen.Zero())
	base := yen.Min(yen.Min(standard, perPaymentCap), remaining).FloorThousand()

	birthday := in.Employee.Birthday
	healthActive := dateutil.InAgeWindow(birthday, month, 0, HealthAgeLimit) && evaluatorAllows(in.Eligibility, domain.InsuranceHealth)
	pensionActive := dateutil.InAgeWindow(birthday, month, 0, PensionAgeLimit) && evaluatorAllows(in.Eligibility, domain.InsurancePension)
	careActive := healthActive && dateutil.InAgeWindow(birthday, month, CareType2FromAge, CareType1FromAge) &&
		evaluatorAllows(in.Eligibility, domain.InsuranceCare)

	exempt := ResolveExemptions(in.Employee, month, in.ExemptionsOverride, in.DisableAutoExemption)

	companyID := ""
	if in.Company != nil {
		companyID = in.Company.ID
	}

	record := &domain.BonusPremiumRecord{
		ID:                  BonusRecordKey(companyID, in.Employee.EmpNo, month, in.Index),
		CompanyID:           companyID,
		EmpNo:               in.Employee.EmpNo,
		ApplicableMonth:     month,
		Amount:              in.Bonus.Amount.Floor().IntPart(),
		StandardBonusAmount: standard.Int64(),
		ApplicableAmount:    base.Int64(),
		FiscalYear:          dateutil.FiscalYear(month),
		FiscalYearTotal:     in.FiscalYearTotal + base.Int64(),
		Exempted:            exemptedList(exempt),
		CalculatedAt:        in.CalculatedAt,
	}

	record.HealthPremium = bonusBreakdown(healthActive, exempt[domain.InsuranceHealth], in.Rates.Health, base)
	record.PensionPremium = bonusBreakdown(pensionActive, exempt[domain.InsurancePension], in.Rates.Pension, base)
	record.CarePremium = bonusBreakdown(careActive, exempt[domain.InsuranceCare], in.Rates.Care, base)
	return record, nil
}

func bonusBreakdown(active, exempted bool, rate domain.RatePair, base yen.Yen) *domain.PremiumBreakdown {
	if !active {
		return nil
	}
	if exempted {
		return &domain.PremiumBreakdown{}
	}
	b := Calc(rate, base.Decimal)
	return &b
}

// BonusBatchInput is an employee's bonus history to be folded fiscal year by fiscal year
type BonusBatchInput struct {
	Employee *domain.Employee
	Company  *domain.Company
	Rates    domain.InsuranceRates

	// Applicable amounts paid before the first bonus, keyed by fiscal year
	OpeningTotals map[int]int64

	ExemptionsOverride   []domain.InsuranceType
	DisableAutoExemption bool
	// Evaluate returns the evaluator's decision for a month; nil skips the evaluator
	Evaluate func(month dateutil.YearMonth) *domain.EligibilityResult

	CalculatedAt time.Time
}

// CalculateBonusPremiumsForEmployee computes every standalone bonus in chronological
// order, threading the fiscal-year running total through the payments. Bonuses merged
// into monthly remuneration and zero payments are skipped. A payment that finds the annual
// cap exhausted still produces a record with zero premiums.
func CalculateBonusPremiumsForEmployee(in BonusBatchInput) ([]*domain.BonusPremiumRecord, error) {
	if in.Employee == nil {
		return nil, ErrMissingBirthday
	}

	bonuses := make([]domain.BonusRecord, 0, len(in.Employee.Bonuses))
	for _, b := range in.Employee.Bonuses {
		if b.IncludedInStandardBonus || !b.Amount.IsPositive() {
			continue
		}
		bonuses = append(bonuses, b)
	}
	sort.SliceStable(bonuses, func(i, j int) bool {
		return bonuses[i].ApplicableMonth.Before(bonuses[j].ApplicableMonth)
	})

	totals := make(map[int]int64, len(in.OpeningTotals))
	for fy, total := range in.OpeningTotals {
		totals[fy] = total
	}
	perMonth := make(map[dateutil.YearMonth]int)

	records := make([]*domain.BonusPremiumRecord, 0, len(bonuses))
	for _, b := range bonuses {
		fy := dateutil.FiscalYear(b.ApplicableMonth)
		input := BonusPremiumInput{
			Bonus:                b,
			Employee:             in.Employee,
			Company:              in.Company,
			Rates:                in.Rates,
			FiscalYearTotal:      totals[fy],
			Index:                perMonth[b.ApplicableMonth],
			ExemptionsOverride:   in.ExemptionsOverride,
			DisableAutoExemption: in.DisableAutoExemption,
			CalculatedAt:         in.CalculatedAt,
		}
		if in.Evaluate != nil {
			input.Eligibility = in.Evaluate(b.ApplicableMonth)
		}

		record, err := CalculateBonusPremium(input)
		if err != nil {
			return nil, err
		}
		totals[fy] = record.FiscalYearTotal
		perMonth[b.ApplicableMonth]++
		records = append(records, record)
	}
	return records, nil
}

// BonusMonthlyEquivalent averages the bonuses merged into monthly remuneration over the
// twelve months ending at month, truncated to whole yen.
func BonusMonthlyEquivalent(bonuses []domain.BonusRecord, month dateutil.YearMonth) decimal.Decimal {
	from := month.AddMonths(-11)
	sum := decimal.Zero
	for _, b := range bonuses {
		if b.IncludedInStandardBonus && b.ApplicableMonth.Between(from, month) {
			sum = sum.Add(b.Amount)
		}
	}
	if sum.IsZero() {
		return decimal.Zero
	}
	return sum.Div(twelve).Floor()
}
