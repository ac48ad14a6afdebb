package output

import (
	"fmt"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists the calculation rules rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Employee share: truncated when the hundredths digit is below 5, otherwise rounded up",
	"Company share: fractions truncated",
	"Standard bonus amount: truncated to the thousand yen",
	"Bonus cap: ¥1,500,000 per payment and ¥5,730,000 per fiscal year (April to March), truncated to the thousand yen",
	"Care insurance (type 2): from the month age 40 is attained until the month before age 65",
}

// GenerateAssumptions extends the defaults with the rates and reference tables of a run
func GenerateAssumptions(results *domain.RosterResult) []string {
	out := []string{
		fmt.Sprintf("Health insurance rate (%s): employee %s, company %s", results.Prefecture, FormatRate(results.Rates.Health.Employee), FormatRate(results.Rates.Health.Company)),
		fmt.Sprintf("Pension rate: employee %s, company %s", FormatRate(results.Rates.Pension.Employee), FormatRate(results.Rates.Pension.Company)),
		fmt.Sprintf("Care insurance rate: employee %s, company %s", FormatRate(results.Rates.Care.Employee), FormatRate(results.Rates.Care.Company)),
	}
	if ref := results.Reference; !ref.EffectiveFrom.IsZero() || ref.Description != "" {
		out = append(out, fmt.Sprintf("Reference tables: %s (effective %s)", ref.Description, ref.EffectiveFrom))
	}
	return append(out, DefaultAssumptions...)
}

var decimalHundred = decimal.NewFromInt(100)
