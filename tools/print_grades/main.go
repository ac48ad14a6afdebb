package main

import (
	"fmt"
	"os"

	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Prints every health grade with the premiums at its standard amount, for checking the
// embedded tables against the published 保険料額表.
func main() {
	ref, err := config.DefaultReferenceTables()
	if err != nil {
		panic(err)
	}
	prefecture := "東京都"
	if len(os.Args) > 1 {
		prefecture = os.Args[1]
	}
	company := &domain.Company{Prefecture: prefecture}
	rates := calculation.ResolveRates(company, ref.Rates, nil)
	if rates.Health.IsZero() {
		fmt.Printf("no rates for %s\n", prefecture)
		return
	}

	fmt.Printf("reference %s (%s)\n", ref.Metadata.EffectiveFrom, ref.Metadata.Description)
	fmt.Println("Grade,Lower,Upper,Monthly,PensionGrade,Health,Pension,Care")
	for _, g := range ref.HealthGrades {
		base := decimal.NewFromInt(g.Monthly)
		pensionGrade := 0
		pension := domain.PremiumBreakdown{}
		if pg, ok := calculation.LookupGrade(base, ref.PensionGrades); ok {
			pensionGrade = pg.Grade
			pension = calculation.Calc(rates.Pension, decimal.NewFromInt(pg.Monthly))
		}
		health := calculation.Calc(rates.Health, base)
		care := calculation.Calc(rates.Care, base)
		fmt.Printf("%d,%d,%s,%d,%d,%d,%d,%d\n", g.Grade, g.Lower, g.Upper, g.Monthly, pensionGrade,
			health.Employee, pension.Employee, care.Employee)
	}
}
