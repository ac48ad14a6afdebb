package main

import (
	"fmt"
	"os"

	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_bonus_caps <config-file>")
		return
	}
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	ref, err := config.DefaultReferenceTables()
	if err != nil {
		panic(err)
	}
	engine := calculation.NewCalculationEngine(ref)

	// One row per bonus payment showing how the per-payment and annual caps were applied
	fmt.Println("EmpNo,Month,Amount,Standard,Applicable,FiscalYear,FiscalYearTotal,Total")
	for i := range cfg.Employees {
		e := &cfg.Employees[i]
		records, err := engine.CalculateBonuses(cfg, e)
		if err != nil {
			fmt.Printf("%s,error: %v\n", e.EmpNo, err)
			continue
		}
		for _, r := range records {
			fmt.Printf("%s,%s,%d,%d,%d,%d,%d,%d\n", r.EmpNo, r.ApplicableMonth, r.Amount, r.StandardBonusAmount,
				r.ApplicableAmount, r.FiscalYear, r.FiscalYearTotal, r.Total().Total)
		}
	}
}
