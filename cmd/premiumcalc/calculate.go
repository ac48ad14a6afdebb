package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shakaihoken/premium-calculator/internal/output"
)

func newCalculateCmd(opts *globalOptions) *cobra.Command {
	var (
		month     string
		format    string
		outPath   string
		reportDir string
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate monthly and bonus premiums for every employee",
		Example: `  premiumcalc calculate -c company.yaml
  premiumcalc calculate -c company.yaml --month 2025-07 --format csv --output premiums.csv
  premiumcalc calculate -c company.yaml --format all --report-dir reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfiguration()
			if err != nil {
				return err
			}
			if cfg.ApplicableMonth, err = parseMonthFlag(month, cfg.ApplicableMonth); err != nil {
				return err
			}
			engine, err := opts.newEngine(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			result, err := engine.CalculateRoster(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("calculation failed: %w", err)
			}

			if reportDir != "" {
				files, err := output.GenerateReport(result, format, reportDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			w, closeFn, err := openOutput(outPath, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := output.WriteReport(w, result, format); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "applicable month (YYYY-MM); defaults to the configuration's applicable_month")
	cmd.Flags().StringVarP(&format, "format", "f", "console-lite", "output format: "+formatList())
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the report to this file instead of stdout")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "write timestamped report files into this directory (accepts --format all)")
	return cmd
}

func formatList() string {
	return strings.Join(output.AvailableFormatterNames(), ", ") + ", all"
}
