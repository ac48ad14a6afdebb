package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/internal/output"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// employeeFlags are shared by the single-employee subcommands
type employeeFlags struct {
	empNo  string
	month  string
	format string
}

func (f *employeeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.empNo, "emp", "e", "", "employee number")
	cmd.Flags().StringVar(&f.month, "month", "", "target month (YYYY-MM); defaults to the configuration's applicable_month")
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", "output format (json, yaml)")
}

// employeeRun bundles what every single-employee subcommand needs
type employeeRun struct {
	cfg      *domain.Configuration
	engine   *calculation.CalculationEngine
	employee *domain.Employee
	month    dateutil.YearMonth
}

func (f *employeeFlags) prepare(cmd *cobra.Command, opts *globalOptions) (*employeeRun, error) {
	cfg, err := opts.loadConfiguration()
	if err != nil {
		return nil, err
	}
	month, err := parseMonthFlag(f.month, cfg.ApplicableMonth)
	if err != nil {
		return nil, err
	}
	engine, err := opts.newEngine(cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	run := &employeeRun{cfg: cfg, engine: engine, month: month}
	if f.empNo != "" {
		employee, ok := cfg.FindEmployee(f.empNo)
		if !ok {
			return nil, fmt.Errorf("employee %s not found in %s", f.empNo, opts.configPath)
		}
		run.employee = employee
	}
	return run, nil
}

func newBonusCmd(opts *globalOptions) *cobra.Command {
	flags := &employeeFlags{}
	cmd := &cobra.Command{
		Use:   "bonus",
		Short: "Calculate the bonus premiums of one employee with the fiscal-year cap applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flags.prepare(cmd, opts)
			if err != nil {
				return err
			}
			if run.employee == nil {
				return fmt.Errorf("--emp is required")
			}
			records, err := run.engine.CalculateBonuses(run.cfg, run.employee)
			if err != nil {
				return err
			}
			return writeStructured(cmd.OutOrStdout(), records, flags.format)
		},
	}
	flags.register(cmd)
	return cmd
}

func newEvaluateCmd(opts *globalOptions) *cobra.Command {
	flags := &employeeFlags{}
	var writeStatus string
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate insurance eligibility for one or all employees",
		Long: `Evaluate health, pension and care insurance eligibility. Without --emp every
employee is evaluated. With --write-status the configuration is written back with the
derived status and reason fields refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flags.prepare(cmd, opts)
			if err != nil {
				return err
			}
			if run.month.IsZero() {
				return fmt.Errorf("--month is required when the configuration has no applicable_month")
			}

			targets := run.cfg.Employees
			if run.employee != nil {
				targets = []domain.Employee{*run.employee}
			}
			results := make([]domain.EligibilityResult, 0, len(targets))
			for i := range targets {
				results = append(results, run.engine.Evaluate(run.cfg, &targets[i], run.month))
			}

			if writeStatus != "" {
				for _, r := range results {
					if e, ok := run.cfg.FindEmployee(r.EmpNo); ok {
						e.InsuranceStatusFields = r.StatusPatch()
					}
				}
				if err := output.SaveConfiguration(run.cfg, writeStatus); err != nil {
					return fmt.Errorf("failed to write %s: %w", writeStatus, err)
				}
			}

			if run.employee != nil {
				return writeStructured(cmd.OutOrStdout(), results[0], flags.format)
			}
			return writeStructured(cmd.OutOrStdout(), results, flags.format)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&writeStatus, "write-status", "", "write the configuration with refreshed status fields to this file")
	return cmd
}

func newRevisionCmd(opts *globalOptions) *cobra.Command {
	flags := &employeeFlags{}
	cmd := &cobra.Command{
		Use:   "revision",
		Short: "Check 随時改定 (standard amount revision) eligibility for the window ending at --month",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flags.prepare(cmd, opts)
			if err != nil {
				return err
			}
			if run.employee == nil {
				return fmt.Errorf("--emp is required")
			}
			check, err := run.engine.CheckRevision(run.cfg, run.employee, run.month)
			if err != nil {
				return err
			}
			return writeStructured(cmd.OutOrStdout(), check, flags.format)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRegularCmd(opts *globalOptions) *cobra.Command {
	flags := &employeeFlags{}
	var year int
	cmd := &cobra.Command{
		Use:   "regular",
		Short: "Run the 定時決定 (annual determination) average over April to June",
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := flags.prepare(cmd, opts)
			if err != nil {
				return err
			}
			if run.employee == nil {
				return fmt.Errorf("--emp is required")
			}
			if year == 0 {
				year = run.month.Year
			}
			if year == 0 {
				return fmt.Errorf("--year is required when the configuration has no applicable_month")
			}
			result, err := run.engine.RegularDetermination(run.cfg, run.employee, year)
			if err != nil {
				return err
			}
			return writeStructured(cmd.OutOrStdout(), result, flags.format)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&year, "year", 0, "determination year; defaults to the year of --month")
	return cmd
}
