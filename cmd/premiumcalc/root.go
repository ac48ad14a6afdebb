package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shakaihoken/premium-calculator/internal/api"
	"github.com/shakaihoken/premium-calculator/internal/calculation"
	"github.com/shakaihoken/premium-calculator/internal/config"
	"github.com/shakaihoken/premium-calculator/internal/domain"
	"github.com/shakaihoken/premium-calculator/pkg/dateutil"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath    string
	referencePath string
	logLevel      string
	now           string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "premiumcalc",
		Short: "Japanese social insurance premium calculator",
		Long: `premiumcalc evaluates health, pension and long-term care insurance eligibility
and calculates monthly and bonus premiums for a company's employees.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "input configuration file (YAML)")
	root.PersistentFlags().StringVar(&opts.referencePath, "reference", "", "reference table file replacing the embedded grade tables and rates")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.now, "now", "", "fixed calculation timestamp (RFC3339 or YYYY-MM-DD) for reproducible output")

	root.AddCommand(
		newCalculateCmd(opts),
		newBonusCmd(opts),
		newEvaluateCmd(opts),
		newRevisionCmd(opts),
		newRegularCmd(opts),
		newServeCmd(opts),
		newExampleCmd(),
	)
	return root
}

// loadConfiguration reads and validates --config
func (o *globalOptions) loadConfiguration() (*domain.Configuration, error) {
	if o.configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.NewInputParser().LoadFromFile(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// loadReference returns --reference when given, path otherwise, the embedded tables as a last resort
func (o *globalOptions) loadReference(path string) (*domain.ReferenceTables, error) {
	if o.referencePath != "" {
		path = o.referencePath
	}
	if path == "" {
		return config.DefaultReferenceTables()
	}
	return config.LoadReferenceTables(path)
}

func (o *globalOptions) clock() (calculation.Clock, error) {
	if o.now == "" {
		return calculation.SystemClock, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, o.now); err == nil {
			return calculation.FixedClock(t.UTC()), nil
		}
	}
	return nil, fmt.Errorf("invalid --now %q: expected RFC3339 or YYYY-MM-DD", o.now)
}

// newEngine builds a calculation engine logging to stderr at --log-level
func (o *globalOptions) newEngine(stderr io.Writer) (*calculation.CalculationEngine, error) {
	ref, err := o.loadReference("")
	if err != nil {
		return nil, err
	}
	clock, err := o.clock()
	if err != nil {
		return nil, err
	}
	engine := calculation.NewCalculationEngine(ref)
	engine.SetClock(clock)
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: api.ParseLevel(o.logLevel)}))
	engine.SetLogger(calculation.NewSlogLogger(logger))
	return engine, nil
}

func parseMonthFlag(value string, fallback dateutil.YearMonth) (dateutil.YearMonth, error) {
	if value == "" {
		return fallback, nil
	}
	month, err := dateutil.ParseYearMonth(value)
	if err != nil {
		return dateutil.YearMonth{}, fmt.Errorf("invalid --month: %w", err)
	}
	return month, nil
}

// writeStructured renders v as JSON (default) or YAML
func writeStructured(w io.Writer, v interface{}, format string) error {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q (json, yaml)", format)
}

// openOutput returns the file named by path, or w when path is empty or "-"
func openOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, f.Close, nil
}
