package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shakaihoken/premium-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for a format name no formatter answers to.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport writes results in the given format to a timestamped file in dir.
// "all" writes the verbose console report and the detailed CSV.
func GenerateReport(results *domain.RosterResult, format, dir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, results, dir, Extension(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}
	f, err := lookupFormatter(format)
	if err != nil {
		return nil, err
	}
	name, err := WriteFormatted(f, results, dir, Extension(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

// WriteReport renders results in the given format to w.
func WriteReport(w io.Writer, results *domain.RosterResult, format string) error {
	f, err := lookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

func lookupFormatter(format string) (Formatter, error) {
	if f := GetFormatterByName(format); f != nil {
		return f, nil
	}
	// enrich error with available formatters and aliases
	return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
}

// SaveConfiguration writes config back as YAML, e.g. after the derived status fields
// were refreshed.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
