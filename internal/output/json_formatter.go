package output

import (
	json "github.com/goccy/go-json"

	"github.com/shakaihoken/premium-calculator/internal/domain"
)

// JSONFormatter serializes the roster result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.RosterResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
