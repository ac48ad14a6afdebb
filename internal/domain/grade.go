package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// infinityTokens are the spellings accepted for an unbounded upper limit
var infinityTokens = map[string]bool{
	"infinity":  true,
	"+infinity": true,
	"inf":       true,
	".inf":      true,
	"+.inf":     true,
}

// Bound is a bracket upper limit that may be unbounded (+∞)
type Bound struct {
	Value    int64
	Infinite bool
}

// Limit returns a finite bound
func Limit(v int64) Bound { return Bound{Value: v} }

// Unbounded returns the +∞ bound
func Unbounded() Bound { return Bound{Infinite: true} }

// Exceeds reports whether amount is strictly below the bound
func (b Bound) Exceeds(amount decimal.Decimal) bool {
	if b.Infinite {
		return true
	}
	return amount.LessThan(decimal.NewFromInt(b.Value))
}

func (b Bound) String() string {
	if b.Infinite {
		return "Infinity"
	}
	return strconv.FormatInt(b.Value, 10)
}

func (b *Bound) parse(s string) error {
	s = strings.TrimSpace(s)
	if infinityTokens[strings.ToLower(s)] {
		*b = Unbounded()
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid grade bound %q: %w", s, err)
	}
	*b = Limit(d.IntPart())
	return nil
}

// UnmarshalYAML accepts an integer or one of the infinity spellings
func (b *Bound) UnmarshalYAML(value *yaml.Node) error {
	return b.parse(value.Value)
}

// MarshalYAML writes Infinity for an unbounded limit
func (b Bound) MarshalYAML() (interface{}, error) {
	if b.Infinite {
		return "Infinity", nil
	}
	return b.Value, nil
}

// MarshalJSON writes "Infinity" as a string, finite limits as numbers
func (b Bound) MarshalJSON() ([]byte, error) {
	if b.Infinite {
		return []byte(`"Infinity"`), nil
	}
	return []byte(strconv.FormatInt(b.Value, 10)), nil
}

// UnmarshalJSON accepts numbers, numeric strings and "Infinity"
func (b *Bound) UnmarshalJSON(data []byte) error {
	return b.parse(strings.Trim(string(data), `"`))
}

// SalaryGrade is one bracket of a standard monthly remuneration table
type SalaryGrade struct {
	Grade   int   `yaml:"grade" json:"grade"`
	Lower   int64 `yaml:"lower" json:"lower"`
	Upper   Bound `yaml:"upper" json:"upper"`
	Monthly int64 `yaml:"monthly" json:"monthly"`
}

// Contains reports whether lower <= amount < upper
func (g SalaryGrade) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(decimal.NewFromInt(g.Lower)) && g.Upper.Exceeds(amount)
}
