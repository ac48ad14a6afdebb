//go:build unit

package output

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatYen(t *testing.T) {
	got := FormatYen(1390000)
	want := "¥1,390,000"
	if got != want {
		t.Errorf("FormatYen(1390000) = %q, want %q", got, want)
	}
}

func TestFormatRate(t *testing.T) {
	v := decimal.RequireFromString("0.05175")
	got := FormatRate(v)
	want := "5.175%"
	if got != want {
		t.Errorf("FormatRate(%v) = %q, want %q", v, got, want)
	}
}

func TestIntToString(t *testing.T) {
	if got, want := intToString(42), "42"; got != want {
		t.Errorf("intToString(42) = %q, want %q", got, want)
	}
	if got, want := int64ToString(1500000), "1500000"; got != want {
		t.Errorf("int64ToString(1500000) = %q, want %q", got, want)
	}
}

func TestBoolToString(t *testing.T) {
	if got, want := boolToString(true), "true"; got != want {
		t.Errorf("boolToString(true) = %q, want %q", got, want)
	}
	if got, want := boolToString(false), "false"; got != want {
		t.Errorf("boolToString(false) = %q, want %q", got, want)
	}
}
