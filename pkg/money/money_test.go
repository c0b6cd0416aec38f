package money

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"half boundary rounds up", 2.005, 2.01},
		{"plain value unchanged", 10.50, 10.50},
		{"rounds down below half", 3.214, 3.21},
		{"rounds up above half", 3.216, 3.22},
		{"negative half boundary", -2.005, -2.01},
		{"zero", 0, 0},
		{"nan coerced to zero", math.NaN(), 0},
		{"inf coerced to zero", math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.in); got != tt.want {
				t.Fatalf("Round(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundToPrecision(t *testing.T) {
	if got := RoundTo(1.2345, 3); got != 1.235 {
		t.Fatalf("RoundTo(1.2345, 3) = %v, want 1.235", got)
	}
	if got := RoundTo(1.0001+2.0002, 3); got != 3.000 {
		t.Fatalf("RoundTo qty sum = %v, want 3", got)
	}
}

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"plain integer", "42", 42},
		{"dot decimal", "12.5", 12.5},
		{"comma decimal", "12,5", 12.5},
		{"padded", "  3,25 ", 3.25},
		{"empty", "", 0},
		{"garbage", "abc", 0},
		{"partial garbage", "12x", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumeric(tt.in); got != tt.want {
				t.Fatalf("ParseNumeric(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(12.345); got != "12,35 RON" {
		t.Fatalf("Format(12.345) = %q", got)
	}
	if got := Format(math.NaN()); got != "0,00 RON" {
		t.Fatalf("Format(NaN) = %q", got)
	}
	if got := Format(0); got != "0,00 RON" {
		t.Fatalf("Format(0) = %q", got)
	}
}
