package printer

import (
	"strings"
	"testing"
)

func TestTransliterate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pâine cu țelină", "Paine cu telina"},
		{"BĂUTURĂ RĂCORITOARE", "BAUTURA RACORITOARE"},
		{"Șervețele", "Servetele"},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		if got := Transliterate(tt.in); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestItemLineFractionalQty(t *testing.T) {
	d := NewDocument(32)
	d.buf.Reset()
	d.ItemLine(0.455, "Mere", "3,64")

	line := strings.TrimRight(d.buf.String(), "\n")
	if !strings.HasPrefix(line, "0.455x Mere") {
		t.Errorf("line = %q, want prefix %q", line, "0.455x Mere")
	}
	if !strings.HasSuffix(line, "3,64") {
		t.Errorf("line = %q, want suffix %q", line, "3,64")
	}
	if len(line) != 32 {
		t.Errorf("line width = %d, want 32", len(line))
	}
}

func TestKeyValueWidth(t *testing.T) {
	d := NewDocument(32)
	d.buf.Reset()
	d.KeyValue("TOTAL RON", "32,50")

	line := strings.TrimRight(d.buf.String(), "\n")
	if len(line) != 32 {
		t.Errorf("line width = %d, want 32", len(line))
	}
	if !strings.HasPrefix(line, "TOTAL RON") || !strings.HasSuffix(line, "32,50") {
		t.Errorf("unexpected line %q", line)
	}
}
