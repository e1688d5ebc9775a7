package extract

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "only_whitespace", input: " \t\n  ", want: ""},
		{name: "already_clean", input: "hello world", want: "hello world"},
		{name: "leading_trailing", input: "  hello world  ", want: "hello world"},
		{name: "internal_runs", input: "a  b\t\tc\n\nd", want: "a b c d"},
		{name: "mixed_whitespace", input: "\tAI in   healthcare\r\n", want: "AI in healthcare"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"  spaced   out\ttext\n",
		"multi\nline\ninput with   runs",
	}

	for _, s := range inputs {
		once := Normalize(s)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", s, once, twice)
		}
	}
}

func TestNormalizeNoConsecutiveWhitespace(t *testing.T) {
	got := Normalize("a  b\t c \n\n d")

	if strings.Contains(got, "  ") || strings.Contains(got, "\t") || strings.Contains(got, "\n") {
		t.Errorf("Normalize result contains unexpected whitespace: %q", got)
	}
	if got != strings.TrimSpace(got) {
		t.Errorf("Normalize result has leading/trailing whitespace: %q", got)
	}
}
