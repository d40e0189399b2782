package lang

import (
	"errors"
	"math"
	"testing"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  string
		rest  string
		fails bool
	}{
		{input: "_foo_bar1_", want: "_foo_bar1_"},
		{input: "FOOBAR", want: "FOOBAR"},
		{input: "x", want: "x"},
		{input: "a1(b)", want: "a1", rest: "(b)"},
		{input: "_a b", want: "_a", rest: " b"},
		{input: "undefined", want: "undefined"},
		{input: "_", fails: true},
		{input: "_1", fails: true},
		{input: "__a", fails: true},
		{input: "1foo", fails: true},
		{input: "", fails: true},
		{input: "def", fails: true},
		{input: "define", fails: true},
		{input: "extern", fails: true},
		{input: "externals", fails: true},
		{input: "éa", fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := ParseIdentifier(tt.input)

			if tt.fails {
				var f *Failure
				if !errors.As(err, &f) {
					t.Fatalf("got %q, want failure", got)
				}

				if f.Cut || f.Offset != 0 || f.Reason != LexicalMismatch {
					t.Errorf("failure = %+v, want soft lexical mismatch at 0", f)
				}

				if rest != tt.input {
					t.Errorf("rest = %q, want input unconsumed", rest)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want || rest != tt.rest {
				t.Errorf("got (%q, %q), want (%q, %q)", got, rest, tt.want, tt.rest)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		rest  string
	}{
		{"12345", 12345.0, ""},
		{"0.1234", 0.1234, ""},
		{"0.0001", 0.0001, ""},
		{"-10.0", -10.0, ""},
		{"1.0e-10", 1.0e-10, ""},
		{"1e0", 1, ""},
		{"0.1e13", 0.1e13, ""},
		{"2E+3", 2000, ""},
		{"007", 7, ""},
		{"1.", 1, "."},
		{"1.x", 1, ".x"},
		{"1e", 1, "e"},
		{"1e+", 1, "e+"},
		{"3.5)", 3.5, ")"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := ParseNumber(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want || rest != tt.rest {
				t.Errorf("got (%v, %q), want (%v, %q)", got, rest, tt.want, tt.rest)
			}
		})
	}
}

func TestParseNumber_NegativeZero(t *testing.T) {
	got, _, err := ParseNumber("-0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got != 0 || !math.Signbit(got) {
		t.Errorf("got %v, want negative zero", got)
	}
}

func TestParseNumber_Failures(t *testing.T) {
	tests := []struct {
		input string
		cut   bool
	}{
		{".5", false},
		{"-", false},
		{"-x", false},
		{"x", false},
		{"", false},
		{"1e400", true},
		{"-1e400", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, rest, err := ParseNumber(tt.input)

			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("got %v, want *Failure", err)
			}

			if f.Cut != tt.cut || !errors.Is(err, ErrLexicalMismatch) {
				t.Errorf("failure = %v (cut=%v), want cut=%v", f, f.Cut, tt.cut)
			}

			if rest != tt.input {
				t.Errorf("rest = %q, want input unconsumed", rest)
			}
		})
	}
}

func TestKeywords_ReturnsCopy(t *testing.T) {
	kw := Keywords()
	kw[0] = "mutated"

	if Keywords()[0] != "def" {
		t.Error("Keywords exposes shared state")
	}
}
