package lang

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		src    string
		offset int
		line   int
		column int
	}{
		{"", 0, 1, 1},
		{"abc", 2, 1, 3},
		{"a\nbc", 2, 2, 1},
		{"a\nbc", 4, 2, 3},
		{"héllo", 3, 1, 3},
		{"x", 10, 1, 2},
	}

	for _, tt := range tests {
		line, column := position(tt.src, tt.offset)
		if line != tt.line || column != tt.column {
			t.Errorf("position(%q, %d) = %d:%d, want %d:%d",
				tt.src, tt.offset, line, column, tt.line, tt.column)
		}
	}
}

func TestDescribeInput(t *testing.T) {
	if got := describeInput("ab", 2); got != "end of input" {
		t.Errorf("at end: %q", got)
	}

	if got := describeInput("a)", 1); got != "')'" {
		t.Errorf("at ')': %q", got)
	}
}

func TestCommit_KeepsInnermost(t *testing.T) {
	f := &Failure{}
	commit(commit(f, RuleNumber), RuleArguments)

	if !f.Cut || f.Commit != RuleNumber {
		t.Errorf("commit = %v %q, want cut at number", f.Cut, f.Commit)
	}
}

func TestFailure_Unwrap(t *testing.T) {
	for reason, sentinel := range map[Reason]error{
		LexicalMismatch:       ErrLexicalMismatch,
		StructuralMismatch:    ErrStructuralMismatch,
		IncompleteConsumption: ErrIncompleteConsumption,
		DepthExceeded:         ErrDepthExceeded,
	} {
		f := &Failure{Reason: reason}
		if !errors.Is(f, sentinel) {
			t.Errorf("%v does not match its sentinel", reason)
		}
	}
}

func TestFailure_LogValue(t *testing.T) {
	_, err := Parse("extern foo(")

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatal("no failure")
	}

	attrs := map[string]string{}
	for _, a := range f.LogValue().Group() {
		attrs[a.Key] = a.Value.String()
	}

	if attrs["commit"] != "extern" || attrs["offset"] != "11" || attrs["cut"] != "true" {
		t.Errorf("attrs = %v", attrs)
	}

	if !strings.HasPrefix(attrs["rules"], "parameters < prototype < extern") {
		t.Errorf("rules = %q", attrs["rules"])
	}
}

func TestError_WrapAndWith(t *testing.T) {
	cause := errors.New("boom")
	err := ErrEncode.Wrap(cause).With(slog.String("format", "yaml"))

	if !errors.Is(err, ErrEncode) || !errors.Is(err, cause) {
		t.Errorf("%v does not match both ErrEncode and its cause", err)
	}

	if errors.Is(err, ErrParse) {
		t.Error("matched an unrelated sentinel")
	}

	if err.Error() != "encode program: boom" {
		t.Errorf("Error() = %q", err.Error())
	}

	if len(ErrEncode.attrs) != 0 {
		t.Error("With mutated the sentinel")
	}

	if WrapError(err) != err {
		t.Error("WrapError rewrapped an *Error")
	}
}
