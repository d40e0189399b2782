package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule names a grammar rule. Rules appear in the rule stack of a [Failure].
type Rule string

const (
	RuleProgram    Rule = "program"
	RuleStatement  Rule = "statement"
	RuleExtern     Rule = "extern"
	RuleFunction   Rule = "function"
	RulePrototype  Rule = "prototype"
	RuleParameters Rule = "parameters"
	RuleExpression Rule = "expression"
	RuleCall       Rule = "call"
	RuleArguments  Rule = "arguments"
	RuleNumber     Rule = "number"
	RuleVariable   Rule = "variable"
	RuleIdentifier Rule = "identifier"
)

// Description returns the phrase used for the rule in diagnostics.
func (r Rule) Description() string {
	switch r {
	case RuleExtern:
		return "extern declaration"
	case RuleFunction:
		return "function definition"
	case RuleArguments:
		return "argument list"
	case RuleParameters:
		return "parameter list"
	default:
		return string(r)
	}
}

// Reason classifies a parse failure.
type Reason int

const (
	// LexicalMismatch means an expected character class was not found.
	LexicalMismatch Reason = iota

	// StructuralMismatch means an expected keyword, punctuation, or
	// whitespace was absent.
	StructuralMismatch

	// IncompleteConsumption means input remained after the program rule
	// completed.
	IncompleteConsumption

	// DepthExceeded means expressions were nested deeper than the configured
	// limit.
	DepthExceeded
)

// String returns a lowercase description of the reason.
func (r Reason) String() string {
	switch r {
	case LexicalMismatch:
		return "lexical mismatch"

	case StructuralMismatch:
		return "structural mismatch"

	case IncompleteConsumption:
		return "incomplete consumption"

	case DepthExceeded:
		return "depth exceeded"

	default:
		return "unknown"
	}
}

func (r Reason) sentinel() *Error {
	switch r {
	case LexicalMismatch:
		return ErrLexicalMismatch
	case StructuralMismatch:
		return ErrStructuralMismatch
	case IncompleteConsumption:
		return ErrIncompleteConsumption
	case DepthExceeded:
		return ErrDepthExceeded
	default:
		return ErrParse
	}
}

// Failure describes where and why a rule failed to match.
//
// A Failure with Cut unset is recoverable: an alternation may still try its
// next branch. Once Cut is set the failure propagates unchanged to the
// caller of the outermost rule.
type Failure struct {
	Reason Reason

	// Cut reports an unrecoverable failure raised after a rule committed.
	Cut bool

	// Commit is the innermost rule that committed, if Cut is set.
	Commit Rule

	// Offset is the byte offset of the failure in the input.
	Offset int

	// Line and Column are the 1-based position of Offset. Column counts
	// runes.
	Line   int
	Column int

	// Rules is the stack of rules active at the failure, innermost first.
	Rules []Rule

	// Expected describes what the failing rule was looking for.
	Expected string

	// Found describes the input at Offset.
	Found string
}

// Rule returns the innermost active rule, or "" if the stack is empty.
func (f *Failure) Rule() Rule {
	if len(f.Rules) == 0 {
		return ""
	}

	return f.Rules[0]
}

// InContext reports whether r is on the rule stack of the failure.
func (f *Failure) InContext(r Rule) bool {
	for _, active := range f.Rules {
		if active == r {
			return true
		}
	}

	return false
}

// Error implements the error interface.
func (f *Failure) Error() string {
	var b strings.Builder

	switch {
	case f.Reason == IncompleteConsumption:
		b.WriteString("unconsumed input")
	case f.Reason == DepthExceeded:
		b.WriteString("expression nested too deeply")
	case f.Cut && f.Commit != "":
		b.WriteString("malformed ")
		b.WriteString(f.Commit.Description())
	default:
		b.WriteString(f.Reason.String())
	}

	b.WriteString(" at offset ")
	b.WriteString(strconv.Itoa(f.Offset))
	b.WriteString(" (line ")
	b.WriteString(strconv.Itoa(f.Line))
	b.WriteString(", column ")
	b.WriteString(strconv.Itoa(f.Column))
	b.WriteString(")")

	if f.Expected != "" {
		b.WriteString(": expected ")
		b.WriteString(f.Expected)

		if r := f.Rule(); r != "" && r != RuleProgram {
			b.WriteString(" in ")
			b.WriteString(r.Description())
		}
	}

	if f.Found != "" {
		b.WriteString(", found ")
		b.WriteString(f.Found)
	}

	return b.String()
}

// Unwrap returns the sentinel error matching the failure reason.
func (f *Failure) Unwrap() error { return f.Reason.sentinel() }

// Stack returns the rule stack innermost first, joined by " < ".
func (f *Failure) Stack() string {
	names := make([]string, len(f.Rules))
	for i, r := range f.Rules {
		names[i] = string(r)
	}

	return strings.Join(names, " < ")
}

// LogValue implements slog.LogValuer.
func (f *Failure) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("reason", f.Reason.String()),
		slog.Bool("cut", f.Cut),
		slog.Int("offset", f.Offset),
		slog.Int("line", f.Line),
		slog.Int("column", f.Column),
		slog.String("rules", f.Stack()),
	}

	if f.Commit != "" {
		attrs = append(attrs, slog.String("commit", string(f.Commit)))
	}

	if f.Expected != "" {
		attrs = append(attrs, slog.String("expected", f.Expected))
	}

	if f.Found != "" {
		attrs = append(attrs, slog.String("found", f.Found))
	}

	return slog.GroupValue(attrs...)
}

// commit marks f unrecoverable on behalf of rule r. The innermost commit
// point is kept if f was already cut.
func commit(f *Failure, r Rule) *Failure {
	if !f.Cut {
		f.Cut = true
		f.Commit = r
	}

	return f
}

// position returns the 1-based line and rune column of offset in s.
func position(s string, offset int) (line, column int) {
	if offset > len(s) {
		offset = len(s)
	}

	head := s[:offset]
	line = 1 + strings.Count(head, "\n")

	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		head = head[i+1:]
	}

	return line, 1 + utf8.RuneCountInString(head)
}

// describeInput returns a short description of the input at offset.
func describeInput(s string, offset int) string {
	if offset >= len(s) {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(s[offset:])

	return strconv.QuoteRune(r)
}

// ParseError is returned by the whole-program entry points. It carries the
// failure together with the source text it refers to.
type ParseError struct {
	Failure *Failure
	Source  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return ErrParse.msg + ": " + e.Failure.Error()
}

// Unwrap exposes both [ErrParse] and the underlying [*Failure].
func (e *ParseError) Unwrap() []error {
	return []error{ErrParse, e.Failure}
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.msg),
		slog.Any("failure", e.Failure),
		slog.Int("source_bytes", len(e.Source)),
	)
}

// Snippet renders the source line containing the failure with a caret
// under the failing column:
//
//	  1 | extern foo(
//	                 ^
func (e *ParseError) Snippet() string {
	f := e.Failure
	lines := strings.Split(e.Source, "\n")

	if f.Line < 1 || f.Line > len(lines) {
		return ""
	}

	var b strings.Builder

	num := strconv.Itoa(f.Line)

	b.WriteString("  ")
	b.WriteString(num)
	b.WriteString(" | ")
	b.WriteString(lines[f.Line-1])
	b.WriteByte('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(num)+5)

	if f.Column > 0 {
		padding += strings.Repeat(" ", f.Column-1)
	}

	b.WriteString(padding)
	b.WriteString("^\n")

	return b.String()
}
