package lang

import (
	"strconv"
	"strings"
)

// Reserved words. An identifier may not begin with either of them.
const (
	keywordDef    = "def"
	keywordExtern = "extern"
)

var keywords = [...]string{keywordDef, keywordExtern}

// Keywords returns the reserved words of the language.
func Keywords() []string { return []string{keywordDef, keywordExtern} }

func isWhitespace(c byte) bool { return c == ' ' || c == '\n' }

func isSeparator(c byte) bool { return c == ';' || c == '\n' }

func isTrailing(c byte) bool { return isWhitespace(c) || isSeparator(c) }

func isLetter(c byte) bool { return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentifierContinue(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }

// skip advances over the longest run of bytes matching pred and returns
// its length.
func (p *parser) skip(pred func(byte) bool) int {
	start := p.pos

	for p.pos < len(p.input) && pred(p.input[p.pos]) {
		p.pos++
	}

	return p.pos - start
}

// ws consumes optional whitespace.
func (p *parser) ws() { p.skip(isWhitespace) }

// ws1 consumes mandatory whitespace.
func (p *parser) ws1() *Failure {
	if p.skip(isWhitespace) == 0 {
		return p.fail(p.pos, StructuralMismatch, "whitespace")
	}

	return nil
}

// separator consumes a mandatory run of statement separators.
func (p *parser) separator() bool { return p.skip(isSeparator) > 0 }

// keyword consumes kw if the input continues with it.
func (p *parser) keyword(kw string) bool {
	if strings.HasPrefix(p.input[p.pos:], kw) {
		p.pos += len(kw)

		return true
	}

	return false
}

// identifier matches [A-Za-z][A-Za-z0-9_]* or _[A-Za-z][A-Za-z0-9_]*.
// Input beginning with a keyword is rejected without consuming anything so
// that the keyword rules can be tried instead.
func (p *parser) identifier() (string, *Failure) {
	defer p.enter(RuleIdentifier)()

	start := p.pos

	for _, kw := range keywords {
		if strings.HasPrefix(p.input[start:], kw) {
			return "", p.fail(start, LexicalMismatch,
				"identifier, not keyword "+strconv.Quote(kw))
		}
	}

	i := start
	if i < len(p.input) && p.input[i] == '_' {
		i++
	}

	if i >= len(p.input) || !isLetter(p.input[i]) {
		return "", p.fail(start, LexicalMismatch,
			"identifier start: a letter, or '_' followed by a letter")
	}

	for i < len(p.input) && isIdentifierContinue(p.input[i]) {
		i++
	}

	p.pos = i

	return p.input[start:i], nil
}

// digits returns the index of the first non-digit at or after i.
func (p *parser) digits(i int) int {
	for i < len(p.input) && isDigit(p.input[i]) {
		i++
	}

	return i
}

// number matches -?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)? and converts it to
// the nearest float64. A fraction or exponent marker without digits after
// it is left unconsumed.
func (p *parser) number() (float64, *Failure) {
	defer p.enter(RuleNumber)()

	start, i := p.pos, p.pos

	if i < len(p.input) && p.input[i] == '-' {
		i++
	}

	end := p.digits(i)
	if end == i {
		return 0, p.fail(i, LexicalMismatch, "digit")
	}

	i = end

	if i < len(p.input) && p.input[i] == '.' {
		if end := p.digits(i + 1); end > i+1 {
			i = end
		}
	}

	if i < len(p.input) && (p.input[i] == 'e' || p.input[i] == 'E') {
		j := i + 1
		if j < len(p.input) && (p.input[j] == '+' || p.input[j] == '-') {
			j++
		}

		if end := p.digits(j); end > j {
			i = end
		}
	}

	value, err := strconv.ParseFloat(p.input[start:i], 64)
	if err != nil {
		// Only range errors are possible here; the digits are committed.
		return 0, commit(p.fail(start, LexicalMismatch, "finite number"), RuleNumber)
	}

	p.pos = i

	return value, nil
}
