package repl

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/kaleidoscope/lang"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	currentParamStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true).Underline(true)
	arityStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// callSite is the innermost call whose argument list contains the cursor.
type callSite struct {
	name     string
	argIndex int
	inCall   bool
}

// detectCall scans backward from the cursor for an unclosed "(" preceded by
// an identifier and counts the commas between them at the same depth.
func detectCall(input string, cursor int) callSite {
	cursor = min(max(cursor, 0), len(input))

	open, depth, args := -1, 0, 0

	for i := cursor - 1; i >= 0 && open < 0; i-- {
		switch input[i] {
		case ')':
			depth++
		case ',':
			if depth == 0 {
				args++
			}
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return callSite{}
	}

	start := open
	for start > 0 && !isWordBoundary(input[start-1]) {
		start--
	}

	name, _, err := lang.ParseIdentifier(input[start:open])
	if err != nil || name != input[start:open] {
		return callSite{}
	}

	return callSite{name: name, argIndex: args, inCall: true}
}

// renderSignatureHint renders proto with the parameter at argIndex
// highlighted, flagging arguments beyond the declared arity.
func renderSignatureHint(proto lang.Prototype, argIndex int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(proto.Name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range proto.Params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIndex {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	b.WriteString(signatureStyle.Render(")"))

	if argIndex > 0 && argIndex >= len(proto.Params) {
		b.WriteString(" ")
		b.WriteString(arityStyle.Render("too many arguments"))
	}

	return b.String()
}
