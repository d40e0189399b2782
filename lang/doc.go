// Package lang parses the Kaleidoscope teaching language into an abstract
// syntax tree.
//
// # Grammar
//
//	program     = ws [ statement { sep statement } ] trailing EOF
//	statement   = extern | function | expression
//	extern      = "extern" ws1 prototype
//	function    = "def" ws1 prototype ws1 expression
//	prototype   = identifier list(identifier)
//	expression  = call | number | identifier
//	call        = identifier list(expression)
//	list(item)  = "(" ws [ item { ws "," ws item } ] ws ")"
//	identifier  = [ "_" ] letter { letter | digit | "_" }
//	number      = [ "-" ] digits [ "." digits ] [ ( "e" | "E" ) [ "+" | "-" ] digits ]
//	ws          = { " " | "\n" }
//	ws1         = ( " " | "\n" ) ws
//	sep         = ( ";" | "\n" ) { ";" | "\n" }
//	trailing    = { " " | "\n" | ";" }
//
// An identifier may not begin with "def" or "extern", so "define" is not an
// identifier. Tabs and carriage returns are not whitespace.
//
// # Failures
//
// Rules return a [*Failure] on mismatch. A failure is recoverable until a
// rule commits: after the "def" or "extern" keyword, and after the "(" that
// opens an argument list. A committed failure ([Failure.Cut]) aborts the
// whole parse and keeps the rule stack that was active where it occurred,
// so the diagnostic for
//
//	extern foo(
//
// names the parameter list of the prototype of the extern declaration
// rather than a generic statement mismatch.
//
// [ParseString] and [ParseReader] wrap the failure in a [*ParseError]
// carrying the source for [ParseError.Snippet]. Both match [ErrParse] and
// the reason's sentinel, such as [ErrStructuralMismatch], with errors.Is.
//
// # Output
//
// A [Program] prints back to native syntax with [Program.Format], encodes to
// JSON and YAML, and can be queried with expr-lang predicates over [Record]
// using [Program.Filter].
package lang
