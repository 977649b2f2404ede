package validate

import "regexp"

// placeholderPattern matches $NAME, ${NAME}, ${NAME:-default} and ${NAME:+alt}.
var placeholderPattern = regexp.MustCompile(`\$(?:\{[A-Za-z_][A-Za-z0-9_]*(?::[-+][^}]*)?\}|[A-Za-z_][A-Za-z0-9_]*)`)

// neutralLiteral is the stand-in for a variable reference. It must satisfy
// the token class the instruction's grammar expects at that position.
func neutralLiteral(inst Instruction) string {
	if inst == Expose {
		return "0"
	}
	return "x"
}

// substitutePlaceholders replaces every variable reference in params so that
// the reference itself cannot fail the grammar.
func substitutePlaceholders(inst Instruction, params string) string {
	return placeholderPattern.ReplaceAllLiteralString(params, neutralLiteral(inst))
}
