// Package validate checks the syntactic structure of a Dockerfile.
//
// Validation is a single forward pass over the logical lines of a document.
// The first instruction must be FROM, every line must start with a known
// keyword, parameters must match a per-instruction grammar and the document
// must contain CMD. Findings are returned in discovery order, with the
// document-level FROM and CMD checks last.
//
// The package performs no I/O and holds no mutable state, so Validate is safe
// for concurrent use.
package validate

import (
	"bytes"
	"unicode/utf8"
)

// ValidateBytes validates raw file contents. Input that is not text (invalid
// UTF-8 or containing NUL bytes) yields a single InvalidType finding.
func ValidateBytes(src []byte, opts Options) Result {
	if !utf8.Valid(src) || bytes.IndexByte(src, 0) >= 0 {
		return Result{
			Valid:    false,
			Findings: []Finding{{Message: InvalidType, Priority: InvalidType.Priority()}},
		}
	}
	return Validate(string(src), opts)
}

// Validate validates a Dockerfile held in memory.
func Validate(text string, opts Options) Result {
	rep := &report{quiet: opts.Quiet}

	var (
		sawFirst bool
		sawCmd   bool
	)
	for _, line := range Preprocess(text) {
		if !sawFirst {
			sawFirst = true
			if !startsWithFrom(line.Text) {
				rep.addKind(MissingFrom, line.Line, line.EndLine)
			}
		}

		inst, ok := Classify(line)
		if !ok {
			rep.add(Finding{
				Message:  InvalidInstruction,
				Line:     line.Line,
				EndLine:  line.EndLine,
				Priority: InvalidInstruction.Priority(),
				Detail:   suggestKeyword(line.Text),
			})
			continue
		}
		if inst.Instruction == Cmd {
			sawCmd = true
		}
		if kind, failed := checkInstruction(inst); failed {
			rep.addKind(kind, inst.Line, inst.EndLine)
		}
	}

	if !sawFirst {
		rep.addKind(MissingFrom, 1, 1)
	}
	if !sawCmd {
		rep.addKind(MissingCmd, 0, 0)
	}
	return rep.result()
}

// checkInstruction runs the primary grammar and, when it passes, the strict
// array recheck. At most one finding comes out per instruction.
func checkInstruction(pi ParsedInstruction) (MessageKind, bool) {
	params := substitutePlaceholders(pi.Instruction, pi.Params)
	if !checkParams(pi.Instruction, params) {
		return BadParameters, true
	}
	if pi.Instruction.acceptsArrayLiteral() && isMalformedArray(params) {
		return MalformedParameters, true
	}
	return 0, false
}
