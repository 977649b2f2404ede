package validate

import (
	"strings"

	"github.com/moby/buildkit/frontend/dockerfile/command"
)

// Instruction is one of the Dockerfile instructions the validator knows about.
type Instruction int

const (
	From Instruction = iota
	Maintainer
	Run
	Cmd
	Expose
	Env
	Label
	Add
	Copy
	Entrypoint
	Volume
	User
	Workdir
	Onbuild

	instructionCount
)

// keywords maps every Instruction to BuildKit's lowercase command name.
var keywords = [instructionCount]string{
	From:       command.From,
	Maintainer: command.Maintainer,
	Run:        command.Run,
	Cmd:        command.Cmd,
	Expose:     command.Expose,
	Env:        command.Env,
	Label:      command.Label,
	Add:        command.Add,
	Copy:       command.Copy,
	Entrypoint: command.Entrypoint,
	Volume:     command.Volume,
	User:       command.User,
	Workdir:    command.Workdir,
	Onbuild:    command.Onbuild,
}

var byKeyword = func() map[string]Instruction {
	m := make(map[string]Instruction, len(keywords))
	for i, kw := range keywords {
		m[kw] = Instruction(i)
	}
	return m
}()

// Instructions returns every known instruction in declaration order.
func Instructions() []Instruction {
	out := make([]Instruction, 0, instructionCount)
	for i := range instructionCount {
		out = append(out, i)
	}
	return out
}

// Keyword returns the upper-case keyword, e.g. "FROM".
func (i Instruction) Keyword() string {
	if i < 0 || i >= instructionCount {
		return "UNKNOWN"
	}
	return strings.ToUpper(keywords[i])
}

func (i Instruction) String() string {
	return i.Keyword()
}

// LookupInstruction resolves a keyword case-insensitively.
func LookupInstruction(word string) (Instruction, bool) {
	inst, ok := byKeyword[strings.ToLower(word)]
	return inst, ok
}

// acceptsArrayLiteral reports whether the instruction has an exec/JSON array
// form that gets the strict array shape check.
func (i Instruction) acceptsArrayLiteral() bool {
	switch i {
	case Add, Cmd, Copy, Volume:
		return true
	default:
		return false
	}
}
