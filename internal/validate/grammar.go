package validate

import (
	"regexp"
	"strings"

	"github.com/wharflab/docklint/internal/pathcheck"
)

const (
	quotedString = `"(?:[^"\\]|\\.)*"`
	envKey       = `[A-Za-z_][A-Za-z0-9_]*`
	envValue     = `(?:` + quotedString + `|'[^']*'|(?:[^\s"'\\]|\\.)*)`
	labelKey     = `(?:` + quotedString + `|[^\s="]+)`
	labelValue   = `(?:` + quotedString + `|[^\s"]+)`
	envPair      = envKey + `=` + envValue
	labelPair    = labelKey + `=` + labelValue
)

var (
	imagePattern    = regexp.MustCompile(`^[a-z0-9._/-]+(?::[A-Za-z0-9._-]+)?$`)
	portsPattern    = regexp.MustCompile(`^\d+(?:\s+\d+)*$`)
	envPairsPattern = regexp.MustCompile(`^` + envPair + `(?:\s+` + envPair + `)*$`)
	envSpacePattern = regexp.MustCompile(`^` + envKey + `\s+\S.*$`)
	labelPattern    = regexp.MustCompile(`^` + labelPair + `(?:\s+` + labelPair + `)*$`)
	userPattern     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,30}$`)
	pathPattern     = regexp.MustCompile(`^~?[^\s:"'\[\]]+$`)
	urlPattern      = regexp.MustCompile(`^(?i:https?|ftp)://\S+$`)
)

// checkParams applies the primary grammar of inst to params, which must
// already have placeholders substituted. Every Instruction has a case.
func checkParams(inst Instruction, params string) bool {
	switch inst {
	case From:
		return imagePattern.MatchString(params)
	case Maintainer, Run, Cmd, Entrypoint, Onbuild:
		return params != ""
	case Expose:
		return portsPattern.MatchString(params)
	case Env:
		return envPairsPattern.MatchString(params) || envSpacePattern.MatchString(params)
	case Label:
		return labelPattern.MatchString(params)
	case User:
		return userPattern.MatchString(params)
	case Add, Copy:
		return checkTransfer(params)
	case Volume:
		return pathPattern.MatchString(params) || looseArrayPattern.MatchString(params)
	case Workdir:
		return pathPattern.MatchString(params)
	}
	panic("validate: no grammar for instruction " + inst.Keyword())
}

// checkTransfer validates ADD/COPY: a source and a destination, either as
// two bare tokens or as an array literal. A non-URL source must stay inside
// the build context.
func checkTransfer(params string) bool {
	var source string
	if elems := arrayElements(params); elems != nil {
		if len(elems) < 2 {
			return false
		}
		source = elems[0]
	} else {
		fields := strings.Fields(params)
		if len(fields) != 2 {
			return false
		}
		for _, f := range fields {
			if !isTransferToken(f) {
				return false
			}
		}
		source = fields[0]
	}
	return !pathcheck.EscapesContext(source)
}

func isTransferToken(tok string) bool {
	return urlPattern.MatchString(tok) || pathPattern.MatchString(tok)
}
