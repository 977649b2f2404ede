package directive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/docklint/internal/rules"
	"github.com/wharflab/docklint/internal/sourcemap"
)

func parse(t *testing.T, src string, validator RuleValidator) *ParseResult {
	t.Helper()
	return Parse(sourcemap.FromDocument([]byte(src)), validator)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		wantType  DirectiveType
		wantRules []string
		wantRange LineRange
		wantSrc   DirectiveSource
	}{
		{
			name:      "next line",
			src:       "FROM vader\n# docklint ignore=bad-parameters\nCMD [\"x\"]",
			wantType:  TypeNextLine,
			wantRules: []string{"bad-parameters"},
			wantRange: LineRange{Start: 2, End: 2},
			wantSrc:   SourceDocklint,
		},
		{
			name:      "skips blank and comment lines",
			src:       "FROM vader\n# docklint ignore=bad-parameters,missing-cmd\n\n# note\nEXPOSE http",
			wantType:  TypeNextLine,
			wantRules: []string{"bad-parameters", "missing-cmd"},
			wantRange: LineRange{Start: 4, End: 4},
			wantSrc:   SourceDocklint,
		},
		{
			name:      "global",
			src:       "# docklint global ignore=missing-cmd\nFROM vader",
			wantType:  TypeGlobal,
			wantRules: []string{"missing-cmd"},
			wantRange: GlobalRange(),
			wantSrc:   SourceDocklint,
		},
		{
			name:      "case insensitive keywords",
			src:       "FROM vader\n# DOCKLINT Ignore=docklint/bad-parameters\nCMD",
			wantType:  TypeNextLine,
			wantRules: []string{"docklint/bad-parameters"},
			wantRange: LineRange{Start: 2, End: 2},
			wantSrc:   SourceDocklint,
		},
		{
			name:      "hadolint",
			src:       "FROM vader\n# hadolint ignore=bad-parameters\nCMD",
			wantType:  TypeNextLine,
			wantRules: []string{"bad-parameters"},
			wantRange: LineRange{Start: 2, End: 2},
			wantSrc:   SourceHadolint,
		},
		{
			name:      "buildx check skip",
			src:       "# check=skip=missing-cmd,bad-parameters\nFROM vader",
			wantType:  TypeGlobal,
			wantRules: []string{"missing-cmd", "bad-parameters"},
			wantRange: GlobalRange(),
			wantSrc:   SourceBuildx,
		},
		{
			name:      "last line",
			src:       "FROM vader\n# docklint ignore=all",
			wantType:  TypeNextLine,
			wantRules: []string{"all"},
			wantRange: noLine,
			wantSrc:   SourceDocklint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := parse(t, tt.src, nil)
			require.Empty(t, res.Errors)
			require.Len(t, res.Directives, 1)

			d := res.Directives[0]
			assert.Equal(t, tt.wantType, d.Type)
			assert.Equal(t, tt.wantRules, d.Rules)
			assert.Equal(t, tt.wantRange, d.AppliesTo)
			assert.Equal(t, tt.wantSrc, d.Source)
		})
	}
}

func TestParse_Reason(t *testing.T) {
	t.Parallel()

	res := parse(t, "FROM vader\n# docklint ignore=bad-parameters reason=legacy image name\nCMD", nil)
	require.Len(t, res.Directives, 1)
	assert.Equal(t, "legacy image name", res.Directives[0].Reason)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	res := parse(t, "# docklint ignore=\nFROM vader", nil)
	assert.Empty(t, res.Directives)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "empty rule list", res.Errors[0].Message)
	assert.Equal(t, 0, res.Errors[0].Line)

	known := func(code string) bool { return rules.DefaultRegistry().Has(code) }
	res = parse(t, "# docklint global ignore=missing-cmd,no-such-rule\nFROM vader", known)
	require.Len(t, res.Directives, 1, "the directive is kept")
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "unknown rule code(s): no-such-rule", res.Errors[0].Error())
}

func TestParse_IgnoresPlainComments(t *testing.T) {
	t.Parallel()

	res := parse(t, "# docklinted by hand\n# syntax=docker/dockerfile:1\nFROM vader", nil)
	assert.Empty(t, res.Directives)
	assert.Empty(t, res.Errors)
}

func TestSuppressesRule(t *testing.T) {
	t.Parallel()

	d := Directive{Rules: []string{"bad-parameters", "DOCKLINT/missing-cmd"}}
	assert.True(t, d.SuppressesRule("docklint/bad-parameters"))
	assert.True(t, d.SuppressesRule("docklint/missing-cmd"))
	assert.False(t, d.SuppressesRule("docklint/missing-from"))

	all := Directive{Rules: []string{"all"}}
	assert.True(t, all.SuppressesRule("docklint/missing-from"))
}

func TestSuppressesLine(t *testing.T) {
	t.Parallel()

	next := Directive{Type: TypeNextLine, AppliesTo: LineRange{Start: 3, End: 3}}
	assert.True(t, next.SuppressesLine(3))
	assert.False(t, next.SuppressesLine(4))
	assert.False(t, next.SuppressesLine(-1), "file-level findings need a global directive")

	global := Directive{Type: TypeGlobal, AppliesTo: GlobalRange()}
	assert.True(t, global.SuppressesLine(0))
	assert.True(t, global.SuppressesLine(-1))
}

func TestFilter(t *testing.T) {
	t.Parallel()

	src := "# docklint global ignore=missing-cmd\nFROM vader\n# docklint ignore=bad-parameters\nEXPOSE http\n" +
		"EXPOSE https\n# docklint ignore=invalid-instruction\nRUN x"
	res := parse(t, src, nil)
	require.Len(t, res.Directives, 3)

	violations := []rules.Violation{
		rules.NewViolation(rules.NewLineLocation("Dockerfile", 4), "docklint/bad-parameters", "Bad parameters",
			rules.SeverityWarning),
		rules.NewViolation(rules.NewLineLocation("Dockerfile", 5), "docklint/bad-parameters", "Bad parameters",
			rules.SeverityWarning),
		rules.NewViolation(rules.NewFileLocation("Dockerfile"), "docklint/missing-cmd", "Missing CMD",
			rules.SeverityWarning),
	}

	got := Filter(violations, res.Directives)

	require.Len(t, got.Violations, 1)
	assert.Equal(t, 5, got.Violations[0].Line())
	assert.Len(t, got.Suppressed, 2)
	require.Len(t, got.UnusedDirectives, 1)
	assert.Equal(t, 5, got.UnusedDirectives[0].Line)
	assert.False(t, res.Directives[0].Used, "input directives are not modified")
}
