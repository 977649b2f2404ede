package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wharflab/docklint/internal/validate"
)

func TestParseSeverity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Severity
		wantErr bool
	}{
		{"error", SeverityError, false},
		{"ERROR", SeverityError, false},
		{"warning", SeverityWarning, false},
		{"warn", SeverityWarning, false},
		{"info", SeverityInfo, false},
		{"style", SeverityStyle, false},
		{"off", SeverityOff, false},
		{"fatal", SeverityError, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeverity(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.JSONEq(t, `"warning"`, string(data))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"style"`), &s))
	assert.Equal(t, SeverityStyle, s)
	assert.Error(t, json.Unmarshal([]byte(`"loud"`), &s))
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestSeverity_Ordering(t *testing.T) {
	t.Parallel()

	assert.True(t, SeverityError.IsMoreSevereThan(SeverityWarning))
	assert.False(t, SeverityStyle.IsMoreSevereThan(SeverityInfo))
	assert.True(t, SeverityWarning.IsAtLeast(SeverityWarning))
	assert.True(t, SeverityError.IsAtLeast(SeverityStyle))
	assert.False(t, SeverityInfo.IsAtLeast(SeverityWarning))
}

func TestSeverityForPriority(t *testing.T) {
	t.Parallel()

	assert.Equal(t, SeverityError, SeverityForPriority(validate.Structural))
	assert.Equal(t, SeverityWarning, SeverityForPriority(validate.Parameter))
}

func TestLocation(t *testing.T) {
	t.Parallel()

	file := NewFileLocation("Dockerfile")
	assert.True(t, file.IsFileLevel())

	point := NewLineLocation("Dockerfile", 3)
	assert.False(t, point.IsFileLevel())
	assert.True(t, point.IsPointLocation())
	assert.Equal(t, 3, point.EndLine())

	span := NewLineSpan("Dockerfile", 2, 5)
	assert.False(t, span.IsPointLocation())
	assert.Equal(t, 5, span.EndLine())

	assert.Equal(t, point, NewLineSpan("Dockerfile", 3, 3))
	assert.Equal(t, point, NewLineSpan("Dockerfile", 3, 0))
}

func TestFromFinding(t *testing.T) {
	t.Parallel()

	v := FromFinding("Dockerfile", validate.Finding{
		Message:  validate.BadParameters,
		Line:     2,
		EndLine:  4,
		Priority: validate.Parameter,
	})
	assert.Equal(t, "docklint/bad-parameters", v.RuleCode)
	assert.Equal(t, "Bad parameters", v.Message)
	assert.Equal(t, SeverityWarning, v.Severity)
	assert.Equal(t, NewLineSpan("Dockerfile", 2, 4), v.Location)
	assert.Equal(t, "Bad parameters at line 2", v.Text())

	missing := FromFinding("Dockerfile", validate.Finding{Message: validate.MissingCmd, Priority: validate.Parameter})
	assert.True(t, missing.Location.IsFileLevel())
	assert.Equal(t, "Missing CMD", missing.Text())
	assert.Equal(t, -1, missing.Line())
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromResult("Dockerfile", validate.Result{Valid: true}))

	res := validate.Validate("Hi mom!", validate.Options{})
	vs := FromResult("Dockerfile", res)
	require.Len(t, vs, 3)

	got := make([]string, 0, len(vs))
	for _, v := range vs {
		got = append(got, v.Text())
	}
	assert.Equal(t, []string{
		"Missing or misplaced FROM at line 1",
		"Invalid instruction at line 1",
		"Missing CMD",
	}, got)
	assert.Equal(t, SeverityError, vs[0].Severity)
	assert.Equal(t, "Dockerfile", vs[2].File())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	assert.Equal(t, []string{
		"docklint/bad-parameters",
		"docklint/invalid-instruction",
		"docklint/invalid-type",
		"docklint/malformed-parameters",
		"docklint/missing-cmd",
		"docklint/missing-from",
	}, r.Codes())

	all := r.All()
	require.Len(t, all, 6)
	assert.Equal(t, validate.InvalidType, all[0].Kind)
	assert.Equal(t, validate.MissingCmd, all[5].Kind)

	meta, ok := r.Get("missing-cmd")
	require.True(t, ok)
	assert.Equal(t, "docklint/missing-cmd", meta.Code)
	assert.Equal(t, SeverityWarning, meta.DefaultSeverity)
	assert.Equal(t, "parameters", meta.Category)
	assert.NotEmpty(t, meta.Description)

	assert.True(t, r.Has("docklint/missing-from"))
	assert.False(t, r.Has("docklint/max-lines"))

	for _, m := range all {
		assert.NotEmpty(t, m.Description, m.Code)
	}
}
