package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Parallel()

	sm := New([]byte("FROM alpine\r\nRUN echo \\\n  hi\nCMD x"))
	assert.Equal(t, 4, sm.LineCount())
	assert.Equal(t, "FROM alpine", sm.Line(0))
	assert.Equal(t, "  hi", sm.Line(2))
	assert.Empty(t, sm.Line(4))
	assert.Empty(t, sm.Line(-1))
	assert.Equal(t, []string{"FROM alpine", "RUN echo \\", "  hi", "CMD x"}, sm.Lines())
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	sm := New([]byte("a\nb\nc\nd"))

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{name: "single line", start: 1, end: 1, want: "b"},
		{name: "range", start: 1, end: 2, want: "b\nc"},
		{name: "clamped start", start: -3, end: 0, want: "a"},
		{name: "clamped end", start: 2, end: 10, want: "c\nd"},
		{name: "inverted", start: 3, end: 1, want: ""},
		{name: "out of range", start: 7, end: 9, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sm.Snippet(tt.start, tt.end))
		})
	}
}

func TestFromDocument(t *testing.T) {
	t.Parallel()

	src := []byte("\n\n  FROM alpine\nBOGUS\n\n")
	sm := FromDocument(src)
	assert.Equal(t, 2, sm.LineCount())
	assert.Equal(t, "FROM alpine", sm.Line(0))
	assert.Equal(t, "BOGUS", sm.Line(1))
}

func TestComments(t *testing.T) {
	t.Parallel()

	sm := New([]byte("# docklint global ignore=missing-cmd\nFROM vader\n  # just a note\n# check=skip=bad-parameters\n" +
		"RUN echo # not a comment\n# docklinted"))

	assert.Equal(t, []Comment{
		{Line: 0, Text: "# docklint global ignore=missing-cmd", IsDirective: true},
		{Line: 2, Text: "# just a note"},
		{Line: 3, Text: "# check=skip=bad-parameters", IsDirective: true},
		{Line: 5, Text: "# docklinted"},
	}, sm.Comments())
}
