package rules

// Position is a single point in a source file. Lines are 1-based, columns 0-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Location is the span of a violation. End.Line < 0 marks a point location;
// Start.Line < 0 marks a file-level one.
type Location struct {
	File  string   `json:"file"`
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// NewFileLocation creates a location for file-level issues (no specific line).
func NewFileLocation(file string) Location {
	return Location{
		File:  file,
		Start: Position{Line: -1, Column: -1},
		End:   Position{Line: -1, Column: -1},
	}
}

// NewLineLocation creates a point location at the start of a 1-based line.
func NewLineLocation(file string, line int) Location {
	return Location{
		File:  file,
		Start: Position{Line: line},
		End:   Position{Line: -1, Column: -1},
	}
}

// NewLineSpan covers whole lines start..end inclusive. A span of one line
// collapses to a point location.
func NewLineSpan(file string, start, end int) Location {
	if end <= start {
		return NewLineLocation(file, start)
	}
	return Location{
		File:  file,
		Start: Position{Line: start},
		End:   Position{Line: end},
	}
}

// IsFileLevel returns true if this is a file-level location (no specific line).
func (l Location) IsFileLevel() bool {
	return l.Start.Line < 0
}

// IsPointLocation returns true if the location covers a single line.
func (l Location) IsPointLocation() bool {
	return l.End.Line < 0 || l.End.Line == l.Start.Line
}

// EndLine returns the last line covered by the location.
func (l Location) EndLine() int {
	if l.IsPointLocation() {
		return l.Start.Line
	}
	return l.End.Line
}
