// Package source gives the parser line-addressable access to a file and a
// cheap, copyable cursor over it.
package source

import (
	"fmt"
	"os"
	"strings"
)

// EOF is returned by Peek and Next at the end of the input.
const EOF byte = 0

// Location is a 1-based line and column. Locations are totally ordered by
// line, then column.
type Location struct {
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Before reports whether l sorts strictly before other.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// Compare returns -1, 0 or +1 depending on whether l sorts before, equal to
// or after other.
func (l Location) Compare(other Location) int {
	switch {
	case l.Before(other):
		return -1
	case other.Before(l):
		return 1
	default:
		return 0
	}
}

// Source holds the lines of one input. It is never modified after
// construction and may be shared between cursors.
type Source struct {
	filename string
	lines    []string
}

// New splits text into lines. A trailing newline does not start an empty
// final line, and a carriage return before a line break is dropped.
func New(filename, text string) *Source {
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &Source{filename: filename, lines: lines}
}

// ReadFile loads the file at path.
func ReadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, string(data)), nil
}

func (s *Source) Filename() string {
	return s.filename
}

// Line returns the text of the given 1-based line, without its line break.
// Out of range lines are empty.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// LineCount returns the number of lines.
func (s *Source) LineCount() int {
	return len(s.lines)
}

// Start returns a cursor at the first character.
func (s *Source) Start() Cursor {
	return Cursor{src: s, loc: Location{Line: 1, Column: 1}}
}

// End returns the location of the end of input.
func (s *Source) End() Location {
	last := len(s.lines)
	return Location{Line: last, Column: len(s.lines[last-1]) + 1}
}

func (s *Source) at(loc Location) byte {
	if loc.Line < 1 || loc.Line > len(s.lines) {
		return EOF
	}
	line := s.lines[loc.Line-1]
	if loc.Column == len(line)+1 {
		if loc.Line == len(s.lines) {
			return EOF
		}
		return '\n'
	}
	if loc.Column < 1 || loc.Column > len(line) {
		return EOF
	}
	return line[loc.Column-1]
}

// Cursor is a position in a Source. It is a small value: copying a cursor
// snapshots the position, and seeking one copy never moves another.
type Cursor struct {
	src *Source
	loc Location
}

func (c *Cursor) Source() *Source {
	return c.src
}

func (c *Cursor) Location() Location {
	return c.loc
}

// Seek moves the cursor to a location previously obtained from Location.
func (c *Cursor) Seek(loc Location) {
	c.loc = loc
}

// Peek returns the current character without consuming it. The end of
// every line but the last reads as '\n'; the end of the last line reads as
// EOF.
func (c *Cursor) Peek() byte {
	return c.src.at(c.loc)
}

// Next consumes and returns the current character. At the end of input it
// does nothing and returns EOF.
func (c *Cursor) Next() byte {
	if c.AtEOF() {
		return EOF
	}
	ch := c.Peek()
	switch ch {
	case '\n':
		c.loc = Location{Line: c.loc.Line + 1, Column: 1}
	default:
		c.loc.Column++
	}
	return ch
}

// AtEOF reports whether the cursor is at the end of input. A NUL byte
// inside the text peeks as EOF but is not the end.
func (c *Cursor) AtEOF() bool {
	return !c.loc.Before(c.src.End())
}
