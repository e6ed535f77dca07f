// Package document loads files into immutable line snapshots.
package document

import (
	"fmt"
	"os"
	"strings"
)

// Document is an immutable snapshot of one loaded file. A new load replaces
// the whole snapshot; it is never mutated in place.
type Document struct {
	Path  string
	Lines []string
}

// LineCount returns the number of loaded lines.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.Lines)
}

// Line returns the text of the zero-indexed line.
func (d *Document) Line(i int) (string, bool) {
	if d == nil || i < 0 || i >= len(d.Lines) {
		return "", false
	}
	return d.Lines[i], true
}

// Read loads path synchronously. Line endings are normalized and invalid
// UTF-8 byte sequences are replaced rather than failing the load.
func Read(path string) (*Document, error) {
	// #nosec G304 - the viewer opens user-chosen files
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &Document{Path: path, Lines: SplitLines(string(data))}, nil
}

// SplitLines splits text the way the viewer counts lines: \r\n and bare \r
// count as \n, a trailing newline does not produce an empty final line, and
// invalid UTF-8 is replaced with U+FFFD.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToValidUTF8(text, "�")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
