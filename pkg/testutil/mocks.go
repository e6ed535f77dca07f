// Package testutil provides shared mocks for store tests.
package testutil

import (
	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

// MockSettings implements the settings interfaces consumed by the pattern
// and bookmark stores. It keeps everything in memory and counts saves so
// tests can assert when persistence happened (and when it was skipped).
type MockSettings struct {
	Patterns      []highlight.PatternConfig
	Bookmarks     map[string][]int
	BookmarkColor string

	// SaveErr, when set, is returned by every save call. The in-memory
	// state is still not updated, mimicking a failed write.
	SaveErr error
	// LoadErr, when set, is returned by every load call.
	LoadErr error

	PatternSaves  int
	BookmarkSaves int
	ColorSaves    int
}

// NewMockSettings creates an empty mock settings store.
func NewMockSettings() *MockSettings {
	return &MockSettings{Bookmarks: map[string][]int{}}
}

// LoadPatterns implements highlight.Settings.
func (m *MockSettings) LoadPatterns() ([]highlight.PatternConfig, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]highlight.PatternConfig(nil), m.Patterns...), nil
}

// SavePatterns implements highlight.Settings.
func (m *MockSettings) SavePatterns(patterns []highlight.PatternConfig) error {
	m.PatternSaves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Patterns = append([]highlight.PatternConfig(nil), patterns...)
	return nil
}

// LoadBookmarks implements bookmark.Settings.
func (m *MockSettings) LoadBookmarks(path string) ([]int, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]int(nil), m.Bookmarks[path]...), nil
}

// SaveBookmarks implements bookmark.Settings.
func (m *MockSettings) SaveBookmarks(path string, lines []int) error {
	m.BookmarkSaves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if len(lines) == 0 {
		delete(m.Bookmarks, path)
	} else {
		m.Bookmarks[path] = append([]int(nil), lines...)
	}
	return nil
}

// LoadBookmarkColor implements bookmark.Settings.
func (m *MockSettings) LoadBookmarkColor() (string, error) {
	if m.LoadErr != nil {
		return "", m.LoadErr
	}
	return m.BookmarkColor, nil
}

// SaveBookmarkColor implements bookmark.Settings.
func (m *MockSettings) SaveBookmarkColor(hex string) error {
	m.ColorSaves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.BookmarkColor = hex
	return nil
}

// MarkSet is a fixed bookmark view for resolver tests.
type MarkSet struct {
	Lines     map[int]struct{}
	MarkColor highlight.Color
}

// NewMarkSet builds a view over the given line numbers.
func NewMarkSet(color highlight.Color, lines ...int) *MarkSet {
	set := make(map[int]struct{}, len(lines))
	for _, n := range lines {
		set[n] = struct{}{}
	}
	return &MarkSet{Lines: set, MarkColor: color}
}

// IsBookmarked implements highlight.BookmarkView.
func (m *MarkSet) IsBookmarked(line int) bool {
	_, ok := m.Lines[line]
	return ok
}

// Color implements highlight.BookmarkView.
func (m *MarkSet) Color() highlight.Color {
	return m.MarkColor
}
