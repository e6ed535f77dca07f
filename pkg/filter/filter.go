// Package filter hides lines matching user-supplied regexes from the view.
package filter

import (
	"regexp"

	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

// Set holds the compiled hide patterns. Not safe for concurrent use.
type Set struct {
	bus      *event.Bus
	patterns []*regexp.Regexp
}

// NewSet creates an empty filter set.
func NewSet(bus *event.Bus) *Set {
	return &Set{bus: bus}
}

// Add compiles pattern and appends it to the hide list. A malformed regex
// leaves the set unchanged.
func (s *Set) Add(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return &highlight.InvalidPatternError{Pattern: pattern, Err: err}
	}
	s.patterns = append(s.patterns, re)
	s.notify()
	return nil
}

// ShouldHide reports whether line matches any hide pattern.
func (s *Set) ShouldHide(line string) bool {
	for _, re := range s.patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

// Clear removes all hide patterns, notifying only when the set was
// non-empty.
func (s *Set) Clear() {
	if len(s.patterns) == 0 {
		return
	}
	s.patterns = nil
	s.notify()
}

// Len returns the number of hide patterns.
func (s *Set) Len() int {
	return len(s.patterns)
}

func (s *Set) notify() {
	if s.bus != nil {
		s.bus.Publish(event.Event{Type: event.FiltersChanged})
	}
}
