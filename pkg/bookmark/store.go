// Package bookmark tracks bookmarked line numbers for the currently open
// file and the process-wide bookmark marker color.
package bookmark

import (
	"log"
	"sort"

	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

// Settings persists bookmark sets per file plus the marker color.
type Settings interface {
	LoadBookmarks(path string) ([]int, error)
	SaveBookmarks(path string, lines []int) error
	LoadBookmarkColor() (string, error)
	SaveBookmarkColor(hex string) error
}

// Store holds the bookmarked line numbers for the single file it is bound
// to. Switching files replaces the whole in-memory set with the persisted
// state for the new path. Mutations with no current file are silent no-ops:
// there is no scope to bookmark against. Not safe for concurrent use.
type Store struct {
	settings Settings
	bus      *event.Bus
	path     string
	marks    map[int]struct{}
	color    highlight.Color
}

// NewStore creates a store bound to no file, with the persisted marker
// color (or the default when none is stored).
func NewStore(settings Settings, bus *event.Bus) *Store {
	s := &Store{
		settings: settings,
		bus:      bus,
		marks:    make(map[int]struct{}),
		color:    highlight.DefaultBookmark,
	}
	if settings != nil {
		stored, err := settings.LoadBookmarkColor()
		if err != nil {
			log.Printf("bookmark: loading marker color: %v", err)
		} else if stored != "" {
			if c, err := highlight.ParseColor(stored); err == nil {
				s.color = c
			} else {
				log.Printf("bookmark: ignoring stored marker color: %v", err)
			}
		}
	}
	return s
}

// SetCurrentFile rebinds the store to path, loading its persisted set, or
// clears to an empty set when path is empty. Subscribers are always
// notified, even when the new set is empty, so stale markers disappear.
func (s *Store) SetCurrentFile(path string) {
	s.path = path
	s.marks = make(map[int]struct{})
	if path != "" && s.settings != nil {
		lines, err := s.settings.LoadBookmarks(path)
		if err != nil {
			log.Printf("bookmark: loading bookmarks for %s: %v", path, err)
		}
		for _, n := range lines {
			s.marks[n] = struct{}{}
		}
	}
	s.notify()
}

// CurrentFile returns the path the store is bound to, or "".
func (s *Store) CurrentFile() string {
	return s.path
}

// Toggle flips line's membership in the current file's set.
func (s *Store) Toggle(line int) {
	if s.path == "" {
		return
	}
	if _, ok := s.marks[line]; ok {
		delete(s.marks, line)
	} else {
		s.marks[line] = struct{}{}
	}
	s.persist()
	s.notify()
}

// Add bookmarks line. Already-present lines cause no write and no
// notification.
func (s *Store) Add(line int) {
	if s.path == "" {
		return
	}
	if _, ok := s.marks[line]; ok {
		return
	}
	s.marks[line] = struct{}{}
	s.persist()
	s.notify()
}

// Remove drops line's bookmark. Absent lines cause no write and no
// notification.
func (s *Store) Remove(line int) {
	if s.path == "" {
		return
	}
	if _, ok := s.marks[line]; !ok {
		return
	}
	delete(s.marks, line)
	s.persist()
	s.notify()
}

// IsBookmarked reports whether line is bookmarked.
func (s *Store) IsBookmarked(line int) bool {
	_, ok := s.marks[line]
	return ok
}

// All returns a copy of the bookmarked line set.
func (s *Store) All() map[int]struct{} {
	out := make(map[int]struct{}, len(s.marks))
	for n := range s.marks {
		out[n] = struct{}{}
	}
	return out
}

// ClearForCurrentFile empties the set, persisting and notifying only when
// it was non-empty.
func (s *Store) ClearForCurrentFile() {
	if len(s.marks) == 0 {
		return
	}
	s.marks = make(map[int]struct{})
	s.persist()
	s.notify()
}

// Color returns the process-wide bookmark marker color.
func (s *Store) Color() highlight.Color {
	return s.color
}

// SetColor changes the marker color. The color has its own notification
// channel so surfaces that only paint markers need not re-scan membership.
func (s *Store) SetColor(c highlight.Color) {
	if c == s.color {
		return
	}
	s.color = c
	if s.settings != nil {
		if err := s.settings.SaveBookmarkColor(c.Hex()); err != nil {
			log.Printf("bookmark: saving marker color: %v", err)
		}
	}
	if s.bus != nil {
		s.bus.Publish(event.Event{Type: event.BookmarkColorChanged, Payload: c})
	}
}

func (s *Store) persist() {
	if s.settings == nil || s.path == "" {
		return
	}
	lines := make([]int, 0, len(s.marks))
	for n := range s.marks {
		lines = append(lines, n)
	}
	sort.Ints(lines)
	if err := s.settings.SaveBookmarks(s.path, lines); err != nil {
		log.Printf("bookmark: saving bookmarks for %s: %v", s.path, err)
	}
}

func (s *Store) notify() {
	if s.bus != nil {
		s.bus.Publish(event.Event{Type: event.BookmarksChanged, Payload: s.All()})
	}
}
