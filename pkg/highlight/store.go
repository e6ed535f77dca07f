package highlight

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/canejune/fast-file-viewer/pkg/event"
)

// Settings persists the pattern sequence between sessions.
type Settings interface {
	LoadPatterns() ([]PatternConfig, error)
	SavePatterns([]PatternConfig) error
}

// PatternStore owns the ordered pattern sequence. It persists the whole
// sequence after every mutation and publishes a PatternsChanged event.
// Persistence failures are logged and do not undo the in-memory change.
// Not safe for concurrent use; mutate only from the UI goroutine.
type PatternStore struct {
	settings Settings
	bus      *event.Bus
	patterns []Pattern
}

// NewPatternStore loads the persisted patterns from settings. Persisted
// entries that no longer compile are skipped with a warning rather than
// failing the whole load.
func NewPatternStore(settings Settings, bus *event.Bus) *PatternStore {
	s := &PatternStore{settings: settings, bus: bus}
	if settings == nil {
		return s
	}
	configs, err := settings.LoadPatterns()
	if err != nil {
		log.Printf("highlight: loading patterns: %v", err)
		return s
	}
	for _, pc := range configs {
		p, err := patternFromConfig(pc)
		if err != nil {
			log.Printf("highlight: skipping persisted pattern %q: %v", pc.Regex, err)
			continue
		}
		s.patterns = append(s.patterns, p)
	}
	return s
}

func patternFromConfig(pc PatternConfig) (Pattern, error) {
	re, err := regexp.Compile(pc.Regex)
	if err != nil {
		return Pattern{}, &InvalidPatternError{Pattern: pc.Regex, Err: err}
	}
	fg, err := ParseColor(pc.Foreground)
	if err != nil {
		fg = DefaultForeground
	}
	bg, err := ParseColor(pc.Background)
	if err != nil {
		bg = DefaultBackground
	}
	id := pc.ID
	if id == "" {
		id = newID()
	}
	return Pattern{
		ID:         id,
		Source:     pc.Regex,
		Foreground: fg,
		Background: bg,
		Active:     pc.Active,
		compiled:   re,
	}, nil
}

// Add compiles source and appends the pattern at the end of the sequence,
// the lowest precedence. It returns the new pattern's identifier. On a
// malformed regex the store is left unchanged.
func (s *PatternStore) Add(source string, fg, bg Color, active bool) (string, error) {
	re, err := regexp.Compile(source)
	if err != nil {
		return "", &InvalidPatternError{Pattern: source, Err: err}
	}
	p := Pattern{
		ID:         newID(),
		Source:     source,
		Foreground: fg,
		Background: bg,
		Active:     active,
		compiled:   re,
	}
	s.patterns = append(s.patterns, p)
	s.persist()
	s.notify()
	return p.ID, nil
}

// PatternUpdate names the fields Update should change; nil fields keep
// their current value.
type PatternUpdate struct {
	Source     *string
	Foreground *Color
	Background *Color
	Active     *bool
}

// Update modifies a pattern in place, preserving its precedence position.
// The source is recompiled only when it actually changed; a malformed new
// source leaves the pattern untouched.
func (s *PatternStore) Update(id string, upd PatternUpdate) error {
	i := s.index(id)
	if i < 0 {
		return &NotFoundError{ID: id}
	}
	p := s.patterns[i]
	if upd.Source != nil && *upd.Source != p.Source {
		re, err := regexp.Compile(*upd.Source)
		if err != nil {
			return &InvalidPatternError{Pattern: *upd.Source, Err: err}
		}
		p.Source = *upd.Source
		p.compiled = re
	}
	if upd.Foreground != nil {
		p.Foreground = *upd.Foreground
	}
	if upd.Background != nil {
		p.Background = *upd.Background
	}
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	s.patterns[i] = p
	s.persist()
	s.notify()
	return nil
}

// Remove deletes the pattern and reports whether anything was removed.
// Removing an unknown identifier is a no-op.
func (s *PatternStore) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	s.persist()
	s.notify()
	return true
}

// SetActive toggles a pattern without recompiling it. Setting the value it
// already has skips the persistence write and the notification. It reports
// whether the identifier was found.
func (s *PatternStore) SetActive(id string, active bool) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if s.patterns[i].Active == active {
		return true
	}
	s.patterns[i].Active = active
	s.persist()
	s.notify()
	return true
}

// List returns a snapshot of the pattern sequence in precedence order.
// Mutating the returned slice does not affect the store.
func (s *PatternStore) List() []Pattern {
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// ActiveMatchers returns the active patterns in precedence order in the
// form the resolver consumes.
func (s *PatternStore) ActiveMatchers() []Matcher {
	out := make([]Matcher, 0, len(s.patterns))
	for _, p := range s.patterns {
		if p.Active {
			out = append(out, Matcher{
				Regex:      p.compiled,
				Foreground: p.Foreground,
				Background: p.Background,
			})
		}
	}
	return out
}

// Len returns the number of stored patterns.
func (s *PatternStore) Len() int {
	return len(s.patterns)
}

func (s *PatternStore) persist() {
	if s.settings == nil {
		return
	}
	if err := s.settings.SavePatterns(s.configs()); err != nil {
		log.Printf("highlight: saving patterns: %v", err)
	}
}

func (s *PatternStore) notify() {
	if s.bus != nil {
		s.bus.Publish(event.Event{Type: event.PatternsChanged})
	}
}

func (s *PatternStore) configs() []PatternConfig {
	out := make([]PatternConfig, 0, len(s.patterns))
	for _, p := range s.patterns {
		out = append(out, PatternConfig{
			ID:         p.ID,
			Regex:      p.Source,
			Foreground: p.Foreground.Hex(),
			Background: p.Background.Hex(),
			Active:     p.Active,
		})
	}
	return out
}

func (s *PatternStore) index(id string) int {
	for i := range s.patterns {
		if s.patterns[i].ID == id {
			return i
		}
	}
	return -1
}

// newID returns an opaque stable pattern identifier.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("p%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
