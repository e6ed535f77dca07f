// Package config persists user settings: highlight patterns, per-file
// bookmarks, the bookmark color, recent files, and viewer preferences.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/canejune/fast-file-viewer/pkg/highlight"
)

const maxRecentFiles = 10

// Settings is the persisted application state.
type Settings struct {
	Patterns      []highlight.PatternConfig `yaml:"patterns"`
	Bookmarks     map[string][]int          `yaml:"bookmarks"`
	BookmarkColor string                    `yaml:"bookmark_color"`
	RecentFiles   []string                  `yaml:"recent_files"`
	Editor        EditorSettings            `yaml:"editor"`
	Timestamp     TimestampRules            `yaml:"timestamp"`
}

// EditorSettings carries the font preference fields. A terminal renders
// with the terminal's own font, so the viewer stores these without applying
// them; desktop builds read them.
type EditorSettings struct {
	FontFamily string `yaml:"font_family"`
	FontSize   int    `yaml:"font_size"`
}

// TimestampRules configures the optional per-line timestamp display.
type TimestampRules struct {
	Regex        string `yaml:"regex"`
	ParseLayout  string `yaml:"parse_layout"`
	OutputLayout string `yaml:"output_layout"`
}

// DefaultSettings returns the settings used when no file exists yet.
func DefaultSettings() Settings {
	return Settings{
		Bookmarks:     map[string][]int{},
		BookmarkColor: highlight.DefaultBookmark.Hex(),
		Editor: EditorSettings{
			FontFamily: "Courier New",
			FontSize:   10,
		},
	}
}

// PersistenceError reports a failed settings read or write. The in-memory
// operation that triggered it has already taken effect; callers log it and
// carry on, trading durability for availability.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("settings %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FileStore persists settings to a single YAML file. The file is read once
// at Open and rewritten whole after every change; last write wins.
// Not safe for concurrent use.
type FileStore struct {
	path     string
	settings Settings
}

// Open loads the settings file at path, falling back to defaults when the
// file is missing or unreadable.
func Open(path string) *FileStore {
	fs := &FileStore{path: path, settings: DefaultSettings()}
	// #nosec G304 - the path comes from a flag or the standard config dir
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("config: reading %s: %v", path, err)
		}
		return fs
	}
	if err := yaml.Unmarshal(data, &fs.settings); err != nil {
		log.Printf("config: parsing %s: %v", path, err)
		fs.settings = DefaultSettings()
	}
	if fs.settings.Bookmarks == nil {
		fs.settings.Bookmarks = map[string][]int{}
	}
	return fs
}

// DefaultPath returns the standard settings location: $FFV_CONFIG if set,
// then $XDG_CONFIG_HOME/fast-file-viewer/settings.yaml, then the same path
// under ~/.config.
func DefaultPath() string {
	if path := os.Getenv("FFV_CONFIG"); path != "" {
		return path
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fast-file-viewer", "settings.yaml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "fast-file-viewer", "settings.yaml")
	}
	return ""
}

// Path returns the file the store reads and writes.
func (f *FileStore) Path() string {
	return f.path
}

// LoadPatterns implements highlight.Settings.
func (f *FileStore) LoadPatterns() ([]highlight.PatternConfig, error) {
	out := make([]highlight.PatternConfig, len(f.settings.Patterns))
	copy(out, f.settings.Patterns)
	return out, nil
}

// SavePatterns implements highlight.Settings.
func (f *FileStore) SavePatterns(patterns []highlight.PatternConfig) error {
	f.settings.Patterns = append([]highlight.PatternConfig(nil), patterns...)
	return f.write("save patterns")
}

// LoadBookmarks implements bookmark.Settings.
func (f *FileStore) LoadBookmarks(path string) ([]int, error) {
	return append([]int(nil), f.settings.Bookmarks[path]...), nil
}

// SaveBookmarks implements bookmark.Settings. An empty set removes the
// file's entry entirely.
func (f *FileStore) SaveBookmarks(path string, lines []int) error {
	if len(lines) == 0 {
		delete(f.settings.Bookmarks, path)
	} else {
		f.settings.Bookmarks[path] = append([]int(nil), lines...)
	}
	return f.write("save bookmarks")
}

// LoadBookmarkColor implements bookmark.Settings.
func (f *FileStore) LoadBookmarkColor() (string, error) {
	return f.settings.BookmarkColor, nil
}

// SaveBookmarkColor implements bookmark.Settings.
func (f *FileStore) SaveBookmarkColor(hex string) error {
	f.settings.BookmarkColor = hex
	return f.write("save bookmark color")
}

// RecentFiles returns the open history, most recent first.
func (f *FileStore) RecentFiles() []string {
	return append([]string(nil), f.settings.RecentFiles...)
}

// AddRecentFile moves path to the front of the history, trimming it to the
// retained maximum.
func (f *FileStore) AddRecentFile(path string) error {
	recent := []string{path}
	for _, p := range f.settings.RecentFiles {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	f.settings.RecentFiles = recent
	return f.write("save recent files")
}

// ClearRecentFiles empties the open history.
func (f *FileStore) ClearRecentFiles() error {
	f.settings.RecentFiles = nil
	return f.write("clear recent files")
}

// Editor returns the stored editor preferences.
func (f *FileStore) Editor() EditorSettings {
	return f.settings.Editor
}

// SetEditor stores new editor preferences.
func (f *FileStore) SetEditor(e EditorSettings) error {
	f.settings.Editor = e
	return f.write("save editor settings")
}

// TimestampRules returns the stored timestamp parsing rules.
func (f *FileStore) TimestampRules() TimestampRules {
	return f.settings.Timestamp
}

// SetTimestampRules stores new timestamp parsing rules.
func (f *FileStore) SetTimestampRules(r TimestampRules) error {
	f.settings.Timestamp = r
	return f.write("save timestamp rules")
}

func (f *FileStore) write(op string) error {
	data, err := yaml.Marshal(&f.settings)
	if err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &PersistenceError{Op: op, Err: err}
		}
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
