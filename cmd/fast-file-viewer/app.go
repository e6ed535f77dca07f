package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/canejune/fast-file-viewer/pkg/bookmark"
	"github.com/canejune/fast-file-viewer/pkg/config"
	"github.com/canejune/fast-file-viewer/pkg/document"
	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/filter"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
	"github.com/canejune/fast-file-viewer/pkg/timestamp"
	"github.com/canejune/fast-file-viewer/pkg/viewer"
)

// Dependencies holds all the wired application components.
type Dependencies struct {
	Settings  *config.FileStore
	Bus       *event.Bus
	Patterns  *highlight.PatternStore
	Bookmarks *bookmark.Store
	Filters   *filter.Set
	Stamps    *timestamp.Parser
	Loader    *document.Loader
	Viewer    *viewer.Viewer

	screen tcell.Screen
}

// NewDependencies wires every component against the shared settings store
// and event bus. The screen is injected so tests can pass a simulation
// screen.
func NewDependencies(settingsPath string, screen tcell.Screen) (*Dependencies, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}

	deps := &Dependencies{
		Settings: config.Open(settingsPath),
		Bus:      event.NewBus(),
		screen:   screen,
	}
	deps.Patterns = highlight.NewPatternStore(deps.Settings, deps.Bus)
	deps.Bookmarks = bookmark.NewStore(deps.Settings, deps.Bus)
	deps.Filters = filter.NewSet(deps.Bus)
	deps.Stamps = timestamp.NewParser()
	if rules := deps.Settings.TimestampRules(); rules.Regex != "" {
		if err := deps.Stamps.SetRules(rules.Regex, rules.ParseLayout, rules.OutputLayout); err != nil {
			log.Printf("timestamp rules disabled: %v", err)
		}
	}
	deps.Viewer = viewer.New(screen, deps.Patterns, deps.Bookmarks, deps.Filters, deps.Stamps, deps.Bus)
	deps.Loader = document.NewLoader(deps.Viewer.Post)
	return deps, nil
}

// OpenFile starts a background load of path. When the snapshot is ready the
// bookmark scope switches to the file and the content-ready event fans out
// to the rendering surfaces.
func (d *Dependencies) OpenFile(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	d.Viewer.SetStatus(fmt.Sprintf("opening %s...", abs))
	err = d.Loader.Load(abs, func(doc *document.Document, err error) {
		if err != nil {
			d.Viewer.SetStatus(err.Error())
			return
		}
		if err := d.Settings.AddRecentFile(abs); err != nil {
			log.Printf("recent files: %v", err)
		}
		d.Bookmarks.SetCurrentFile(abs)
		d.Bus.Publish(event.Event{Type: event.ContentReady, Payload: doc})
	})
	if err != nil {
		d.Viewer.SetStatus(err.Error())
	}
}

// Close releases the terminal.
func (d *Dependencies) Close() {
	if d.screen != nil {
		d.screen.Fini()
	}
}
