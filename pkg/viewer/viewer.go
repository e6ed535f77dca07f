// Package viewer is the terminal UI: a text area with per-line highlights,
// a line-number gutter with bookmark markers, a minimap column, a status
// bar, and an on-demand aggregate results overlay.
package viewer

import (
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/canejune/fast-file-viewer/pkg/bookmark"
	"github.com/canejune/fast-file-viewer/pkg/document"
	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/filter"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
	"github.com/canejune/fast-file-viewer/pkg/timestamp"
)

// Viewer owns the screen and re-resolves highlights for the lines it paints
// on every repaint. It never caches resolved state between repaints; the
// stores are the single source of truth.
type Viewer struct {
	screen tcell.Screen

	patterns  *highlight.PatternStore
	bookmarks *bookmark.Store
	filters   *filter.Set
	stamps    *timestamp.Parser
	bus       *event.Bus

	doc     *document.Document
	visible []int // document indices of lines that pass the filters

	top    int // index into visible of the first painted row
	cursor int // index into visible of the selected row

	showResults bool
	results     []highlight.Row
	resultTop   int

	status string

	queue  chan func()
	events chan tcell.Event
	quit   chan struct{}
	done   bool
}

// New wires a viewer to the stores and subscribes it to every change
// channel it renders from.
func New(screen tcell.Screen, patterns *highlight.PatternStore, bookmarks *bookmark.Store, filters *filter.Set, stamps *timestamp.Parser, bus *event.Bus) *Viewer {
	v := &Viewer{
		screen:    screen,
		patterns:  patterns,
		bookmarks: bookmarks,
		filters:   filters,
		stamps:    stamps,
		bus:       bus,
		queue:     make(chan func(), 32),
		events:    make(chan tcell.Event),
		quit:      make(chan struct{}),
	}
	bus.Subscribe(event.PatternsChanged, func(event.Event) { v.redraw() })
	bus.Subscribe(event.BookmarksChanged, func(event.Event) { v.redraw() })
	bus.Subscribe(event.BookmarkColorChanged, func(event.Event) { v.redraw() })
	bus.Subscribe(event.FiltersChanged, func(event.Event) {
		v.rebuildVisible()
		v.redraw()
	})
	bus.Subscribe(event.ContentReady, func(ev event.Event) {
		if doc, ok := ev.Payload.(*document.Document); ok {
			v.setDocument(doc)
		}
	})
	screen.EnableMouse()
	return v
}

// Post schedules fn onto the UI goroutine. Safe to call from other
// goroutines; this is how the background loader hands results back.
func (v *Viewer) Post(fn func()) {
	select {
	case v.queue <- fn:
	case <-v.quit:
	}
}

// SetStatus replaces the status bar text until the next document load.
func (v *Viewer) SetStatus(msg string) {
	v.status = msg
	v.redraw()
}

// Run drives the event loop until the user quits.
func (v *Viewer) Run() {
	go v.screen.ChannelEvents(v.events, v.quit)
	v.redraw()
	for !v.done {
		select {
		case fn := <-v.queue:
			fn()
		case ev, ok := <-v.events:
			if !ok {
				return
			}
			v.handleEvent(ev)
		}
	}
}

// Stop ends the event loop.
func (v *Viewer) Stop() {
	if v.done {
		return
	}
	v.done = true
	close(v.quit)
}

func (v *Viewer) setDocument(doc *document.Document) {
	v.doc = doc
	v.top = 0
	v.cursor = 0
	v.showResults = false
	v.results = nil
	v.status = ""
	v.rebuildVisible()
	v.redraw()
}

func (v *Viewer) rebuildVisible() {
	v.visible = v.visible[:0]
	if v.doc == nil {
		return
	}
	for i, text := range v.doc.Lines {
		if v.filters != nil && v.filters.ShouldHide(text) {
			continue
		}
		v.visible = append(v.visible, i)
	}
	v.clamp()
}

// cursorLine returns the document line under the cursor.
func (v *Viewer) cursorLine() int {
	if v.cursor >= 0 && v.cursor < len(v.visible) {
		return v.visible[v.cursor]
	}
	return 0
}

func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
		v.clamp()
		v.redraw()
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	if v.showResults {
		switch {
		case ev.Key() == tcell.KeyEscape, keyRune(ev, 'r'), keyRune(ev, 'q'):
			v.showResults = false
			v.redraw()
		case ev.Key() == tcell.KeyUp, keyRune(ev, 'k'):
			v.scrollResults(-1)
		case ev.Key() == tcell.KeyDown, keyRune(ev, 'j'):
			v.scrollResults(1)
		case ev.Key() == tcell.KeyPgUp:
			v.scrollResults(-v.textRows())
		case ev.Key() == tcell.KeyPgDn:
			v.scrollResults(v.textRows())
		}
		return
	}

	switch {
	case ev.Key() == tcell.KeyCtrlQ, ev.Key() == tcell.KeyCtrlC, keyRune(ev, 'q'):
		v.Stop()
	case ev.Key() == tcell.KeyUp, keyRune(ev, 'k'):
		v.moveCursor(-1)
	case ev.Key() == tcell.KeyDown, keyRune(ev, 'j'):
		v.moveCursor(1)
	case ev.Key() == tcell.KeyPgUp:
		v.moveCursor(-v.textRows())
	case ev.Key() == tcell.KeyPgDn:
		v.moveCursor(v.textRows())
	case ev.Key() == tcell.KeyHome, keyRune(ev, 'g'):
		v.cursor = 0
		v.clamp()
		v.redraw()
	case ev.Key() == tcell.KeyEnd, keyRune(ev, 'G'):
		v.cursor = len(v.visible) - 1
		v.clamp()
		v.redraw()
	case keyRune(ev, 'b'):
		if v.doc != nil && len(v.visible) > 0 {
			v.bookmarks.Toggle(v.cursorLine())
		}
	case keyRune(ev, 'c'):
		v.bookmarks.ClearForCurrentFile()
	case keyRune(ev, 'r'):
		v.openResults()
	}
}

func keyRune(ev *tcell.EventKey, r rune) bool {
	return ev.Key() == tcell.KeyRune && ev.Rune() == r
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	if ev.Buttons()&tcell.Button1 == 0 || v.doc == nil || v.showResults {
		return
	}
	width, _ := v.screen.Size()
	mapW := minimapWidth(width)
	x, y := ev.Position()
	if mapW == 0 || x < width-mapW {
		return
	}
	rows := v.textRows()
	if rows <= 0 {
		return
	}
	start, _ := bucketRange(y, rows, v.doc.LineCount())
	v.scrollToDocLine(start)
}

// scrollToDocLine moves the cursor to the visible line nearest docLine.
func (v *Viewer) scrollToDocLine(docLine int) {
	if len(v.visible) == 0 {
		return
	}
	i := sort.SearchInts(v.visible, docLine)
	if i >= len(v.visible) {
		i = len(v.visible) - 1
	}
	v.cursor = i
	v.clamp()
	v.redraw()
}

func (v *Viewer) moveCursor(delta int) {
	v.cursor += delta
	v.clamp()
	v.redraw()
}

func (v *Viewer) scrollResults(delta int) {
	v.resultTop += delta
	max := len(v.results) - 1
	if v.resultTop > max {
		v.resultTop = max
	}
	if v.resultTop < 0 {
		v.resultTop = 0
	}
	v.redraw()
}

func (v *Viewer) openResults() {
	if v.doc == nil {
		return
	}
	v.results = highlight.Collect(v.doc.Lines, v.patterns, v.bookmarks)
	v.resultTop = 0
	v.showResults = true
	v.redraw()
}

// textRows returns the number of screen rows available to document lines.
func (v *Viewer) textRows() int {
	_, height := v.screen.Size()
	if height <= 1 {
		return 0
	}
	return height - 1
}

// clamp keeps the cursor inside the visible lines and the window around the
// cursor.
func (v *Viewer) clamp() {
	if len(v.visible) == 0 {
		v.top = 0
		v.cursor = 0
		return
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if v.cursor >= len(v.visible) {
		v.cursor = len(v.visible) - 1
	}
	rows := v.textRows()
	if rows <= 0 {
		return
	}
	if v.cursor < v.top {
		v.top = v.cursor
	}
	if v.cursor >= v.top+rows {
		v.top = v.cursor - rows + 1
	}
	if v.top < 0 {
		v.top = 0
	}
}
