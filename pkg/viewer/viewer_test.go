package viewer

import (
	"fmt"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/canejune/fast-file-viewer/pkg/bookmark"
	"github.com/canejune/fast-file-viewer/pkg/document"
	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/filter"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
	"github.com/canejune/fast-file-viewer/pkg/testutil"
	"github.com/canejune/fast-file-viewer/pkg/timestamp"
)

type fixture struct {
	viewer    *Viewer
	bus       *event.Bus
	patterns  *highlight.PatternStore
	bookmarks *bookmark.Store
	filters   *filter.Set
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	bus := event.NewBus()
	settings := testutil.NewMockSettings()
	patterns := highlight.NewPatternStore(settings, bus)
	bookmarks := bookmark.NewStore(settings, bus)
	filters := filter.NewSet(bus)
	v := New(screen, patterns, bookmarks, filters, timestamp.NewParser(), bus)
	return &fixture{viewer: v, bus: bus, patterns: patterns, bookmarks: bookmarks, filters: filters}
}

func (f *fixture) loadLines(lines ...string) {
	doc := &document.Document{Path: "/test.log", Lines: lines}
	f.bookmarks.SetCurrentFile(doc.Path)
	f.bus.Publish(event.Event{Type: event.ContentReady, Payload: doc})
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		lines int
		want  int
	}{
		{lines: 0, want: 3},
		{lines: 9, want: 3},
		{lines: 10, want: 4},
		{lines: 999, want: 5},
		{lines: 1000, want: 6},
	}
	for _, tt := range tests {
		if got := gutterWidth(tt.lines); got != tt.want {
			t.Errorf("gutterWidth(%d) = %d, want %d", tt.lines, got, tt.want)
		}
	}
}

func TestBucketRange_CoversEveryLineExactlyOnce(t *testing.T) {
	cases := []struct{ rows, lines int }{
		{rows: 10, lines: 100},
		{rows: 23, lines: 7},    // fewer lines than rows
		{rows: 23, lines: 5000}, // many lines per row
		{rows: 1, lines: 3},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%dx%d", c.rows, c.lines), func(t *testing.T) {
			next := 0
			for row := 0; row < c.rows; row++ {
				start, end := bucketRange(row, c.rows, c.lines)
				if start != next {
					t.Fatalf("row %d starts at %d, expected %d", row, start, next)
				}
				if end < start {
					t.Fatalf("row %d: end %d before start %d", row, end, start)
				}
				next = end
			}
			if next != c.lines {
				t.Fatalf("buckets cover %d lines, expected %d", next, c.lines)
			}
		})
	}

	if s, e := bucketRange(0, 0, 10); s != 0 || e != 0 {
		t.Error("zero rows should produce an empty bucket")
	}
	if s, e := bucketRange(5, 3, 10); s != 0 || e != 0 {
		t.Error("out-of-range row should produce an empty bucket")
	}
}

func TestMinimapWidth(t *testing.T) {
	if minimapWidth(59) != 0 {
		t.Error("narrow screens should drop the minimap")
	}
	if minimapWidth(120) == 0 {
		t.Error("wide screens should keep the minimap")
	}
}

func TestViewer_ContentReadyReplacesDocument(t *testing.T) {
	f := newFixture(t)
	f.loadLines("a", "b", "c")

	if f.viewer.doc == nil || f.viewer.doc.LineCount() != 3 {
		t.Fatalf("document not installed: %+v", f.viewer.doc)
	}
	if len(f.viewer.visible) != 3 {
		t.Errorf("expected 3 visible lines, got %d", len(f.viewer.visible))
	}

	f.loadLines("only one")
	if f.viewer.doc.LineCount() != 1 || f.viewer.cursor != 0 {
		t.Error("new document did not replace the old snapshot wholesale")
	}
}

func TestViewer_FiltersHideLines(t *testing.T) {
	f := newFixture(t)
	f.loadLines("keep", "DEBUG drop", "keep too")

	if err := f.filters.Add("DEBUG"); err != nil {
		t.Fatalf("add filter: %v", err)
	}
	if len(f.viewer.visible) != 2 {
		t.Fatalf("expected 2 visible lines, got %d", len(f.viewer.visible))
	}
	if f.viewer.visible[0] != 0 || f.viewer.visible[1] != 2 {
		t.Errorf("wrong visible indices: %v", f.viewer.visible)
	}

	f.filters.Clear()
	if len(f.viewer.visible) != 3 {
		t.Error("clearing filters did not restore hidden lines")
	}
}

func TestViewer_CursorNavigationClamps(t *testing.T) {
	f := newFixture(t)
	f.loadLines("a", "b", "c")

	f.viewer.handleKey(key('k')) // already at the top
	if f.viewer.cursor != 0 {
		t.Error("cursor moved above the first line")
	}
	f.viewer.handleKey(key('G'))
	if f.viewer.cursor != 2 {
		t.Errorf("G did not reach the last line: %d", f.viewer.cursor)
	}
	f.viewer.handleKey(key('j'))
	if f.viewer.cursor != 2 {
		t.Error("cursor moved past the last line")
	}
	f.viewer.handleKey(key('g'))
	if f.viewer.cursor != 0 {
		t.Error("g did not return to the first line")
	}
}

func TestViewer_BookmarkToggleOnCursorLine(t *testing.T) {
	f := newFixture(t)
	f.loadLines("a", "b", "c")

	f.viewer.handleKey(key('j'))
	f.viewer.handleKey(key('b'))
	if !f.bookmarks.IsBookmarked(1) {
		t.Fatal("b did not bookmark the cursor line")
	}
	f.viewer.handleKey(key('b'))
	if f.bookmarks.IsBookmarked(1) {
		t.Error("second b did not clear the bookmark")
	}
}

func TestViewer_ResultsOverlay(t *testing.T) {
	f := newFixture(t)
	white, _ := highlight.ParseColor("#ffffff")
	red, _ := highlight.ParseColor("#ff0000")
	if _, err := f.patterns.Add("ERR", white, red, true); err != nil {
		t.Fatalf("add pattern: %v", err)
	}
	f.loadLines("fine", "an ERR line", "fine again")

	f.viewer.handleKey(key('r'))
	if !f.viewer.showResults {
		t.Fatal("r did not open the results overlay")
	}
	if len(f.viewer.results) != 1 || f.viewer.results[0].Line != 1 {
		t.Fatalf("unexpected results: %+v", f.viewer.results)
	}

	f.viewer.handleKey(key('r'))
	if f.viewer.showResults {
		t.Error("r did not close the results overlay")
	}
}

func TestViewer_ViewportDocRange(t *testing.T) {
	f := newFixture(t)
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i)
	}
	f.loadLines(lines...)

	rows := f.viewer.textRows()
	start, end := f.viewer.viewportDocRange(rows)
	if start != 0 || end != rows {
		t.Errorf("initial viewport = [%d,%d), expected [0,%d)", start, end, rows)
	}

	f.viewer.handleKey(key('G'))
	start, end = f.viewer.viewportDocRange(rows)
	if end != 100 {
		t.Errorf("viewport after G ends at %d, expected 100", end)
	}
	if start != 100-rows {
		t.Errorf("viewport after G starts at %d, expected %d", start, 100-rows)
	}
}

func TestViewer_RedrawOnStoreChanges(t *testing.T) {
	// repainting after every store change must not panic even with an
	// empty document
	f := newFixture(t)
	white, _ := highlight.ParseColor("#ffffff")
	red, _ := highlight.ParseColor("#ff0000")

	if _, err := f.patterns.Add("x", white, red, true); err != nil {
		t.Fatalf("add: %v", err)
	}
	f.loadLines("x marks the spot", "nothing here")
	f.bookmarks.Toggle(1)
	f.bookmarks.SetColor(red)
	f.viewer.handleKey(key('r'))
	f.viewer.handleKey(key('r'))
}
