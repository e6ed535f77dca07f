package bookmark

import (
	"errors"
	"testing"

	"github.com/canejune/fast-file-viewer/pkg/event"
	"github.com/canejune/fast-file-viewer/pkg/highlight"
	"github.com/canejune/fast-file-viewer/pkg/testutil"
)

type recorder struct {
	sets   []map[int]struct{}
	colors []highlight.Color
}

func newRecorder(bus *event.Bus) *recorder {
	r := &recorder{}
	bus.Subscribe(event.BookmarksChanged, func(ev event.Event) {
		set, _ := ev.Payload.(map[int]struct{})
		r.sets = append(r.sets, set)
	})
	bus.Subscribe(event.BookmarkColorChanged, func(ev event.Event) {
		c, _ := ev.Payload.(highlight.Color)
		r.colors = append(r.colors, c)
	})
	return r
}

func TestStore_ToggleIdempotence(t *testing.T) {
	store := NewStore(testutil.NewMockSettings(), nil)
	store.SetCurrentFile("/var/log/app.log")

	store.Toggle(5)
	if !store.IsBookmarked(5) {
		t.Fatal("toggle did not add the bookmark")
	}
	store.Toggle(5)
	if store.IsBookmarked(5) {
		t.Fatal("second toggle did not remove the bookmark")
	}
	if len(store.All()) != 0 {
		t.Errorf("expected empty set, got %d entries", len(store.All()))
	}
}

func TestStore_NoCurrentFileIsSilentNoOp(t *testing.T) {
	settings := testutil.NewMockSettings()
	bus := event.NewBus()
	rec := newRecorder(bus)
	store := NewStore(settings, bus)

	store.Toggle(1)
	store.Add(2)
	store.Remove(3)

	if store.IsBookmarked(1) || store.IsBookmarked(2) {
		t.Error("mutation took effect without a current file")
	}
	if settings.BookmarkSaves != 0 {
		t.Errorf("persisted without a current file: %d saves", settings.BookmarkSaves)
	}
	if len(rec.sets) != 0 {
		t.Errorf("notified without a current file: %d events", len(rec.sets))
	}
}

func TestStore_SetCurrentFileLoadsPersistedSet(t *testing.T) {
	settings := testutil.NewMockSettings()
	settings.Bookmarks["/a.log"] = []int{1, 3}
	store := NewStore(settings, nil)

	store.SetCurrentFile("/a.log")
	if !store.IsBookmarked(1) || !store.IsBookmarked(3) || store.IsBookmarked(2) {
		t.Errorf("loaded set wrong: %v", store.All())
	}

	// switching files discards the old set
	store.SetCurrentFile("/b.log")
	if len(store.All()) != 0 {
		t.Error("previous file's bookmarks leaked into the new scope")
	}
}

func TestStore_SetCurrentFileAlwaysNotifies(t *testing.T) {
	settings := testutil.NewMockSettings()
	bus := event.NewBus()
	rec := newRecorder(bus)
	store := NewStore(settings, bus)

	store.SetCurrentFile("/a.log")
	store.Add(7)
	store.SetCurrentFile("")

	if len(rec.sets) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(rec.sets))
	}
	last := rec.sets[len(rec.sets)-1]
	if len(last) != 0 {
		t.Errorf("clearing the current file should notify with an empty set, got %v", last)
	}
	if store.CurrentFile() != "" {
		t.Error("current file not cleared")
	}
}

func TestStore_AddRemovePersistOnlyOnMembershipChange(t *testing.T) {
	settings := testutil.NewMockSettings()
	store := NewStore(settings, nil)
	store.SetCurrentFile("/a.log")

	store.Add(4)
	saves := settings.BookmarkSaves
	store.Add(4) // already present
	if settings.BookmarkSaves != saves {
		t.Error("re-adding an existing bookmark persisted")
	}
	store.Remove(9) // absent
	if settings.BookmarkSaves != saves {
		t.Error("removing an absent bookmark persisted")
	}
	store.Remove(4)
	if settings.BookmarkSaves != saves+1 {
		t.Error("actual removal did not persist")
	}
	if lines := settings.Bookmarks["/a.log"]; len(lines) != 0 {
		t.Errorf("persisted set not emptied: %v", lines)
	}
}

func TestStore_PersistedSetIsSorted(t *testing.T) {
	settings := testutil.NewMockSettings()
	store := NewStore(settings, nil)
	store.SetCurrentFile("/a.log")

	for _, n := range []int{9, 2, 5} {
		store.Add(n)
	}
	lines := settings.Bookmarks["/a.log"]
	want := []int{2, 5, 9}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, lines)
		}
	}
}

func TestStore_ClearForCurrentFile(t *testing.T) {
	settings := testutil.NewMockSettings()
	bus := event.NewBus()
	rec := newRecorder(bus)
	store := NewStore(settings, bus)
	store.SetCurrentFile("/a.log")
	store.Add(1)
	store.Add(2)

	events := len(rec.sets)
	store.ClearForCurrentFile()
	if len(store.All()) != 0 {
		t.Fatal("clear left bookmarks behind")
	}
	if len(rec.sets) != events+1 {
		t.Error("clear of a non-empty set did not notify")
	}

	// clearing an already-empty set stays quiet
	saves := settings.BookmarkSaves
	store.ClearForCurrentFile()
	if settings.BookmarkSaves != saves || len(rec.sets) != events+1 {
		t.Error("clearing an empty set persisted or notified")
	}
}

func TestStore_ColorChannelIsIndependent(t *testing.T) {
	settings := testutil.NewMockSettings()
	bus := event.NewBus()
	rec := newRecorder(bus)
	store := NewStore(settings, bus)
	store.SetCurrentFile("/a.log")

	setEvents := len(rec.sets)
	green, err := highlight.ParseColor("#00cc66")
	if err != nil {
		t.Fatalf("parse color: %v", err)
	}
	store.SetColor(green)

	if len(rec.colors) != 1 || rec.colors[0] != green {
		t.Fatalf("expected one color notification, got %v", rec.colors)
	}
	if len(rec.sets) != setEvents {
		t.Error("color change leaked onto the bookmark-set channel")
	}
	if settings.BookmarkColor != "#00cc66" {
		t.Errorf("color not persisted canonically: %q", settings.BookmarkColor)
	}

	// setting the same color again is a no-op
	store.SetColor(green)
	if len(rec.colors) != 1 || settings.ColorSaves != 1 {
		t.Error("redundant color set persisted or notified")
	}
}

func TestNewStore_ColorFromSettings(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{name: "stored color", stored: "#112233", want: "#112233"},
		{name: "empty falls back to default", stored: "", want: highlight.DefaultBookmark.Hex()},
		{name: "malformed falls back to default", stored: "chartreuse", want: highlight.DefaultBookmark.Hex()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := testutil.NewMockSettings()
			settings.BookmarkColor = tt.stored
			store := NewStore(settings, nil)
			if store.Color().Hex() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, store.Color().Hex())
			}
		})
	}
}

func TestStore_PersistenceFailureKeepsInMemoryState(t *testing.T) {
	settings := testutil.NewMockSettings()
	settings.SaveErr = errors.New("read-only filesystem")
	store := NewStore(settings, nil)
	store.SetCurrentFile("/a.log")

	store.Add(1)
	if !store.IsBookmarked(1) {
		t.Error("bookmark lost when persistence failed")
	}
}
