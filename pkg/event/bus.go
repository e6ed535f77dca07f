// Package event carries change notifications between the stores and the
// rendering surfaces.
package event

// Type identifies one notification channel.
type Type int

const (
	// PatternsChanged signals that the highlight pattern sequence changed.
	// It carries no payload; subscribers re-query the pattern store.
	PatternsChanged Type = iota
	// BookmarksChanged carries the complete new bookmark set for the
	// current file as a map[int]struct{}.
	BookmarksChanged
	// BookmarkColorChanged carries the new process-wide bookmark color.
	BookmarkColorChanged
	// ContentReady carries the freshly loaded *document.Document snapshot.
	ContentReady
	// FiltersChanged signals that the line filter set changed.
	FiltersChanged
)

// Event is one notification. Payload holds the complete new state for
// channels that carry one; pure signals leave it nil and subscribers
// re-derive their state from the stores.
type Event struct {
	Type    Type
	Payload any
}

// Bus fans events out to subscribers in subscription order. Delivery is
// synchronous. The bus is not safe for concurrent use; subscribe and publish
// from the goroutine that owns the stores.
type Bus struct {
	subs map[Type][]func(Event)
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Type][]func(Event))}
}

// Subscribe registers fn for events of type t.
func (b *Bus) Subscribe(t Type, fn func(Event)) {
	b.subs[t] = append(b.subs[t], fn)
}

// Publish delivers ev to every subscriber of its type.
func (b *Bus) Publish(ev Event) {
	for _, fn := range b.subs[ev.Type] {
		fn(ev)
	}
}
