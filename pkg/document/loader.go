package document

import (
	"errors"
	"sync"
)

// ErrLoadInProgress is returned by Load while a previous load is running.
var ErrLoadInProgress = errors.New("document: load already in progress")

// Loader reads files on a background goroutine so large files do not block
// the interface, then hands the finished snapshot back on the caller's
// goroutine through the post function. The stores never observe a partially
// loaded document.
type Loader struct {
	post func(func())

	mu      sync.Mutex
	loading bool
}

// NewLoader creates a loader. post must schedule its argument onto the
// goroutine that owns the stores (the UI event loop).
func NewLoader(post func(func())) *Loader {
	return &Loader{post: post}
}

// Load reads path in the background and calls onReady with the snapshot, or
// with a nil document and the read error. Only one load runs at a time; a
// second call while one is in flight returns ErrLoadInProgress.
func (l *Loader) Load(path string, onReady func(*Document, error)) error {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return ErrLoadInProgress
	}
	l.loading = true
	l.mu.Unlock()

	go func() {
		doc, err := Read(path)
		l.post(func() {
			l.mu.Lock()
			l.loading = false
			l.mu.Unlock()
			onReady(doc, err)
		})
	}()
	return nil
}
