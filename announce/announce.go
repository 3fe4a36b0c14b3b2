// Package announce is the engine's side channel for screen-reader
// text. Machines call Announce; an external subscriber registry owns
// delivery, keeping announcement transport outside the engine.
package announce

import "sync"

// Priority orders announcement delivery urgency.
type Priority int

const (
	// Polite announcements wait for the reader to go idle.
	Polite Priority = iota
	// Assertive announcements interrupt the current utterance.
	Assertive
)

// String returns a stable name for the priority.
func (p Priority) String() string {
	if p == Assertive {
		return "assertive"
	}
	return "polite"
}

// Announcement is one queued screen-reader message.
type Announcement struct {
	Text     string
	Priority Priority
}

// Announcer receives announcement requests from widget machines.
type Announcer interface {
	Announce(text string, priority Priority)
}

// AnnouncerFunc adapts a function into an Announcer.
type AnnouncerFunc func(text string, priority Priority)

// Announce calls the wrapped function.
func (f AnnouncerFunc) Announce(text string, priority Priority) {
	if f == nil {
		return
	}
	f(text, priority)
}

// Discard drops all announcements.
var Discard Announcer = AnnouncerFunc(func(string, Priority) {})

// Registry fans announcements out to subscribers. It is safe for
// concurrent use and holds no announcement history.
type Registry struct {
	mu   sync.Mutex
	subs map[int]func(Announcement)
	next int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Announce delivers the message to every subscriber. Ordering between
// sinks is unspecified.
func (r *Registry) Announce(text string, priority Priority) {
	if r == nil || text == "" {
		return
	}
	r.mu.Lock()
	subs := make([]func(Announcement), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()
	msg := Announcement{Text: text, Priority: priority}
	for _, fn := range subs {
		fn(msg)
	}
}

// Subscribe registers a delivery sink and returns its unsubscribe.
func (r *Registry) Subscribe(fn func(Announcement)) func() {
	if r == nil || fn == nil {
		return func() {}
	}
	r.mu.Lock()
	if r.subs == nil {
		r.subs = make(map[int]func(Announcement))
	}
	id := r.next
	r.next++
	r.subs[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.subs, id)
			r.mu.Unlock()
		})
	}
}
