package roving

import (
	"strings"
	"time"

	"github.com/quietfox/headless/store"
)

// DefaultTypeaheadTimeout is the idle window before the buffer resets.
const DefaultTypeaheadTimeout = 500 * time.Millisecond

// Typeahead accumulates printable characters within an idle window and
// resolves them to the next item whose MatchText has the buffer as a
// case-insensitive prefix.
type Typeahead struct {
	buffer  strings.Builder
	last    time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewTypeahead creates a typeahead buffer. A non-positive timeout uses
// DefaultTypeaheadTimeout; a nil clock uses time.Now.
func NewTypeahead(timeout time.Duration, clock func() time.Time) *Typeahead {
	if timeout <= 0 {
		timeout = DefaultTypeaheadTimeout
	}
	if clock == nil {
		clock = time.Now
	}
	return &Typeahead{timeout: timeout, now: clock}
}

// Append feeds one character and returns the resolved active index.
// The search starts after the current position and wraps, skipping
// disabled items. When nothing matches, current is returned unchanged.
func (t *Typeahead) Append(r rune, items []store.Item, current int) int {
	if t == nil {
		return current
	}
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) > t.timeout {
		t.buffer.Reset()
	}
	t.last = now
	t.buffer.WriteRune(r)
	prefix := strings.ToLower(t.buffer.String())

	if len(items) == 0 {
		return current
	}
	if current < 0 || current >= len(items) {
		current = None
	}
	// A single-character buffer searches strictly after the current
	// item so repeated presses cycle through same-prefix items. A
	// longer buffer re-examines the current item first.
	first := current + 1
	if len(prefix) > 1 && current != None {
		first = current
	}
	if current == None {
		first = 0
	}
	for step := 0; step < len(items); step++ {
		index := (first + step) % len(items)
		item := items[index]
		if item.Disabled {
			continue
		}
		if strings.HasPrefix(strings.ToLower(item.MatchText), prefix) {
			return index
		}
	}
	return current
}

// Clear empties the buffer. Any non-character action clears typeahead
// so directional navigation never resumes a stale prefix.
func (t *Typeahead) Clear() {
	if t == nil {
		return
	}
	t.buffer.Reset()
	t.last = time.Time{}
}

// Pending reports whether the buffer currently holds characters.
func (t *Typeahead) Pending() bool {
	return t != nil && t.buffer.Len() > 0
}
