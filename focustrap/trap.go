// Package focustrap constrains keyboard focus to a region while a
// modal surface is active and restores focus on release. The engine
// never owns real elements; callers supply opaque focusable handles
// through the Region interface.
package focustrap

import "errors"

// NodeID is an opaque handle to a caller-owned focusable element.
type NodeID string

// None is the absence of a focus target.
const None NodeID = ""

// Region is the caller-supplied view of a trappable area.
type Region interface {
	// Focusables returns the region's focusable handles in tab order.
	Focusables() []NodeID
	// Focus moves real focus to id. It reports false when the handle
	// is detached or not focusable.
	Focus(id NodeID) bool
	// Focused returns the handle that currently holds focus, which
	// may be outside the region.
	Focused() NodeID
}

// ErrNilRegion is reported when a trap is constructed without a region.
var ErrNilRegion = errors.New("focustrap: region is required")

// Config configures a Trap.
type Config struct {
	Region Region
	// InitialFocus receives focus on activation. Zero means the first
	// focusable in the region.
	InitialFocus NodeID
	// Trigger is the element that opened the region. It is the second
	// restoration fallback after the previously focused element.
	Trigger NodeID
	// Container is the region's own container element, the last
	// restoration fallback before giving up.
	Container NodeID
	// OnActivate and OnDeactivate signal the scroll-lock boundary to
	// the caller; the trap performs no scrolling itself.
	OnActivate   func()
	OnDeactivate func()
}

// Trap cycles focus within a region while active and restores focus to
// the previously focused element on deactivation.
type Trap struct {
	cfg      Config
	active   bool
	previous NodeID
}

// New creates an inactive trap.
func New(cfg Config) (*Trap, error) {
	if cfg.Region == nil {
		return nil, ErrNilRegion
	}
	return &Trap{cfg: cfg}, nil
}

// Active reports whether the trap currently owns focus.
func (t *Trap) Active() bool {
	return t != nil && t.active
}

// Previous returns the handle captured at the last activation.
func (t *Trap) Previous() NodeID {
	if t == nil {
		return None
	}
	return t.previous
}

// Activate captures the currently focused handle and moves focus to
// the region's initial target. Activating an active trap is a no-op.
func (t *Trap) Activate() {
	if t == nil || t.active {
		return
	}
	t.previous = t.cfg.Region.Focused()
	t.active = true
	target := t.cfg.InitialFocus
	if target == None || !t.contains(target) {
		target = t.firstFocusable()
	}
	if target != None {
		t.cfg.Region.Focus(target)
	} else if t.cfg.Container != None {
		// Empty region: park focus on the container so focus never
		// escapes while the trap is active.
		t.cfg.Region.Focus(t.cfg.Container)
	}
	if t.cfg.OnActivate != nil {
		t.cfg.OnActivate()
	}
}

// Deactivate releases the trap and restores focus. The fallback order
// is: previously focused handle, the trigger, the region container,
// then no-op.
func (t *Trap) Deactivate() {
	if t == nil || !t.active {
		return
	}
	t.active = false
	for _, target := range []NodeID{t.previous, t.cfg.Trigger, t.cfg.Container} {
		if target == None {
			continue
		}
		if t.cfg.Region.Focus(target) {
			break
		}
	}
	t.previous = None
	if t.cfg.OnDeactivate != nil {
		t.cfg.OnDeactivate()
	}
}

// HandleTab cycles focus within the region, wrapping at both ends.
// It reports whether the event was consumed; an inactive trap never
// consumes events.
func (t *Trap) HandleTab(shift bool) bool {
	if t == nil || !t.active {
		return false
	}
	focusables := t.cfg.Region.Focusables()
	if len(focusables) == 0 {
		return true
	}
	current := indexOf(focusables, t.cfg.Region.Focused())
	var next int
	if shift {
		if current <= 0 {
			next = len(focusables) - 1
		} else {
			next = current - 1
		}
	} else {
		if current == len(focusables)-1 || current == -1 {
			next = 0
		} else {
			next = current + 1
		}
	}
	t.cfg.Region.Focus(focusables[next])
	return true
}

// HandleFocusChange corrects focus that escaped the region while the
// trap is active. Call it on every focus event; it reports whether a
// correction was applied.
func (t *Trap) HandleFocusChange() bool {
	if t == nil || !t.active {
		return false
	}
	focused := t.cfg.Region.Focused()
	if focused != None && t.contains(focused) {
		return false
	}
	if focused == t.cfg.Container && t.cfg.Container != None {
		return false
	}
	target := t.firstFocusable()
	if target == None {
		target = t.cfg.Container
	}
	if target == None {
		return false
	}
	return t.cfg.Region.Focus(target)
}

func (t *Trap) firstFocusable() NodeID {
	focusables := t.cfg.Region.Focusables()
	if len(focusables) == 0 {
		return None
	}
	return focusables[0]
}

func (t *Trap) contains(id NodeID) bool {
	for _, f := range t.cfg.Region.Focusables() {
		if f == id {
			return true
		}
	}
	return false
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, f := range ids {
		if f == id {
			return i
		}
	}
	return -1
}
