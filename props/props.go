// Package props defines the declarative contract between widget
// machines and a rendering layer: per-role attribute/handler sets
// computed from state, plus the input events handlers consume.
package props

import "strconv"

// Handler reacts to an input event by dispatching actions back into
// the owning machine. Handlers receive the event; the machine passes
// current state explicitly, so handlers never capture stale snapshots.
type Handler func(Event)

// Props is a ready-to-bind attribute and handler set for one role's
// element. Attribute values are fully determined by widget state;
// computing Props performs no side effects.
type Props struct {
	Attrs    map[string]string
	Handlers map[string]Handler
}

// Attr returns the named attribute, or "" when absent.
func (p Props) Attr(name string) string {
	return p.Attrs[name]
}

// Has reports whether the named attribute is present.
func (p Props) Has(name string) bool {
	_, ok := p.Attrs[name]
	return ok
}

// Handler event names used throughout the engine.
const (
	OnKeyDown = "keydown"
	OnClick   = "click"
	OnFocus   = "focus"
	OnBlur    = "blur"
	OnInput   = "input"
)

// Bool formats a boolean attribute value.
func Bool(v bool) string {
	return strconv.FormatBool(v)
}

// TabIndex returns the roving tabindex value: "0" for the single
// active tab stop, "-1" for everything else.
func TabIndex(active bool) string {
	if active {
		return "0"
	}
	return "-1"
}
