// Package driver provides scripted interaction with widget machines
// for automated tests. It exposes semantic operations over prop-getter
// output rather than raw events: a script clicks and types against
// named elements, and the machines react exactly as they would under a
// real renderer.
package driver

import (
	"errors"
	"sort"
	"sync"

	"github.com/quietfox/headless/props"
)

// Common errors returned by Driver methods.
var (
	ErrElementNotFound = errors.New("driver: element not found")
	ErrElementDisabled = errors.New("driver: element is disabled")
	ErrNoHandler       = errors.New("driver: element has no handler for event")
)

// Getter supplies the current props for a named element. It is called
// per operation so the driver always sees fresh attributes.
type Getter func() props.Props

// Driver binds element names to prop getters and drives their
// handlers.
type Driver struct {
	mu       sync.Mutex
	elements map[string]Getter
}

// New creates an empty driver.
func New() *Driver {
	return &Driver{elements: make(map[string]Getter)}
}

// Register binds a name to an element's prop getter. Re-registering a
// name replaces the previous binding.
func (d *Driver) Register(name string, get Getter) {
	if d == nil || get == nil {
		return
	}
	d.mu.Lock()
	d.elements[name] = get
	d.mu.Unlock()
}

// Props returns the current props of a registered element.
func (d *Driver) Props(name string) (props.Props, error) {
	if d == nil {
		return props.Props{}, ErrElementNotFound
	}
	d.mu.Lock()
	get, ok := d.elements[name]
	d.mu.Unlock()
	if !ok {
		return props.Props{}, ErrElementNotFound
	}
	return get(), nil
}

// Click fires the element's click handler. Disabled elements reject
// the click the way a real pointer interaction would be ignored.
func (d *Driver) Click(name string) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	if p.Attr("aria-disabled") == "true" {
		return ErrElementDisabled
	}
	return fire(p, props.OnClick, props.PointerEvent{})
}

// Press fires the element's keydown handler with the given key event.
func (d *Driver) Press(name string, ev props.KeyEvent) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	return fire(p, props.OnKeyDown, ev)
}

// PressKey fires the element's keydown handler with a bare key.
func (d *Driver) PressKey(name string, key props.Key) error {
	return d.Press(name, props.KeyEvent{Key: key})
}

// TypeText fires one character keydown per rune, as a user typing
// would. Machines with typeahead react to each keystroke.
func (d *Driver) TypeText(name, text string) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	for _, r := range text {
		if err := fire(p, props.OnKeyDown, props.KeyEvent{Key: props.KeyRune, Rune: r}); err != nil {
			return err
		}
	}
	return nil
}

// Input fires the element's input handler with replacement text,
// modeling a text field whose value changed wholesale.
func (d *Driver) Input(name, text string) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	return fire(p, props.OnInput, props.InputEvent{Text: text})
}

// Focus fires the element's focus handler.
func (d *Driver) Focus(name string) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	return fire(p, props.OnFocus, props.FocusEvent{Gained: true})
}

// Blur fires the element's blur handler. inside reports whether focus
// stayed within the same widget.
func (d *Driver) Blur(name string, inside bool) error {
	p, err := d.Props(name)
	if err != nil {
		return err
	}
	return fire(p, props.OnBlur, props.FocusEvent{Inside: inside})
}

// ElementInfo describes one registered element in a snapshot.
type ElementInfo struct {
	Name  string
	Role  string
	Attrs map[string]string
}

// Snapshot returns a structured view of every registered element,
// ordered by name. Scripts assert against it instead of scraping a
// rendered surface.
func (d *Driver) Snapshot() []ElementInfo {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	names := make([]string, 0, len(d.elements))
	for name := range d.elements {
		names = append(names, name)
	}
	d.mu.Unlock()
	sort.Strings(names)

	out := make([]ElementInfo, 0, len(names))
	for _, name := range names {
		p, err := d.Props(name)
		if err != nil {
			continue
		}
		out = append(out, ElementInfo{Name: name, Role: p.Attr("role"), Attrs: p.Attrs})
	}
	return out
}

func fire(p props.Props, handler string, ev props.Event) error {
	fn := p.Handlers[handler]
	if fn == nil {
		return ErrNoHandler
	}
	fn(ev)
	return nil
}
