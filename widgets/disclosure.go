package widgets

import (
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/store"
)

// DisclosureState is the interaction state of a show/hide widget.
type DisclosureState struct {
	Open bool
}

// DisclosureConfig configures a Disclosure machine.
type DisclosureConfig struct {
	// DefaultOpen seeds an uncontrolled instance.
	DefaultOpen bool
	// Open makes the instance controlled; OnChange is then required.
	Open *bool
	// OnChange is invoked with every committed or proposed open state.
	OnChange func(open bool)
	// Reducer overrides the default transition function.
	Reducer store.Override[DisclosureState]
	// OnDiagnostic receives recoverable misuse reports.
	OnDiagnostic store.DiagnosticFunc
}

// Disclosure manages a binary show/hide interaction.
type Disclosure struct {
	store *store.Store[DisclosureState]
}

// NewDisclosure creates a disclosure machine.
func NewDisclosure(cfg DisclosureConfig) (*Disclosure, error) {
	storeCfg := store.Config[DisclosureState]{
		Override:     cfg.Reducer,
		Equal:        func(a, b DisclosureState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.Open != nil {
		storeCfg.Value = &DisclosureState{Open: *cfg.Open}
	} else {
		storeCfg.DefaultValue = &DisclosureState{Open: cfg.DefaultOpen}
	}
	if cfg.OnChange != nil {
		onChange := cfg.OnChange
		storeCfg.OnChange = func(s DisclosureState) { onChange(s.Open) }
	}
	st, err := store.New(reduceDisclosure, storeCfg)
	if err != nil {
		return nil, err
	}
	return &Disclosure{store: st}, nil
}

func reduceDisclosure(s DisclosureState, action store.Action) DisclosureState {
	switch action.(type) {
	case store.Toggle:
		s.Open = !s.Open
	case store.Open:
		s.Open = true
	case store.Close, store.Escape:
		s.Open = false
	}
	return s
}

// State returns the current snapshot.
func (d *Disclosure) State() DisclosureState {
	if d == nil {
		return DisclosureState{}
	}
	return d.store.State()
}

// Dispatch routes an action through the machine's store.
func (d *Disclosure) Dispatch(action store.Action) DisclosureState {
	if d == nil {
		return DisclosureState{}
	}
	return d.store.Dispatch(action)
}

// SetOpen replaces the externally controlled open state.
func (d *Disclosure) SetOpen(open bool) {
	if d == nil {
		return
	}
	d.store.SetExternal(DisclosureState{Open: open})
}

// Subscribe registers a listener for committed state changes.
func (d *Disclosure) Subscribe(fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.store.Subscribe(fn)
}

// TriggerProps returns the attribute/handler set for the toggle
// trigger element.
func (d *Disclosure) TriggerProps() props.Props {
	if d == nil {
		return props.Props{}
	}
	state := d.State()
	regionID := elementID(d.store.ID(), "region")
	return props.Props{
		Attrs: map[string]string{
			"id":            elementID(d.store.ID(), "trigger"),
			"role":          "button",
			"tabindex":      "0",
			"aria-expanded": props.Bool(state.Open),
			"aria-controls": regionID,
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				d.Dispatch(store.Toggle{})
			},
			props.OnKeyDown: func(ev props.Event) {
				key, ok := ev.(props.KeyEvent)
				if !ok {
					return
				}
				switch key.Key {
				case props.KeyEnter, props.KeySpace:
					d.Dispatch(store.Toggle{})
				}
			},
		},
	}
}

// RegionProps returns the attribute set for the disclosed region.
func (d *Disclosure) RegionProps() props.Props {
	if d == nil {
		return props.Props{}
	}
	state := d.State()
	attrs := map[string]string{
		"id": elementID(d.store.ID(), "region"),
	}
	if !state.Open {
		attrs["hidden"] = "true"
	}
	return props.Props{Attrs: attrs}
}
