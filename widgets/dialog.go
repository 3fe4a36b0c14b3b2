package widgets

import (
	"github.com/quietfox/headless/focustrap"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/store"
)

// DialogState is the interaction state of a modal dialog.
type DialogState struct {
	Open bool
}

// DialogConfig configures a Dialog machine.
type DialogConfig struct {
	// Region supplies the dialog's focusable handles. Required.
	Region focustrap.Region
	// InitialFocus receives focus when the dialog opens; zero means
	// the first focusable in the region.
	InitialFocus focustrap.NodeID
	// Trigger is the element that opens the dialog, used as a
	// restoration fallback when the previously focused element is gone.
	Trigger focustrap.NodeID
	// Container is the dialog element itself, the final restoration
	// fallback.
	Container focustrap.NodeID
	// OnActivate and OnDeactivate mark the scroll-lock boundary.
	OnActivate   func()
	OnDeactivate func()

	DefaultOpen  bool
	Open         *bool
	OnChange     func(open bool)
	Reducer      store.Override[DialogState]
	OnDiagnostic store.DiagnosticFunc
}

// Dialog manages a modal disclosure whose open state owns a focus
// trap: opening captures and traps focus, closing restores it.
type Dialog struct {
	store *store.Store[DialogState]
	trap  *focustrap.Trap
}

// NewDialog creates a dialog machine.
func NewDialog(cfg DialogConfig) (*Dialog, error) {
	trap, err := focustrap.New(focustrap.Config{
		Region:       cfg.Region,
		InitialFocus: cfg.InitialFocus,
		Trigger:      cfg.Trigger,
		Container:    cfg.Container,
		OnActivate:   cfg.OnActivate,
		OnDeactivate: cfg.OnDeactivate,
	})
	if err != nil {
		return nil, err
	}
	storeCfg := store.Config[DialogState]{
		Override:     cfg.Reducer,
		Equal:        func(a, b DialogState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.Open != nil {
		storeCfg.Value = &DialogState{Open: *cfg.Open}
	} else {
		storeCfg.DefaultValue = &DialogState{Open: cfg.DefaultOpen}
	}
	if cfg.OnChange != nil {
		onChange := cfg.OnChange
		storeCfg.OnChange = func(s DialogState) { onChange(s.Open) }
	}
	st, err := store.New(reduceDialog, storeCfg)
	if err != nil {
		return nil, err
	}
	d := &Dialog{store: st, trap: trap}
	d.syncTrap(d.store.State())
	return d, nil
}

func reduceDialog(s DialogState, action store.Action) DialogState {
	switch action.(type) {
	case store.Toggle:
		s.Open = !s.Open
	case store.Open, store.ActivateTrap:
		s.Open = true
	case store.Close, store.Escape, store.DeactivateTrap:
		s.Open = false
	}
	return s
}

// State returns the current snapshot.
func (d *Dialog) State() DialogState {
	if d == nil {
		return DialogState{}
	}
	return d.store.State()
}

// Trap exposes the dialog's focus trap for focus-event plumbing.
func (d *Dialog) Trap() *focustrap.Trap {
	if d == nil {
		return nil
	}
	return d.trap
}

// Dispatch routes an action through the machine, activating or
// deactivating the focus trap when the open state flips.
func (d *Dialog) Dispatch(action store.Action) DialogState {
	if d == nil {
		return DialogState{}
	}
	after := d.store.Dispatch(action)
	d.syncTrap(after)
	return after
}

// SetOpen replaces the externally controlled open state and keeps the
// trap in step with it.
func (d *Dialog) SetOpen(open bool) {
	if d == nil {
		return
	}
	d.store.SetExternal(DialogState{Open: open})
	d.syncTrap(d.store.State())
}

func (d *Dialog) syncTrap(s DialogState) {
	if s.Open && !d.trap.Active() {
		d.trap.Activate()
	}
	if !s.Open && d.trap.Active() {
		d.trap.Deactivate()
	}
}

// Subscribe registers a listener for committed state changes.
func (d *Dialog) Subscribe(fn func()) func() {
	if d == nil {
		return func() {}
	}
	return d.store.Subscribe(fn)
}

// TriggerProps returns the attribute/handler set for the opener.
func (d *Dialog) TriggerProps() props.Props {
	if d == nil {
		return props.Props{}
	}
	state := d.State()
	return props.Props{
		Attrs: map[string]string{
			"id":            elementID(d.store.ID(), "trigger"),
			"role":          "button",
			"tabindex":      "0",
			"aria-haspopup": "dialog",
			"aria-expanded": props.Bool(state.Open),
			"aria-controls": elementID(d.store.ID(), "dialog"),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				d.Dispatch(store.Open{})
			},
			props.OnKeyDown: func(ev props.Event) {
				key, ok := ev.(props.KeyEvent)
				if !ok {
					return
				}
				switch key.Key {
				case props.KeyEnter, props.KeySpace:
					d.Dispatch(store.Open{})
				}
			},
		},
	}
}

// DialogProps returns the attribute/handler set for the dialog
// surface. Its keydown handler consumes Tab cycling and Escape.
func (d *Dialog) DialogProps() props.Props {
	if d == nil {
		return props.Props{}
	}
	state := d.State()
	attrs := map[string]string{
		"id":         elementID(d.store.ID(), "dialog"),
		"role":       "dialog",
		"aria-modal": "true",
	}
	if !state.Open {
		attrs["hidden"] = "true"
	}
	return props.Props{
		Attrs: attrs,
		Handlers: map[string]props.Handler{
			props.OnKeyDown: func(ev props.Event) {
				key, ok := ev.(props.KeyEvent)
				if !ok {
					return
				}
				switch key.Key {
				case props.KeyTab:
					d.trap.HandleTab(key.Shift)
				case props.KeyEscape:
					d.Dispatch(store.Escape{})
				}
			},
			props.OnFocus: func(props.Event) {
				d.trap.HandleFocusChange()
			},
		},
	}
}
