package widgets

import (
	"time"

	"github.com/quietfox/headless/announce"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/roving"
	"github.com/quietfox/headless/store"
)

// MenuState is the interaction state of a dropdown menu.
type MenuState struct {
	Open bool
	// Active is the roving focus index, or roving.None.
	Active int
}

// MenuConfig configures a Menu machine.
type MenuConfig struct {
	Items []store.Item
	// Clamp stops arrow navigation at the ends instead of wrapping.
	Clamp bool
	// TypeaheadTimeout is the idle window before the typeahead buffer
	// resets. Zero means roving.DefaultTypeaheadTimeout.
	TypeaheadTimeout time.Duration
	// Clock overrides the typeahead clock; nil means time.Now.
	Clock func() time.Time

	DefaultState *MenuState
	Value        *MenuState
	OnChange     func(MenuState)
	Reducer      store.Override[MenuState]
	OnDiagnostic store.DiagnosticFunc
	// OnSelect fires when an item is activated; the menu closes after.
	OnSelect func(store.Item)
	// Announcer receives activation announcements. Nil discards them.
	Announcer announce.Announcer
}

// Menu manages a trigger-opened menu: disclosure plus roving
// navigation and typeahead over the item sequence.
type Menu struct {
	store     *store.Store[MenuState]
	items     []store.Item
	clamp     bool
	typeahead *roving.Typeahead
	onSelect  func(store.Item)
	announcer announce.Announcer
}

// NewMenu creates a menu machine.
func NewMenu(cfg MenuConfig) (*Menu, error) {
	m := &Menu{
		items:     cfg.Items,
		clamp:     cfg.Clamp,
		typeahead: roving.NewTypeahead(cfg.TypeaheadTimeout, cfg.Clock),
		onSelect:  cfg.OnSelect,
		announcer: cfg.Announcer,
	}
	if m.announcer == nil {
		m.announcer = announce.Discard
	}
	storeCfg := store.Config[MenuState]{
		Value:        cfg.Value,
		OnChange:     cfg.OnChange,
		Override:     cfg.Reducer,
		Equal:        func(a, b MenuState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.DefaultState != nil {
		storeCfg.DefaultValue = cfg.DefaultState
	} else {
		storeCfg.DefaultValue = &MenuState{Active: roving.None}
	}
	st, err := store.New(m.reduce, storeCfg)
	if err != nil {
		return nil, err
	}
	m.store = st
	return m, nil
}

func (m *Menu) reduce(s MenuState, action store.Action) MenuState {
	switch a := action.(type) {
	case store.Toggle:
		s.Open = !s.Open
		s.Active = m.openingIndex(s.Open)
		m.typeahead.Clear()
	case store.Open:
		s.Open = true
		s.Active = m.openingIndex(true)
		m.typeahead.Clear()
	case store.Close, store.Escape, store.Blur:
		s.Open = false
		s.Active = roving.None
		m.typeahead.Clear()
	case store.MoveNext:
		if s.Open {
			m.typeahead.Clear()
			s.Active = roving.Next(m.items, s.Active, m.clamp)
		}
	case store.MovePrev:
		if s.Open {
			m.typeahead.Clear()
			s.Active = roving.Prev(m.items, s.Active, m.clamp)
		}
	case store.MoveFirst:
		if s.Open {
			m.typeahead.Clear()
			s.Active = roving.First(m.items)
		}
	case store.MoveLast:
		if s.Open {
			m.typeahead.Clear()
			s.Active = roving.Last(m.items)
		}
	case store.Typeahead:
		if s.Open {
			s.Active = m.typeahead.Append(a.Rune, m.items, s.Active)
		}
	case store.Select:
		if !s.Open {
			break
		}
		index := roving.IndexOf(m.items, a.ID)
		if a.ID == "" {
			// Re-validate the stored index before indexing; an
			// override reducer may have left it out of range.
			index = roving.Clamp(m.items, s.Active)
		}
		if index == roving.None || m.items[index].Disabled {
			break
		}
		m.typeahead.Clear()
		s.Open = false
		s.Active = roving.None
	case store.ItemsChanged:
		m.typeahead.Clear()
		s.Active = roving.Clamp(m.items, s.Active)
	}
	return s
}

func (m *Menu) openingIndex(open bool) int {
	if !open {
		return roving.None
	}
	return roving.First(m.items)
}

// State returns the current snapshot, defensively clamped.
func (m *Menu) State() MenuState {
	if m == nil {
		return MenuState{Active: roving.None}
	}
	s := m.store.State()
	if clamped := roving.Clamp(m.items, s.Active); clamped != s.Active {
		m.store.Diagnose(store.DiagOverrideContract, "active index out of range; clamped")
		s.Active = clamped
	}
	return s
}

// Items returns the current item sequence.
func (m *Menu) Items() []store.Item {
	if m == nil {
		return nil
	}
	return m.items
}

// SetItems replaces the item sequence and revalidates the active index.
func (m *Menu) SetItems(items []store.Item) {
	if m == nil {
		return
	}
	m.items = items
	m.store.Dispatch(store.ItemsChanged{})
}

// Dispatch routes an action through the machine, firing activation
// callbacks when a Select lands on an enabled item.
func (m *Menu) Dispatch(action store.Action) MenuState {
	if m == nil {
		return MenuState{Active: roving.None}
	}
	var activated *store.Item
	if sel, ok := action.(store.Select); ok {
		before := m.store.State()
		if before.Open {
			index := roving.IndexOf(m.items, sel.ID)
			if sel.ID == "" {
				// Mirror the reducer's re-validation so the
				// precompute and the commit agree on the item.
				index = roving.Clamp(m.items, before.Active)
			}
			if index != roving.None && !m.items[index].Disabled {
				item := m.items[index]
				activated = &item
			}
		}
	}
	after := m.store.Dispatch(action)
	if activated != nil && !after.Open {
		if m.onSelect != nil {
			m.onSelect(*activated)
		}
		m.announcer.Announce(activated.MatchText, announce.Polite)
	}
	return after
}

// Subscribe registers a listener for committed state changes.
func (m *Menu) Subscribe(fn func()) func() {
	if m == nil {
		return func() {}
	}
	return m.store.Subscribe(fn)
}

// TriggerProps returns the attribute/handler set for the menu button.
func (m *Menu) TriggerProps() props.Props {
	if m == nil {
		return props.Props{}
	}
	state := m.State()
	return props.Props{
		Attrs: map[string]string{
			"id":            elementID(m.store.ID(), "trigger"),
			"role":          "button",
			"tabindex":      "0",
			"aria-haspopup": "menu",
			"aria-expanded": props.Bool(state.Open),
			"aria-controls": elementID(m.store.ID(), "menu"),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				m.Dispatch(store.Toggle{})
			},
			props.OnKeyDown: func(ev props.Event) {
				key, ok := ev.(props.KeyEvent)
				if !ok {
					return
				}
				switch key.Key {
				case props.KeyEnter, props.KeySpace, props.KeyDown:
					m.Dispatch(store.Open{})
				case props.KeyUp:
					m.Dispatch(store.Open{})
					m.Dispatch(store.MoveLast{})
				}
			},
		},
	}
}

// MenuProps returns the attribute/handler set for the menu surface.
func (m *Menu) MenuProps() props.Props {
	if m == nil {
		return props.Props{}
	}
	state := m.State()
	attrs := map[string]string{
		"id":              elementID(m.store.ID(), "menu"),
		"role":            "menu",
		"tabindex":        "-1",
		"aria-labelledby": elementID(m.store.ID(), "trigger"),
	}
	if !state.Open {
		attrs["hidden"] = "true"
	}
	if state.Active != roving.None {
		attrs["aria-activedescendant"] = itemElementID(m.store.ID(), string(m.items[state.Active].ID))
	}
	return props.Props{
		Attrs: attrs,
		Handlers: map[string]props.Handler{
			props.OnKeyDown: m.handleKey,
			props.OnBlur: func(ev props.Event) {
				focus, ok := ev.(props.FocusEvent)
				if ok && focus.Inside {
					return
				}
				m.Dispatch(store.Blur{})
			},
		},
	}
}

// ItemProps returns the attribute/handler set for the item at index.
func (m *Menu) ItemProps(index int) props.Props {
	if m == nil || index < 0 || index >= len(m.items) {
		return props.Props{}
	}
	state := m.State()
	item := m.items[index]
	return props.Props{
		Attrs: map[string]string{
			"id":            itemElementID(m.store.ID(), string(item.ID)),
			"role":          "menuitem",
			"tabindex":      props.TabIndex(index == state.Active),
			"aria-disabled": props.Bool(item.Disabled),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				m.Dispatch(store.Select{ID: item.ID})
			},
		},
	}
}

func (m *Menu) handleKey(ev props.Event) {
	key, ok := ev.(props.KeyEvent)
	if !ok {
		return
	}
	switch key.Key {
	case props.KeyDown:
		m.Dispatch(store.MoveNext{})
	case props.KeyUp:
		m.Dispatch(store.MovePrev{})
	case props.KeyHome:
		m.Dispatch(store.MoveFirst{})
	case props.KeyEnd:
		m.Dispatch(store.MoveLast{})
	case props.KeyEnter, props.KeySpace:
		m.Dispatch(store.Select{})
	case props.KeyEscape:
		m.Dispatch(store.Escape{})
	case props.KeyRune:
		if key.Rune != 0 {
			m.Dispatch(store.Typeahead{Rune: key.Rune})
		}
	}
}
