package widgets

import (
	"time"

	"github.com/quietfox/headless/announce"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/roving"
	"github.com/quietfox/headless/store"
)

// ListboxState is the interaction state of a roving single-select list.
type ListboxState struct {
	// Active is the roving focus index, or roving.None.
	Active int
	// Selected is the committed item id, or "".
	Selected store.ItemID
}

// ListboxConfig configures a Listbox machine.
type ListboxConfig struct {
	Items []store.Item
	// Clamp stops MoveNext/MovePrev at the ends instead of wrapping.
	Clamp bool
	// TypeaheadTimeout is the idle window before the typeahead buffer
	// resets. Zero means roving.DefaultTypeaheadTimeout.
	TypeaheadTimeout time.Duration
	// Clock overrides the typeahead clock; nil means time.Now.
	Clock func() time.Time

	DefaultState *ListboxState
	// Value makes the instance controlled; OnChange is then required.
	Value        *ListboxState
	OnChange     func(ListboxState)
	Reducer      store.Override[ListboxState]
	OnDiagnostic store.DiagnosticFunc
	// OnSelect fires when a selection is committed.
	OnSelect func(store.Item)
	// Announcer receives selection announcements. Nil discards them.
	Announcer announce.Announcer
}

// Listbox manages exactly-one-focusable-item semantics over an item
// sequence, with wrap-around navigation and typeahead.
type Listbox struct {
	store     *store.Store[ListboxState]
	items     []store.Item
	clamp     bool
	typeahead *roving.Typeahead
	onSelect  func(store.Item)
	announcer announce.Announcer
}

// NewListbox creates a listbox machine.
func NewListbox(cfg ListboxConfig) (*Listbox, error) {
	l := &Listbox{
		items:     cfg.Items,
		clamp:     cfg.Clamp,
		typeahead: roving.NewTypeahead(cfg.TypeaheadTimeout, cfg.Clock),
		onSelect:  cfg.OnSelect,
		announcer: cfg.Announcer,
	}
	if l.announcer == nil {
		l.announcer = announce.Discard
	}
	storeCfg := store.Config[ListboxState]{
		Value:        cfg.Value,
		OnChange:     cfg.OnChange,
		Override:     cfg.Reducer,
		Equal:        func(a, b ListboxState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.DefaultState != nil {
		storeCfg.DefaultValue = cfg.DefaultState
	} else {
		storeCfg.DefaultValue = &ListboxState{Active: roving.None}
	}
	st, err := store.New(l.reduce, storeCfg)
	if err != nil {
		return nil, err
	}
	l.store = st
	return l, nil
}

// reduce closes over the machine's item sequence. Dispatch is
// single-threaded per instance, so reading l.items here is safe.
func (l *Listbox) reduce(s ListboxState, action store.Action) ListboxState {
	switch a := action.(type) {
	case store.MoveNext:
		l.typeahead.Clear()
		s.Active = roving.Next(l.items, s.Active, l.clamp)
	case store.MovePrev:
		l.typeahead.Clear()
		s.Active = roving.Prev(l.items, s.Active, l.clamp)
	case store.MoveFirst:
		l.typeahead.Clear()
		s.Active = roving.First(l.items)
	case store.MoveLast:
		l.typeahead.Clear()
		s.Active = roving.Last(l.items)
	case store.Typeahead:
		s.Active = l.typeahead.Append(a.Rune, l.items, s.Active)
	case store.Select:
		l.typeahead.Clear()
		index := roving.IndexOf(l.items, a.ID)
		if a.ID == "" {
			// The stored active index may be out of range after an
			// override reducer; re-validate before indexing.
			index = roving.Clamp(l.items, s.Active)
		}
		if index == roving.None || l.items[index].Disabled {
			break
		}
		s.Active = index
		s.Selected = l.items[index].ID
	case store.ItemsChanged:
		l.typeahead.Clear()
		s.Active = roving.Clamp(l.items, s.Active)
		if s.Selected != "" && roving.IndexOf(l.items, s.Selected) == roving.None {
			s.Selected = ""
		}
	}
	return s
}

// State returns the current snapshot, defensively clamped. Clamping
// only has work to do after an override reducer returned an index
// outside the current sequence; that case also emits a diagnostic.
func (l *Listbox) State() ListboxState {
	if l == nil {
		return ListboxState{Active: roving.None}
	}
	s := l.store.State()
	if clamped := roving.Clamp(l.items, s.Active); clamped != s.Active {
		l.store.Diagnose(store.DiagOverrideContract, "active index out of range; clamped")
		s.Active = clamped
	}
	return s
}

// Items returns the current item sequence.
func (l *Listbox) Items() []store.Item {
	if l == nil {
		return nil
	}
	return l.items
}

// SetItems replaces the item sequence and revalidates the active and
// selected positions against it.
func (l *Listbox) SetItems(items []store.Item) {
	if l == nil {
		return
	}
	l.items = items
	l.store.Dispatch(store.ItemsChanged{})
}

// Dispatch routes an action through the machine, firing selection
// callbacks when a commit lands.
func (l *Listbox) Dispatch(action store.Action) ListboxState {
	if l == nil {
		return ListboxState{Active: roving.None}
	}
	before := l.store.State()
	after := l.store.Dispatch(action)
	if _, ok := action.(store.Select); ok && after.Selected != before.Selected && after.Selected != "" {
		index := roving.IndexOf(l.items, after.Selected)
		if index != roving.None {
			item := l.items[index]
			if l.onSelect != nil {
				l.onSelect(item)
			}
			l.announcer.Announce(item.MatchText+" selected", announce.Polite)
		}
	}
	return after
}

// Subscribe registers a listener for committed state changes.
func (l *Listbox) Subscribe(fn func()) func() {
	if l == nil {
		return func() {}
	}
	return l.store.Subscribe(fn)
}

// ContainerProps returns the attribute/handler set for the list
// container. The container is the widget's single tab stop; arrow
// keys rove within it and Tab exits the region entirely.
func (l *Listbox) ContainerProps() props.Props {
	if l == nil {
		return props.Props{}
	}
	state := l.State()
	attrs := map[string]string{
		"id":       elementID(l.store.ID(), "list"),
		"role":     "listbox",
		"tabindex": "0",
	}
	if state.Active != roving.None {
		attrs["aria-activedescendant"] = itemElementID(l.store.ID(), string(l.items[state.Active].ID))
	}
	return props.Props{
		Attrs: attrs,
		Handlers: map[string]props.Handler{
			props.OnKeyDown: l.handleKey,
		},
	}
}

// ItemProps returns the attribute/handler set for the item at index.
func (l *Listbox) ItemProps(index int) props.Props {
	if l == nil || index < 0 || index >= len(l.items) {
		return props.Props{}
	}
	state := l.State()
	item := l.items[index]
	return props.Props{
		Attrs: map[string]string{
			"id":            itemElementID(l.store.ID(), string(item.ID)),
			"role":          "option",
			"tabindex":      props.TabIndex(index == state.Active),
			"aria-selected": props.Bool(item.ID == state.Selected),
			"aria-disabled": props.Bool(item.Disabled),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				l.Dispatch(store.Select{ID: item.ID})
			},
		},
	}
}

func (l *Listbox) handleKey(ev props.Event) {
	key, ok := ev.(props.KeyEvent)
	if !ok {
		return
	}
	switch key.Key {
	case props.KeyDown:
		l.Dispatch(store.MoveNext{})
	case props.KeyUp:
		l.Dispatch(store.MovePrev{})
	case props.KeyHome:
		l.Dispatch(store.MoveFirst{})
	case props.KeyEnd:
		l.Dispatch(store.MoveLast{})
	case props.KeyEnter, props.KeySpace:
		l.Dispatch(store.Select{})
	case props.KeyRune:
		if key.Rune != 0 {
			l.Dispatch(store.Typeahead{Rune: key.Rune})
		}
	}
}
