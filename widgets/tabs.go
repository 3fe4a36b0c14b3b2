package widgets

import (
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/roving"
	"github.com/quietfox/headless/store"
)

// TabsState is the interaction state of a tab strip.
type TabsState struct {
	// Active is the roving focus index within the tab list.
	Active int
	// Selected is the index of the tab whose panel is shown.
	Selected int
}

// TabsConfig configures a Tabs machine.
type TabsConfig struct {
	// Tabs is the ordered tab sequence. MatchText is the tab label.
	Tabs []store.Item
	// Manual requires Enter or Space to commit a selection; by default
	// selection follows the roving focus (automatic activation).
	Manual bool
	// Clamp stops arrow navigation at the ends instead of wrapping.
	Clamp bool

	DefaultSelected int
	// Selected makes the instance controlled; OnChange is required.
	Selected     *int
	OnChange     func(selected int)
	Reducer      store.Override[TabsState]
	OnDiagnostic store.DiagnosticFunc
}

// Tabs manages a roving tab strip with automatic or manual activation.
type Tabs struct {
	store  *store.Store[TabsState]
	tabs   []store.Item
	manual bool
	clamp  bool
}

// NewTabs creates a tabs machine.
func NewTabs(cfg TabsConfig) (*Tabs, error) {
	t := &Tabs{
		tabs:   cfg.Tabs,
		manual: cfg.Manual,
		clamp:  cfg.Clamp,
	}
	storeCfg := store.Config[TabsState]{
		Override:     cfg.Reducer,
		Equal:        func(a, b TabsState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.Selected != nil {
		index := roving.Clamp(cfg.Tabs, *cfg.Selected)
		storeCfg.Value = &TabsState{Active: index, Selected: index}
	} else {
		index := roving.Clamp(cfg.Tabs, cfg.DefaultSelected)
		storeCfg.DefaultValue = &TabsState{Active: index, Selected: index}
	}
	if cfg.OnChange != nil {
		onChange := cfg.OnChange
		storeCfg.OnChange = func(s TabsState) { onChange(s.Selected) }
	}
	st, err := store.New(t.reduce, storeCfg)
	if err != nil {
		return nil, err
	}
	t.store = st
	return t, nil
}

func (t *Tabs) reduce(s TabsState, action store.Action) TabsState {
	switch a := action.(type) {
	case store.MoveNext:
		s.Active = roving.Next(t.tabs, s.Active, t.clamp)
	case store.MovePrev:
		s.Active = roving.Prev(t.tabs, s.Active, t.clamp)
	case store.MoveFirst:
		s.Active = roving.First(t.tabs)
	case store.MoveLast:
		s.Active = roving.Last(t.tabs)
	case store.Select:
		index := roving.IndexOf(t.tabs, a.ID)
		if a.ID == "" {
			index = roving.Clamp(t.tabs, s.Active)
		}
		if index == roving.None || t.tabs[index].Disabled {
			return s
		}
		s.Active = index
		s.Selected = index
		return s
	case store.ItemsChanged:
		s.Active = roving.Clamp(t.tabs, s.Active)
		s.Selected = roving.Clamp(t.tabs, s.Selected)
		return s
	default:
		return s
	}
	// Automatic activation: selection follows the roving focus.
	if !t.manual && s.Active != roving.None {
		s.Selected = s.Active
	}
	return s
}

// State returns the current snapshot, defensively clamped.
func (t *Tabs) State() TabsState {
	if t == nil {
		return TabsState{Active: roving.None, Selected: roving.None}
	}
	s := t.store.State()
	if clamped := roving.Clamp(t.tabs, s.Active); clamped != s.Active {
		t.store.Diagnose(store.DiagOverrideContract, "active tab out of range; clamped")
		s.Active = clamped
	}
	if clamped := roving.Clamp(t.tabs, s.Selected); clamped != s.Selected {
		t.store.Diagnose(store.DiagOverrideContract, "selected tab out of range; clamped")
		s.Selected = clamped
	}
	return s
}

// SetTabs replaces the tab sequence and revalidates indices.
func (t *Tabs) SetTabs(tabs []store.Item) {
	if t == nil {
		return
	}
	t.tabs = tabs
	t.store.Dispatch(store.ItemsChanged{})
}

// SetSelected replaces the externally controlled selection.
func (t *Tabs) SetSelected(index int) {
	if t == nil {
		return
	}
	index = roving.Clamp(t.tabs, index)
	t.store.SetExternal(TabsState{Active: index, Selected: index})
}

// Dispatch routes an action through the machine's store.
func (t *Tabs) Dispatch(action store.Action) TabsState {
	if t == nil {
		return TabsState{Active: roving.None, Selected: roving.None}
	}
	return t.store.Dispatch(action)
}

// Subscribe registers a listener for committed state changes.
func (t *Tabs) Subscribe(fn func()) func() {
	if t == nil {
		return func() {}
	}
	return t.store.Subscribe(fn)
}

// ListProps returns the attribute/handler set for the tab list.
func (t *Tabs) ListProps() props.Props {
	if t == nil {
		return props.Props{}
	}
	return props.Props{
		Attrs: map[string]string{
			"id":   elementID(t.store.ID(), "tablist"),
			"role": "tablist",
		},
		Handlers: map[string]props.Handler{
			props.OnKeyDown: t.handleKey,
		},
	}
}

// TabProps returns the attribute/handler set for the tab at index.
func (t *Tabs) TabProps(index int) props.Props {
	if t == nil || index < 0 || index >= len(t.tabs) {
		return props.Props{}
	}
	state := t.State()
	tab := t.tabs[index]
	return props.Props{
		Attrs: map[string]string{
			"id":            itemElementID(t.store.ID(), string(tab.ID)),
			"role":          "tab",
			"tabindex":      props.TabIndex(index == state.Active),
			"aria-selected": props.Bool(index == state.Selected),
			"aria-disabled": props.Bool(tab.Disabled),
			"aria-controls": elementID(t.store.ID(), "panel-"+string(tab.ID)),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				t.Dispatch(store.Select{ID: tab.ID})
			},
		},
	}
}

// PanelProps returns the attribute set for the panel at index.
func (t *Tabs) PanelProps(index int) props.Props {
	if t == nil || index < 0 || index >= len(t.tabs) {
		return props.Props{}
	}
	state := t.State()
	tab := t.tabs[index]
	attrs := map[string]string{
		"id":              elementID(t.store.ID(), "panel-"+string(tab.ID)),
		"role":            "tabpanel",
		"aria-labelledby": itemElementID(t.store.ID(), string(tab.ID)),
	}
	if index != state.Selected {
		attrs["hidden"] = "true"
	}
	return props.Props{Attrs: attrs}
}

func (t *Tabs) handleKey(ev props.Event) {
	key, ok := ev.(props.KeyEvent)
	if !ok {
		return
	}
	switch key.Key {
	case props.KeyRight, props.KeyDown:
		t.Dispatch(store.MoveNext{})
	case props.KeyLeft, props.KeyUp:
		t.Dispatch(store.MovePrev{})
	case props.KeyHome:
		t.Dispatch(store.MoveFirst{})
	case props.KeyEnd:
		t.Dispatch(store.MoveLast{})
	case props.KeyEnter, props.KeySpace:
		t.Dispatch(store.Select{})
	}
}
