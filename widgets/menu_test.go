package widgets

import (
	"testing"
	"time"

	"github.com/quietfox/headless/announce"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/roving"
	"github.com/quietfox/headless/store"
)

func TestMenu_OpenFocusesFirstEnabled(t *testing.T) {
	m, err := NewMenu(MenuConfig{Items: testItems("!cut", "copy", "paste")})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	state := m.Dispatch(store.Open{})
	if !state.Open || state.Active != 1 {
		t.Fatalf("expected open with first enabled item active, got %+v", state)
	}

	state = m.Dispatch(store.Escape{})
	if state.Open || state.Active != roving.None {
		t.Fatalf("expected closed and inactive after escape, got %+v", state)
	}
}

func TestMenu_NavigationOnlyWhileOpen(t *testing.T) {
	m, err := NewMenu(MenuConfig{Items: testItems("cut", "copy")})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	if state := m.Dispatch(store.MoveNext{}); state.Active != roving.None {
		t.Fatalf("expected closed menu to ignore navigation, got %+v", state)
	}

	m.Dispatch(store.Open{})
	if state := m.Dispatch(store.MoveNext{}); state.Active != 1 {
		t.Fatalf("expected navigation while open, got %+v", state)
	}
}

func TestMenu_SelectClosesAndFires(t *testing.T) {
	var picked []store.ItemID
	var spoken []announce.Announcement
	m, err := NewMenu(MenuConfig{
		Items:     testItems("cut", "copy", "paste"),
		OnSelect:  func(item store.Item) { picked = append(picked, item.ID) },
		Announcer: announce.AnnouncerFunc(func(text string, p announce.Priority) { spoken = append(spoken, announce.Announcement{Text: text, Priority: p}) }),
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	// Select while closed is a no-op.
	m.Dispatch(store.Select{ID: "copy"})
	if len(picked) != 0 {
		t.Fatalf("expected no activation while closed, got %v", picked)
	}

	m.Dispatch(store.Open{})
	state := m.Dispatch(store.Select{ID: "copy"})
	if state.Open {
		t.Fatalf("expected menu to close on activation, got %+v", state)
	}
	if len(picked) != 1 || picked[0] != "copy" {
		t.Fatalf("expected copy activation, got %v", picked)
	}
	if len(spoken) != 1 || spoken[0].Text != "copy" || spoken[0].Priority != announce.Polite {
		t.Fatalf("unexpected announcement %v", spoken)
	}
}

func TestMenu_SelectActiveViaEmptyID(t *testing.T) {
	var picked []store.ItemID
	m, err := NewMenu(MenuConfig{
		Items:    testItems("cut", "copy"),
		OnSelect: func(item store.Item) { picked = append(picked, item.ID) },
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	m.Dispatch(store.MoveNext{})
	m.Dispatch(store.Select{})
	if len(picked) != 1 || picked[0] != "copy" {
		t.Fatalf("expected active item activation, got %v", picked)
	}
}

func TestMenu_SelectDisabledIgnored(t *testing.T) {
	var picked []store.ItemID
	m, err := NewMenu(MenuConfig{
		Items:    testItems("cut", "!copy"),
		OnSelect: func(item store.Item) { picked = append(picked, item.ID) },
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	state := m.Dispatch(store.Select{ID: "copy"})
	if !state.Open || len(picked) != 0 {
		t.Fatalf("expected disabled item to be inert, got %+v %v", state, picked)
	}
}

func TestMenu_Typeahead(t *testing.T) {
	now := time.Unix(0, 0)
	m, err := NewMenu(MenuConfig{
		Items: testItems("cut", "copy", "paste"),
		Clock: func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	if state := m.Dispatch(store.Typeahead{Rune: 'p'}); state.Active != 2 {
		t.Fatalf("expected typeahead jump to paste, got %+v", state)
	}

	// Past the idle window the buffer resets to a fresh prefix.
	now = now.Add(time.Second)
	if state := m.Dispatch(store.Typeahead{Rune: 'c'}); state.Active != 0 {
		t.Fatalf("expected jump to cut, got %+v", state)
	}
	if state := m.Dispatch(store.Typeahead{Rune: 'o'}); state.Active != 1 {
		t.Fatalf("expected multi-char match on copy, got %+v", state)
	}
}

func TestMenu_BlurOutsideCloses(t *testing.T) {
	m, err := NewMenu(MenuConfig{Items: testItems("cut", "copy")})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	menu := m.MenuProps()
	menu.Handlers[props.OnBlur](props.FocusEvent{Inside: true})
	if !m.State().Open {
		t.Fatalf("expected focus move inside the menu to keep it open")
	}
	menu.Handlers[props.OnBlur](props.FocusEvent{})
	if m.State().Open {
		t.Fatalf("expected focus leaving the menu to close it")
	}
}

func TestMenu_TriggerProps(t *testing.T) {
	m, err := NewMenu(MenuConfig{Items: testItems("cut", "copy")})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	trigger := m.TriggerProps()
	if trigger.Attr("aria-haspopup") != "menu" || trigger.Attr("aria-expanded") != "false" {
		t.Fatalf("unexpected trigger attrs %v", trigger.Attrs)
	}
	if trigger.Attr("aria-controls") != m.MenuProps().Attr("id") {
		t.Fatalf("expected trigger to reference the menu surface")
	}

	// ArrowUp opens with the last item active.
	trigger.Handlers[props.OnKeyDown](props.KeyEvent{Key: props.KeyUp})
	state := m.State()
	if !state.Open || state.Active != 1 {
		t.Fatalf("expected open on last item, got %+v", state)
	}
	if m.TriggerProps().Attr("aria-expanded") != "true" {
		t.Fatalf("expected expanded trigger after open")
	}
	if m.MenuProps().Has("hidden") {
		t.Fatalf("expected visible menu surface")
	}
}

func TestMenu_MenuAndItemProps(t *testing.T) {
	m, err := NewMenu(MenuConfig{Items: testItems("cut", "!copy")})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}
	m.Dispatch(store.Open{})

	menu := m.MenuProps()
	if menu.Attr("role") != "menu" || menu.Has("hidden") {
		t.Fatalf("unexpected menu attrs %v", menu.Attrs)
	}
	active := m.ItemProps(0)
	if menu.Attr("aria-activedescendant") != active.Attr("id") {
		t.Fatalf("expected activedescendant to name the active item")
	}
	if active.Attr("tabindex") != "0" || active.Attr("aria-disabled") != "false" {
		t.Fatalf("unexpected active item attrs %v", active.Attrs)
	}
	disabled := m.ItemProps(1)
	if disabled.Attr("tabindex") != "-1" || disabled.Attr("aria-disabled") != "true" {
		t.Fatalf("unexpected disabled item attrs %v", disabled.Attrs)
	}

	menu.Handlers[props.OnKeyDown](props.KeyEvent{Key: props.KeyEscape})
	if m.State().Open {
		t.Fatalf("expected escape to close the menu")
	}
}

func TestMenu_OverrideOutputClamped(t *testing.T) {
	var diags []store.Diagnostic
	m, err := NewMenu(MenuConfig{
		Items: testItems("cut", "copy"),
		Reducer: func(s MenuState, a store.Action, next store.Reducer[MenuState]) MenuState {
			s = next(s, a)
			if s.Open {
				s.Active = 42
			}
			return s
		},
		OnDiagnostic: func(d store.Diagnostic) { diags = append(diags, d) },
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	if state := m.State(); state.Active != 1 {
		t.Fatalf("expected clamped active index, got %+v", state)
	}
	found := false
	for _, d := range diags {
		if d.Kind == store.DiagOverrideContract {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected override contract diagnostic, got %v", diags)
	}
}

func TestMenu_SelectAfterOverrideOutOfRange(t *testing.T) {
	var selected []store.ItemID
	m, err := NewMenu(MenuConfig{
		Items: testItems("cut", "copy", "paste"),
		Reducer: func(s MenuState, a store.Action, next store.Reducer[MenuState]) MenuState {
			s = next(s, a)
			if s.Open {
				s.Active = 99
			}
			return s
		},
		OnSelect: func(item store.Item) { selected = append(selected, item.ID) },
	})
	if err != nil {
		t.Fatalf("new menu: %v", err)
	}

	m.Dispatch(store.Open{})
	state := m.Dispatch(store.Select{})
	if state.Open {
		t.Fatalf("expected menu to close after select, got %+v", state)
	}
	if len(selected) != 1 || selected[0] != "paste" {
		t.Fatalf("expected re-validated index to activate paste, got %v", selected)
	}
}
