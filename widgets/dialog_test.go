package widgets

import (
	"testing"

	"github.com/quietfox/headless/focustrap"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/store"
)

// dialogRegion models the application's focusable handles around a
// dialog: members are inside the dialog, the rest of the attached set
// is the surrounding page.
type dialogRegion struct {
	members  []focustrap.NodeID
	attached map[focustrap.NodeID]bool
	focused  focustrap.NodeID
}

func newDialogRegion(members ...focustrap.NodeID) *dialogRegion {
	r := &dialogRegion{members: members, attached: make(map[focustrap.NodeID]bool)}
	for _, id := range members {
		r.attached[id] = true
	}
	return r
}

func (r *dialogRegion) attach(ids ...focustrap.NodeID) {
	for _, id := range ids {
		r.attached[id] = true
	}
}

func (r *dialogRegion) Focusables() []focustrap.NodeID {
	out := make([]focustrap.NodeID, 0, len(r.members))
	for _, id := range r.members {
		if r.attached[id] {
			out = append(out, id)
		}
	}
	return out
}

func (r *dialogRegion) Focus(id focustrap.NodeID) bool {
	if !r.attached[id] {
		return false
	}
	r.focused = id
	return true
}

func (r *dialogRegion) Focused() focustrap.NodeID { return r.focused }

func TestDialog_RequiresRegion(t *testing.T) {
	if _, err := NewDialog(DialogConfig{}); err != focustrap.ErrNilRegion {
		t.Fatalf("expected ErrNilRegion, got %v", err)
	}
}

func TestDialog_OpenTrapsAndCloseRestores(t *testing.T) {
	region := newDialogRegion("close", "confirm")
	region.attach("trigger")
	region.focused = "trigger"
	d, err := NewDialog(DialogConfig{Region: region, Trigger: "trigger"})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	state := d.Dispatch(store.Open{})
	if !state.Open || !d.Trap().Active() {
		t.Fatalf("expected open dialog with active trap, got %+v", state)
	}
	if region.Focused() != "close" {
		t.Fatalf("expected focus captured by dialog, got %q", region.Focused())
	}

	state = d.Dispatch(store.Close{})
	if state.Open || d.Trap().Active() {
		t.Fatalf("expected closed dialog with inactive trap, got %+v", state)
	}
	if region.Focused() != "trigger" {
		t.Fatalf("expected focus restored to trigger, got %q", region.Focused())
	}
}

func TestDialog_InitialFocus(t *testing.T) {
	region := newDialogRegion("close", "confirm")
	d, err := NewDialog(DialogConfig{Region: region, InitialFocus: "confirm"})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	d.Dispatch(store.Open{})
	if region.Focused() != "confirm" {
		t.Fatalf("expected configured initial focus, got %q", region.Focused())
	}
}

func TestDialog_DefaultOpenActivatesTrap(t *testing.T) {
	region := newDialogRegion("close")
	d, err := NewDialog(DialogConfig{Region: region, DefaultOpen: true})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}
	if !d.Trap().Active() || region.Focused() != "close" {
		t.Fatalf("expected trap active from construction, focus %q", region.Focused())
	}
}

func TestDialog_PropsDriveTrapAndEscape(t *testing.T) {
	region := newDialogRegion("close", "confirm")
	region.attach("trigger")
	region.focused = "trigger"
	d, err := NewDialog(DialogConfig{Region: region, Trigger: "trigger"})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	trigger := d.TriggerProps()
	if trigger.Attr("aria-haspopup") != "dialog" || trigger.Attr("aria-expanded") != "false" {
		t.Fatalf("unexpected trigger attrs %v", trigger.Attrs)
	}
	trigger.Handlers[props.OnClick](props.PointerEvent{})
	if !d.State().Open {
		t.Fatalf("expected click to open the dialog")
	}

	surface := d.DialogProps()
	if surface.Attr("aria-modal") != "true" || surface.Has("hidden") {
		t.Fatalf("unexpected dialog attrs %v", surface.Attrs)
	}

	// Tab cycles within the trap, wrapping at the end.
	keydown := surface.Handlers[props.OnKeyDown]
	keydown(props.KeyEvent{Key: props.KeyTab})
	if region.Focused() != "confirm" {
		t.Fatalf("expected tab to advance, got %q", region.Focused())
	}
	keydown(props.KeyEvent{Key: props.KeyTab})
	if region.Focused() != "close" {
		t.Fatalf("expected tab to wrap, got %q", region.Focused())
	}
	keydown(props.KeyEvent{Key: props.KeyTab, Shift: true})
	if region.Focused() != "confirm" {
		t.Fatalf("expected shift-tab to wrap back, got %q", region.Focused())
	}

	// Focus escaping the dialog is pulled back in.
	region.focused = "trigger"
	surface.Handlers[props.OnFocus](props.FocusEvent{Gained: true})
	if region.Focused() != "close" {
		t.Fatalf("expected escaped focus re-trapped, got %q", region.Focused())
	}

	keydown(props.KeyEvent{Key: props.KeyEscape})
	if d.State().Open {
		t.Fatalf("expected escape to close the dialog")
	}
	if region.Focused() != "trigger" {
		t.Fatalf("expected focus restored to trigger, got %q", region.Focused())
	}
	if !d.DialogProps().Has("hidden") {
		t.Fatalf("expected hidden dialog surface after close")
	}
}

func TestDialog_Controlled(t *testing.T) {
	region := newDialogRegion("close")
	region.attach("outside")
	region.focused = "outside"
	open := false
	var proposals []bool
	d, err := NewDialog(DialogConfig{
		Region:   region,
		Open:     &open,
		OnChange: func(next bool) { proposals = append(proposals, next) },
	})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	state := d.Dispatch(store.Open{})
	if state.Open || d.Trap().Active() {
		t.Fatalf("expected controlled dialog to stay closed, got %+v", state)
	}
	if len(proposals) != 1 || !proposals[0] {
		t.Fatalf("expected proposed open, got %v", proposals)
	}

	d.SetOpen(true)
	if !d.State().Open || !d.Trap().Active() {
		t.Fatalf("expected external open to trap focus")
	}
	d.SetOpen(false)
	if d.Trap().Active() || region.Focused() != "outside" {
		t.Fatalf("expected external close to restore focus, got %q", region.Focused())
	}
}

func TestDialog_ActivationHooks(t *testing.T) {
	region := newDialogRegion("close")
	var events []string
	d, err := NewDialog(DialogConfig{
		Region:       region,
		OnActivate:   func() { events = append(events, "lock") },
		OnDeactivate: func() { events = append(events, "unlock") },
	})
	if err != nil {
		t.Fatalf("new dialog: %v", err)
	}

	d.Dispatch(store.Toggle{})
	d.Dispatch(store.Toggle{})
	if len(events) != 2 || events[0] != "lock" || events[1] != "unlock" {
		t.Fatalf("expected lock then unlock, got %v", events)
	}
}
