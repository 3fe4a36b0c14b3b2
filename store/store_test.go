package store

import "testing"

type counter struct {
	N    int
	Open bool
}

func reduceCounter(s counter, action Action) counter {
	switch action.(type) {
	case Toggle:
		s.Open = !s.Open
	case MoveNext:
		s.N++
	case MovePrev:
		s.N--
	}
	return s
}

func TestStore_DispatchToggle(t *testing.T) {
	st, err := New(reduceCounter, Config[counter]{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if got := st.Dispatch(Toggle{}); !got.Open {
		t.Fatalf("expected open after first toggle, got %+v", got)
	}
	if got := st.Dispatch(Toggle{}); got.Open {
		t.Fatalf("expected closed after second toggle, got %+v", got)
	}
}

func TestStore_DefaultValue(t *testing.T) {
	st, err := New(reduceCounter, Config[counter]{
		DefaultValue: &counter{N: 7},
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if got := st.State().N; got != 7 {
		t.Fatalf("expected default 7, got %d", got)
	}
}

func TestStore_OverrideIntercepts(t *testing.T) {
	// The override swallows toggle-off but delegates everything else.
	override := func(s counter, action Action, next Reducer[counter]) counter {
		if _, ok := action.(Toggle); ok && s.Open {
			return s
		}
		return next(s, action)
	}
	st, err := New(reduceCounter, Config[counter]{Override: override})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	st.Dispatch(Toggle{})
	if got := st.Dispatch(Toggle{}); !got.Open {
		t.Fatalf("expected toggle-off to be swallowed, got %+v", got)
	}
	if got := st.Dispatch(MoveNext{}); got.N != 1 {
		t.Fatalf("expected delegated action to apply, got %+v", got)
	}
}

func TestStore_ControlledRequiresOnChange(t *testing.T) {
	_, err := New(reduceCounter, Config[counter]{Value: &counter{}})
	if err != ErrValueWithoutChange {
		t.Fatalf("expected ErrValueWithoutChange, got %v", err)
	}
}

func TestStore_NilReducer(t *testing.T) {
	_, err := New[counter](nil, Config[counter]{})
	if err != ErrNilReducer {
		t.Fatalf("expected ErrNilReducer, got %v", err)
	}
}

func TestStore_ControlledForwardsWrites(t *testing.T) {
	var proposed []counter
	st, err := New(reduceCounter, Config[counter]{
		Value:    &counter{N: 3},
		OnChange: func(s counter) { proposed = append(proposed, s) },
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if !st.Controlled() {
		t.Fatalf("expected controlled instance")
	}

	got := st.Dispatch(MoveNext{})
	if got.N != 3 {
		t.Fatalf("expected external value untouched, got %+v", got)
	}
	if len(proposed) != 1 || proposed[0].N != 4 {
		t.Fatalf("expected proposed next state {N:4}, got %+v", proposed)
	}
	if st.State().N != 3 {
		t.Fatalf("expected reads to keep external value, got %d", st.State().N)
	}

	st.SetExternal(counter{N: 4})
	if st.State().N != 4 {
		t.Fatalf("expected external update to apply, got %d", st.State().N)
	}
}

func TestStore_LateExternalSwitchesMode(t *testing.T) {
	var diags []Diagnostic
	st, err := New(reduceCounter, Config[counter]{
		OnDiagnostic: func(d Diagnostic) { diags = append(diags, d) },
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	st.Dispatch(MoveNext{})
	st.SetExternal(counter{N: 10})

	if len(diags) != 1 || diags[0].Kind != DiagControlModeSwitch {
		t.Fatalf("expected control-mode-switch diagnostic, got %+v", diags)
	}
	if !st.Controlled() {
		t.Fatalf("expected instance to become controlled")
	}
	// Mode never flips back: dispatches stop applying locally.
	st.Dispatch(MoveNext{})
	if st.State().N != 10 {
		t.Fatalf("expected external value to stay authoritative, got %d", st.State().N)
	}
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	st, err := New(reduceCounter, Config[counter]{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	calls := 0
	unsub := st.Subscribe(func() { calls++ })

	st.Dispatch(MoveNext{})
	if calls != 1 {
		t.Fatalf("expected 1 notification, got %d", calls)
	}

	unsub()
	unsub() // second call is a no-op
	st.Dispatch(MoveNext{})
	if calls != 1 {
		t.Fatalf("expected no notification after unsubscribe, got %d", calls)
	}
}

func TestStore_EqualSuppressesNotification(t *testing.T) {
	st, err := New(reduceCounter, Config[counter]{
		Equal: func(a, b counter) bool { return a == b },
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	calls := 0
	st.Subscribe(func() { calls++ })

	st.Dispatch(Open{}) // not handled by reducer: state unchanged
	if calls != 0 {
		t.Fatalf("expected no notification for no-op action, got %d", calls)
	}
	st.Dispatch(MoveNext{})
	if calls != 1 {
		t.Fatalf("expected notification for real change, got %d", calls)
	}
}

func TestStore_SubscribeWithScheduler(t *testing.T) {
	st, err := New(reduceCounter, Config[counter]{})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	queue := NewQueue()
	calls := 0
	st.SubscribeWithScheduler(queue, func() { calls++ })

	st.Dispatch(MoveNext{})
	if calls != 0 {
		t.Fatalf("expected callback to be queued, got %d calls", calls)
	}
	if flushed := queue.Flush(); flushed != 1 {
		t.Fatalf("expected 1 flushed callback, got %d", flushed)
	}
	if calls != 1 {
		t.Fatalf("expected callback after flush, got %d", calls)
	}
}

func TestNewItemID_Unique(t *testing.T) {
	a, b := NewItemID(), NewItemID()
	if a == "" || a == b {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
