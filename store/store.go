// Package store provides the reducer-based state container behind
// headless widget machines. Each widget instance owns one Store; all
// mutation flows through Dispatch as discrete actions.
package store

import (
	"errors"
	"sync"

	"github.com/oklog/ulid/v2"
)

// Reducer computes the next state from the current state and an action.
// Reducers must be pure with respect to their arguments.
type Reducer[S any] func(state S, action Action) S

// Override intercepts state transitions before the default reducer.
// It may delegate unhandled actions to next. Returning an invalid
// state never panics; consuming controllers clamp defensively.
type Override[S any] func(state S, action Action, next Reducer[S]) S

// EqualFunc compares two states to suppress redundant notifications.
type EqualFunc[S any] func(a, b S) bool

// Errors reported at construction.
var (
	ErrNilReducer         = errors.New("store: reducer is required")
	ErrValueWithoutChange = errors.New("store: controlled value requires an OnChange callback")
)

// Config configures a Store instance. The zero value is usable for a
// plain uncontrolled store.
type Config[S any] struct {
	// DefaultValue seeds an uncontrolled instance. Nil means zero value.
	DefaultValue *S
	// Value makes the instance controlled for its lifetime: reads come
	// from the external value and dispatches are forwarded through
	// OnChange instead of being applied locally.
	Value *S
	// OnChange is invoked with every committed (or, when controlled,
	// proposed) next state. Required when Value is set.
	OnChange func(S)
	// Override intercepts transitions ahead of the default reducer.
	Override Override[S]
	// Equal suppresses notifications for states it reports equal.
	Equal EqualFunc[S]
	// OnDiagnostic receives recoverable misuse reports.
	OnDiagnostic DiagnosticFunc
}

type subscriber struct {
	fn        func()
	scheduler Scheduler
}

// Store holds one widget's state snapshot and applies actions to it.
// Snapshots are replaced wholesale; a Store never hands out mutable
// internal references.
type Store[S any] struct {
	mu         sync.Mutex
	id         string
	reducer    Reducer[S]
	override   Override[S]
	value      S
	external   S
	controlled bool
	onChange   func(S)
	equal      EqualFunc[S]
	diag       DiagnosticFunc
	subs       map[int]subscriber
	next       int
}

// New creates a store around the default reducer for a widget kind.
func New[S any](reducer Reducer[S], cfg Config[S]) (*Store[S], error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	if cfg.Value != nil && cfg.OnChange == nil {
		return nil, ErrValueWithoutChange
	}
	s := &Store[S]{
		id:       ulid.Make().String(),
		reducer:  reducer,
		override: cfg.Override,
		onChange: cfg.OnChange,
		equal:    cfg.Equal,
		diag:     cfg.OnDiagnostic,
	}
	if cfg.Value != nil {
		s.controlled = true
		s.external = *cfg.Value
	} else if cfg.DefaultValue != nil {
		s.value = *cfg.DefaultValue
	}
	return s, nil
}

// ID returns the instance identifier used in diagnostics.
func (s *Store[S]) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Controlled reports whether external state is authoritative.
func (s *Store[S]) Controlled() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	controlled := s.controlled
	s.mu.Unlock()
	return controlled
}

// State returns the current authoritative snapshot.
func (s *Store[S]) State() S {
	if s == nil {
		var zero S
		return zero
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.controlled {
		return s.external
	}
	return s.value
}

// Dispatch reduces the current state and action to the next state.
// Uncontrolled instances commit the result and notify subscribers.
// Controlled instances forward the proposed state through OnChange
// and leave the authoritative value untouched.
// The returned state is the authoritative state after dispatch.
func (s *Store[S]) Dispatch(action Action) S {
	if s == nil || action == nil {
		var zero S
		return zero
	}
	current := s.State()
	next := s.reduce(current, action)
	if s.equal != nil && s.equal(current, next) {
		return current
	}

	s.mu.Lock()
	controlled := s.controlled
	if !controlled {
		s.value = next
	}
	subs := s.copySubscribersLocked()
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(next)
	}
	if controlled {
		return current
	}
	s.notify(subs)
	return next
}

// SetExternal replaces the externally controlled value. Calling it on
// an uncontrolled instance permanently switches the instance to
// controlled mode and emits a diagnostic; the mode never flips back.
func (s *Store[S]) SetExternal(value S) {
	if s == nil {
		return
	}
	s.mu.Lock()
	switched := !s.controlled
	s.controlled = true
	s.external = value
	subs := s.copySubscribersLocked()
	id := s.id
	s.mu.Unlock()

	if switched {
		s.diag.emit(Diagnostic{
			Kind:   DiagControlModeSwitch,
			Store:  id,
			Detail: "external value supplied after uncontrolled initialization",
		})
	}
	s.notify(subs)
}

// Diagnose forwards a diagnostic through the configured sink, stamping
// it with this store's id. Controllers layered above the store use it
// to report clamped override output and dropped async results.
func (s *Store[S]) Diagnose(kind DiagnosticKind, detail string) {
	if s == nil {
		return
	}
	s.diag.emit(Diagnostic{Kind: kind, Store: s.id, Detail: detail})
}

// Subscribe registers a listener for committed state changes.
func (s *Store[S]) Subscribe(fn func()) func() {
	return s.SubscribeWithScheduler(nil, fn)
}

// SubscribeWithScheduler registers a listener dispatched through a
// scheduler. A nil scheduler runs the listener synchronously.
func (s *Store[S]) SubscribeWithScheduler(scheduler Scheduler, fn func()) func() {
	if s == nil || fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]subscriber)
	}
	id := s.next
	s.next++
	s.subs[id] = subscriber{fn: fn, scheduler: scheduler}
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store[S]) reduce(current S, action Action) S {
	if s.override != nil {
		return s.override(current, action, s.reducer)
	}
	return s.reducer(current, action)
}

func (s *Store[S]) copySubscribersLocked() []subscriber {
	if len(s.subs) == 0 {
		return nil
	}
	subs := make([]subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	return subs
}

func (s *Store[S]) notify(subs []subscriber) {
	for _, sub := range subs {
		if sub.fn == nil {
			continue
		}
		if sub.scheduler == nil {
			sub.fn()
			continue
		}
		sub.scheduler.Schedule(sub.fn)
	}
}
