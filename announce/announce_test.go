package announce

import "testing"

func TestRegistry_FanOut(t *testing.T) {
	reg := NewRegistry()
	var first, second []Announcement
	reg.Subscribe(func(a Announcement) { first = append(first, a) })
	unsub := reg.Subscribe(func(a Announcement) { second = append(second, a) })

	reg.Announce("3 results", Polite)
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected delivery to both sinks, got %d and %d", len(first), len(second))
	}
	if first[0].Text != "3 results" || first[0].Priority != Polite {
		t.Fatalf("unexpected announcement %+v", first[0])
	}

	unsub()
	unsub() // second call is a no-op
	reg.Announce("selection changed", Assertive)
	if len(first) != 2 {
		t.Fatalf("expected remaining sink to receive, got %d", len(first))
	}
	if len(second) != 1 {
		t.Fatalf("expected unsubscribed sink to stop receiving, got %d", len(second))
	}
}

func TestRegistry_DropsEmptyText(t *testing.T) {
	reg := NewRegistry()
	calls := 0
	reg.Subscribe(func(Announcement) { calls++ })

	reg.Announce("", Assertive)
	if calls != 0 {
		t.Fatalf("expected empty announcement to be dropped, got %d calls", calls)
	}
}

func TestPriority_String(t *testing.T) {
	if Polite.String() != "polite" || Assertive.String() != "assertive" {
		t.Fatalf("unexpected priority names %q %q", Polite, Assertive)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must accept anything.
	Discard.Announce("ignored", Polite)
}
