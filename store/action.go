package store

// Action is an intent dispatched into a Store.
// Actions are the only way to mutate widget state; there are no setters.
type Action interface {
	isAction()
}

// Toggle flips a binary open/closed state.
type Toggle struct{}

func (Toggle) isAction() {}

// Open transitions a widget to its open state.
type Open struct{}

func (Open) isAction() {}

// Close transitions a widget to its closed state.
type Close struct{}

func (Close) isAction() {}

// MoveNext advances the active position, skipping disabled items.
type MoveNext struct{}

func (MoveNext) isAction() {}

// MovePrev retreats the active position, skipping disabled items.
type MovePrev struct{}

func (MovePrev) isAction() {}

// MoveFirst jumps to the first enabled item.
type MoveFirst struct{}

func (MoveFirst) isAction() {}

// MoveLast jumps to the last enabled item.
type MoveLast struct{}

func (MoveLast) isAction() {}

// Select commits a selection by item id.
// A zero ID commits the currently active item.
type Select struct {
	ID ItemID
}

func (Select) isAction() {}

// SetInput replaces the current input text of a text-driven widget.
type SetInput struct {
	Text string
}

func (SetInput) isAction() {}

// Typeahead feeds one printable character into the typeahead buffer.
type Typeahead struct {
	Rune rune
}

func (Typeahead) isAction() {}

// ActivateTrap requests focus trapping for the widget's region.
type ActivateTrap struct{}

func (ActivateTrap) isAction() {}

// DeactivateTrap releases focus trapping and restores prior focus.
type DeactivateTrap struct{}

func (DeactivateTrap) isAction() {}

// ItemsChanged signals that the item sequence backing a widget was
// replaced. Reducers revalidate indices against the new sequence.
type ItemsChanged struct{}

func (ItemsChanged) isAction() {}

// FilterResolved carries the outcome of an asynchronous filter query.
// Only the newest query sequence may reach a reducer; stale results
// are dropped before dispatch.
type FilterResolved struct {
	Seq uint64
}

func (FilterResolved) isAction() {}

// Blur signals that focus left the widget entirely.
type Blur struct{}

func (Blur) isAction() {}

// Escape signals the dismiss key.
type Escape struct{}

func (Escape) isAction() {}
