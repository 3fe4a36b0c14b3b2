package widgets

import (
	"context"
	"strconv"
	"strings"

	"github.com/quietfox/headless/announce"
	"github.com/quietfox/headless/props"
	"github.com/quietfox/headless/roving"
	"github.com/quietfox/headless/store"
)

// ComboboxState is the interaction state of a combobox: a text input
// paired with a filtered, keyboard-navigable option list.
type ComboboxState struct {
	Open bool
	// Input is the current in-progress text.
	Input string
	// Highlighted indexes the filtered sequence, or roving.None.
	Highlighted int
	// Selected is the committed item id, or "".
	Selected store.ItemID
	// Committed is the display text of the last committed selection.
	// Escape reverts Input to it.
	Committed string
}

// FilterFunc reports whether an item matches the current input text.
type FilterFunc func(item store.Item, input string) bool

// ContainsFold is the default filter: case-insensitive substring match
// against MatchText.
func ContainsFold(item store.Item, input string) bool {
	return strings.Contains(strings.ToLower(item.MatchText), strings.ToLower(input))
}

// ComboboxConfig configures a Combobox machine.
type ComboboxConfig struct {
	// Items is the static item source. Ignored when Source is set.
	Items []store.Item
	// Filter matches items against input text; nil means ContainsFold.
	// Ignored when Source is set.
	Filter FilterFunc
	// Source filters asynchronously. Results are delivered through
	// Post (or applied directly when Post is nil) and only the newest
	// query may apply.
	Source Source
	// Post routes query results back to the goroutine that owns the
	// machine, typically an event loop. Nil applies results directly
	// from the query goroutine; only safe for synchronous sources.
	Post func(QueryResult)

	// Wrap enables wrap-around arrow navigation. Comboboxes clamp at
	// the ends by default.
	Wrap bool
	// HighlightFirst highlights the first match after filtering
	// instead of leaving the highlight empty.
	HighlightFirst bool
	// OpenOnFocus opens the list when the input gains focus.
	OpenOnFocus bool
	// CommitOnBlur commits the highlighted item when focus leaves the
	// widget; by default blur closes without committing.
	CommitOnBlur bool
	// KeepInputOnEscape leaves the in-progress text in place on
	// Escape instead of reverting to the last committed value.
	KeepInputOnEscape bool

	DefaultState *ComboboxState
	Value        *ComboboxState
	OnChange     func(ComboboxState)
	Reducer      store.Override[ComboboxState]
	OnDiagnostic store.DiagnosticFunc
	// OnSelect fires when a selection is committed.
	OnSelect func(store.Item)
	// Announcer receives result-count and selection announcements.
	Announcer announce.Announcer
}

// Combobox manages open state, filtered item set, and highlighted
// selection for an autocomplete input.
type Combobox struct {
	store      *store.Store[ComboboxState]
	items      []store.Item
	filtered   []store.Item
	filter     FilterFunc
	source     Source
	post       func(QueryResult)
	queries    queryCoordinator
	wrap       bool
	first      bool
	openFocus  bool
	commitBlur bool
	keepInput  bool
	onSelect   func(store.Item)
	announcer  announce.Announcer
}

// NewCombobox creates a combobox machine.
func NewCombobox(cfg ComboboxConfig) (*Combobox, error) {
	c := &Combobox{
		items:      cfg.Items,
		filter:     cfg.Filter,
		source:     cfg.Source,
		post:       cfg.Post,
		wrap:       cfg.Wrap,
		first:      cfg.HighlightFirst,
		openFocus:  cfg.OpenOnFocus,
		commitBlur: cfg.CommitOnBlur,
		keepInput:  cfg.KeepInputOnEscape,
		onSelect:   cfg.OnSelect,
		announcer:  cfg.Announcer,
	}
	if c.filter == nil {
		c.filter = ContainsFold
	}
	if c.announcer == nil {
		c.announcer = announce.Discard
	}
	if c.source == nil {
		c.filtered = filterItems(c.items, c.filter, "")
	}
	storeCfg := store.Config[ComboboxState]{
		Value:        cfg.Value,
		OnChange:     cfg.OnChange,
		Override:     cfg.Reducer,
		Equal:        func(a, b ComboboxState) bool { return a == b },
		OnDiagnostic: cfg.OnDiagnostic,
	}
	if cfg.DefaultState != nil {
		storeCfg.DefaultValue = cfg.DefaultState
	} else {
		storeCfg.DefaultValue = &ComboboxState{Highlighted: roving.None}
	}
	st, err := store.New(c.reduce, storeCfg)
	if err != nil {
		return nil, err
	}
	c.store = st
	return c, nil
}

func filterItems(items []store.Item, filter FilterFunc, input string) []store.Item {
	filtered := make([]store.Item, 0, len(items))
	for _, item := range items {
		if filter(item, input) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func (c *Combobox) reduce(s ComboboxState, action store.Action) ComboboxState {
	switch a := action.(type) {
	case store.SetInput:
		s.Input = a.Text
		s.Open = true
		s.Highlighted = c.initialHighlight()
	case store.FilterResolved:
		s.Highlighted = c.initialHighlight()
	case store.Open:
		s.Open = true
	case store.Toggle:
		s.Open = !s.Open
		if !s.Open {
			s.Highlighted = roving.None
		}
	case store.Close:
		s.Open = false
		s.Highlighted = roving.None
	case store.Escape:
		s.Open = false
		s.Highlighted = roving.None
		if !c.keepInput {
			s.Input = s.Committed
		}
	case store.Blur:
		if !s.Open {
			break
		}
		if c.commitBlur {
			// Re-validate before committing; an override reducer
			// may have stored an out-of-range highlight.
			if index := roving.Clamp(c.filtered, s.Highlighted); index != roving.None {
				s = c.commit(s, index)
				break
			}
		}
		s.Open = false
		s.Highlighted = roving.None
	case store.MoveNext:
		if s.Open {
			s.Highlighted = roving.Next(c.filtered, s.Highlighted, !c.wrap)
		}
	case store.MovePrev:
		if s.Open {
			s.Highlighted = roving.Prev(c.filtered, s.Highlighted, !c.wrap)
		}
	case store.MoveFirst:
		if s.Open {
			s.Highlighted = roving.First(c.filtered)
		}
	case store.MoveLast:
		if s.Open {
			s.Highlighted = roving.Last(c.filtered)
		}
	case store.Select:
		index := roving.IndexOf(c.filtered, a.ID)
		if a.ID == "" {
			index = roving.Clamp(c.filtered, s.Highlighted)
		}
		if index == roving.None || c.filtered[index].Disabled {
			break
		}
		s = c.commit(s, index)
	case store.ItemsChanged:
		s.Highlighted = roving.Clamp(c.filtered, s.Highlighted)
	}
	return s
}

// commit applies a selection: committed text becomes the item's
// display text and the list closes.
func (c *Combobox) commit(s ComboboxState, index int) ComboboxState {
	item := c.filtered[index]
	s.Selected = item.ID
	s.Input = item.MatchText
	s.Committed = item.MatchText
	s.Open = false
	s.Highlighted = roving.None
	return s
}

func (c *Combobox) initialHighlight() int {
	if c.first {
		return roving.First(c.filtered)
	}
	return roving.None
}

// State returns the current snapshot, defensively clamped against the
// current filtered sequence.
func (c *Combobox) State() ComboboxState {
	if c == nil {
		return ComboboxState{Highlighted: roving.None}
	}
	s := c.store.State()
	if clamped := roving.Clamp(c.filtered, s.Highlighted); clamped != s.Highlighted {
		c.store.Diagnose(store.DiagOverrideContract, "highlighted index out of range; clamped")
		s.Highlighted = clamped
	}
	return s
}

// FilteredItems returns the current filtered item sequence.
func (c *Combobox) FilteredItems() []store.Item {
	if c == nil {
		return nil
	}
	return c.filtered
}

// SetItems replaces the static item source, refilters against the
// current input, and revalidates the highlight.
func (c *Combobox) SetItems(items []store.Item) {
	if c == nil || c.source != nil {
		return
	}
	c.items = items
	c.filtered = filterItems(c.items, c.filter, c.store.State().Input)
	c.store.Dispatch(store.ItemsChanged{})
}

// SetInput replaces the input text, opens the list, and refilters.
// With a static source filtering is synchronous; with an async Source
// a new query is issued and any outstanding one is superseded.
func (c *Combobox) SetInput(text string) ComboboxState {
	if c == nil {
		return ComboboxState{Highlighted: roving.None}
	}
	if c.source == nil {
		c.filtered = filterItems(c.items, c.filter, text)
		after := c.store.Dispatch(store.SetInput{Text: text})
		c.announceResults()
		return after
	}

	after := c.store.Dispatch(store.SetInput{Text: text})
	seq, ctx := c.queries.next(context.Background())
	go func() {
		items, err := c.source.Query(ctx, text)
		result := QueryResult{Seq: seq, Text: text, Items: items, Err: err}
		if c.post != nil {
			c.post(result)
			return
		}
		c.Resolve(result)
	}()
	return after
}

// Resolve applies an async query result. Stale results (anything but
// the newest issued sequence) are dropped without touching state and
// reported through the diagnostic sink. Must be called on the
// goroutine that owns the machine.
func (c *Combobox) Resolve(result QueryResult) {
	if c == nil {
		return
	}
	if result.Seq != c.queries.latest() {
		c.store.Diagnose(store.DiagStaleAsyncResult,
			"query "+strconv.FormatUint(result.Seq, 10)+" superseded; result dropped")
		return
	}
	if result.Err != nil {
		// The failed query keeps the previous filtered sequence; the
		// widget stays usable.
		return
	}
	c.filtered = result.Items
	c.store.Dispatch(store.FilterResolved{Seq: result.Seq})
	c.announceResults()
}

// Stop cancels any outstanding query. Call on teardown.
func (c *Combobox) Stop() {
	if c == nil {
		return
	}
	c.queries.stop()
}

func (c *Combobox) announceResults() {
	n := len(c.filtered)
	if n == 1 {
		c.announcer.Announce("1 result", announce.Polite)
		return
	}
	c.announcer.Announce(strconv.Itoa(n)+" results", announce.Polite)
}

// Dispatch routes an action through the machine, firing selection
// callbacks when a commit lands.
func (c *Combobox) Dispatch(action store.Action) ComboboxState {
	if c == nil {
		return ComboboxState{Highlighted: roving.None}
	}
	if input, ok := action.(store.SetInput); ok {
		return c.SetInput(input.Text)
	}
	before := c.store.State()
	after := c.store.Dispatch(action)
	if after.Selected != before.Selected && after.Selected != "" {
		index := roving.IndexOf(c.filtered, after.Selected)
		if index != roving.None {
			item := c.filtered[index]
			if c.onSelect != nil {
				c.onSelect(item)
			}
			c.announcer.Announce(item.MatchText+" selected", announce.Polite)
		}
	}
	return after
}

// Subscribe registers a listener for committed state changes.
func (c *Combobox) Subscribe(fn func()) func() {
	if c == nil {
		return func() {}
	}
	return c.store.Subscribe(fn)
}

// InputProps returns the attribute/handler set for the text input.
func (c *Combobox) InputProps() props.Props {
	if c == nil {
		return props.Props{}
	}
	state := c.State()
	listID := elementID(c.store.ID(), "listbox")
	attrs := map[string]string{
		"id":                elementID(c.store.ID(), "input"),
		"role":              "combobox",
		"aria-autocomplete": "list",
		"aria-expanded":     props.Bool(state.Open),
		"aria-controls":     listID,
		"value":             state.Input,
	}
	if state.Highlighted != roving.None {
		attrs["aria-activedescendant"] = itemElementID(c.store.ID(), string(c.filtered[state.Highlighted].ID))
	}
	return props.Props{
		Attrs: attrs,
		Handlers: map[string]props.Handler{
			props.OnInput: func(ev props.Event) {
				input, ok := ev.(props.InputEvent)
				if !ok {
					return
				}
				c.SetInput(input.Text)
			},
			props.OnKeyDown: c.handleKey,
			props.OnFocus: func(props.Event) {
				if c.openFocus {
					c.Dispatch(store.Open{})
				}
			},
			props.OnBlur: func(ev props.Event) {
				focus, ok := ev.(props.FocusEvent)
				if ok && focus.Inside {
					return
				}
				c.Dispatch(store.Blur{})
			},
		},
	}
}

// ListProps returns the attribute set for the option list surface.
func (c *Combobox) ListProps() props.Props {
	if c == nil {
		return props.Props{}
	}
	state := c.State()
	attrs := map[string]string{
		"id":   elementID(c.store.ID(), "listbox"),
		"role": "listbox",
	}
	if !state.Open {
		attrs["hidden"] = "true"
	}
	return props.Props{Attrs: attrs}
}

// OptionProps returns the attribute/handler set for the filtered item
// at index.
func (c *Combobox) OptionProps(index int) props.Props {
	if c == nil || index < 0 || index >= len(c.filtered) {
		return props.Props{}
	}
	state := c.State()
	item := c.filtered[index]
	return props.Props{
		Attrs: map[string]string{
			"id":            itemElementID(c.store.ID(), string(item.ID)),
			"role":          "option",
			"aria-selected": props.Bool(item.ID == state.Selected),
			"aria-disabled": props.Bool(item.Disabled),
		},
		Handlers: map[string]props.Handler{
			props.OnClick: func(props.Event) {
				c.Dispatch(store.Select{ID: item.ID})
			},
		},
	}
}

func (c *Combobox) handleKey(ev props.Event) {
	key, ok := ev.(props.KeyEvent)
	if !ok {
		return
	}
	state := c.store.State()
	switch key.Key {
	case props.KeyDown:
		if !state.Open {
			c.Dispatch(store.Open{})
		}
		c.Dispatch(store.MoveNext{})
	case props.KeyUp:
		if !state.Open {
			c.Dispatch(store.Open{})
		}
		c.Dispatch(store.MovePrev{})
	case props.KeyHome:
		c.Dispatch(store.MoveFirst{})
	case props.KeyEnd:
		c.Dispatch(store.MoveLast{})
	case props.KeyEnter:
		c.Dispatch(store.Select{})
	case props.KeyEscape:
		c.Dispatch(store.Escape{})
	}
}
