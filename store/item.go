package store

import "github.com/oklog/ulid/v2"

// ItemID uniquely identifies an item within a widget's item sequence.
// IDs are owned by the caller; the engine never inspects item content.
type ItemID string

// Item is one entry in a widget's ordered item sequence. Disabled items
// keep their sequence position but are never navigation targets.
type Item struct {
	ID       ItemID
	Disabled bool
	// MatchText is the text typeahead and filtering match against.
	// It doubles as the committed display text for selections.
	MatchText string
}

// NewItemID mints a unique item id for callers without natural keys.
func NewItemID() ItemID {
	return ItemID(ulid.Make().String())
}
