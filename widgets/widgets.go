// Package widgets provides headless widget machines: disclosure,
// listbox, tabs, menu, and combobox. Each machine owns one store,
// mutates it only through dispatched actions, and exposes per-role
// prop getters for a rendering layer to bind.
package widgets

// elementID derives a stable per-role element id from a store id.
// Rendering layers use these for id/aria-controls/activedescendant
// relationships.
func elementID(storeID, role string) string {
	return "hl-" + storeID + "-" + role
}

func itemElementID(storeID, itemID string) string {
	return "hl-" + storeID + "-item-" + itemID
}
