// Package roving implements roving-tabindex navigation: a container is
// a single tab stop and arrow keys move one internal focus position
// across an item sequence, skipping disabled items.
package roving

import "github.com/quietfox/headless/store"

// None marks the absence of an active position.
const None = -1

// Next returns the active index after a forward move. Disabled items
// are skipped. With clamp false the search wraps past the end;
// with clamp true it stops at the last enabled item.
func Next(items []store.Item, current int, clamp bool) int {
	return scan(items, current, 1, clamp)
}

// Prev returns the active index after a backward move.
func Prev(items []store.Item, current int, clamp bool) int {
	return scan(items, current, -1, clamp)
}

// First returns the index of the first enabled item, or None.
func First(items []store.Item) int {
	for i := range items {
		if !items[i].Disabled {
			return i
		}
	}
	return None
}

// Last returns the index of the last enabled item, or None.
func Last(items []store.Item) int {
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Disabled {
			return i
		}
	}
	return None
}

// Clamp revalidates an index against the item sequence. Out-of-range
// or disabled positions resolve to the nearest enabled item; an empty
// or fully disabled sequence resolves to None. Clamp is the defensive
// re-validation applied to override reducer output.
func Clamp(items []store.Item, index int) int {
	if len(items) == 0 {
		return None
	}
	if index == None {
		return None
	}
	if index < 0 {
		index = 0
	}
	if index >= len(items) {
		index = len(items) - 1
	}
	if !items[index].Disabled {
		return index
	}
	// Nearest enabled neighbor, preferring the following items.
	for offset := 1; offset < len(items); offset++ {
		if i := index + offset; i < len(items) && !items[i].Disabled {
			return i
		}
		if i := index - offset; i >= 0 && !items[i].Disabled {
			return i
		}
	}
	return None
}

// IndexOf returns the sequence position of an item id, or None.
func IndexOf(items []store.Item, id store.ItemID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return None
}

// scan walks the sequence one step at a time in the given direction.
// From None, a forward scan starts at the first item and a backward
// scan at the last.
func scan(items []store.Item, current, direction int, clamp bool) int {
	if len(items) == 0 {
		return None
	}
	// Out-of-range positions are treated as no position at all.
	if current < 0 || current >= len(items) {
		current = None
	}
	start := current
	if start == None {
		if direction > 0 {
			start = -1
		} else {
			start = len(items)
		}
	}
	index := start
	for step := 0; step < len(items); step++ {
		index += direction
		if index < 0 || index >= len(items) {
			if clamp {
				return current
			}
			index = (index + len(items)) % len(items)
		}
		if !items[index].Disabled {
			return index
		}
	}
	return current
}
