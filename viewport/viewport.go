// Package viewport computes windowed views over item sequences so a
// renderer can keep the active item visible without owning scroll
// state. The machines report indices; the window turns them into a
// stable visible range.
package viewport

// Window tracks the visible slice of an item sequence.
type Window struct {
	size   int
	offset int
}

// NewWindow creates a window showing size items at a time.
func NewWindow(size int) *Window {
	if size < 0 {
		size = 0
	}
	return &Window{size: size}
}

// Size returns the window size in items.
func (w *Window) Size() int {
	if w == nil {
		return 0
	}
	return w.size
}

// SetSize changes the window size, keeping the current offset.
func (w *Window) SetSize(size int) {
	if w == nil {
		return
	}
	if size < 0 {
		size = 0
	}
	w.size = size
}

// Offset returns the index of the first visible item.
func (w *Window) Offset() int {
	if w == nil {
		return 0
	}
	return w.offset
}

// Clamp constrains the offset to the valid range for count items.
func (w *Window) Clamp(count int) {
	if w == nil {
		return
	}
	max := count - w.size
	if max < 0 {
		max = 0
	}
	if w.offset > max {
		w.offset = max
	}
	if w.offset < 0 {
		w.offset = 0
	}
}

// Reveal scrolls the minimum distance that brings index into view.
// Negative indices leave the window where it is.
func (w *Window) Reveal(index, count int) {
	if w == nil {
		return
	}
	w.Clamp(count)
	if index < 0 || index >= count || w.size == 0 {
		return
	}
	if index < w.offset {
		w.offset = index
		return
	}
	if index >= w.offset+w.size {
		w.offset = index - w.size + 1
	}
}

// PageBy moves the window by whole pages, clamped to count items.
func (w *Window) PageBy(pages, count int) {
	if w == nil {
		return
	}
	w.offset += pages * w.size
	w.Clamp(count)
}

// Slice returns the visible half-open range [start, end) for count
// items.
func (w *Window) Slice(count int) (start, end int) {
	if w == nil {
		return 0, 0
	}
	w.Clamp(count)
	start = w.offset
	end = start + w.size
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}
	return start, end
}

// RowIndex maps item indices to pixel or cell offsets for sequences
// of uniform row height.
type RowIndex struct {
	// RowHeight is the height of every row. Non-positive heights
	// collapse the index to zero.
	RowHeight int
	// Count supplies the current item count.
	Count func() int
}

// TotalHeight returns the height of all rows together.
func (r RowIndex) TotalHeight() int {
	if r.RowHeight <= 0 {
		return 0
	}
	count := r.count()
	return r.RowHeight * count
}

// IndexAt returns the item index at a given offset, clamped to the
// sequence.
func (r RowIndex) IndexAt(offset int) int {
	if r.RowHeight <= 0 || offset <= 0 {
		return 0
	}
	index := offset / r.RowHeight
	last := r.count() - 1
	if last < 0 {
		return 0
	}
	if index > last {
		index = last
	}
	return index
}

// OffsetOf returns the offset of the given item index.
func (r RowIndex) OffsetOf(index int) int {
	if r.RowHeight <= 0 || index <= 0 {
		return 0
	}
	count := r.count()
	if count <= 0 {
		return 0
	}
	if index >= count {
		index = count - 1
	}
	return index * r.RowHeight
}

func (r RowIndex) count() int {
	if r.Count == nil {
		return 0
	}
	count := r.Count()
	if count < 0 {
		return 0
	}
	return count
}
