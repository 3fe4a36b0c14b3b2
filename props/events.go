package props

// Event is a discrete input event delivered to a prop-getter handler.
// Events come from the rendering layer: keyboard, pointer, or focus.
type Event interface {
	isEvent()
}

// Key identifies a non-printable key.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyEscape
	KeyTab
	KeySpace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyBackspace
)

// KeyEvent is a keyboard input event.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool
	Alt   bool
	Ctrl  bool
}

func (KeyEvent) isEvent() {}

// PointerEvent is a click or tap on the bound element.
type PointerEvent struct {
	X, Y int
}

func (PointerEvent) isEvent() {}

// FocusEvent reports focus entering or leaving the bound element.
// Inside is true while focus remains somewhere within the widget.
type FocusEvent struct {
	Gained bool
	Inside bool
}

func (FocusEvent) isEvent() {}

// InputEvent carries replaced input text from a text field.
type InputEvent struct {
	Text string
}

func (InputEvent) isEvent() {}
