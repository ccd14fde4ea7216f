package halcyon

import "github.com/halcyon-ui/halcyon/geom"

// ============================================================================
// Input Primitives
// ============================================================================

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// Key is a platform-independent key code. The core only tracks identity
// (held / not held); the embedding window layer defines the full table.
type Key uint32

const (
	KeyEscape     Key = 0x01
	KeyEnter      Key = 0x02
	KeyTab        Key = 0x03
	KeySpace      Key = 0x04
	KeyArrowLeft  Key = 0x10
	KeyArrowRight Key = 0x11
	KeyArrowUp    Key = 0x12
	KeyArrowDown  Key = 0x13
)

// CursorIcon names a cursor image the embedding driver should display.
type CursorIcon uint8

const (
	CursorDefault CursorIcon = iota
	CursorPointer
	CursorText
	CursorCrosshair
	CursorMove
	CursorWait
)

// InputState is the snapshot of global input a widget observes while handling
// an event. All positional fields are in the receiving widget's local space;
// ButtonsDownInWidget is the subset of ButtonsDown that was pressed while the
// cursor was over the receiving widget.
type InputState struct {
	MousePos            *geom.Point
	ButtonsDown         []HeldButton
	ButtonsDownInWidget []HeldButton
	KeysDown            []Key
	Modifiers           Modifiers
}

// ============================================================================
// Widget Events
// ============================================================================

// WidgetEvent is a widget-scoped event produced by the dispatcher. Positional
// fields are translated into the receiving widget's local space before
// delivery.
type WidgetEvent interface {
	// translate shifts every positional field by v.
	translate(v geom.Vec) WidgetEvent
}

// MouseEnter is delivered when the cursor moves into the widget's rectangle.
type MouseEnter struct{}

// MouseExit is delivered when the cursor leaves the widget's rectangle or the
// window.
type MouseExit struct{}

// MouseMove reports cursor motion. InWidget is false when the cursor is over
// a child: ancestors of the hovered widget see the motion with InWidget
// unset.
type MouseMove struct {
	Old, New geom.Point
	InWidget bool
}

// MouseDown reports a button press. Clicks counts consecutive presses within
// the configured double-click window (1 = single).
type MouseDown struct {
	Pos      geom.Point
	InWidget bool
	Button   MouseButton
	Clicks   int
}

// MouseUp reports a button release. DownPos is where the matching press
// happened; PressedInWidget is true when that press was delivered to the same
// widget.
type MouseUp struct {
	Pos             geom.Point
	DownPos         geom.Point
	InWidget        bool
	PressedInWidget bool
	Button          MouseButton
	Clicks          int
}

// ScrollLines reports wheel motion in line units.
type ScrollLines struct {
	Dir geom.Vec
}

// ScrollPx reports wheel motion in pixel units.
type ScrollPx struct {
	Dir geom.Vec
}

// KeyDown reports a key press. The dispatcher suppresses auto-repeat: a key
// already tracked as held produces no second KeyDown.
type KeyDown struct {
	Key  Key
	Mods Modifiers
}

// KeyUp reports a key release.
type KeyUp struct {
	Key  Key
	Mods Modifiers
}

// CharInput reports translated character input.
type CharInput struct {
	Char rune
}

// FocusGained is delivered when the widget becomes the keyboard focus.
type FocusGained struct{}

// FocusLost is delivered when the widget stops being the keyboard focus.
type FocusLost struct{}

// TimerTick is delivered when one of the widget's registered timers fires.
type TimerTick struct {
	Timer TimerID
	Times uint32
}

func (e MouseEnter) translate(geom.Vec) WidgetEvent { return e }
func (e MouseExit) translate(geom.Vec) WidgetEvent  { return e }

func (e MouseMove) translate(v geom.Vec) WidgetEvent {
	e.Old = e.Old.Add(v)
	e.New = e.New.Add(v)
	return e
}

func (e MouseDown) translate(v geom.Vec) WidgetEvent {
	e.Pos = e.Pos.Add(v)
	return e
}

func (e MouseUp) translate(v geom.Vec) WidgetEvent {
	e.Pos = e.Pos.Add(v)
	e.DownPos = e.DownPos.Add(v)
	return e
}

func (e ScrollLines) translate(geom.Vec) WidgetEvent { return e }
func (e ScrollPx) translate(geom.Vec) WidgetEvent    { return e }
func (e KeyDown) translate(geom.Vec) WidgetEvent     { return e }
func (e KeyUp) translate(geom.Vec) WidgetEvent       { return e }
func (e CharInput) translate(geom.Vec) WidgetEvent   { return e }
func (e FocusGained) translate(geom.Vec) WidgetEvent { return e }
func (e FocusLost) translate(geom.Vec) WidgetEvent   { return e }
func (e TimerTick) translate(geom.Vec) WidgetEvent   { return e }

// ============================================================================
// Event Ops
// ============================================================================

// FocusChange is a widget's request to move the keyboard focus, returned from
// OnEvent via EventOps.
type FocusChange uint8

const (
	// FocusNone requests no change.
	FocusNone FocusChange = iota
	// FocusTake moves focus to the widget that returned the op.
	FocusTake
	// FocusRemove clears focus entirely.
	FocusRemove
	// FocusParent moves focus to the widget's parent.
	FocusParent
	// FocusNext moves focus to the next sibling, wrapping.
	FocusNext
	// FocusPrev moves focus to the previous sibling, wrapping.
	FocusPrev
)

// EventOps is what a widget's event handler hands back to the dispatcher.
// Every event path applies these through the same perform step, so behavior
// is uniform regardless of which event produced them.
type EventOps struct {
	// Action, when non-nil, is appended to the dispatcher's emitted-action
	// list for the embedding application to drain.
	Action any

	// Focus requests a keyboard-focus change.
	Focus FocusChange

	// Bubble lets the event continue to the widget's parent.
	Bubble bool

	// CursorPos, when non-nil, asks the driver to warp the cursor. The
	// position is widget-local; the offset view translates it back to
	// window space.
	CursorPos *geom.Point

	// Cursor, when non-nil, asks the driver to change the cursor icon.
	Cursor *CursorIcon
}

// ============================================================================
// Window Events
// ============================================================================

// WindowEvent is a raw input event from the embedding window layer, in
// window coordinates, before any widget targeting has happened.
type WindowEvent interface {
	isWindowEvent()
}

// WindowMouseMove reports cursor motion over the window.
type WindowMouseMove struct{ Pos geom.Point }

// WindowMouseExit reports the cursor leaving the window.
type WindowMouseExit struct{}

// WindowMouseDown reports a button press.
type WindowMouseDown struct{ Button MouseButton }

// WindowMouseUp reports a button release.
type WindowMouseUp struct{ Button MouseButton }

// WindowScrollLines reports wheel motion in line units.
type WindowScrollLines struct{ Dir geom.Vec }

// WindowScrollPx reports wheel motion in pixel units.
type WindowScrollPx struct{ Dir geom.Vec }

// WindowKeyDown reports a key press.
type WindowKeyDown struct {
	Key  Key
	Mods Modifiers
}

// WindowKeyUp reports a key release.
type WindowKeyUp struct {
	Key  Key
	Mods Modifiers
}

// WindowChar reports translated character input.
type WindowChar struct{ Char rune }

// WindowResize reports a new window size.
type WindowResize struct{ Size geom.Size }

func (WindowMouseMove) isWindowEvent()   {}
func (WindowMouseExit) isWindowEvent()   {}
func (WindowMouseDown) isWindowEvent()   {}
func (WindowMouseUp) isWindowEvent()     {}
func (WindowScrollLines) isWindowEvent() {}
func (WindowScrollPx) isWindowEvent()    {}
func (WindowKeyDown) isWindowEvent()     {}
func (WindowKeyUp) isWindowEvent()       {}
func (WindowChar) isWindowEvent()        {}
func (WindowResize) isWindowEvent()      {}
