package halcyon

import (
	"reflect"

	"github.com/halcyon-ui/halcyon/geom"
)

// ============================================================================
// Widget Tag
// ============================================================================

// WidgetTag is the per-widget bookkeeping record: the widget's identity, its
// pending redraw/relayout requests, registered timers and message handlers,
// and a non-owning back-reference to the shared UpdateState of whatever tree
// the widget currently lives in.
//
// A tag is created with its widget (NewWidgetTag) and must be released when
// the widget is discarded so the shared state forgets it. Requests made while
// the widget is not yet part of a tree are buffered locally and flushed when
// the driver first discovers the widget.
type WidgetTag struct {
	id     WidgetID
	shared *UpdateState

	// Buffered requests for the unattached window between widget
	// construction and first traversal.
	pendingRedraw   bool
	pendingRelayout bool

	timers   map[TimerID]Timer
	handlers map[reflect.Type][]messageHandler

	// Buttons pressed while the cursor was over this widget. Used to compute
	// the widget-local held-button set and PressedInWidget on MouseUp.
	heldButtons []HeldButton

	// Set by the traversal stack when a descendant reported a pending
	// update while this widget's frame was still on the stack.
	childUpdated bool
}

// NewWidgetTag creates a tag with a fresh widget ID.
func NewWidgetTag() *WidgetTag {
	return &WidgetTag{id: NewWidgetID()}
}

// ID returns the widget's stable identity.
func (t *WidgetTag) ID() WidgetID { return t.id }

// RequestRedraw marks the widget as needing a repaint on the next frame.
// Idempotent.
func (t *WidgetTag) RequestRedraw() {
	if t.shared == nil {
		t.pendingRedraw = true
		return
	}
	t.shared.requestRedraw(t.id)
}

// RequestRelayout marks the widget as needing its children re-laid-out on the
// next frame. Idempotent.
func (t *WidgetTag) RequestRelayout() {
	if t.shared == nil {
		t.pendingRelayout = true
		return
	}
	t.shared.requestRelayout(t.id)
}

// SetCursorIcon asks the embedding driver to change the cursor image.
// Fails with ErrTagUnattached when the widget is not part of a tree yet.
func (t *WidgetTag) SetCursorIcon(icon CursorIcon) error {
	if t.shared == nil {
		return ErrTagUnattached
	}
	t.shared.requestCursorIcon(icon)
	return nil
}

// SetCursorPos asks the embedding driver to warp the cursor, in window
// coordinates. Fails with ErrTagUnattached when the widget is not part of a
// tree yet.
func (t *WidgetTag) SetCursorPos(pos geom.Point) error {
	if t.shared == nil {
		return ErrTagUnattached
	}
	t.shared.requestCursorPos(pos)
	return nil
}

// Release deregisters the widget from the shared update state. Call it when
// the widget is permanently removed from the tree.
func (t *WidgetTag) Release() {
	if t.shared == nil {
		return
	}
	t.shared.removeWidget(t.id)
	t.shared = nil
}

// attach wires the tag to a tree's shared update state, flushing any
// requests buffered while unattached. Re-attaching to the same state is a
// no-op.
func (t *WidgetTag) attach(s *UpdateState) {
	if t.shared == s {
		return
	}
	if t.shared != nil {
		t.shared.removeWidget(t.id)
	}
	t.shared = s
	if t.pendingRedraw {
		t.pendingRedraw = false
		s.requestRedraw(t.id)
	}
	if t.pendingRelayout {
		t.pendingRelayout = false
		s.requestRelayout(t.id)
	}
	if len(t.timers) > 0 {
		s.requestUpdateTimers(t.id)
	}
}

// needsUpdate reports whether the widget has any pending redraw/relayout or
// timer work recorded against the shared state.
func (t *WidgetTag) needsUpdate() bool {
	if t.pendingRedraw || t.pendingRelayout {
		return true
	}
	if t.shared == nil {
		return false
	}
	return t.shared.widgetNeedsUpdate(t.id)
}

// markChildUpdated records that a descendant reported a pending update while
// this widget was an active ancestor on the traversal stack.
func (t *WidgetTag) markChildUpdated() { t.childUpdated = true }

// ChildUpdated reports (and clears) the descendant-changed mark.
func (t *WidgetTag) ChildUpdated() bool {
	u := t.childUpdated
	t.childUpdated = false
	return u
}

// ============================================================================
// Per-widget mouse state
// ============================================================================

// HeldButton records a button press and where it happened.
type HeldButton struct {
	Button  MouseButton
	DownPos geom.Point
}

func (t *WidgetTag) pushButton(b MouseButton, pos geom.Point) {
	if t.holdsButton(b) {
		return
	}
	t.heldButtons = append(t.heldButtons, HeldButton{b, pos})
}

func (t *WidgetTag) releaseButton(b MouseButton) {
	for i, held := range t.heldButtons {
		if held.Button == b {
			t.heldButtons = append(t.heldButtons[:i], t.heldButtons[i+1:]...)
			return
		}
	}
}

func (t *WidgetTag) holdsButton(b MouseButton) bool {
	for _, held := range t.heldButtons {
		if held.Button == b {
			return true
		}
	}
	return false
}
