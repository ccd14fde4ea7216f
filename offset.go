package halcyon

import "github.com/halcyon-ui/halcyon/geom"

// ============================================================================
// Offset Views
// ============================================================================

// OffsetWidget wraps a widget with the window-space origin of its parent's
// content area, presenting the widget's geometry in window coordinates while
// the widget itself keeps storing parent-relative rectangles. It also carries
// the clip rectangle accumulated from the widget's ancestors.
//
// OffsetWidget is a value; it is cheap to construct during traversal and
// holds no state beyond the wrapped widget pointer.
type OffsetWidget struct {
	w      Widget
	offset geom.Vec
	clip   *geom.Rect
}

// NewOffsetWidget wraps w with the given parent-content origin and inherited
// clip. A nil clip means no ancestor constrains the widget.
func NewOffsetWidget(w Widget, offset geom.Vec, clip *geom.Rect) OffsetWidget {
	return OffsetWidget{w: w, offset: offset, clip: clip}
}

// Inner returns the wrapped widget.
func (o OffsetWidget) Inner() Widget { return o.w }

// Tag returns the wrapped widget's tag.
func (o OffsetWidget) Tag() *WidgetTag { return o.w.Tag() }

// ID returns the wrapped widget's identity.
func (o OffsetWidget) ID() WidgetID { return o.w.Tag().ID() }

// Rect returns the widget's rectangle in window coordinates.
func (o OffsetWidget) Rect() geom.Rect {
	return o.w.Rect().Translate(o.offset)
}

// RectLocal returns the widget's stored parent-relative rectangle.
func (o OffsetWidget) RectLocal() geom.Rect { return o.w.Rect() }

// Clip returns the clip rectangle inherited from ancestors, nil when
// unclipped. Window coordinates.
func (o OffsetWidget) Clip() *geom.Rect { return o.clip }

// RectClipped returns the window-space rectangle intersected with the
// inherited clip. ok is false when the widget is entirely clipped away.
func (o OffsetWidget) RectClipped() (geom.Rect, bool) {
	r := o.Rect()
	if o.clip == nil {
		return r, !r.Empty()
	}
	return r.Intersect(*o.clip)
}

// SetRect stores a new rectangle given in window coordinates, converting it
// back to the widget's parent-relative space.
func (o OffsetWidget) SetRect(r geom.Rect) {
	o.w.SetRect(r.Translate(o.offset.Neg()))
}

// SizeBounds returns the wrapped widget's layout size bounds.
func (o OffsetWidget) SizeBounds() SizeBounds { return o.w.SizeBounds() }

// DeliverEvent hands a window-space event to the widget in its local space:
// every positional field of the event and of the input snapshot is shifted by
// the widget's window origin before OnEvent runs, and positional ops in the
// result are shifted back to window space.
func (o OffsetWidget) DeliverEvent(event WidgetEvent, source []Ident, state InputState) EventOps {
	origin := o.Rect().Origin()
	toLocal := origin.Neg()

	local := state
	if state.MousePos != nil {
		p := state.MousePos.Sub(origin)
		local.MousePos = &p
	}
	local.ButtonsDown = translateHeld(state.ButtonsDown, toLocal)
	local.ButtonsDownInWidget = translateHeld(o.Tag().heldButtons, toLocal)

	ops := o.w.OnEvent(event.translate(toLocal), source, local)

	if ops.CursorPos != nil {
		p := ops.CursorPos.Add(origin)
		ops.CursorPos = &p
	}
	return ops
}

// translateHeld copies held-button records with their press positions shifted
// by v. The input slice is never aliased: widgets may retain what they see.
func translateHeld(held []HeldButton, v geom.Vec) []HeldButton {
	if len(held) == 0 {
		return nil
	}
	out := make([]HeldButton, len(held))
	for i, h := range held {
		out[i] = HeldButton{Button: h.Button, DownPos: h.DownPos.Add(v)}
	}
	return out
}

// ============================================================================
// Offset Parent
// ============================================================================

// OffsetChildInfo is ChildInfo with the child already wrapped in the
// coordinate space it should be observed in.
type OffsetChildInfo struct {
	Ident  Ident
	Index  int
	Widget OffsetWidget
}

// OffsetParent is the parent-capable view of an OffsetWidget. Children it
// hands out carry this widget's window origin as their offset and this
// widget's clipped rectangle as their clip.
type OffsetParent struct {
	OffsetWidget
	parent Parent
}

// AsParent returns the parent view of the widget, or false if the wrapped
// widget has no children.
func (o OffsetWidget) AsParent() (OffsetParent, bool) {
	p, ok := AsParent(o.w)
	if !ok {
		return OffsetParent{}, false
	}
	return OffsetParent{OffsetWidget: o, parent: p}, true
}

// childClip computes the clip children inherit: this widget's own clipped
// window rectangle. An entirely clipped parent clips out all descendants.
func (op OffsetParent) childClip() *geom.Rect {
	r, ok := op.RectClipped()
	if !ok {
		empty := geom.Rect{}
		return &empty
	}
	return &r
}

func (op OffsetParent) wrapChild(c ChildInfo) OffsetChildInfo {
	return OffsetChildInfo{
		Ident:  c.Ident,
		Index:  c.Index,
		Widget: NewOffsetWidget(c.Widget, op.Rect().Origin(), op.childClip()),
	}
}

// NumChildren returns how many children the widget exposes.
func (op OffsetParent) NumChildren() int { return op.parent.NumChildren() }

// Child returns the child with the given ident, wrapped.
func (op OffsetParent) Child(ident Ident) (OffsetChildInfo, bool) {
	c, ok := op.parent.Child(ident)
	if !ok {
		return OffsetChildInfo{}, false
	}
	return op.wrapChild(c), true
}

// ChildByIndex returns the child at the given position, wrapped.
func (op OffsetParent) ChildByIndex(index int) (OffsetChildInfo, bool) {
	c, ok := op.parent.ChildByIndex(index)
	if !ok {
		return OffsetChildInfo{}, false
	}
	return op.wrapChild(c), true
}

// Children visits every child in order, wrapped.
func (op OffsetParent) Children(visit func(OffsetChildInfo) LoopFlow) {
	op.parent.Children(func(c ChildInfo) LoopFlow {
		return visit(op.wrapChild(c))
	})
}

// UpdateChildLayout forwards to the wrapped parent.
func (op OffsetParent) UpdateChildLayout() { op.parent.UpdateChildLayout() }
