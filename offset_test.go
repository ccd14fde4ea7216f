package halcyon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ui/halcyon/geom"
)

func TestOffsetWidgetRects(t *testing.T) {
	log := &eventLog{}
	w := newTestWidget("w", geom.R(10, 10, 110, 60), log)
	ow := NewOffsetWidget(w, geom.V(100, 200), nil)

	assert.Equal(t, geom.R(110, 210, 210, 260), ow.Rect())
	assert.Equal(t, geom.R(10, 10, 110, 60), ow.RectLocal())

	// Setting through the view converts window space back to local.
	ow.SetRect(geom.R(120, 220, 220, 270))
	assert.Equal(t, geom.R(20, 20, 120, 70), w.Rect())
}

func TestOffsetWidgetRectClipped(t *testing.T) {
	log := &eventLog{}
	w := newTestWidget("w", geom.R(0, 0, 100, 100), log)

	unclipped := NewOffsetWidget(w, geom.V(50, 50), nil)
	r, ok := unclipped.RectClipped()
	require.True(t, ok)
	assert.Equal(t, geom.R(50, 50, 150, 150), r)

	clip := geom.R(0, 0, 120, 120)
	clipped := NewOffsetWidget(w, geom.V(50, 50), &clip)
	r, ok = clipped.RectClipped()
	require.True(t, ok)
	assert.Equal(t, geom.R(50, 50, 120, 120), r)

	far := geom.R(500, 500, 600, 600)
	gone := NewOffsetWidget(w, geom.V(50, 50), &far)
	_, ok = gone.RectClipped()
	assert.False(t, ok)
}

func TestOffsetWidgetDeliverEvent(t *testing.T) {
	log := &eventLog{}
	w := newTestWidget("w", geom.R(10, 10, 110, 60), log)
	w.tag.pushButton(ButtonLeft, geom.Pt(120, 230)) // window space
	w.ops = func(WidgetEvent) EventOps {
		pos := geom.Pt(1, 2)
		return EventOps{CursorPos: &pos}
	}
	ow := NewOffsetWidget(w, geom.V(100, 200), nil) // window rect (110,210)-(210,260)

	mouse := geom.Pt(130, 240)
	state := InputState{
		MousePos:    &mouse,
		ButtonsDown: []HeldButton{{Button: ButtonLeft, DownPos: geom.Pt(120, 230)}},
	}
	ops := ow.DeliverEvent(MouseMove{Old: geom.Pt(120, 230), New: geom.Pt(130, 240), InWidget: true}, nil, state)

	events := log.take()
	require.Len(t, events, 1)
	move := events[0].event.(MouseMove)
	assert.Equal(t, geom.Pt(10, 20), move.Old)
	assert.Equal(t, geom.Pt(20, 30), move.New)

	got := events[0].state
	require.NotNil(t, got.MousePos)
	assert.Equal(t, geom.Pt(20, 30), *got.MousePos)
	require.Len(t, got.ButtonsDown, 1)
	assert.Equal(t, geom.Pt(10, 20), got.ButtonsDown[0].DownPos)
	require.Len(t, got.ButtonsDownInWidget, 1)
	assert.Equal(t, geom.Pt(10, 20), got.ButtonsDownInWidget[0].DownPos)

	// The cursor-warp request came back out in window space.
	require.NotNil(t, ops.CursorPos)
	assert.Equal(t, geom.Pt(111, 212), *ops.CursorPos)

	// The caller's snapshot was not mutated.
	assert.Equal(t, geom.Pt(120, 230), state.ButtonsDown[0].DownPos)
}

func TestOffsetParentChildren(t *testing.T) {
	tt := newTestTree()
	ow := NewOffsetWidget(tt.root, geom.Vec{}, nil)

	op, ok := ow.AsParent()
	require.True(t, ok)
	assert.Equal(t, 2, op.NumChildren())

	child, ok := op.Child(NameIdent("left"))
	require.True(t, ok)
	assert.Equal(t, geom.R(10, 10, 240, 490), child.Widget.Rect())

	// left's children are offset by left's window origin and clipped to it.
	lp, ok := child.Widget.AsParent()
	require.True(t, ok)
	tl, ok := lp.ChildByIndex(0)
	require.True(t, ok)
	assert.Equal(t, geom.R(20, 20, 230, 240), tl.Widget.Rect())
	require.NotNil(t, tl.Widget.Clip())
	assert.Equal(t, geom.R(10, 10, 240, 490), *tl.Widget.Clip())

	var idents []Ident
	op.Children(func(c OffsetChildInfo) LoopFlow {
		idents = append(idents, c.Ident)
		return Continue
	})
	assert.Equal(t, []Ident{NameIdent("left"), NameIdent("right")}, idents)

	// Leaves expose no parent view.
	right, ok := op.Child(NameIdent("right"))
	require.True(t, ok)
	_, ok = right.Widget.AsParent()
	assert.False(t, ok)
}
