package halcyon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ui/halcyon/geom"
)

// stubEngine splits the area into even rows by span, failing the indices it
// is told to fail.
type stubEngine struct {
	fail map[int]bool
}

func (e stubEngine) Solve(area geom.Size, grid GridSize, hints []LayoutHint) []LayoutResult {
	out := make([]LayoutResult, len(hints))
	rowH := area.H / float32(grid.Rows)
	for i, h := range hints {
		if e.fail[i] {
			out[i] = LayoutResult{Rect: InvalidRect, Err: errors.New("does not fit")}
			continue
		}
		top := float32(h.Span.Row) * rowH
		out[i] = LayoutResult{Rect: geom.R(0, top, area.W, top+rowH)}
	}
	return out
}

func TestGroupLayout(t *testing.T) {
	log := &eventLog{}
	a := newTestWidget("a", geom.Rect{}, log)
	b := newTestWidget("b", geom.Rect{}, log)
	g := NewGroup(WidgetSlice{a, b}, LayoutVertical{}, stubEngine{})

	r := NewRoot(g, geom.Sz(200, 100), DefaultOptions())
	require.True(t, r.NeedsRelayout(), "a new group wants its first layout")

	r.Relayout()
	assert.Equal(t, geom.R(0, 0, 200, 50), a.Rect())
	assert.Equal(t, geom.R(0, 50, 200, 100), b.Rect())
	assert.False(t, r.NeedsRelayout())
	assert.True(t, r.NeedsRedraw(), "layout schedules a repaint")
}

func TestGroupLayoutFailureAssignsInvalidRect(t *testing.T) {
	log := &eventLog{}
	a := newTestWidget("a", geom.Rect{}, log)
	b := newTestWidget("b", geom.Rect{}, log)
	g := NewGroup(WidgetSlice{a, b}, LayoutVertical{}, stubEngine{fail: map[int]bool{1: true}})

	r := NewRoot(g, geom.Sz(200, 100), DefaultOptions())
	r.Relayout()

	assert.Equal(t, geom.R(0, 0, 200, 50), a.Rect())
	assert.Equal(t, InvalidRect, b.Rect())
	assert.True(t, b.Rect().Empty(), "unsolved children are unhittable")
}

func TestGroupResizeRequestsRelayout(t *testing.T) {
	log := &eventLog{}
	a := newTestWidget("a", geom.Rect{}, log)
	g := NewGroup(WidgetSlice{a}, LayoutVertical{}, stubEngine{})

	r := NewRoot(g, geom.Sz(200, 100), DefaultOptions())
	r.Relayout()
	require.False(t, r.NeedsRelayout())

	r.ProcessEvent(WindowResize{Size: geom.Sz(400, 100)})
	assert.Equal(t, geom.R(0, 0, 400, 100), g.Rect())
	assert.True(t, r.NeedsRelayout())

	r.Relayout()
	assert.Equal(t, geom.R(0, 0, 400, 100), a.Rect())
}

func TestGroupEventsBubble(t *testing.T) {
	ops := (&Group{}).OnEvent(MouseEnter{}, nil, InputState{})
	assert.True(t, ops.Bubble)
}

func TestGroupFieldsChildren(t *testing.T) {
	log := &eventLog{}
	body := newTestWidget("body", geom.Rect{}, log)
	g := NewGroup(Fields{{Name: "body", Widget: body}}, LayoutVertical{}, stubEngine{})

	info, ok := g.Child(NameIdent("body"))
	require.True(t, ok)
	assert.Same(t, Widget(body), info.Widget)
	assert.Equal(t, 1, g.NumChildren())
}
