package halcyon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyon-ui/halcyon/geom"
)

func TestRootSyncTree(t *testing.T) {
	tt := newTestTree()
	tree := tt.r.Tree()

	assert.Equal(t, tt.id(tt.root), tree.RootID())
	assert.Equal(t, 5, tree.NumNodes())

	p, err := tree.Parent(tt.id(tt.tl))
	require.NoError(t, err)
	assert.Equal(t, tt.id(tt.left), p)

	id, err := tree.ChildByIdent(tt.id(tt.root), NameIdent("right"))
	require.NoError(t, err)
	assert.Equal(t, tt.id(tt.right), id)

	data, ok := tree.Data(tt.id(tt.bl))
	require.True(t, ok)
	assert.Equal(t, uint32(2), data.Depth())
	assert.Equal(t, NameIdent("bl"), data.Ident)
}

func TestRootSyncTreeFollowsLiveMutations(t *testing.T) {
	tt := newTestTree()

	// Move tl from left to the root and drop bl entirely.
	tt.left.kids = Fields{}
	tt.root.kids = append(tt.root.kids, Field{Name: "tl", Widget: tt.tl})
	tt.r.syncTree()

	tree := tt.r.Tree()
	p, err := tree.Parent(tt.id(tt.tl))
	require.NoError(t, err)
	assert.Equal(t, tt.id(tt.root), p)

	data, _ := tree.Data(tt.id(tt.tl))
	assert.Equal(t, uint32(1), data.Depth())

	_, err = tree.Parent(tt.id(tt.bl))
	assert.ErrorIs(t, err, ErrWidgetNotFound)
	assert.Equal(t, 4, tree.NumNodes())
}

func TestRootResize(t *testing.T) {
	tt := newTestTree()
	tt.r.ProcessEvent(WindowResize{Size: geom.Sz(800, 600)})
	assert.Equal(t, geom.R(0, 0, 800, 600), tt.root.Rect())
	assert.True(t, tt.r.NeedsRelayout())
	assert.Empty(t, tt.log.take(), "resize delivers no widget events")
}

func TestRootTimers(t *testing.T) {
	tt := newTestTree()
	id := tt.tl.Tag().RegisterTimer(10 * time.Millisecond)

	now := time.Now()
	tt.r.ProcessTimers(now)
	events := tt.log.take()
	require.Len(t, events, 1)
	assert.Equal(t, "tl", events[0].widget)
	assert.Equal(t, TimerTick{Timer: id, Times: 1}, events[0].event)

	// Not due again yet.
	tt.r.ProcessTimers(now.Add(5 * time.Millisecond))
	assert.Empty(t, tt.log.take())

	tt.r.ProcessTimers(now.Add(15 * time.Millisecond))
	events = tt.log.take()
	require.Len(t, events, 1)
	assert.Equal(t, TimerTick{Timer: id, Times: 2}, events[0].event)

	tt.tl.Tag().RemoveTimer(id)
	tt.r.ProcessTimers(now.Add(time.Minute))
	assert.Empty(t, tt.log.take())
}

type pingMsg struct {
	N int
}

func TestRootBroadcastMessage(t *testing.T) {
	tt := newTestTree()

	var got []string
	handler := func(name string) func(w *testWidget, m pingMsg) {
		return func(w *testWidget, m pingMsg) {
			got = append(got, name)
		}
	}
	tt.tl.Tag().RegisterMessage(handler("tl"))
	tt.bl.Tag().RegisterMessage(handler("bl"))

	require.NoError(t, tt.right.Tag().BroadcastMessage(pingMsg{N: 1}))
	tt.r.DeliverMessages()
	assert.Equal(t, []string{"tl", "bl"}, got)
}

func TestRootTargetedMessage(t *testing.T) {
	tt := newTestTree()

	var got []int
	tt.tl.Tag().RegisterMessage(func(w *testWidget, m pingMsg) {
		got = append(got, m.N)
	})
	tt.bl.Tag().RegisterMessage(func(w *testWidget, m pingMsg) {
		t.Error("message delivered past its target")
	})

	require.NoError(t, tt.right.Tag().SendMessageTo(pingMsg{N: 7}, MessageTarget{Widget: tt.id(tt.tl)}))
	tt.r.DeliverMessages()
	assert.Equal(t, []int{7}, got)
}

func TestRegisterMessagePanicsOnBadHandler(t *testing.T) {
	tag := NewWidgetTag()
	assert.Panics(t, func() { tag.RegisterMessage(42) })
	assert.Panics(t, func() { tag.RegisterMessage(func() {}) })
	assert.Panics(t, func() { tag.RegisterMessage(func(w *testWidget, m pingMsg) error { return nil }) })
}

func TestMessageBeforeAttach(t *testing.T) {
	tag := NewWidgetTag()
	assert.ErrorIs(t, tag.BroadcastMessage(pingMsg{}), ErrTagUnattached)
	assert.ErrorIs(t, tag.SendMessageTo(pingMsg{}, MessageTarget{}), ErrTagUnattached)
	assert.ErrorIs(t, tag.SetCursorIcon(CursorText), ErrTagUnattached)
	assert.ErrorIs(t, tag.SetCursorPos(geom.Pt(1, 1)), ErrTagUnattached)
}

// ============================================================================
// Redraw
// ============================================================================

// drawWidget paints its whole rectangle one color.
type drawWidget struct {
	testWidget
	color Color
}

func (d *drawWidget) Render(frame ClippedFrame) {
	frame.Upload(Primitive{
		Rect:  geom.Rect{Max: geom.Pt(d.rect.Width(), d.rect.Height())},
		Color: d.color,
	})
}

// stubRenderer records the frame traffic.
type stubRenderer struct {
	began []geom.Size
	ended int
	prims map[WidgetID][]Primitive
}

func (r *stubRenderer) BeginFrame(size geom.Size) Frame {
	r.began = append(r.began, size)
	if r.prims == nil {
		r.prims = make(map[WidgetID][]Primitive)
	}
	return r
}

func (r *stubRenderer) EndFrame() { r.ended++ }

func (r *stubRenderer) UploadPrimitives(id WidgetID, prims []Primitive) {
	r.prims[id] = append(r.prims[id], prims...)
}

func TestRootRedraw(t *testing.T) {
	log := &eventLog{}
	d := &drawWidget{
		testWidget: testWidget{name: "d", tag: NewWidgetTag(), rect: geom.R(10, 10, 60, 60), log: log},
		color:      Color{R: 255, A: 255},
	}
	root := newTestParent("root", geom.Rect{}, log, Fields{{Name: "d", Widget: d}})
	r := NewRoot(root, geom.Sz(100, 100), DefaultOptions())

	renderer := &stubRenderer{}
	r.Redraw(renderer)
	assert.Empty(t, renderer.began, "no repaint requested, no frame")

	d.Tag().RequestRedraw()
	r.Redraw(renderer)
	require.Equal(t, []geom.Size{geom.Sz(100, 100)}, renderer.began)
	assert.Equal(t, 1, renderer.ended)

	prims := renderer.prims[d.Tag().ID()]
	require.Len(t, prims, 1)
	assert.Equal(t, geom.R(10, 10, 60, 60), prims[0].Rect, "local primitive lands in window space")

	assert.False(t, r.NeedsRedraw())
}

func TestRootRedrawClipsChildren(t *testing.T) {
	log := &eventLog{}
	// The child pokes out of its 50x50 parent; the overhang is clipped.
	d := &drawWidget{
		testWidget: testWidget{name: "d", tag: NewWidgetTag(), rect: geom.R(30, 30, 80, 80), log: log},
		color:      Color{G: 255, A: 255},
	}
	inner := newTestParent("inner", geom.R(0, 0, 50, 50), log, Fields{{Name: "d", Widget: d}})
	root := newTestParent("root", geom.Rect{}, log, Fields{{Name: "inner", Widget: inner}})
	r := NewRoot(root, geom.Sz(100, 100), DefaultOptions())

	d.Tag().RequestRedraw()
	renderer := &stubRenderer{}
	r.Redraw(renderer)

	prims := renderer.prims[d.Tag().ID()]
	require.Len(t, prims, 1)
	assert.Equal(t, geom.R(30, 30, 50, 50), prims[0].Rect)
}
