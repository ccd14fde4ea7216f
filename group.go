package halcyon

import "github.com/halcyon-ui/halcyon/geom"

// ============================================================================
// Group
// ============================================================================

// Group is the stock composite widget: a Container of children paired with a
// grid layout policy and a solver. It has no behavior of its own; events it
// receives bubble onward and its whole job is to position children when the
// driver asks for a relayout.
type Group struct {
	tag       *WidgetTag
	rect      geom.Rect
	container Container
	layout    GridLayout
	engine    LayoutEngine
}

// NewGroup creates a group over the given children. The layout engine is
// injected; the core ships no solver of its own.
func NewGroup(container Container, layout GridLayout, engine LayoutEngine) *Group {
	g := &Group{
		tag:       NewWidgetTag(),
		container: container,
		layout:    layout,
		engine:    engine,
	}
	g.tag.RequestRelayout()
	return g
}

// Container returns the group's child storage.
func (g *Group) Container() Container { return g.container }

func (g *Group) Tag() *WidgetTag { return g.tag }

func (g *Group) Rect() geom.Rect { return g.rect }

// SetRect stores the group's rectangle and schedules a child relayout when
// the size changed.
func (g *Group) SetRect(r geom.Rect) {
	resized := r.Size() != g.rect.Size()
	g.rect = r
	if resized {
		g.tag.RequestRelayout()
	}
}

// OnEvent lets every event pass through to the group's parent.
func (g *Group) OnEvent(WidgetEvent, []Ident, InputState) EventOps {
	return EventOps{Bubble: true}
}

// SizeBounds is unconstrained; the group adapts to whatever rectangle its
// own parent assigns.
func (g *Group) SizeBounds() SizeBounds { return DefaultSizeBounds() }

// ============================================================================
// Parent Contract
// ============================================================================

func (g *Group) NumChildren() int { return g.container.NumChildren() }

func (g *Group) Child(ident Ident) (ChildInfo, bool) { return g.container.Child(ident) }

func (g *Group) ChildByIndex(index int) (ChildInfo, bool) {
	return g.container.ChildByIndex(index)
}

func (g *Group) Children(visit func(ChildInfo) LoopFlow) { g.container.Children(visit) }

// UpdateChildLayout solves child rectangles on the group's grid. A child the
// solver cannot place gets InvalidRect, which is empty: it stays out of hit
// testing and drawing but remains in the tree.
func (g *Group) UpdateChildLayout() {
	n := g.container.NumChildren()
	if n == 0 {
		return
	}

	children := make([]ChildInfo, 0, n)
	hints := make([]LayoutHint, 0, n)
	g.container.Children(func(c ChildInfo) LoopFlow {
		children = append(children, c)
		hints = append(hints, g.layout.ChildHint(c))
		return Continue
	})

	results := g.engine.Solve(g.rect.Size(), g.layout.GridSize(n), hints)
	for i, c := range children {
		if i >= len(results) || results[i].Err != nil {
			c.Widget.SetRect(InvalidRect)
			continue
		}
		c.Widget.SetRect(results[i].Rect)
	}
	g.tag.RequestRedraw()
}
