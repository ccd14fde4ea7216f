package halcyon

import (
	"github.com/halcyon-ui/halcyon/geom"
)

// ============================================================================
// Widget Stack
// ============================================================================

// stackFrame is one level of an active traversal: the widget at that level,
// how its parent names it, and the window-space origin and clip it inherits.
type stackFrame struct {
	widget Widget
	ident  Ident
	index  int
	offset geom.Vec
	clip   *geom.Rect
}

// StackPool recycles the frame storage of widget stacks between traversals so
// steady-state dispatch does not allocate per event.
type StackPool struct {
	cache []stackFrame
}

// NewStackPool creates an empty pool.
func NewStackPool() *StackPool {
	return &StackPool{}
}

// Use borrows a stack rooted at root. Call Release when the traversal is
// done to return the storage to the pool.
func (p *StackPool) Use(root Widget) *WidgetStack {
	frames := p.cache
	p.cache = nil
	if frames == nil {
		frames = make([]stackFrame, 0, 16)
	}
	s := &WidgetStack{pool: p, frames: frames[:0]}
	s.frames = append(s.frames, stackFrame{widget: root, ident: RootIdent})
	return s
}

// WidgetStack is a cursor into the live widget tree. It always holds at
// least the root; pushing descends into a child of the current top, popping
// returns to the parent. Offsets and clips accumulate as frames are pushed,
// so the top widget is always observable in window coordinates through Top.
//
// Popping folds the departing widget's pending-update flag into its parent's
// tag, which is how update requests made deep in the tree become visible to
// a shallow-first relayout pass.
type WidgetStack struct {
	pool   *StackPool
	frames []stackFrame
}

// Release returns the stack's storage to its pool. The stack must not be
// used afterwards.
func (s *WidgetStack) Release() {
	s.pool.cache = s.frames[:0]
	s.frames = nil
}

// Len returns the stack depth. The root alone is depth 1.
func (s *WidgetStack) Len() int { return len(s.frames) }

func (s *WidgetStack) top() *stackFrame {
	return &s.frames[len(s.frames)-1]
}

// Top returns the current widget as an offset view in window coordinates.
func (s *WidgetStack) Top() OffsetWidget {
	f := s.top()
	return NewOffsetWidget(f.widget, f.offset, f.clip)
}

// TopID returns the current widget's identity.
func (s *WidgetStack) TopID() WidgetID {
	return widgetID(s.top().widget)
}

// TopIdent returns how the current widget's parent names it. The root
// reports RootIdent.
func (s *WidgetStack) TopIdent() Ident { return s.top().ident }

// TopIndex returns the current widget's child index in its parent. The root
// reports 0.
func (s *WidgetStack) TopIndex() int { return s.top().index }

// TopParentOffset returns the window-space origin of the current widget's
// parent content area.
func (s *WidgetStack) TopParentOffset() geom.Vec { return s.top().offset }

// TopPath returns the ident path from the root down to the current widget,
// root first. The returned slice is freshly allocated.
func (s *WidgetStack) TopPath() []Ident {
	path := make([]Ident, len(s.frames))
	for i, f := range s.frames {
		path[i] = f.ident
	}
	return path
}

// Push descends into the child of the current widget carrying the given
// ident. Returns false when the current widget is not a parent or has no
// such child.
func (s *WidgetStack) Push(ident Ident) bool {
	parent, ok := s.Top().AsParent()
	if !ok {
		return false
	}
	child, ok := parent.Child(ident)
	if !ok {
		return false
	}
	s.pushChild(child)
	return true
}

// PushByIndex descends into the child at the given position.
func (s *WidgetStack) PushByIndex(index int) bool {
	parent, ok := s.Top().AsParent()
	if !ok {
		return false
	}
	child, ok := parent.ChildByIndex(index)
	if !ok {
		return false
	}
	s.pushChild(child)
	return true
}

func (s *WidgetStack) pushChild(child OffsetChildInfo) {
	s.frames = append(s.frames, stackFrame{
		widget: child.Widget.Inner(),
		ident:  child.Ident,
		index:  child.Index,
		offset: child.Widget.offset,
		clip:   child.Widget.clip,
	})
}

// Pop ascends to the parent, returning the departed widget. The root is
// never popped; at depth 1 Pop returns false.
func (s *WidgetStack) Pop() (Widget, bool) {
	if len(s.frames) <= 1 {
		return nil, false
	}
	departing := s.top().widget
	s.frames = s.frames[:len(s.frames)-1]

	tag := departing.Tag()
	if tag.needsUpdate() || tag.childUpdated {
		s.top().widget.Tag().markChildUpdated()
	}
	return departing, true
}

// Truncate pops until the stack is at most depth frames deep. Depths below 1
// are clamped to 1.
func (s *WidgetStack) Truncate(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(s.frames) > depth {
		s.Pop()
	}
}

// MoveTo repositions the stack on the widget the tree knows as id, reusing
// the shared prefix of the current position. The live tree is the source of
// truth for which widget actually sits at each path step; a path step whose
// live widget no longer matches the tree fails with ErrWidgetNotFound.
func (s *WidgetStack) MoveTo(tree *VirtualTree, id WidgetID) (OffsetWidget, error) {
	it := tree.PathReversed(id)
	if it == nil {
		return OffsetWidget{}, ErrWidgetNotFound
	}

	// PathReversed walks leaf to root; flip it.
	path := make([]PathItem, it.Len())
	for i := it.Len() - 1; i >= 0; i-- {
		item, ok := it.Next()
		if !ok {
			return OffsetWidget{}, ErrWidgetNotFound
		}
		path[i] = item
	}

	if widgetID(s.frames[0].widget) != path[0].ID {
		return OffsetWidget{}, ErrWidgetNotFound
	}

	common := 1
	for common < len(path) && common < len(s.frames) {
		if widgetID(s.frames[common].widget) != path[common].ID {
			break
		}
		common++
	}
	s.Truncate(common)

	for _, item := range path[common:] {
		if !s.Push(item.Ident) {
			return OffsetWidget{}, ErrWidgetNotFound
		}
		if s.TopID() != item.ID {
			// The live tree diverged from the virtual tree at this slot.
			s.Truncate(len(s.frames) - 1)
			return OffsetWidget{}, ErrWidgetNotFound
		}
	}
	return s.Top(), nil
}
