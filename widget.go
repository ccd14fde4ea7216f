// Package halcyon implements the core of a retained-mode widget toolkit: a
// virtual widget tree with stable identity, a re-entrant traversal stack with
// coordinate-offset views, and a queue-driven event dispatcher with hover,
// focus, and bubbling semantics.
//
// The package deliberately has no rendering or windowing surface of its own.
// The layout solver and the renderer are injected collaborators (see
// LayoutEngine and Renderer); concrete widgets plug in through the Widget and
// Parent interfaces.
package halcyon

import (
	"fmt"
	"sync/atomic"

	"github.com/halcyon-ui/halcyon/geom"
)

// ============================================================================
// Widget Identity
// ============================================================================

// WidgetID uniquely identifies a widget for the lifetime of the process.
// IDs are stable across tree mutations and are never reused. The zero ID is
// never issued; it doubles as the empty child slot in the virtual tree.
type WidgetID uint64

var nextWidgetID atomic.Uint64

// NewWidgetID allocates a fresh process-unique widget ID.
func NewWidgetID() WidgetID {
	return WidgetID(nextWidgetID.Add(1))
}

func (id WidgetID) String() string {
	return fmt.Sprintf("WidgetID(%d)", uint64(id))
}

// IdentKind discriminates the shapes an Ident can take.
type IdentKind uint8

const (
	// IdentNum names a child by a bare number.
	IdentNum IdentKind = iota
	// IdentName names a child by a string.
	IdentName
	// IdentNumIndexed names a member of a numbered collection field.
	IdentNumIndexed
	// IdentNameIndexed names a member of a named collection field.
	IdentNameIndexed
)

// Ident is a widget's name relative to its parent: a string, a number, or a
// (name, index) / (number, index) pair for collection members. Idents are not
// globally unique; combined with ancestry they form a path. The type is
// comparable and safe to use as a map key.
type Ident struct {
	Kind  IdentKind
	Name  string
	Num   uint32
	Index uint32
}

// RootIdent is the ident every root widget carries.
var RootIdent = NumIdent(0)

// NumIdent returns the numeric ident n.
func NumIdent(n uint32) Ident { return Ident{Kind: IdentNum, Num: n} }

// NameIdent returns the string ident name.
func NameIdent(name string) Ident { return Ident{Kind: IdentName, Name: name} }

// NumIndexIdent returns the ident of member i of the numbered collection n.
func NumIndexIdent(n, i uint32) Ident {
	return Ident{Kind: IdentNumIndexed, Num: n, Index: i}
}

// NameIndexIdent returns the ident of member i of the named collection name.
func NameIndexIdent(name string, i uint32) Ident {
	return Ident{Kind: IdentNameIndexed, Name: name, Index: i}
}

func (id Ident) String() string {
	switch id.Kind {
	case IdentName:
		return id.Name
	case IdentNumIndexed:
		return fmt.Sprintf("%d[%d]", id.Num, id.Index)
	case IdentNameIndexed:
		return fmt.Sprintf("%s[%d]", id.Name, id.Index)
	default:
		return fmt.Sprintf("%d", id.Num)
	}
}

// ============================================================================
// Widget and Parent Contracts
// ============================================================================

// LoopFlow controls short-circuiting visitors: return Break to stop early.
type LoopFlow uint8

const (
	Continue LoopFlow = iota
	Break
)

// Widget is the base capability every node in the tree must satisfy.
//
// Rect is always in the widget's own local coordinate space; the traversal
// machinery translates between local and window space, so implementations can
// be written oblivious to their position in the tree. OnEvent likewise only
// ever observes local coordinates.
type Widget interface {
	// Tag returns the widget's update tag. The tag must be owned by the
	// widget and live exactly as long as it does.
	Tag() *WidgetTag

	// Rect returns the widget's rectangle relative to its parent's content
	// origin.
	Rect() geom.Rect

	// SetRect stores a new rectangle, in the same space Rect reports.
	SetRect(r geom.Rect)

	// OnEvent handles a widget-scoped event. source is non-empty when the
	// event bubbled out of a descendant; it holds the ident path from this
	// widget down to the original target.
	OnEvent(event WidgetEvent, source []Ident, state InputState) EventOps

	// SizeBounds reports the widget's min/max size for layout.
	SizeBounds() SizeBounds
}

// ChildInfo describes one child exposed by a Parent or Container.
type ChildInfo struct {
	Ident  Ident
	Index  int
	Widget Widget
}

// Parent is the container capability. Widgets that own children implement it
// to expose them to traversal, dispatch, and layout.
type Parent interface {
	Widget

	// NumChildren returns how many children the widget currently exposes.
	NumChildren() int

	// Child returns the child with the given ident.
	Child(ident Ident) (ChildInfo, bool)

	// ChildByIndex returns the child at the given position.
	ChildByIndex(index int) (ChildInfo, bool)

	// Children visits every child in order until the visitor returns Break.
	// The visitor must not mutate the widget's child structure.
	Children(visit func(ChildInfo) LoopFlow)

	// UpdateChildLayout recomputes child rectangles. Called by the driver
	// when the widget has a pending relayout request.
	UpdateChildLayout()
}

// AsParent reports whether w exposes children.
func AsParent(w Widget) (Parent, bool) {
	p, ok := w.(Parent)
	return p, ok
}

func widgetID(w Widget) WidgetID {
	return w.Tag().ID()
}
