package halcyon

import (
	"github.com/chewxy/math32"

	"github.com/halcyon-ui/halcyon/geom"
)

// ============================================================================
// Layout Vocabulary
// ============================================================================

// SizeBounds is a widget's advertised min/max size for layout.
type SizeBounds struct {
	Min, Max geom.Size
}

// DefaultSizeBounds is unconstrained: zero minimum, unbounded maximum.
func DefaultSizeBounds() SizeBounds {
	return SizeBounds{Max: geom.Sz(math32.MaxFloat32, math32.MaxFloat32)}
}

// GridSize is the column/row extent of a layout grid.
type GridSize struct {
	Cols, Rows uint32
}

// GridSpan places a child on the grid: its starting cell and how many cells
// it covers on each axis.
type GridSpan struct {
	Col, Row         uint32
	ColSpan, RowSpan uint32
}

// Span returns a 1x1 span at (col, row).
func Span(col, row uint32) GridSpan {
	return GridSpan{Col: col, Row: row, ColSpan: 1, RowSpan: 1}
}

// Margins is per-edge spacing around a child within its grid cells.
type Margins struct {
	Left, Top, Right, Bottom float32
}

// Align positions a child along one axis of its cell when it does not fill
// it.
type Align uint8

const (
	AlignStretch Align = iota
	AlignStart
	AlignCenter
	AlignEnd
)

// Align2 is per-axis alignment.
type Align2 struct {
	X, Y Align
}

// LayoutHint is everything a layout solver needs to know about one child.
type LayoutHint struct {
	SizeBounds SizeBounds
	Span       GridSpan
	Margins    Margins
	Align      Align2
}

// DefaultLayoutHint returns an unconstrained, stretch-aligned hint at the
// grid origin.
func DefaultLayoutHint() LayoutHint {
	return LayoutHint{SizeBounds: DefaultSizeBounds(), Span: Span(0, 0)}
}

// InvalidRect is the sentinel rectangle assigned to a child whose layout
// could not be solved. It is empty and contains no points, so an unsolved
// child can never be hit-tested or drawn.
var InvalidRect = geom.R(-1, -1, -1, -1)

// LayoutResult is the solver's verdict for one child: either a rectangle in
// the container's content space, or an error with Rect set to InvalidRect.
type LayoutResult struct {
	Rect geom.Rect
	Err  error
}

// LayoutEngine solves child rectangles for a container. Implementations are
// injected by the embedding application; the core never assumes a particular
// solver.
//
// Solve must return exactly one result per hint, in order.
type LayoutEngine interface {
	Solve(area geom.Size, grid GridSize, hints []LayoutHint) []LayoutResult
}

// GridLayout is a container's layout policy: how big the grid is for a given
// child count and where each child sits on it.
type GridLayout interface {
	GridSize(numChildren int) GridSize
	ChildHint(child ChildInfo) LayoutHint
}

// ============================================================================
// Stock Grid Policies
// ============================================================================

// LayoutHorizontal lays children out left to right on a single row.
type LayoutHorizontal struct {
	Margins Margins
	Align   Align2
}

func (l LayoutHorizontal) GridSize(numChildren int) GridSize {
	return GridSize{Cols: uint32(numChildren), Rows: 1}
}

func (l LayoutHorizontal) ChildHint(child ChildInfo) LayoutHint {
	return LayoutHint{
		SizeBounds: child.Widget.SizeBounds(),
		Span:       Span(uint32(child.Index), 0),
		Margins:    l.Margins,
		Align:      l.Align,
	}
}

// LayoutVertical lays children out top to bottom on a single column.
type LayoutVertical struct {
	Margins Margins
	Align   Align2
}

func (l LayoutVertical) GridSize(numChildren int) GridSize {
	return GridSize{Cols: 1, Rows: uint32(numChildren)}
}

func (l LayoutVertical) ChildHint(child ChildInfo) LayoutHint {
	return LayoutHint{
		SizeBounds: child.Widget.SizeBounds(),
		Span:       Span(0, uint32(child.Index)),
		Margins:    l.Margins,
		Align:      l.Align,
	}
}
