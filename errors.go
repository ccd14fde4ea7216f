package halcyon

import "errors"

// Structural tree errors. Callers should treat ErrRelationNotFound as an
// ordinary "no such neighbor" outcome; ErrWidgetNotFound and
// ErrParentNotInTree indicate a stale ID used after removal.
var (
	// ErrParentNotInTree is returned by VirtualTree.Insert when the named
	// parent is unknown.
	ErrParentNotInTree = errors.New("parent not in tree")

	// ErrWidgetIsRoot is returned by VirtualTree.Insert when the inserted
	// widget is the root; completing the operation would leave the tree
	// without a root.
	ErrWidgetIsRoot = errors.New("widget is the root widget")

	// ErrInsertCycle is returned by VirtualTree.Insert when the named parent
	// is the inserted widget or one of its descendants; completing the move
	// would detach the subtree into a cycle.
	ErrInsertCycle = errors.New("parent is a descendant of the inserted widget")

	// ErrWidgetNotFound is returned by relation queries for an unknown ID.
	ErrWidgetNotFound = errors.New("widget not found")

	// ErrRelationNotFound is returned by relation queries when the widget
	// exists but the requested relation does not (the root's parent, a
	// sibling offset past the end, an unoccupied child index).
	ErrRelationNotFound = errors.New("relation not found")
)

// ErrTagUnattached is returned by WidgetTag cursor requests made before the
// widget has been discovered by a tree driver.
var ErrTagUnattached = errors.New("widget tag not attached to a tree")
