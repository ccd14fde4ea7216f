package halcyon

// ============================================================================
// Containers
// ============================================================================

// Container is the child-listing half of Parent, separated out so widget
// authors can store children however they like (a single field, a slice, a
// struct of named fields) and let a wrapper widget such as Group supply the
// rest of the Parent contract.
//
// Implementations must keep ident and index stable for as long as the child
// set does not change: the same child always reports the same ident, and
// indices are dense from 0 in visit order.
type Container interface {
	NumChildren() int
	Child(ident Ident) (ChildInfo, bool)
	ChildByIndex(index int) (ChildInfo, bool)
	Children(visit func(ChildInfo) LoopFlow)
}

// ============================================================================
// SingleContainer
// ============================================================================

// SingleContainer holds exactly one child, named "widget".
type SingleContainer struct {
	W Widget
}

func (c *SingleContainer) childInfo() ChildInfo {
	return ChildInfo{Ident: NameIdent("widget"), Index: 0, Widget: c.W}
}

func (c *SingleContainer) NumChildren() int { return 1 }

func (c *SingleContainer) Child(ident Ident) (ChildInfo, bool) {
	if ident == NameIdent("widget") {
		return c.childInfo(), true
	}
	return ChildInfo{}, false
}

func (c *SingleContainer) ChildByIndex(index int) (ChildInfo, bool) {
	if index != 0 {
		return ChildInfo{}, false
	}
	return c.childInfo(), true
}

func (c *SingleContainer) Children(visit func(ChildInfo) LoopFlow) {
	visit(c.childInfo())
}

// ============================================================================
// WidgetSlice
// ============================================================================

// WidgetSlice exposes a slice of widgets as children with numeric idents
// matching their positions.
type WidgetSlice []Widget

func (s WidgetSlice) NumChildren() int { return len(s) }

func (s WidgetSlice) Child(ident Ident) (ChildInfo, bool) {
	if ident.Kind != IdentNum || int(ident.Num) >= len(s) {
		return ChildInfo{}, false
	}
	i := int(ident.Num)
	return ChildInfo{Ident: ident, Index: i, Widget: s[i]}, true
}

func (s WidgetSlice) ChildByIndex(index int) (ChildInfo, bool) {
	if index < 0 || index >= len(s) {
		return ChildInfo{}, false
	}
	return ChildInfo{Ident: NumIdent(uint32(index)), Index: index, Widget: s[index]}, true
}

func (s WidgetSlice) Children(visit func(ChildInfo) LoopFlow) {
	for i, w := range s {
		info := ChildInfo{Ident: NumIdent(uint32(i)), Index: i, Widget: w}
		if visit(info) == Break {
			return
		}
	}
}

// ============================================================================
// Fields
// ============================================================================

// Field is one named entry of a Fields container: either a single widget or
// an ordered collection. A collection member's ident pairs the field name
// with its position in the collection.
type Field struct {
	Name       string
	Widget     Widget
	Collection []Widget
}

// Fields lists a widget's children declaratively, the way a struct of widget
// fields would: scalar fields carry their name as ident, collection fields
// expand into indexed idents. Flattened visit order is field order, with
// collections expanded in place, and indices are dense over the flattening.
type Fields []Field

func (f Fields) NumChildren() int {
	n := 0
	for _, field := range f {
		if field.Widget != nil {
			n++
		}
		n += len(field.Collection)
	}
	return n
}

func (f Fields) Child(ident Ident) (ChildInfo, bool) {
	var found ChildInfo
	ok := false
	f.Children(func(c ChildInfo) LoopFlow {
		if c.Ident == ident {
			found, ok = c, true
			return Break
		}
		return Continue
	})
	return found, ok
}

func (f Fields) ChildByIndex(index int) (ChildInfo, bool) {
	var found ChildInfo
	ok := false
	f.Children(func(c ChildInfo) LoopFlow {
		if c.Index == index {
			found, ok = c, true
			return Break
		}
		return Continue
	})
	return found, ok
}

func (f Fields) Children(visit func(ChildInfo) LoopFlow) {
	index := 0
	for _, field := range f {
		if field.Widget != nil {
			info := ChildInfo{Ident: NameIdent(field.Name), Index: index, Widget: field.Widget}
			index++
			if visit(info) == Break {
				return
			}
		}
		for i, w := range field.Collection {
			info := ChildInfo{Ident: NameIndexIdent(field.Name, uint32(i)), Index: index, Widget: w}
			index++
			if visit(info) == Break {
				return
			}
		}
	}
}
