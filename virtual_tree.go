package halcyon

// ============================================================================
// Virtual Widget Tree
// ============================================================================

// VirtualTree is the identity-keyed shadow of the live widget tree. It tracks
// parent/child/sibling/depth relationships out of band, so dispatch and
// traversal can address widgets by stable ID without the live storage being
// uniformly walkable.
//
// Child lists are ordered slots; the zero WidgetID marks an empty slot left
// by a high-index insert that arrived before its lower-index siblings.
// Trailing empty slots are trimmed whenever a list shrinks.
type VirtualTree struct {
	root         WidgetID
	rootData     WidgetData
	rootChildren []WidgetID
	nodes        map[WidgetID]*treeNode
}

// WidgetData is the per-node payload: the widget's parent-relative ident and
// its cached depth (root = 0).
type WidgetData struct {
	Ident Ident
	depth uint32
}

// Depth returns the node's cached distance from the root.
func (d WidgetData) Depth() uint32 { return d.depth }

type treeNode struct {
	parent   WidgetID
	children []WidgetID
	data     WidgetData
}

// NewVirtualTree creates a tree containing only the root widget.
func NewVirtualTree(root WidgetID) *VirtualTree {
	return &VirtualTree{
		root:     root,
		rootData: WidgetData{Ident: RootIdent},
		nodes:    make(map[WidgetID]*treeNode),
	}
}

// RootID returns the root widget's ID.
func (t *VirtualTree) RootID() WidgetID { return t.root }

// node returns the data and child-slot list for id. The child list is
// returned by pointer so mutations land in the tree regardless of whether id
// is the root (stored inline) or an interior node (stored in the map).
func (t *VirtualTree) node(id WidgetID) (*WidgetData, *[]WidgetID, bool) {
	if id == t.root {
		return &t.rootData, &t.rootChildren, true
	}
	if n, ok := t.nodes[id]; ok {
		return &n.data, &n.children, true
	}
	return nil, nil, false
}

// Insert adds id under parent at the given child index. If id is already in
// the tree this is a move: the widget is detached from its old parent and
// re-attached (with its whole subtree, depths recomputed) under the new one.
// If another widget already occupies the target slot it is evicted and its
// entire subtree removed. Insertion into an occupied slot is a destructive
// overwrite.
//
// Fails with ErrParentNotInTree when parent is unknown, ErrWidgetIsRoot when
// id is the root, and ErrInsertCycle when parent lies inside id's own
// subtree.
func (t *VirtualTree) Insert(parent, id WidgetID, index int, ident Ident) error {
	if id == t.root {
		return ErrWidgetIsRoot
	}

	parentData, children, ok := t.node(parent)
	if !ok {
		return ErrParentNotInTree
	}
	parentDepth := parentData.depth

	// Re-parenting under the widget's own subtree would orphan it into a
	// cycle; walk the ancestor chain of the new parent before mutating.
	if _, tracked := t.nodes[id]; tracked {
		for p := parent; p != t.root; p = t.nodes[p].parent {
			if p == id {
				return ErrInsertCycle
			}
		}
	}

	// Slots are positionally stable: vacating a slot blanks it rather than
	// shifting siblings, so re-inserting an unchanged child list is a no-op.
	blankSlot(*children, id)
	for len(*children) <= index {
		*children = append(*children, 0)
	}
	evicted := (*children)[index]
	(*children)[index] = id

	if n, ok := t.nodes[id]; ok {
		oldParent := n.parent
		n.parent = parent
		n.data.Ident = ident

		if oldParent != parent {
			_, oldChildren, ok := t.node(oldParent)
			if !ok {
				panic("halcyon: virtual tree in bad state: parent of tracked widget missing")
			}
			blankSlot(*oldChildren, id)
			*oldChildren = trimTrailing(*oldChildren)
			t.updateDepth(id, parentDepth+1)
		} else {
			*children = trimTrailing(*children)
		}
	} else {
		t.nodes[id] = &treeNode{
			parent: parent,
			data:   WidgetData{Ident: ident, depth: parentDepth + 1},
		}
	}

	if evicted != 0 && evicted != id {
		t.Remove(evicted)
	}
	return nil
}

// updateDepth recomputes cached depths over the subtree rooted at id.
func (t *VirtualTree) updateDepth(id WidgetID, depth uint32) {
	n := t.nodes[id]
	n.data.depth = depth
	for _, child := range n.children {
		if child != 0 {
			t.updateDepth(child, depth+1)
		}
	}
}

// Remove detaches id from its parent and removes its entire subtree. Removing
// an unknown ID (including the root, which cannot be removed) is a no-op
// returning false.
func (t *VirtualTree) Remove(id WidgetID) (WidgetData, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return WidgetData{}, false
	}
	delete(t.nodes, id)

	_, parentChildren, ok := t.node(n.parent)
	if !ok {
		panic("halcyon: virtual tree in bad state: parent of tracked widget missing")
	}
	blankSlot(*parentChildren, id)
	*parentChildren = trimTrailing(*parentChildren)

	// Breadth-first removal of the subtree.
	queue := append([]WidgetID(nil), n.children...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == 0 {
			continue
		}
		removed, ok := t.nodes[next]
		if !ok {
			panic("halcyon: virtual tree in bad state: child of tracked widget missing")
		}
		delete(t.nodes, next)
		queue = append(queue, removed.children...)
	}

	return n.data, true
}

// ============================================================================
// Relation Queries
// ============================================================================

// Parent returns the parent of id. The root has no parent
// (ErrRelationNotFound); unknown IDs fail with ErrWidgetNotFound.
func (t *VirtualTree) Parent(id WidgetID) (WidgetID, error) {
	if id == t.root {
		return 0, ErrRelationNotFound
	}
	if n, ok := t.nodes[id]; ok {
		return n.parent, nil
	}
	return 0, ErrWidgetNotFound
}

// Sibling returns the sibling of id at the given signed offset. Offset 0
// returns id itself. The root has no siblings for any nonzero offset.
func (t *VirtualTree) Sibling(id WidgetID, offset int) (WidgetID, error) {
	if id == t.root {
		if offset == 0 {
			return t.root, nil
		}
		return 0, ErrRelationNotFound
	}

	n, ok := t.nodes[id]
	if !ok {
		return 0, ErrWidgetNotFound
	}
	// Checked after the node lookup so unknown IDs report the right error.
	if offset == 0 {
		return id, nil
	}

	_, siblings, _ := t.node(n.parent)
	i := indexOf(*siblings, id) + offset
	if i < 0 || i >= len(*siblings) || (*siblings)[i] == 0 {
		return 0, ErrRelationNotFound
	}
	return (*siblings)[i], nil
}

// SiblingWrapping is Sibling with wraparound: offsets past either end wrap
// using Euclidean modulo over the sibling count, so it is total for every
// widget in the tree and periodic in the offset. The root wraps to itself.
// Returns false only for unknown IDs or when the wrapped slot is empty.
func (t *VirtualTree) SiblingWrapping(id WidgetID, offset int) (WidgetID, bool) {
	if id == t.root {
		return t.root, true
	}

	n, ok := t.nodes[id]
	if !ok {
		return 0, false
	}
	if offset == 0 {
		return id, true
	}

	_, siblings, _ := t.node(n.parent)
	i := modEuclid(indexOf(*siblings, id)+offset, len(*siblings))
	if (*siblings)[i] == 0 {
		return 0, false
	}
	return (*siblings)[i], true
}

// ChildByIndex returns the child of id occupying the given slot.
func (t *VirtualTree) ChildByIndex(id WidgetID, index int) (WidgetID, error) {
	_, children, ok := t.node(id)
	if !ok {
		return 0, ErrWidgetNotFound
	}
	if index < 0 || index >= len(*children) || (*children)[index] == 0 {
		return 0, ErrRelationNotFound
	}
	return (*children)[index], nil
}

// ChildByIdent returns the child of id carrying the given ident.
func (t *VirtualTree) ChildByIdent(id WidgetID, ident Ident) (WidgetID, error) {
	_, children, ok := t.node(id)
	if !ok {
		return 0, ErrWidgetNotFound
	}
	for _, child := range *children {
		if child == 0 {
			continue
		}
		if t.nodes[child].data.Ident == ident {
			return child, nil
		}
	}
	return 0, ErrRelationNotFound
}

// Children visits the occupied child slots of id in order. Returns false if
// id is unknown.
func (t *VirtualTree) Children(id WidgetID, visit func(WidgetID, WidgetData) LoopFlow) bool {
	_, children, ok := t.node(id)
	if !ok {
		return false
	}
	for _, child := range *children {
		if child == 0 {
			continue
		}
		if visit(child, t.nodes[child].data) == Break {
			break
		}
	}
	return true
}

// Data returns the stored payload for id.
func (t *VirtualTree) Data(id WidgetID) (WidgetData, bool) {
	d, _, ok := t.node(id)
	if !ok {
		return WidgetData{}, false
	}
	return *d, true
}

// AllNodes visits every node including the root, in no particular order
// beyond the root coming first. Diagnostics and tests only; not a hot path.
func (t *VirtualTree) AllNodes(visit func(WidgetID, WidgetData) LoopFlow) {
	if visit(t.root, t.rootData) == Break {
		return
	}
	for id, n := range t.nodes {
		if visit(id, n.data) == Break {
			return
		}
	}
}

// NumNodes returns the total node count, root included.
func (t *VirtualTree) NumNodes() int { return len(t.nodes) + 1 }

// ============================================================================
// Path Reconstruction
// ============================================================================

// PathItem is one step of a root-ward path.
type PathItem struct {
	Ident Ident
	ID    WidgetID
}

// PathIter lazily walks from a widget up to and including the root. It is
// finite, non-restartable, and its remaining length is known exactly.
type PathIter struct {
	tree *VirtualTree
	next WidgetID
	left int
}

// PathReversed returns an iterator over (ident, id) pairs from id up to and
// including the root. Returns nil if id is unknown.
func (t *VirtualTree) PathReversed(id WidgetID) *PathIter {
	d, _, ok := t.node(id)
	if !ok {
		return nil
	}
	return &PathIter{tree: t, next: id, left: int(d.depth) + 1}
}

// Len returns how many items remain.
func (it *PathIter) Len() int { return it.left }

// Next returns the next step toward the root, ending after the root itself.
func (it *PathIter) Next() (PathItem, bool) {
	if it.left == 0 {
		return PathItem{}, false
	}
	it.left--

	id := it.next
	if id == it.tree.root {
		it.left = 0
		return PathItem{Ident: it.tree.rootData.Ident, ID: id}, true
	}
	n, ok := it.tree.nodes[id]
	if !ok {
		// Tree mutated mid-iteration; treat as exhausted.
		it.left = 0
		return PathItem{}, false
	}
	it.next = n.parent
	return PathItem{Ident: n.data.Ident, ID: id}, true
}

// ============================================================================
// Slot Helpers
// ============================================================================

// blankSlot vacates the slot holding id, keeping sibling indices stable.
func blankSlot(s []WidgetID, id WidgetID) {
	for i, v := range s {
		if v == id {
			s[i] = 0
			return
		}
	}
}

// trimTrailing drops empty slots off the end of a child list.
func trimTrailing(s []WidgetID) []WidgetID {
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}

func indexOf(s []WidgetID, id WidgetID) int {
	for i, v := range s {
		if v == id {
			return i
		}
	}
	return -1
}

// modEuclid returns i mod n with the result always in [0, n). n must be
// positive: sibling counts are, and the always-nonnegative result is what
// makes negative wrapping offsets resolve correctly.
func modEuclid(i, n int) int {
	r := i % n
	if r < 0 {
		r += n
	}
	return r
}
