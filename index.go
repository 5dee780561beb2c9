package tsbuild

import "github.com/hapseq/tsbuild/internal/ordindex"

// indexHandle is a handle into one of the three ordindex trees. It is
// ordindex.Nil for an edge that is not currently a member of that index
// (in particular: always, for a detached edge with Child == NullNode).
type indexHandle = ordindex.ID

// leftKey orders left_index by (left ↑, time(child) ↑, child ↑).
type leftKey struct {
	left  int
	time  float64
	child NodeID
}

func lessLeftKey(a, b leftKey) bool {
	if a.left != b.left {
		return a.left < b.left
	}
	if a.time != b.time {
		return a.time < b.time
	}
	return a.child < b.child
}

// rightKey orders right_index by (right ↑, time(child) ↓, child ↑).
type rightKey struct {
	right int
	time  float64
	child NodeID
}

func lessRightKey(a, b rightKey) bool {
	if a.right != b.right {
		return a.right < b.right
	}
	if a.time != b.time {
		return a.time > b.time // reverse time tie-break
	}
	return a.child < b.child
}

// pathKey orders path_index by (left ↑, right ↑, parent ↑, child ↑).
type pathKey struct {
	left, right int
	parent      NodeID
	child       NodeID
}

func lessPathKey(a, b pathKey) bool {
	if a.left != b.left {
		return a.left < b.left
	}
	if a.right != b.right {
		return a.right < b.right
	}
	if a.parent != b.parent {
		return a.parent < b.parent
	}
	return a.child < b.child
}

// indexes bundles the three ordered edge indexes described in spec §3.
// Every live edge participates in all three; count(left) == count(right)
// == count(path) is a standing invariant checked by checkInvariants.
type indexes struct {
	left  *ordindex.Tree[leftKey]
	right *ordindex.Tree[rightKey]
	path  *ordindex.Tree[pathKey]
}

func newIndexes() *indexes {
	return &indexes{
		left:  ordindex.New(lessLeftKey),
		right: ordindex.New(lessRightKey),
		path:  ordindex.New(lessPathKey),
	}
}

func (ix *indexes) len() int { return ix.left.Len() }

// insertEdge adds e (already populated, Child != NullNode) to all three
// indexes and records the resulting handles on e.
func (ix *indexes) insertEdge(id EdgeID, e *Edge) {
	e.leftID = ix.left.Insert(leftKey{e.Left, e.Time, e.Child}, int32(id))
	e.rightID = ix.right.Insert(rightKey{e.Right, e.Time, e.Child}, int32(id))
	e.pathID = ix.path.Insert(pathKey{e.Left, e.Right, e.Parent, e.Child}, int32(id))
}

// removeEdge deletes e's entries from all three indexes and clears its
// handles. It does not touch e.Child; callers that mean to detach an edge
// set e.Child = NullNode themselves, per spec §4.6.
func (ix *indexes) removeEdge(e *Edge) {
	if e.leftID != ordindex.Nil {
		ix.left.Delete(e.leftID)
		e.leftID = ordindex.Nil
	}
	if e.rightID != ordindex.Nil {
		ix.right.Delete(e.rightID)
		e.rightID = ordindex.Nil
	}
	if e.pathID != ordindex.Nil {
		ix.path.Delete(e.pathID)
		e.pathID = ordindex.Nil
	}
}

// findPathMatch searches path_index for an existing edge with the same
// (left, right, parent), as the caller's new edge e (itself not yet
// indexed). Per spec §4.5 step 1, it queries with child = 0 so that the
// returned node and its immediate successor/predecessor bracket every
// edge sharing that (left, right, parent) regardless of which child they
// belong to.
//
// It returns the EdgeID of a matching existing edge and true, or
// (NullEdge, false) if no edge shares (left, right, parent).
func (b *Builder) findPathMatch(left, right int, parent NodeID) (EdgeID, bool) {
	key := pathKey{left, right, parent, 0}
	id, exact := b.ix.path.FindClosest(key)
	if id == ordindex.Nil {
		return NullEdge, false
	}

	if exact {
		return EdgeID(b.ix.path.Payload(id)), true
	}

	// Not exact: the query child (0) itself doesn't exist as a real
	// child id paired with (left,right,parent) unless some real edge
	// happens to have child==0, which the exact branch above already
	// caught. So the landing node is either the predecessor (some
	// smaller (left,right,parent) tuple) or, when child 0 truly isn't
	// present but other children are, it can land on the successor
	// directly. Check the successor first since real child ids are >= 0
	// and the query used child 0 as a lower bound.
	if succ := b.ix.path.Successor(id); succ != ordindex.Nil {
		k := b.ix.path.Key(succ)
		if k.left == left && k.right == right && k.parent == parent {
			return EdgeID(b.ix.path.Payload(succ)), true
		}
	}
	k := b.ix.path.Key(id)
	if k.left == left && k.right == right && k.parent == parent {
		return EdgeID(b.ix.path.Payload(id)), true
	}
	return NullEdge, false
}
