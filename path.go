package tsbuild

import (
	"github.com/hapseq/tsbuild/internal/arena"
	"github.com/hapseq/tsbuild/internal/ordindex"
)

// AddPath records child's ancestry over a set of genomic intervals, per
// spec §4.4. edges is supplied in right-to-left order (the order the
// Li-Stephens matcher naturally produces them, tracing back from the
// rightmost site); AddPath links them into the path in left-to-right
// order.
//
// Validation (parent ids, parent/child time ordering, contiguity) happens
// before any allocation, so a validation error leaves the builder
// untouched and reusable. Any error past that point is fatal; see
// Builder.Broken.
func (b *Builder) AddPath(child NodeID, edges []PathEdge, flags AddPathFlags) error {
	if b.broken {
		return ErrBuilderBroken
	}
	if !b.validNode(child) {
		return ErrUnknownNode
	}
	if len(edges) == 0 {
		return nil
	}

	childTime := b.time(child)

	// ltr is edges reordered left-to-right; the caller's slice is never
	// mutated.
	n := len(edges)
	ltr := make([]PathEdge, n)
	for i, e := range edges {
		ltr[n-1-i] = e
	}

	for _, e := range ltr {
		if !b.validNode(e.Parent) {
			return ErrBadPathParent
		}
		if !(b.time(e.Parent) > childTime) {
			return ErrBadPathTime
		}
	}
	for i := 0; i < n; i++ {
		if ltr[i].Left >= ltr[i].Right {
			return ErrNonContiguousEdges
		}
		if i > 0 && ltr[i-1].Right != ltr[i].Left {
			return ErrNonContiguousEdges
		}
	}

	b.frozen = nil

	var head, tail EdgeID = NullEdge, NullEdge
	for _, pe := range ltr {
		id, err := b.allocEdge()
		if err != nil {
			return b.fail(err)
		}
		e := b.edge(id)
		e.Left, e.Right = pe.Left, pe.Right
		e.Parent, e.Child = pe.Parent, child
		e.Time = childTime
		e.Next = NullEdge
		e.leftID, e.rightID, e.pathID = ordindex.Nil, ordindex.Nil, ordindex.Nil

		if head == NullEdge {
			head = id
		} else {
			b.edge(tail).Next = id
		}
		tail = id
	}
	b.pathHd[child] = head

	if flags&CompressPath != 0 {
		if err := b.compressPath(child); err != nil {
			return b.fail(err)
		}
	}

	if err := b.indexPath(child); err != nil {
		return b.fail(err)
	}

	if flags&ExtendedChecks != 0 || b.cfg.extendedChecks {
		if err := b.checkInvariants(); err != nil {
			return b.fail(err)
		}
	}
	return nil
}

// indexPath walks child's (possibly compressed) path chain and inserts
// every edge still unindexed into all three indexes. Edges already
// indexed (leftID != Nil) are left untouched, so this is safe to call
// after compression has already indexed some of the chain's edges (the
// reused-PC-ancestor fast path never unindexes the existing child's path
// it bypasses).
func (b *Builder) indexPath(child NodeID) error {
	for id := b.pathHd[child]; id != NullEdge; {
		e := b.edge(id)
		next := e.Next
		if e.leftID == ordindex.Nil {
			b.ix.insertEdge(id, e)
		}
		id = next
	}
	return nil
}

// squashChain merges contiguous, same-parent edges along a single child's
// path chain in place, per spec §4.6.
//
// When indexed is false the chain is known to be entirely unindexed (a
// brand-new path or a freshly synthesized PC ancestor's own path): edges
// are merged and freed with no index bookkeeping.
//
// When indexed is true, some or all of the chain's edges may currently be
// indexed; per the indexed-squash algorithm, every edge about to be
// merged is first unindexed and marked detached (Child = NullNode), and
// once the merge pass is done every edge still marked detached has its
// Child restored to owner and is reinserted into all three indexes. This
// two-phase shape is what lets compress's per-dest detach loop hand off a
// partially-detached chain to this function and have it both finish the
// merge and restore everything it didn't merge.
//
// Returns the (possibly unchanged) new head id; squash never changes the
// head's identity, since merges only ever absorb a later edge into an
// earlier one.
func (b *Builder) squashChain(head EdgeID, owner NodeID, indexed bool) EdgeID {
	if head == NullEdge {
		return head
	}

	prev := head
	for {
		pe := b.edge(prev)
		cur := pe.Next
		if cur == NullEdge {
			break
		}
		ce := b.edge(cur)
		if pe.Right == ce.Left && pe.Parent == ce.Parent {
			b.log().Debug("squash: merging adjacent edges", "owner", owner, "left", pe.Left, "right", ce.Right, "parent", pe.Parent, "indexed", indexed)
			if indexed {
				if pe.leftID != ordindex.Nil {
					b.ix.removeEdge(pe)
				}
				if ce.leftID != ordindex.Nil {
					b.ix.removeEdge(ce)
				}
				pe.Child = NullNode
				b.markDetached(prev)
				b.clearDetached(cur) // cur is freed below, so it is never restored
			}
			pe.Right = ce.Right
			pe.Next = ce.Next
			b.edges.Free(arena.ID(cur))
			continue
		}
		prev = cur
	}

	if indexed {
		for id := head; id != NullEdge; {
			e := b.edge(id)
			next := e.Next
			if e.Child == NullNode {
				e.Child = owner
				b.ix.insertEdge(id, e)
				b.clearDetached(id)
			}
			id = next
		}
	}

	return head
}
