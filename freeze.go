package tsbuild

import "github.com/hapseq/tsbuild/internal/ordindex"

// FrozenEdge is the flattened, read-only view of an edge exposed by
// FreezeIndexes — a copy, deliberately stripped of the internal index
// handles Edge carries, since a frozen snapshot outlives any further
// mutation of the live indexes it was copied from.
type FrozenEdge struct {
	Left, Right int
	Parent      NodeID
	Child       NodeID
	Time        float64
}

// FrozenIndexes is the flat snapshot produced by FreezeIndexes: the live
// edge set in left_index and right_index order, per spec §4.8. It is
// invalidated by any subsequent AddPath call (the only call that mutates
// the dynamic indexes) and must be rebuilt; AddMutations never touches
// the edge indexes, so it leaves an existing snapshot valid.
type FrozenIndexes struct {
	LeftIndexEdges  []FrozenEdge
	RightIndexEdges []FrozenEdge
}

// FreezeIndexes walks left_index and right_index in key order and copies
// every live edge's payload into two flat arrays. This snapshot is what
// downstream matching consumes.
func (b *Builder) FreezeIndexes() *FrozenIndexes {
	fz := &FrozenIndexes{
		LeftIndexEdges:  make([]FrozenEdge, 0, b.ix.len()),
		RightIndexEdges: make([]FrozenEdge, 0, b.ix.len()),
	}
	for id := b.ix.left.Min(); id != ordindex.Nil; id = b.ix.left.Successor(id) {
		e := b.edge(EdgeID(b.ix.left.Payload(id)))
		fz.LeftIndexEdges = append(fz.LeftIndexEdges, frozenFrom(e))
	}
	for id := b.ix.right.Min(); id != ordindex.Nil; id = b.ix.right.Successor(id) {
		e := b.edge(EdgeID(b.ix.right.Payload(id)))
		fz.RightIndexEdges = append(fz.RightIndexEdges, frozenFrom(e))
	}
	b.frozen = fz
	return fz
}

// Frozen returns the most recent FreezeIndexes snapshot, or nil if none
// has been taken yet or a later AddPath call has invalidated it.
func (b *Builder) Frozen() *FrozenIndexes { return b.frozen }

func frozenFrom(e *Edge) FrozenEdge {
	return FrozenEdge{Left: e.Left, Right: e.Right, Parent: e.Parent, Child: e.Child, Time: e.Time}
}
