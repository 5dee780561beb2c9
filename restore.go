package tsbuild

import "github.com/hapseq/tsbuild/internal/ordindex"

// RestoreNodes rebuilds the node table from flat rows, per spec §4.10.
// Intended for a freshly Alloc'ed Builder; rows are appended in order,
// exactly as repeated AddNode calls would.
func (b *Builder) RestoreNodes(rows []NodeRow) error {
	if b.broken {
		return ErrBuilderBroken
	}
	for _, r := range rows {
		b.AddNode(r.Time, r.Flags)
	}
	return nil
}

// RestoreEdges rebuilds the edge arena, per-child path chains, and all
// three indexes from flat rows, per spec §4.10. rows must be sorted by
// (Child ascending, Left ascending); an out-of-order input is rejected
// with ErrUnsortedEdges before any mutation. On success, it calls
// FreezeIndexes so a snapshot is immediately available via Frozen.
func (b *Builder) RestoreEdges(rows []EdgeRow) error {
	if b.broken {
		return ErrBuilderBroken
	}
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if cur.Child < prev.Child || (cur.Child == prev.Child && cur.Left < prev.Left) {
			return ErrUnsortedEdges
		}
	}
	for _, r := range rows {
		if !b.validNode(r.Child) || !b.validNode(r.Parent) {
			return ErrUnknownNode
		}
	}

	var head, tail EdgeID = NullEdge, NullEdge
	curChild := NodeID(-1)
	for _, r := range rows {
		id, err := b.allocEdge()
		if err != nil {
			return b.fail(err)
		}
		e := b.edge(id)
		e.Left, e.Right = r.Left, r.Right
		e.Parent, e.Child = r.Parent, r.Child
		e.Time = b.time(r.Child)
		e.Next = NullEdge
		e.leftID, e.rightID, e.pathID = ordindex.Nil, ordindex.Nil, ordindex.Nil

		if r.Child != curChild {
			if curChild >= 0 {
				b.pathHd[curChild] = head
			}
			curChild = r.Child
			head = id
		} else {
			b.edge(tail).Next = id
		}
		tail = id
	}
	if curChild >= 0 {
		b.pathHd[curChild] = head
	}

	for c := NodeID(0); int(c) < b.NumNodes(); c++ {
		if err := b.indexPath(c); err != nil {
			return b.fail(err)
		}
	}

	b.FreezeIndexes()
	return nil
}

// RestoreMutations rebuilds the per-site mutation lists from flat rows,
// per spec §4.10. ParentMutation is not consulted — it is an artifact of
// Dump's emission order, reconstructible from list order alone — so rows
// need only be grouped by Site in the order they should be relinked.
func (b *Builder) RestoreMutations(rows []MutationRow) error {
	if b.broken {
		return ErrBuilderBroken
	}
	for _, r := range rows {
		if r.Site < 0 || r.Site >= b.numSites {
			return ErrUnknownSite
		}
		ds := byte(0)
		if r.DerivedState == "1" {
			ds = 1
		}
		b.mut.append(r.Site, r.Node, ds)
	}
	return nil
}
