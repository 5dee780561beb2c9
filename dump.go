package tsbuild

// Tables is the final output table collection produced by Dump.
type Tables struct {
	Nodes          []NodeRow
	Edges          []EdgeRow
	Sites          []SiteRow
	Mutations      []MutationRow
	SequenceLength float64
}

// DumpOptions controls Dump. NoInit mirrors spec §6's NO_INIT flag: when
// set (and Tables is non-nil), Dump clears and reuses the given Tables's
// backing slices instead of allocating fresh ones.
type DumpOptions struct {
	NoInit bool
	Tables *Tables
}

// Dump emits the final table collection, per spec §4.9: nodes by id,
// edges by child then by child's path order, one site row per site with
// ancestral state "0", and mutations by site then list order with
// ParentMutation pointing at the previous mutation emitted for the same
// site (-1 for a site's first).
func (b *Builder) Dump(opts DumpOptions) *Tables {
	t := opts.Tables
	if t == nil || !opts.NoInit {
		t = &Tables{}
	} else {
		t.Nodes = t.Nodes[:0]
		t.Edges = t.Edges[:0]
		t.Sites = t.Sites[:0]
		t.Mutations = t.Mutations[:0]
	}

	for i := 0; i < b.NumNodes(); i++ {
		n := b.node(NodeID(i))
		t.Nodes = append(t.Nodes, NodeRow{Flags: n.Flags, Time: n.Time, Population: -1, Individual: -1})
	}

	for c := NodeID(0); int(c) < b.NumNodes(); c++ {
		for id := b.pathHd[c]; id != NullEdge; {
			e := b.edge(id)
			t.Edges = append(t.Edges, EdgeRow{Left: e.Left, Right: e.Right, Parent: e.Parent, Child: c})
			id = e.Next
		}
	}

	for i := 0; i < b.numSites; i++ {
		t.Sites = append(t.Sites, SiteRow{Position: float64(i), AncestralState: "0"})
	}

	for site := 0; site < b.numSites; site++ {
		prevEmitted := int32(-1)
		for id := b.mut.head[site]; id != NullMutation; {
			m := b.mut.pool.Get(id)
			t.Mutations = append(t.Mutations, MutationRow{
				Site:           site,
				Node:           m.Node,
				ParentMutation: prevEmitted,
				DerivedState:   derivedStateString(m.Derived),
			})
			prevEmitted = int32(len(t.Mutations) - 1)
			id = m.Next
		}
	}

	t.SequenceLength = float64(b.numSites)
	return t
}

func derivedStateString(d uint8) string {
	if d == 1 {
		return "1"
	}
	return "0"
}
