package tsbuild

import "testing"

func buildSampleBuilder(t *testing.T) *Builder {
	t.Helper()
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(3, 0)
	n1 := b.AddNode(2, 0)
	n2 := b.AddNode(1, 0)
	n3 := b.AddNode(1, 0)

	if err := b.AddPath(n2, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(2): %v", err)
	}
	if err := b.AddPath(n3, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(3): %v", err)
	}
	if err := b.AddMutations(n0, []int{1}, []uint8{1}); err != nil {
		t.Fatalf("AddMutations(n0): %v", err)
	}
	if err := b.AddMutations(n2, []int{1}, []uint8{0}); err != nil {
		t.Fatalf("AddMutations(n2): %v", err)
	}
	return b
}

// Round-trip law: dump, alloc a fresh builder, restore_*, dump again — the
// table collections must match (mutation ParentMutation equivalence is
// trivial here since both builders relink in the same per-site order).
func TestDumpRestoreDumpRoundTrip(t *testing.T) {
	b1 := buildSampleBuilder(t)
	tbls1 := b1.Dump(DumpOptions{})

	b2, err := Alloc(&AncestorInputTables{Sites: make([]SiteInput, 3)}, 0, 0, WithExtendedChecks())
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if err := b2.RestoreNodes(tbls1.Nodes); err != nil {
		t.Fatalf("RestoreNodes: %v", err)
	}
	if err := b2.RestoreEdges(tbls1.Edges); err != nil {
		t.Fatalf("RestoreEdges: %v", err)
	}
	if err := b2.RestoreMutations(tbls1.Mutations); err != nil {
		t.Fatalf("RestoreMutations: %v", err)
	}

	tbls2 := b2.Dump(DumpOptions{})

	if len(tbls1.Nodes) != len(tbls2.Nodes) {
		t.Fatalf("len(Nodes) = %d vs %d", len(tbls1.Nodes), len(tbls2.Nodes))
	}
	for i := range tbls1.Nodes {
		if tbls1.Nodes[i] != tbls2.Nodes[i] {
			t.Fatalf("node %d = %+v vs %+v", i, tbls1.Nodes[i], tbls2.Nodes[i])
		}
	}
	if len(tbls1.Edges) != len(tbls2.Edges) {
		t.Fatalf("len(Edges) = %d vs %d", len(tbls1.Edges), len(tbls2.Edges))
	}
	for i := range tbls1.Edges {
		if tbls1.Edges[i] != tbls2.Edges[i] {
			t.Fatalf("edge %d = %+v vs %+v", i, tbls1.Edges[i], tbls2.Edges[i])
		}
	}
	if len(tbls1.Mutations) != len(tbls2.Mutations) {
		t.Fatalf("len(Mutations) = %d vs %d", len(tbls1.Mutations), len(tbls2.Mutations))
	}
	for i := range tbls1.Mutations {
		if tbls1.Mutations[i] != tbls2.Mutations[i] {
			t.Fatalf("mutation %d = %+v vs %+v", i, tbls1.Mutations[i], tbls2.Mutations[i])
		}
	}

	if b2.Frozen() == nil {
		t.Fatalf("RestoreEdges must leave a FreezeIndexes snapshot available")
	}
	if err := b2.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants after restore: %v", err)
	}
}

func TestRestoreEdgesRejectsUnsorted(t *testing.T) {
	b := newTestBuilder(t, 3)
	if err := b.RestoreNodes([]NodeRow{{Time: 2}, {Time: 1}}); err != nil {
		t.Fatalf("RestoreNodes: %v", err)
	}
	rows := []EdgeRow{
		{Left: 1, Right: 3, Parent: 0, Child: 1},
		{Left: 0, Right: 1, Parent: 0, Child: 1},
	}
	if err := b.RestoreEdges(rows); err != ErrUnsortedEdges {
		t.Fatalf("err = %v, want ErrUnsortedEdges", err)
	}
}

func TestRestoreEdgesRejectsUnknownNode(t *testing.T) {
	b := newTestBuilder(t, 3)
	if err := b.RestoreNodes([]NodeRow{{Time: 2}, {Time: 1}}); err != nil {
		t.Fatalf("RestoreNodes: %v", err)
	}
	rows := []EdgeRow{{Left: 0, Right: 3, Parent: 0, Child: 99}}
	if err := b.RestoreEdges(rows); err != ErrUnknownNode {
		t.Fatalf("err = %v, want ErrUnknownNode", err)
	}
}

func TestRestoreMutationsRejectsUnknownSite(t *testing.T) {
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(1, 0)
	rows := []MutationRow{{Site: 5, Node: n0, ParentMutation: -1, DerivedState: "1"}}
	if err := b.RestoreMutations(rows); err != ErrUnknownSite {
		t.Fatalf("err = %v, want ErrUnknownSite", err)
	}
}
