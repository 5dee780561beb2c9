package tsbuild

import "testing"

func TestDumpNodesAndEdges(t *testing.T) {
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(3, 0)
	n1 := b.AddNode(1, 0)
	if err := b.AddPath(n1, []PathEdge{{0, 3, n0}}, 0); err != nil {
		t.Fatalf("AddPath: %v", err)
	}

	tbls := b.Dump(DumpOptions{})
	if len(tbls.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(tbls.Nodes))
	}
	if tbls.Nodes[0].Time != 3 || tbls.Nodes[1].Time != 1 {
		t.Fatalf("node times = %v, %v, want 3, 1", tbls.Nodes[0].Time, tbls.Nodes[1].Time)
	}
	if len(tbls.Edges) != 1 {
		t.Fatalf("len(Edges) = %d, want 1", len(tbls.Edges))
	}
	e := tbls.Edges[0]
	if e.Left != 0 || e.Right != 3 || e.Parent != n0 || e.Child != n1 {
		t.Fatalf("edge = %+v, want (0,3,0,1)", e)
	}
	if tbls.SequenceLength != 3 {
		t.Fatalf("SequenceLength = %v, want 3", tbls.SequenceLength)
	}
}

func TestDumpSitesAllAncestralZero(t *testing.T) {
	b := newTestBuilder(t, 4)
	tbls := b.Dump(DumpOptions{})
	if len(tbls.Sites) != 4 {
		t.Fatalf("len(Sites) = %d, want 4", len(tbls.Sites))
	}
	for i, s := range tbls.Sites {
		if s.Position != float64(i) || s.AncestralState != "0" {
			t.Fatalf("site %d = %+v, want position %d ancestral 0", i, s, i)
		}
	}
}

func TestDumpNoInitReusesBackingSlices(t *testing.T) {
	b := newTestBuilder(t, 2)
	n0 := b.AddNode(2, 0)
	n1 := b.AddNode(1, 0)
	if err := b.AddPath(n1, []PathEdge{{0, 2, n0}}, 0); err != nil {
		t.Fatalf("AddPath: %v", err)
	}

	tbls := &Tables{}
	first := b.Dump(DumpOptions{NoInit: true, Tables: tbls})
	if first != tbls {
		t.Fatalf("NoInit dump did not reuse the supplied Tables")
	}
	second := b.Dump(DumpOptions{NoInit: true, Tables: tbls})
	if len(second.Edges) != 1 {
		t.Fatalf("len(Edges) after reuse = %d, want 1 (not accumulated)", len(second.Edges))
	}
}
