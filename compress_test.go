package tsbuild

import "testing"

// Scenario 3: PC synthesis. Two children share the same (left, right,
// parent) tiling over both their edges; compressing the second must
// synthesize a new PC ancestor above both.
func TestCompressPathSynthesizesPCAncestor(t *testing.T) {
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(3, 0)
	n1 := b.AddNode(3, 0)
	n2 := b.AddNode(1, 0)
	n3 := b.AddNode(1, 0)

	if err := b.AddPath(n2, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(2): %v", err)
	}
	if err := b.AddPath(n3, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(3): %v", err)
	}

	if b.NumNodes() != 5 {
		t.Fatalf("NumNodes() = %d, want 5 (one new PC ancestor)", b.NumNodes())
	}
	pc := NodeID(4)
	if b.node(pc).Flags&FlagIsPCAncestor == 0 {
		t.Fatalf("node 4 missing FlagIsPCAncestor")
	}
	wantTime := 3 - epsilon
	if b.time(pc) != wantTime {
		t.Fatalf("time(4) = %v, want %v", b.time(pc), wantTime)
	}

	for _, c := range []NodeID{n2, n3} {
		count := 0
		var only *Edge
		for id := b.pathHd[c]; id != NullEdge; id = b.edge(id).Next {
			count++
			only = b.edge(id)
		}
		if count != 1 {
			t.Fatalf("path(%d) has %d edges, want 1 (squashed onto pc ancestor)", c, count)
		}
		if only.Parent != pc {
			t.Fatalf("path(%d)'s single edge has parent %d, want %d", c, only.Parent, pc)
		}
	}

	pcEdges := 0
	for id := b.pathHd[pc]; id != NullEdge; id = b.edge(id).Next {
		pcEdges++
	}
	if pcEdges != 2 {
		t.Fatalf("path(4) has %d edges, want 2 ((0,2,0) and (2,3,1), unmerged)", pcEdges)
	}

	if err := b.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

// Scenario 4: PC reuse. A third child matching the same tiling must be
// redirected straight onto the existing PC ancestor, with no new one
// synthesized, and its own path squashed down to one edge.
func TestCompressPathReusesExistingPCAncestor(t *testing.T) {
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(3, 0)
	n1 := b.AddNode(3, 0)
	n2 := b.AddNode(1, 0)
	n3 := b.AddNode(1, 0)

	if err := b.AddPath(n2, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(2): %v", err)
	}
	if err := b.AddPath(n3, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(3): %v", err)
	}
	pc := NodeID(4)

	n5 := b.AddNode(1, 0)
	if err := b.AddPath(n5, []PathEdge{{2, 3, n1}, {0, 2, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(5): %v", err)
	}

	if b.NumNodes() != 6 {
		t.Fatalf("NumNodes() = %d, want 6 (no second PC ancestor)", b.NumNodes())
	}

	count := 0
	var only *Edge
	for id := b.pathHd[n5]; id != NullEdge; id = b.edge(id).Next {
		count++
		only = b.edge(id)
	}
	if count != 1 {
		t.Fatalf("path(5) has %d edges, want 1", count)
	}
	if only.Left != 0 || only.Right != 3 || only.Parent != pc || only.Child != n5 {
		t.Fatalf("path(5)'s edge = %+v, want (0,3,4,5)", only)
	}

	if err := b.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

// A contig of size 1 (a new edge matches an existing edge, but no
// neighboring edge also matches the same existing child) must not
// trigger synthesis: per spec §4.5 step 3, only contigs of size >= 2
// qualify.
func TestCompressPathSingletonMatchSkipped(t *testing.T) {
	b := newTestBuilder(t, 3)
	n0 := b.AddNode(4, 0)
	n1 := b.AddNode(2, 0)
	n2 := b.AddNode(1, 0)

	if err := b.AddPath(n1, []PathEdge{{0, 3, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(1): %v", err)
	}
	if err := b.AddPath(n2, []PathEdge{{0, 3, n0}}, CompressPath); err != nil {
		t.Fatalf("AddPath(2): %v", err)
	}

	if b.NumNodes() != 3 {
		t.Fatalf("NumNodes() = %d, want 3 (no PC ancestor for a singleton match)", b.NumNodes())
	}
	e := b.edge(b.pathHd[n2])
	if e.Parent != n0 {
		t.Fatalf("path(2)'s edge parent = %d, want %d (untouched)", e.Parent, n0)
	}
	if err := b.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}

// Compression when all new edges match an existing single child across a
// contig of size >= 2 still synthesizes one PC ancestor, even with more
// than two edges in the run.
func TestCompressPathWholePathMatchesSingleChild(t *testing.T) {
	b := newTestBuilder(t, 4)
	n0 := b.AddNode(5, 0)
	n1 := b.AddNode(4, 0)
	n2 := b.AddNode(3, 0)
	n3 := b.AddNode(1, 0)

	path := []PathEdge{{0, 1, n0}, {1, 2, n1}, {2, 4, n0}}
	if err := b.AddPath(n2, []PathEdge{path[2], path[1], path[0]}, CompressPath); err != nil {
		t.Fatalf("AddPath(2): %v", err)
	}
	if err := b.AddPath(n3, []PathEdge{path[2], path[1], path[0]}, CompressPath); err != nil {
		t.Fatalf("AddPath(3): %v", err)
	}

	if b.NumNodes() != 5 {
		t.Fatalf("NumNodes() = %d, want 5 (one new PC ancestor)", b.NumNodes())
	}
	pc := NodeID(4)
	if b.node(pc).Flags&FlagIsPCAncestor == 0 {
		t.Fatalf("node 4 missing FlagIsPCAncestor")
	}
	count := 0
	for id := b.pathHd[n3]; id != NullEdge; id = b.edge(id).Next {
		count++
	}
	if count != 1 {
		t.Fatalf("path(3) has %d edges, want 1", count)
	}
	if err := b.checkInvariants(); err != nil {
		t.Fatalf("checkInvariants: %v", err)
	}
}
