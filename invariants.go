package tsbuild

import (
	"fmt"
	"io"

	"github.com/hapseq/tsbuild/internal/ordindex"
)

// checkInvariants runs the full structural check from spec §8 and
// returns ErrAssertionFailure (wrapped with the violated invariant's
// description) on the first violation found. It is O(n) in the live
// edge count; callers that don't want that cost on every call should
// reserve it for PrintState and tests (see Config.ExtendedChecks).
func (b *Builder) checkInvariants() error {
	pathCount := 0

	for c := NodeID(0); int(c) < b.NumNodes(); c++ {
		prevRight := -1
		prevParent := NullNode
		havePrev := false
		for id := b.pathHd[c]; id != NullEdge; {
			e := b.edge(id)
			pathCount++

			if e.Child == NullNode {
				return fmt.Errorf("%w: edge %d at rest with child == NullNode", ErrAssertionFailure, id)
			}
			if e.Child != c {
				return fmt.Errorf("%w: edge %d on path(%d) has child %d", ErrAssertionFailure, id, c, e.Child)
			}
			if havePrev && e.Left != prevRight {
				return fmt.Errorf("%w: path(%d) is not left-contiguous at edge %d", ErrAssertionFailure, c, id)
			}
			if havePrev && prevParent == e.Parent {
				return fmt.Errorf("%w: path(%d) has unsquashed adjacent same-parent edges at %d", ErrAssertionFailure, c, id)
			}
			if !(b.time(e.Parent) > b.time(c)) {
				return fmt.Errorf("%w: edge %d has time(parent) <= time(child)", ErrAssertionFailure, id)
			}
			if b.node(c).Flags&FlagIsPCAncestor != 0 {
				if !(b.time(c) <= b.time(e.Parent)-epsilon) {
					return fmt.Errorf("%w: PC ancestor %d does not dominate parent %d by epsilon", ErrAssertionFailure, c, e.Parent)
				}
			}
			if e.leftID == ordindex.Nil || e.rightID == ordindex.Nil || e.pathID == ordindex.Nil {
				return fmt.Errorf("%w: edge %d missing from one or more indexes", ErrAssertionFailure, id)
			}

			prevRight = e.Right
			prevParent = e.Parent
			havePrev = true
			id = e.Next
		}
	}

	if b.ix.left.Len() != pathCount || b.ix.right.Len() != pathCount || b.ix.path.Len() != pathCount {
		return fmt.Errorf("%w: index sizes (%d, %d, %d) disagree with total path length %d",
			ErrAssertionFailure, b.ix.left.Len(), b.ix.right.Len(), b.ix.path.Len(), pathCount)
	}
	if b.edges.Live() != pathCount {
		return fmt.Errorf("%w: %d live edges but %d edges reachable from paths", ErrAssertionFailure, b.edges.Live(), pathCount)
	}

	return nil
}

// PrintState writes a human-readable diagnostic report and runs the full
// invariant check, per spec §6's print_state.
func (b *Builder) PrintState(w io.Writer) error {
	fmt.Fprintf(w, "nodes: %d\n", b.NumNodes())
	fmt.Fprintf(w, "edges (live): %d\n", b.edges.Live())
	fmt.Fprintf(w, "mutations: %d\n", b.mut.count())
	fmt.Fprintf(w, "sites: %d\n", b.numSites)
	fmt.Fprintf(w, "index sizes: left=%d right=%d path=%d\n", b.ix.left.Len(), b.ix.right.Len(), b.ix.path.Len())
	if b.broken {
		fmt.Fprintf(w, "broken: true (%v)\n", b.brokenErr)
	}

	pcCount := 0
	for i := 0; i < b.NumNodes(); i++ {
		if b.node(NodeID(i)).Flags&FlagIsPCAncestor != 0 {
			pcCount++
		}
	}
	fmt.Fprintf(w, "pc ancestors: %d\n", pcCount)

	if err := b.checkInvariants(); err != nil {
		fmt.Fprintf(w, "invariant violation: %v\n", err)
		return err
	}
	fmt.Fprintln(w, "invariants: ok")
	return nil
}
