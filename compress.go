package tsbuild

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/hapseq/tsbuild/internal/ordindex"
)

// pcMatch is one (source, dest) pairing found while scanning a new path
// against the path index, per spec §4.5 step 1. left, right, and parent
// are captured at scan time since source's own fields get rewritten
// during contig processing; destChild is dest's Child at scan time, used
// both to segment contigs and, for the synthesize branch, to know which
// existing node the new PC ancestor must sit strictly above.
type pcMatch struct {
	source EdgeID
	dest   EdgeID

	left, right int
	parent      NodeID
	destChild   NodeID
}

// compressPath runs path compression (spec §4.5) against child's
// just-linked, not-yet-indexed path. It is only ever called from AddPath
// before that path has been indexed.
func (b *Builder) compressPath(child NodeID) error {
	matches := b.scanPathMatches(child)

	for _, contig := range segmentContigs(matches) {
		if len(contig) < 2 {
			continue
		}
		if err := b.processContig(contig); err != nil {
			return err
		}
	}

	b.pathHd[child] = b.squashChain(b.pathHd[child], child, false)

	if b.detached != nil && b.detached.Any() {
		return ErrAssertionFailure
	}
	return nil
}

// markDetached and clearDetached maintain the detached-edge scratchpad
// referenced by squashChain's indexed variant and processContig's
// per-dest detach loop. The scratchpad is a cross-check, not the only
// source of truth — Edge.Child == NullNode remains the authoritative
// detached marker — but it lets compressPath assert every transiently
// detached edge got restored (or freed by a merge) before returning,
// independent of whatever
// bug might otherwise leave a stray NullNode child unnoticed.
func (b *Builder) markDetached(id EdgeID) {
	if b.detached == nil {
		b.detached = bitset.New(uint(b.edges.Cap()))
	}
	b.detached.Set(uint(id))
}

func (b *Builder) clearDetached(id EdgeID) {
	if b.detached != nil {
		b.detached.Clear(uint(id))
	}
}

// scanPathMatches walks child's path chain once, left to right, querying
// the path index for each edge. Mutating nothing, this can run to
// completion before any contig is processed.
func (b *Builder) scanPathMatches(child NodeID) []pcMatch {
	var matches []pcMatch
	for id := b.pathHd[child]; id != NullEdge; {
		e := b.edge(id)
		next := e.Next
		if dest, ok := b.findPathMatch(e.Left, e.Right, e.Parent); ok {
			de := b.edge(dest)
			matches = append(matches, pcMatch{
				source:    id,
				dest:      dest,
				left:      e.Left,
				right:     e.Right,
				parent:    e.Parent,
				destChild: de.Child,
			})
		}
		id = next
	}
	return matches
}

// segmentContigs groups matches into runs that are left-contiguous in the
// new path and share a single existing child, per spec §4.5 step 2.
// Non-matched source edges simply aren't present in matches and so never
// appear in, or break the adjacency test for, any contig; only the
// previous *match* counts as "previous_source"/"previous_dest".
func segmentContigs(matches []pcMatch) [][]pcMatch {
	var contigs [][]pcMatch
	for i, m := range matches {
		newContig := i == 0 ||
			m.left != matches[i-1].right ||
			m.destChild != matches[i-1].destChild
		if newContig {
			contigs = append(contigs, nil)
		}
		last := len(contigs) - 1
		contigs[last] = append(contigs[last], m)
	}
	return contigs
}

// processContig implements spec §4.5 step 3 for one contig of size >= 2:
// either reuse an existing PC ancestor or synthesize a new one.
func (b *Builder) processContig(contig []pcMatch) error {
	sharedChild := contig[0].destChild

	if b.node(sharedChild).Flags&FlagIsPCAncestor != 0 {
		b.log().Debug("path compression: reusing pc ancestor", "ancestor", sharedChild, "contigLen", len(contig))
		for _, m := range contig {
			b.edge(m.source).Parent = sharedChild
		}
		return nil
	}

	minParentTime := b.time(contig[0].parent)
	for _, m := range contig[1:] {
		if t := b.time(m.parent); t < minParentTime {
			minParentTime = t
		}
	}
	pTime := minParentTime - epsilon
	if !(pTime > b.time(sharedChild)) {
		return ErrAssertionFailure
	}

	p := b.AddNode(pTime, FlagIsPCAncestor)
	b.log().Debug("path compression: synthesized pc ancestor", "ancestor", p, "time", pTime, "sharedChild", sharedChild, "contigLen", len(contig))

	var pHead, pTail EdgeID = NullEdge, NullEdge
	for _, m := range contig {
		id, err := b.allocEdge()
		if err != nil {
			return err
		}
		e := b.edge(id)
		e.Left, e.Right = m.left, m.right
		e.Parent, e.Child = m.parent, p
		e.Time = pTime
		e.Next = NullEdge
		e.leftID, e.rightID, e.pathID = ordindex.Nil, ordindex.Nil, ordindex.Nil

		if pHead == NullEdge {
			pHead = id
		} else {
			b.edge(pTail).Next = id
		}
		pTail = id
	}
	b.pathHd[p] = b.squashChain(pHead, p, false)

	for _, m := range contig {
		b.edge(m.source).Parent = p
	}

	for _, m := range contig {
		de := b.edge(m.dest)
		b.ix.removeEdge(de)
		de.Parent = p
		de.Child = NullNode
		b.markDetached(m.dest)
	}
	b.pathHd[sharedChild] = b.squashChain(b.pathHd[sharedChild], sharedChild, true)

	return b.indexPath(p)
}
