package tsbuild

import (
	"log/slog"

	"github.com/bits-and-blooms/bitset"

	"github.com/hapseq/tsbuild/internal/arena"
)

// Builder is the incremental tree-sequence builder. It owns the node
// table, the per-child path store, the edge arena, the three ordered
// indexes, and the mutation table.
//
// The zero value is not ready to use; construct one with Alloc.
//
// A *Builder must not be copied by value and is not safe for concurrent
// use: all state transitions are synchronous and the only ordering
// guarantee is the caller's own sequence of calls (spec §5).
type Builder struct {
	_ noCopy

	cfg Config

	nodes arena.Pool[Node]

	edges  arena.Pool[Edge]
	ix     *indexes
	pathHd []EdgeID // per-child head of the path chain, NullEdge if empty

	mut mutationStore

	numSites int

	// frozen caches the result of the most recent FreezeIndexes call;
	// AddPath invalidates it since it is the only call that mutates the
	// dynamic indexes after the fact (spec §4.8).
	frozen *FrozenIndexes

	// detached tracks edges currently sitting in the transient
	// Child == NullNode state during path compression (spec.md §9's
	// "scratchpad of detached ids" alternative to trusting the sentinel
	// alone). Allocated lazily on first use; nil is equivalent to empty.
	detached *bitset.BitSet

	broken    bool
	brokenErr error
}

// Alloc initializes a new Builder. numSites is derived from input per
// spec §6 ("num_sites = count of alleles[i] == null in the site table");
// nodesChunk and edgesChunk set the fixed chunk size by which the node
// table and edge arena grow, respectively (non-positive values fall back to
// Config defaults, as do explicit WithNodesChunk/WithEdgesChunk options).
func Alloc(input *AncestorInputTables, nodesChunk, edgesChunk int, opts ...Option) (*Builder, error) {
	cfg := defaultConfig()
	if nodesChunk > 0 {
		cfg.nodesChunk = nodesChunk
	}
	if edgesChunk > 0 {
		cfg.edgesChunk = edgesChunk
	}
	for _, o := range opts {
		o(&cfg)
	}

	b := &Builder{
		cfg:      cfg,
		ix:       newIndexes(),
		numSites: numSites(input),
	}
	b.nodes.SetChunkSize(cfg.nodesChunk)
	b.edges.SetChunkSize(cfg.edgesChunk)
	b.mut = *newMutationStore(b.numSites)

	b.log().Debug("builder allocated", "numSites", b.numSites, "nodesChunk", cfg.nodesChunk, "edgesChunk", cfg.edgesChunk)
	return b, nil
}

func (b *Builder) log() *slog.Logger { return b.cfg.logger }

// fail latches the builder as broken and returns err unchanged, per spec
// §7: any error other than a pure-validation error (checked before
// mutation) invalidates the instance.
func (b *Builder) fail(err error) error {
	b.broken = true
	b.brokenErr = err
	b.log().Error("builder broken", "err", err)
	return err
}

// Broken reports whether a prior call has left the builder unusable. Once
// true, AddPath, AddMutations and the Restore methods return
// ErrBuilderBroken (the call that caused it returns the original error)
// without mutating anything further; AddNode, FreezeIndexes, Dump and
// PrintState do not check it.
func (b *Builder) Broken() bool { return b.broken }

// AddNode appends a new node and returns its id. Node ids are assigned in
// insertion order starting at 0; nodes are never removed, so the node
// table's backing arena never frees a slot and ids stay dense.
func (b *Builder) AddNode(time float64, flags NodeFlags) NodeID {
	id := NodeID(b.nodes.Alloc())
	n := b.node(id)
	n.Time, n.Flags = time, flags
	b.pathHd = append(b.pathHd, NullEdge)
	return id
}

// NumNodes returns the number of nodes added so far.
func (b *Builder) NumNodes() int { return b.nodes.Live() }

// NumEdges returns the number of live edges across all paths.
func (b *Builder) NumEdges() int { return b.edges.Live() }

func (b *Builder) validNode(id NodeID) bool {
	return id >= 0 && int(id) < b.nodes.Live()
}

func (b *Builder) node(id NodeID) *Node { return b.nodes.Get(arena.ID(id)) }

func (b *Builder) time(id NodeID) float64 { return b.node(id).Time }

func (b *Builder) edge(id EdgeID) *Edge { return b.edges.Get(arena.ID(id)) }

func (b *Builder) allocEdge() (EdgeID, error) {
	if b.cfg.maxEdges > 0 && b.edges.Live() >= b.cfg.maxEdges {
		return NullEdge, ErrNoMemory
	}
	return EdgeID(b.edges.Alloc()), nil
}
