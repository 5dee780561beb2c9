package tsbuild

// NodeID identifies a node in the node table. Ids are assigned in
// insertion order starting at 0.
type NodeID int32

// NullNode is the sentinel "no node" value, used both for a genuinely
// absent parent/child and — transiently, on an Edge's Child field — to
// mark an edge as detached from all three indexes during in-place
// mutation (path compression, squash).
const NullNode NodeID = -1

// EdgeID identifies an edge in the edge arena.
type EdgeID int32

// NullEdge is the sentinel "no edge" value, used for the terminal link of
// a path chain and for "no match found" results.
const NullEdge EdgeID = -1

// NodeFlags is a bitfield attached to every node.
type NodeFlags uint32

// FlagIsPCAncestor marks a node synthesized by path compression rather
// than one supplied by the caller.
const FlagIsPCAncestor NodeFlags = 1 << 0

// epsilon is the fixed time decrement applied below a path-compression
// ancestor's shallowest compressed parent. It is a power of two so the
// subtraction is exact in float64 arithmetic and never drifts across many
// generations of ancestors.
const epsilon = 1.0 / 65536.0

// Node is one row of the append-only node table.
type Node struct {
	Time  float64
	Flags NodeFlags
}

// Edge asserts that Child inherits from Parent over the half-open
// genomic interval [Left, Right). Time is the child's time, cached at
// edge-creation time so the indexes can sort on it without a node-table
// lookup. Next chains this edge to the next one (by increasing Left) on
// Child's path; NullEdge terminates the chain.
//
// Child == NullNode marks the edge as transiently detached from all three
// indexes — a caller must never observe an edge in this state; it is only
// valid strictly within a single compress/squash call.
type Edge struct {
	Left, Right int
	Parent      NodeID
	Child       NodeID
	Time        float64
	Next        EdgeID

	// leftID, rightID, pathID are the handles into the three ordindex
	// trees for this edge's entry, or ordindex.Nil while the edge is
	// detached.
	leftID, rightID, pathID indexHandle
}

// PathEdge is one (left, right, parent) triple as supplied to AddPath, in
// the caller's right-to-left delivery order.
type PathEdge struct {
	Left, Right int
	Parent      NodeID
}

// AddPathFlags controls AddPath's behavior.
type AddPathFlags uint32

const (
	// CompressPath runs path compression (§4.5) after linking the new
	// path, before indexing it.
	CompressPath AddPathFlags = 1 << iota

	// ExtendedChecks runs the full invariant check (normally reserved
	// for PrintState) after the call completes, returning
	// ErrAssertionFailure on the first violation found and marking the
	// builder broken. Expensive;
	// intended for tests and debugging, not production ingestion.
	ExtendedChecks
)
