package tsbuild

// The row types below mirror spec.md §6's output table layout verbatim;
// they are both Dump's output rows and Restore's input rows. NodeRow's
// Population and Individual fields are always absent here (the spec
// marks them "=null") but are kept as -1-sentineled fields so a caller
// downstream of this builder can still round-trip a table collection
// that assigns them.

// NodeRow is one row of the node table.
type NodeRow struct {
	Flags      NodeFlags
	Time       float64
	Population int32 // -1 == null
	Individual int32 // -1 == null
}

// EdgeRow is one row of the edge table.
type EdgeRow struct {
	Left, Right int
	Parent      NodeID
	Child       NodeID
}

// SiteRow is one row of the site table. Position is the site's index
// along the builder's implicit [0, NumSites) coordinate; AncestralState
// is always "0" per spec §4.9.
type SiteRow struct {
	Position       float64
	AncestralState string
}

// MutationRow is one row of the mutation table. ParentMutation is the id
// (index into the emitted mutation table) of the previous mutation
// recorded at the same site, or -1 if this is the site's first.
type MutationRow struct {
	Site           int
	Node           NodeID
	ParentMutation int32
	DerivedState   string
}
