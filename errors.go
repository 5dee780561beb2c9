package tsbuild

import "errors"

// Sentinel errors returned by Builder methods, named after the error
// taxonomy in the tree-sequence builder's error codes. Wrap with
// fmt.Errorf("%w: ...") for context; compare with errors.Is.
var (
	// ErrNoMemory signals arena capacity exhaustion against a configured
	// ceiling (see Option WithMaxEdges). The builder is left in an
	// indeterminate state and must be discarded.
	ErrNoMemory = errors.New("tsbuild: no memory")

	// ErrBadPathParent is returned by AddPath when a parent node id does
	// not exist. Detected before any mutation.
	ErrBadPathParent = errors.New("tsbuild: bad path parent")

	// ErrBadPathTime is returned by AddPath when a parent's time is not
	// strictly greater than the child's time. Detected before any
	// mutation.
	ErrBadPathTime = errors.New("tsbuild: bad path time")

	// ErrNonContiguousEdges is returned by AddPath when the supplied
	// edges leave a gap or overlap along the genomic coordinate.
	// Detected before any mutation.
	ErrNonContiguousEdges = errors.New("tsbuild: noncontiguous edges")

	// ErrUnsortedEdges is returned by RestoreEdges when the input is not
	// sorted by (child, left).
	ErrUnsortedEdges = errors.New("tsbuild: unsorted edges")

	// ErrAssertionFailure signals an internal invariant violation — a
	// bug, not a caller error. Notably raised when a synthesized
	// path-compression ancestor's time would not strictly dominate the
	// child it is meant to sit above. Fatal: the builder must be
	// discarded.
	ErrAssertionFailure = errors.New("tsbuild: assertion failure")

	// ErrBuilderBroken is returned by AddPath, AddMutations and the
	// Restore methods once a prior call has failed with ErrNoMemory or
	// ErrAssertionFailure. Other errors leave the builder usable. There
	// is no rollback; see Builder.Broken.
	ErrBuilderBroken = errors.New("tsbuild: builder is broken, discard it")

	// ErrUnknownNode is returned when a node id passed to a method does
	// not refer to a previously added node.
	ErrUnknownNode = errors.New("tsbuild: unknown node id")

	// ErrUnknownSite is returned when a site index passed to a method
	// falls outside [0, numSites).
	ErrUnknownSite = errors.New("tsbuild: unknown site index")

	// ErrBadMutationState is returned by AddMutations when a site's
	// first recorded mutation does not have derived state 1, or when a
	// derived state outside {0,1} is supplied.
	ErrBadMutationState = errors.New("tsbuild: bad mutation state")
)
