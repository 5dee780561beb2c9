package tsbuild

import "github.com/hapseq/tsbuild/internal/arena"

// MutationID identifies a mutation in the mutation arena.
type MutationID = arena.ID

// NullMutation is the sentinel "no mutation" / "no parent mutation" value.
const NullMutation = arena.Nil

// Mutation is one entry in a site's ordered linked list.
type Mutation struct {
	Node    NodeID
	Derived uint8 // 0 or 1
	Next    MutationID
}

// mutationStore is a bump allocator (spec §5: "a bump allocator with
// block-wise release on builder teardown") for per-site mutation lists.
// Go has no explicit teardown hook, so "block-wise release" is simply
// letting the arena's backing slices be garbage collected with the
// Builder; the chunked-growth shape is kept because it is the shape the
// rest of the module's arenas share, not because Go needs manual release.
type mutationStore struct {
	pool arena.Pool[Mutation]
	head []MutationID
	tail []MutationID
}

func newMutationStore(numSites int) *mutationStore {
	head := make([]MutationID, numSites)
	tail := make([]MutationID, numSites)
	for i := range head {
		head[i] = NullMutation
		tail[i] = NullMutation
	}
	return &mutationStore{head: head, tail: tail}
}

// append adds a mutation to site's list and returns its id. The caller is
// responsible for the derived-state validation in spec §4.7.
func (m *mutationStore) append(site int, node NodeID, derived uint8) MutationID {
	id := m.pool.Alloc()
	mu := m.pool.Get(id)
	mu.Node, mu.Derived, mu.Next = node, derived, NullMutation

	if m.tail[site] == NullMutation {
		m.head[site] = id
	} else {
		m.pool.Get(m.tail[site]).Next = id
	}
	m.tail[site] = id
	return id
}

func (m *mutationStore) count() int { return m.pool.Live() }

// AddMutations appends mutations for node at the given sites with the
// given derived states, in order. Per spec §4.7, a site's very first
// recorded mutation must have derived state 1 (site ancestral state is 0
// by construction); later mutations on the same site may be 0 or 1.
func (b *Builder) AddMutations(node NodeID, sites []int, derived []uint8) error {
	if b.broken {
		return ErrBuilderBroken
	}
	if !b.validNode(node) {
		return ErrUnknownNode
	}
	if len(sites) != len(derived) {
		panic("tsbuild: AddMutations: sites and derived must have equal length")
	}

	for i, site := range sites {
		if site < 0 || site >= b.numSites {
			return ErrUnknownSite
		}
		ds := derived[i]
		if ds != 0 && ds != 1 {
			return ErrBadMutationState
		}
		if b.mut.head[site] == NullMutation && ds != 1 {
			return ErrBadMutationState
		}
		b.mut.append(site, node, ds)
	}
	if b.cfg.extendedChecks {
		if err := b.checkInvariants(); err != nil {
			return b.fail(err)
		}
	}
	return nil
}

// NumMutations returns the total number of mutations recorded so far.
func (b *Builder) NumMutations() int { return b.mut.count() }
