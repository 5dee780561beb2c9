// Package arena implements a generic chunked pool with a free list.
//
// Unlike sync.Pool, which hands back arbitrary, GC-reclaimable objects, an
// arena hands out stable int32 ids that remain valid (and addressable)
// until explicitly freed. Callers that need to store a reference to an
// allocated value elsewhere (a path link, an index node) need that
// stability, not GC-friendliness.
package arena

// ID is a stable handle into a Pool. Ids start at 0, so the zero value is
// a valid id; use Nil to test for absence.
type ID int32

// Nil is the sentinel "no value" id.
const Nil ID = -1

// Pool is a pool of T backed by fixed-size chunks, each its own backing
// array. Growth appends a new chunk rather than reallocating existing
// ones, so a pointer returned by Get stays valid for the slot's entire
// allocated lifetime, including across later Alloc calls that grow the
// pool. That stability is load-bearing: path compression holds edge
// pointers across calls that allocate further edges.
type Pool[T any] struct {
	chunks    [][]T
	chunkSize int
	free      []ID

	totalAllocated int
	live           int
}

// SetChunkSize configures the growth chunk; it is a no-op once the pool has
// already allocated its first chunk.
func (p *Pool[T]) SetChunkSize(n int) {
	if len(p.chunks) == 0 && n > 0 {
		p.chunkSize = n
	}
}

func (p *Pool[T]) size() int {
	if len(p.chunks) > 0 {
		return len(p.chunks[0])
	}
	if p.chunkSize > 0 {
		return p.chunkSize
	}
	return 64
}

func (p *Pool[T]) grow() {
	n := p.size()
	start := len(p.chunks) * n
	p.chunks = append(p.chunks, make([]T, n))
	for i := n - 1; i >= 0; i-- {
		p.free = append(p.free, ID(start+i))
	}
}

func (p *Pool[T]) locate(id ID) (chunk, offset int) {
	n := p.size()
	return int(id) / n, int(id) % n
}

// Alloc returns a fresh, zero-valued slot id, reusing a freed slot when one
// is available.
func (p *Pool[T]) Alloc() ID {
	if len(p.free) == 0 {
		p.grow()
	}

	n := len(p.free) - 1
	id := p.free[n]
	p.free = p.free[:n]

	p.totalAllocated++
	p.live++

	c, o := p.locate(id)
	var zero T
	p.chunks[c][o] = zero

	return id
}

// Free releases id back to the pool for reuse. Freeing an id twice, or one
// not currently allocated, corrupts the free list; callers must not do so.
func (p *Pool[T]) Free(id ID) {
	p.live--
	p.free = append(p.free, id)
}

// Get returns a pointer to the live value at id. Unlike a plain
// slice-backed pool, this pointer remains valid for the lifetime of the
// slot (until the id is freed and the slot reused), even across
// intervening Alloc calls on other ids: growth appends a new chunk rather
// than reallocating existing ones.
func (p *Pool[T]) Get(id ID) *T {
	c, o := p.locate(id)
	return &p.chunks[c][o]
}

// Live reports the number of currently allocated (not freed) slots.
func (p *Pool[T]) Live() int { return p.live }

// TotalAllocated reports the cumulative number of Alloc calls, including
// ones later freed and reused.
func (p *Pool[T]) TotalAllocated() int { return p.totalAllocated }

// Cap reports the number of slots backing the pool, live or free.
func (p *Pool[T]) Cap() int { return len(p.chunks) * p.size() }
