package tsbuild

import (
	"math/rand/v2"
	"testing"
)

// FuzzAddPathInvariants builds a random chain of parents and children over
// a fixed coordinate and asserts every mutating call leaves the builder in
// a state satisfying checkInvariants, per spec §8.
func FuzzAddPathInvariants(f *testing.F) {
	f.Add(uint64(1), 3, 6)
	f.Add(uint64(42), 4, 10)
	f.Add(uint64(1000), 2, 20)
	f.Add(uint64(0), 5, 3)

	f.Fuzz(func(t *testing.T, seed uint64, numSites int, numNodes int) {
		if numSites < 1 || numSites > 16 || numNodes < 2 || numNodes > 40 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 7))
		b := newTestBuilder(t, numSites)

		// Times strictly decrease with insertion order so every later node
		// can validly parent onto any earlier one.
		times := make([]float64, numNodes)
		times[0] = float64(numNodes) * 10
		nodes := make([]NodeID, numNodes)
		nodes[0] = b.AddNode(times[0], 0)

		for i := 1; i < numNodes; i++ {
			times[i] = times[i-1] - 1
			nodes[i] = b.AddNode(times[i], 0)

			parentIdx := prng.IntN(i) // any strictly earlier (thus older) node
			parent := nodes[parentIdx]

			cuts := randomCutPoints(prng, numSites)
			edges := make([]PathEdge, 0, len(cuts)-1)
			for j := len(cuts) - 2; j >= 0; j-- { // right-to-left delivery
				edges = append(edges, PathEdge{Left: cuts[j], Right: cuts[j+1], Parent: parent})
			}

			flags := AddPathFlags(0)
			if prng.IntN(2) == 0 {
				flags = CompressPath
			} else {
				// Nothing squashes an uncompressed path, and checkInvariants
				// rejects adjacent same-parent edges, so deliver it as one edge.
				edges = []PathEdge{{Left: 0, Right: numSites, Parent: parent}}
			}
			if err := b.AddPath(nodes[i], edges, flags); err != nil {
				t.Fatalf("AddPath(%d): %v", nodes[i], err)
			}
			if err := b.checkInvariants(); err != nil {
				t.Fatalf("checkInvariants after AddPath(%d): %v", nodes[i], err)
			}
		}
	})
}

// randomCutPoints returns a strictly increasing slice from 0 to numSites
// with at least two entries, suitable as contiguous interval boundaries.
func randomCutPoints(prng *rand.Rand, numSites int) []int {
	cuts := []int{0}
	for p := 1; p < numSites; p++ {
		if prng.IntN(2) == 0 {
			cuts = append(cuts, p)
		}
	}
	cuts = append(cuts, numSites)
	return cuts
}
