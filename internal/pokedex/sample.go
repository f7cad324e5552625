package pokedex

import "math/rand/v2"

// Sample returns min(n, len(population)) distinct elements of population in
// random order. It runs a partial Fisher-Yates shuffle over an index slice, so
// it terminates for any input and never repeats a position. A nil r uses the
// global source. population is not modified.
func Sample(r *rand.Rand, population []string, n int) []string {
	if n <= 0 || len(population) == 0 {
		return []string{}
	}
	if n > len(population) {
		n = len(population)
	}

	idx := make([]int, len(population))
	for i := range idx {
		idx[i] = i
	}

	out := make([]string, n)
	for i := 0; i < n; i++ {
		j := i + intN(r, len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = population[idx[i]]
	}
	return out
}

func intN(r *rand.Rand, n int) int {
	if r == nil {
		return rand.IntN(n)
	}
	return r.IntN(n)
}

// NewRand returns a generator seeded with seed, for reproducible samples.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
