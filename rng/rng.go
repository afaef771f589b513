// Package rng wraps the random sources the engine needs: uniform floats for
// action sampling and Dirichlet noise for MCTS root exploration.
package rng

import (
	"math/rand"

	distrand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distmv"
)

// Source is a seeded random source shared by one MCTS search. It is not
// safe for concurrent use — callers that need independent streams should
// construct one Source per goroutine.
type Source struct {
	r     *rand.Rand
	seed  uint64
	alpha []float64
}

// New returns a Source seeded deterministically from seed, producing
// Dirichlet noise vectors of the given dimension (26 for the full action
// space, including the pass index) with concentration parameter alpha
// applied uniformly across dimensions.
func New(seed uint64, dim int, alpha float64) *Source {
	a := make([]float64, dim)
	for i := range a {
		a[i] = alpha
	}
	return &Source{
		r:     rand.New(rand.NewSource(int64(seed))),
		seed:  seed,
		alpha: a,
	}
}

// Float64 returns a uniform draw in [0, 1).
func (s *Source) Float64() float64 {
	return s.r.Float64()
}

// DirichletNoise draws one sample from Dir(alpha, ..., alpha) over the
// configured dimension, following the teacher's exact call shape:
// distmv.NewDirichlet builds the distribution fresh against an
// independently seeded golang.org/x/exp/rand source, then Rand(nil)
// allocates and returns the sample.
func (s *Source) DirichletNoise() []float64 {
	s.seed++
	dist := distmv.NewDirichlet(s.alpha, distrand.NewSource(s.seed))
	return dist.Rand(nil)
}
