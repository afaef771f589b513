package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameSeedIsDeterministic(t *testing.T) {
	a := New(42, 26, 0.3)
	b := New(42, 26, 0.3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestDirichletNoiseSumsToOne(t *testing.T) {
	s := New(7, 26, 0.3)
	noise := s.DirichletNoise()
	assert.Len(t, noise, 26)
	var sum float64
	for _, v := range noise {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestDirichletNoiseVariesAcrossCalls(t *testing.T) {
	s := New(7, 26, 0.3)
	first := s.DirichletNoise()
	second := s.DirichletNoise()
	assert.NotEqual(t, first, second)
}
