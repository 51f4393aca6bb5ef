package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDot(t *testing.T) {
	a := Vector{Indices: []int{0, 2, 5}, Values: []float64{1, 2, 3}}
	b := Vector{Indices: []int{2, 3, 5}, Values: []float64{4, 7, 1}}
	assert.InDelta(t, 11.0, Dot(a, b), 1e-12)
	assert.InDelta(t, 0.0, Dot(a, Vector{}), 1e-12)
}

func TestCosine(t *testing.T) {
	a := Vector{Indices: []int{1}, Values: []float64{3}}
	assert.InDelta(t, 1.0, Cosine(a, a), 1e-12)
	assert.Equal(t, 0.0, Cosine(a, Vector{}))

	b := Vector{Indices: []int{2}, Values: []float64{5}}
	assert.Equal(t, 0.0, Cosine(a, b))
}

func TestVector_IsZero(t *testing.T) {
	assert.True(t, Vector{}.IsZero())
	assert.True(t, Vector{Indices: []int{1}, Values: []float64{0}}.IsZero())
	assert.False(t, Vector{Indices: []int{1}, Values: []float64{0.1}}.IsZero())
}
