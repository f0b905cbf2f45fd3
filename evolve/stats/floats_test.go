package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloats_MinMaxSum(t *testing.T) {
	f := Floats{3, 1, 4, 1, 5, 9, 2, 6}
	assert.Equal(t, 1.0, f.Min())
	assert.Equal(t, 9.0, f.Max())
	assert.Equal(t, 31.0, f.Sum())
}

func TestFloats_Mean(t *testing.T) {
	f := Floats{2, 4, 6}
	assert.Equal(t, 4.0, f.Mean())
}

func TestFloats_EmptyReturnsNaN(t *testing.T) {
	var f Floats
	assert.True(t, math.IsNaN(f.Min()))
	assert.True(t, math.IsNaN(f.Max()))
	assert.True(t, math.IsNaN(f.Mean()))
}

func TestFloats_MeanVariance(t *testing.T) {
	f := Floats{2, 4, 4, 4, 5, 5, 7, 9}
	mean, variance := f.MeanVariance()
	assert.InDelta(t, 5.0, mean, 1e-9)
	assert.InDelta(t, 4.571428571, variance, 1e-6)
}

func TestFitnessFloats_Conversion(t *testing.T) {
	fitness := []int64{10, -5, 0, 3}
	f := FitnessFloats(fitness)
	assert.Equal(t, Floats{10, -5, 0, 3}, f)
}
