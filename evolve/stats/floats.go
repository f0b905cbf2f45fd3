// Package stats provides descriptive statistics and per-generation history
// recording for evolutionary runs.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Floats provides descriptive statistics on a slice of float64 values.
type Floats []float64

// FitnessFloats converts a slice of fitness values into a Floats for
// statistical summarization.
func FitnessFloats(fitness []int64) Floats {
	out := make(Floats, len(fitness))
	for i, f := range fitness {
		out[i] = float64(f)
	}
	return out
}

// Min returns the smallest value in the slice.
func (x Floats) Min() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Min(x)
}

// Max returns the greatest value in the slice.
func (x Floats) Max() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return floats.Max(x)
}

// Sum returns the total of the values in the slice.
func (x Floats) Sum() float64 {
	return floats.Sum(x)
}

// Mean returns the average of the values in the slice.
func (x Floats) Mean() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Mean(x, nil)
}

// MeanVariance returns the sample mean and unbiased variance of the values.
func (x Floats) MeanVariance() (mean, variance float64) {
	if len(x) == 0 {
		return math.NaN(), math.NaN()
	}
	return stat.MeanVariance(x, nil)
}

// Median returns the middle value in the slice (50% quantile). x must be
// sorted ascending; callers that don't already have a sorted copy should
// sort one before calling.
func (x Floats) Median() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Quantile(0.5, stat.Empirical, x, nil)
}

// Q25 is the 25% quantile. x must be sorted ascending.
func (x Floats) Q25() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Quantile(0.25, stat.Empirical, x, nil)
}

// Q75 is the 75% quantile. x must be sorted ascending.
func (x Floats) Q75() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Quantile(0.75, stat.Empirical, x, nil)
}

// Variance returns the variance of the values in the slice.
func (x Floats) Variance() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.Variance(x, nil)
}

// StdDev returns the standard deviation of the values in the slice.
func (x Floats) StdDev() float64 {
	if len(x) == 0 {
		return math.NaN()
	}
	return stat.StdDev(x, nil)
}
