package stats

import (
	"io"
	"math"

	"github.com/sbinet/npyio/npz"
	"gonum.org/v1/gonum/mat"
)

// History records one row of fitness statistics per completed generation,
// for later export or in-process inspection of convergence behavior.
type History struct {
	best        []float64
	mean        []float64
	worst       []float64
	stddev      []float64
	improvements []float64
}

// NewHistory returns an empty History ready to accept generation records.
func NewHistory() *History {
	return &History{}
}

// Record appends one generation's fitness statistics, computed over every
// individual currently in the population, for maximization runs: "best" is
// the largest fitness value and "worst" the smallest. Callers pass
// population fitness values in any order.
func (h *History) Record(population []int64, improvements int) {
	f := FitnessFloats(population)
	mean, variance := f.MeanVariance()
	h.mean = append(h.mean, mean)
	h.stddev = append(h.stddev, sqrtOrZero(variance))
	h.best = append(h.best, f.Max())
	h.worst = append(h.worst, f.Min())
	h.improvements = append(h.improvements, float64(improvements))
}

// RecordMinimizing is Record's counterpart for minimization runs, where
// "best" is the smallest fitness value rather than the largest.
func (h *History) RecordMinimizing(population []int64, improvements int) {
	f := FitnessFloats(population)
	mean, variance := f.MeanVariance()
	h.mean = append(h.mean, mean)
	h.stddev = append(h.stddev, sqrtOrZero(variance))
	h.best = append(h.best, f.Min())
	h.worst = append(h.worst, f.Max())
	h.improvements = append(h.improvements, float64(improvements))
}

func sqrtOrZero(variance float64) float64 {
	if variance < 0 || math.IsNaN(variance) {
		return 0
	}
	return math.Sqrt(variance)
}

// Generations returns the number of generations recorded so far.
func (h *History) Generations() int {
	return len(h.mean)
}

// WriteNPZ dumps the recorded history to w as an NPZ archive, one named
// array per statistic:
//   - generation_best_fitness
//   - generation_mean_fitness
//   - generation_worst_fitness
//   - generation_stddev_fitness
//   - generation_improvements
func (h *History) WriteNPZ(w io.Writer) error {
	n := h.Generations()
	out := npz.NewWriter(w)

	columns := []struct {
		name string
		data []float64
	}{
		{"generation_best_fitness", h.best},
		{"generation_mean_fitness", h.mean},
		{"generation_worst_fitness", h.worst},
		{"generation_stddev_fitness", h.stddev},
		{"generation_improvements", h.improvements},
	}
	for _, col := range columns {
		if n == 0 {
			// mat.NewDense refuses zero-length dimensions; a run that
			// recorded nothing writes an empty archive instead.
			continue
		}
		m := mat.NewDense(n, 1, col.data)
		if err := out.Write(col.name, m); err != nil {
			return err
		}
	}
	return out.Close()
}
