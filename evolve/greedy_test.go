package evolve

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greedyScalarConfig() *Config {
	return &Config{
		PopulationSize:      16,
		NumThreads:          4,
		GenerationLimit:     50,
		MutationProbability: 1.0,
		DeathPercentage:     0.5,
		UseMutation:         true,
		AlwaysMutate:        true,
		UseGreedy:           true,
		GreedySize:          8,
		GreedyIndividuals:   32,
		RandSeed:            7,
	}
}

func TestGreedy_ReachesLowFitness(t *testing.T) {
	cfg := greedyScalarConfig()
	engine, err := NewEngine(cfg, scalarCallbacks{}, scalarOpts(cfg.NumThreads), nil)
	require.NoError(t, err)

	best, err := engine.Run(context.Background())
	require.NoError(t, err)
	engine.Close(&best)

	assert.LessOrEqual(t, best.Fitness, int64(6))
}

func TestGreedy_IgnoresKeepLastGeneration(t *testing.T) {
	cfg := greedyScalarConfig()
	cfg.KeepLastGeneration = true

	engine, err := NewEngine(cfg, scalarCallbacks{}, scalarOpts(cfg.NumThreads), nil)
	require.NoError(t, err)

	best, err := engine.Run(context.Background())
	require.NoError(t, err)
	engine.Close(&best)

	// Greedy mode never touches the store's keep/discard machinery, so this
	// must succeed identically to the discard-mode run above.
	assert.LessOrEqual(t, best.Fitness, int64(6))
}

// recombineCountingCallbacks wraps scalarCallbacks to count Recombinate
// invocations, accessed from every worker goroutine concurrently.
type recombineCountingCallbacks struct {
	scalarCallbacks
	recombinations *int64
}

func (c recombineCountingCallbacks) Recombinate(p1, p2, dst interface{}, opts interface{}) {
	atomic.AddInt64(c.recombinations, 1)
	c.scalarCallbacks.Recombinate(p1, p2, dst, opts)
}

func TestGreedy_ExploitPhaseUsesRecombination(t *testing.T) {
	cfg := greedyScalarConfig()
	cfg.UseRecombination = true

	var recombinations int64
	cb := recombineCountingCallbacks{recombinations: &recombinations}

	engine, err := NewEngine(cfg, cb, scalarOpts(cfg.NumThreads), nil)
	require.NoError(t, err)

	best, err := engine.Run(context.Background())
	require.NoError(t, err)
	engine.Close(&best)

	assert.Greater(t, atomic.LoadInt64(&recombinations), int64(0),
		"greedy exploit phase must call Recombinate when UseRecombination is set")
}

func TestGreedy_SetGreedySizeWidensSubPopulation(t *testing.T) {
	cfg := greedyScalarConfig()
	cfg.GenerationLimit = 0
	cfg.UseAbortRequirement = true

	calls := 0
	engine, err := NewEngine(cfg, scalarCallbacks{}, scalarOpts(cfg.NumThreads), func(view *EngineView) bool {
		calls++
		if calls == 1 {
			view.SetGreedySize(16)
		}
		return calls < 5
	})
	require.NoError(t, err)

	_, err = engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 16, engine.cfg.GreedySize)
}
