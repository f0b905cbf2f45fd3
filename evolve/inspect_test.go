package evolve

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Inspect(t *testing.T) {
	cfg := baseScalarConfig()
	engine, err := NewEngine(cfg, scalarCallbacks{}, scalarOpts(cfg.NumThreads), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, engine.Inspect(&buf))
	assert.Contains(t, buf.String(), "population_size=64")
	assert.Contains(t, buf.String(), "survivors=32")

	var keep Individual
	engine.Close(&keep)
}

func TestEstimateCapacity_DiscardMode(t *testing.T) {
	cfg := Config{PopulationSize: 10}
	got := EstimateCapacity(cfg, 16)
	assert.Equal(t, uintptr(10*16+10*8), got)
}
