package evolve

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate_Defaults(t *testing.T) {
	c := &Config{PopulationSize: 100, NumThreads: 4, UseMutation: true}
	require.NoError(t, c.Validate())
	assert.Equal(t, defaultQuicksortCutoff, c.QuicksortCutoff)
}

func TestConfig_Validate_RejectsZeroPopulation(t *testing.T) {
	c := &Config{PopulationSize: 0, NumThreads: 1, UseMutation: true}
	assert.Error(t, c.Validate())
}

func TestConfig_Validate_RequiresMutationOrRecombination(t *testing.T) {
	c := &Config{PopulationSize: 10, NumThreads: 1}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use_recombination")
}

func TestConfig_Validate_GreedyRequiresSizes(t *testing.T) {
	c := &Config{PopulationSize: 10, NumThreads: 1, UseMutation: true, UseGreedy: true}
	assert.Error(t, c.Validate())

	c.GreedySize = 4
	c.GreedyIndividuals = 8
	assert.NoError(t, c.Validate())
}

func TestConfig_Validate_RejectsZeroSurvivors(t *testing.T) {
	c := &Config{PopulationSize: 2, NumThreads: 1, UseMutation: true, DeathPercentage: 0.75}
	require.Equal(t, 0, c.survivors(), "fixture must actually hit the zero-survivors edge case")
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "survivors")
}

func TestConfig_Validate_ZeroSurvivorsOKInGreedyMode(t *testing.T) {
	c := &Config{
		PopulationSize: 2, NumThreads: 1, UseMutation: true, DeathPercentage: 0.75,
		UseGreedy: true, GreedySize: 4, GreedyIndividuals: 8,
	}
	assert.NoError(t, c.Validate(), "greedy mode never reads the survivor prefix, so it should be exempt")
}

func TestConfig_DeathsAndSurvivors(t *testing.T) {
	c := &Config{PopulationSize: 100, NumThreads: 1, UseMutation: true, DeathPercentage: 0.5}
	require.NoError(t, c.Validate())
	assert.Equal(t, 50, c.deaths())
	assert.Equal(t, 50, c.survivors())
}

func TestConfig_DeathsClampedToPopulation(t *testing.T) {
	c := &Config{PopulationSize: 4, DeathPercentage: 0.99}
	assert.LessOrEqual(t, c.deaths(), c.PopulationSize)
}

func TestLoadConfig_PlainText(t *testing.T) {
	text := strings.Join([]string{
		"population_size 128",
		"num_threads 4",
		"use_recombination true",
		"use_mutation true",
		"death_percentage 0.5",
		"mutation_probability 1.0",
		"verbose oneline",
	}, "\n") + "\n"

	cfg, err := LoadConfig(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 128, cfg.PopulationSize)
	assert.Equal(t, 4, cfg.NumThreads)
	assert.True(t, cfg.UseRecombination)
	assert.Equal(t, 0.5, cfg.DeathPercentage)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	_, err := LoadConfig(strings.NewReader("bogus_key 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown configuration parameter")
}

func TestLoadYAMLConfig(t *testing.T) {
	yamlText := "population_size: 64\nnum_threads: 2\nuse_mutation: true\nalways_mutate: true\n"
	cfg, err := LoadYAMLConfig(strings.NewReader(yamlText))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.PopulationSize)
	assert.Equal(t, 2, cfg.NumThreads)
}

func TestEstimateCapacity_KeepModeDoublesDiscardMode(t *testing.T) {
	base := Config{PopulationSize: 100, NumThreads: 1}
	discard := EstimateCapacity(base, 32)

	keep := base
	keep.KeepLastGeneration = true
	withKeep := EstimateCapacity(keep, 32)

	assert.Greater(t, withKeep, discard)
	assert.LessOrEqual(t, withKeep, discard*2)
	assert.GreaterOrEqual(t, float64(withKeep), float64(discard)*1.5)
}
