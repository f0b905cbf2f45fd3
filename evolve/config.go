package evolve

// EpochExecutorType of PopulationEpochExecutor is not needed here - the
// engine has a single executor implementation that dispatches work across
// its own persistent worker pool; only its degree of parallelism (NumThreads)
// is configurable.

// GenomeCompatibilityMethod has no analog in this engine: individuals carry
// no genome to compare, and speciation is explicitly out of scope.

// Config holds every tunable parameter of an evolutionary run. It is the Go
// form of the base spec's "Configuration options enumeration" (§6) and plays
// the same role neat.Options plays for the NEAT engine: validated once at
// construction, then read-only for the lifetime of the run (with the single
// exception of GreedySize, which continue_ev may widen).
type Config struct {
	// PopulationSize is the logical population size P (must be > 0).
	PopulationSize int `yaml:"population_size"`
	// NumThreads is the number of persistent worker goroutines (must be >= 1).
	NumThreads int `yaml:"num_threads"`
	// GenerationLimit bounds the number of generations the engine will run.
	GenerationLimit int `yaml:"generation_limit"`
	// MutationProbability is consulted when AlwaysMutate is false; in [0, 1].
	MutationProbability float64 `yaml:"mutation_probability"`
	// DeathPercentage is the fraction of the population replaced each
	// generation; in [0, 1).
	DeathPercentage float64 `yaml:"death_percentage"`

	// UseRecombination enables two-parent offspring production.
	UseRecombination bool `yaml:"use_recombination"`
	// UseMutation enables the mutation operator.
	UseMutation bool `yaml:"use_mutation"`
	// AlwaysMutate applies mutation unconditionally instead of gating it by
	// MutationProbability.
	AlwaysMutate bool `yaml:"always_mutate"`
	// KeepLastGeneration selects double-buffered keep mode over discard mode.
	KeepLastGeneration bool `yaml:"keep_last_generation"`
	// UseAbortRequirement consults ContinueEv once per generation.
	UseAbortRequirement bool `yaml:"use_abort_requirement"`
	// SortMax orders by descending fitness (maximize); SortMin (the zero
	// value) orders by ascending fitness (minimize).
	SortMax bool `yaml:"sort_max"`

	// UseGreedy switches to the greedy top-level loop (§4.5).
	UseGreedy bool `yaml:"use_greedy"`
	// GreedySize is the per-worker sub-population size in greedy mode.
	GreedySize int `yaml:"greedy_size"`
	// GreedyIndividuals is the number of seed candidates each worker creates
	// during the greedy seed-search phase.
	GreedyIndividuals int `yaml:"greedy_individuals"`

	// QuicksortCutoff is the subarray length below which the partial sorter
	// switches from quicksort to insertion sort. Zero selects the default of 20.
	QuicksortCutoff int `yaml:"quicksort_cutoff"`

	// Verbose controls progress reporting: "quiet", "oneline", "high", "ultra".
	Verbose string `yaml:"verbose"`

	// RandSeed seeds the per-worker PRNG pool. Zero selects a value derived
	// from the current time (non-deterministic runs).
	RandSeed int64 `yaml:"rand_seed"`
}

// defaultQuicksortCutoff mirrors the original source's EV_QICKSORT_MIN.
const defaultQuicksortCutoff = 20

// Validate checks the configuration for internal consistency, following the
// rules laid out in base spec §4.6. It never mutates the receiver except to
// fill in the QuicksortCutoff default.
func (c *Config) Validate() error {
	if c.PopulationSize <= 0 {
		return errorf("population_size must be > 0, got %d", c.PopulationSize)
	}
	if c.NumThreads < 1 {
		return errorf("num_threads must be >= 1, got %d", c.NumThreads)
	}
	if c.DeathPercentage < 0 || c.DeathPercentage >= 1 {
		return errorf("death_percentage must be in [0, 1), got %f", c.DeathPercentage)
	}
	if c.MutationProbability < 0 || c.MutationProbability > 1 {
		return errorf("mutation_probability must be in [0, 1], got %f", c.MutationProbability)
	}
	if !c.UseRecombination && !c.UseMutation {
		return errorf("at least one of use_recombination or use_mutation must be enabled")
	}
	if !c.UseGreedy && c.survivors() < 1 {
		return errorf("population_size=%d and death_percentage=%f leave 0 survivors; raise population_size or lower death_percentage", c.PopulationSize, c.DeathPercentage)
	}
	if c.UseGreedy {
		if c.GreedySize < 1 {
			return errorf("greedy_size must be >= 1 in greedy mode, got %d", c.GreedySize)
		}
		if c.GreedyIndividuals < 1 {
			return errorf("greedy_individuals must be >= 1 in greedy mode, got %d", c.GreedyIndividuals)
		}
	}
	if c.QuicksortCutoff <= 0 {
		c.QuicksortCutoff = defaultQuicksortCutoff
	}
	if _, err := ParseVerbosity(c.Verbose); err != nil {
		return err
	}
	return nil
}

// deaths returns the number of individuals replaced each generation, rounded
// the way the base spec's "deaths = round(P * death_percentage)" prescribes.
func (c *Config) deaths() int {
	d := int(c.DeathPercentage*float64(c.PopulationSize) + 0.5)
	if d > c.PopulationSize {
		d = c.PopulationSize
	}
	return d
}

// survivors returns the number of individuals that persist to spawn offspring.
func (c *Config) survivors() int {
	return c.PopulationSize - c.deaths()
}

// verbosity parses Config.Verbose, defaulting to VerboseQuiet on error since
// Validate is expected to have already rejected bad values.
func (c *Config) verbosity() Verbosity {
	v, err := ParseVerbosity(c.Verbose)
	if err != nil {
		return VerboseQuiet
	}
	return v
}
