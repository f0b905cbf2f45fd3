package evolve

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// LoadYAMLConfig loads a Config encoded as YAML from r.
func LoadYAMLConfig(r io.Reader) (*Config, error) {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err = yaml.Unmarshal(content, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode evolve Config from YAML")
	}
	if err = cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid evolve Config")
	}
	return &cfg, nil
}

// LoadConfig loads a Config from r in a plain-text "key value" per line
// format, e.g.:
//
//	population_size 128
//	num_threads 4
//	use_recombination true
//	death_percentage 0.5
func LoadConfig(r io.Reader) (*Config, error) {
	c := &Config{}
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "population_size":
			c.PopulationSize = cast.ToInt(param)
		case "num_threads":
			c.NumThreads = cast.ToInt(param)
		case "generation_limit":
			c.GenerationLimit = cast.ToInt(param)
		case "mutation_probability":
			c.MutationProbability = cast.ToFloat64(param)
		case "death_percentage":
			c.DeathPercentage = cast.ToFloat64(param)
		case "use_recombination":
			c.UseRecombination = cast.ToBool(param)
		case "use_mutation":
			c.UseMutation = cast.ToBool(param)
		case "always_mutate":
			c.AlwaysMutate = cast.ToBool(param)
		case "keep_last_generation":
			c.KeepLastGeneration = cast.ToBool(param)
		case "use_abort_requirement":
			c.UseAbortRequirement = cast.ToBool(param)
		case "sort_max":
			c.SortMax = cast.ToBool(param)
		case "use_greedy":
			c.UseGreedy = cast.ToBool(param)
		case "greedy_size":
			c.GreedySize = cast.ToInt(param)
		case "greedy_individuals":
			c.GreedyIndividuals = cast.ToInt(param)
		case "quicksort_cutoff":
			c.QuicksortCutoff = cast.ToInt(param)
		case "verbose":
			c.Verbose = param
		case "rand_seed":
			c.RandSeed = cast.ToInt64(param)
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}
	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid evolve Config")
	}
	return c, nil
}

// ReadConfigFromFile reads a Config from configFilePath, dispatching on the
// file extension the same way the teacher's ReadNeatOptionsFromFile does.
func ReadConfigFromFile(configFilePath string) (*Config, error) {
	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFilePath, "yml") || strings.HasSuffix(configFilePath, "yaml") {
		return LoadYAMLConfig(configFile)
	}
	return LoadConfig(configFile)
}
