package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kamaln7/goevolve/evolve"
	"github.com/kamaln7/goevolve/evolve/stats"
	"github.com/kamaln7/goevolve/examples/vektor"
)

func main() {
	var configPath = flag.String("config", "", "Path to a run configuration file (plain key/value, or .yml/.yaml).")
	var outDirPath = flag.String("out", "./out", "The output directory to store results.")
	var logLevel = flag.String("log_level", "", "Verbosity override: quiet, oneline, high, ultra.")
	var demo = flag.String("demo", "vektor", "The bundled demo problem to run. [vektor]")

	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
	if len(*logLevel) > 0 {
		cfg.Verbose = *logLevel
	}

	if *demo != "vektor" {
		log.Fatalf("Unsupported demo: %s", *demo)
	}

	outDir := *outDirPath
	if _, err := os.Stat(outDir); err == nil {
		backupDir := fmt.Sprintf("%s-%s", outDir, time.Now().Format("2006-01-02T15_04_05"))
		if err := os.Rename(outDir, backupDir); err != nil {
			log.Fatal("Failed to back up previous output directory: ", err)
		}
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		log.Fatal("Failed to create output directory: ", err)
	}

	seed := cfg.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := vektor.NewOptionsPool(uint64(seed), cfg.NumThreads, vektor.DefaultOptions.Min, vektor.DefaultOptions.Max)

	footprint := evolve.EstimateCapacity(*cfg, sizeofVektor)
	log.Printf("estimated backing-store footprint: %d bytes", footprint)

	history := stats.NewHistory()
	continueEv := func(view *evolve.EngineView) bool {
		history.RecordMinimizing(view.PopulationFitness(), view.Info.Improvements)
		return cfg.GenerationLimit <= 0 || view.Generation < cfg.GenerationLimit
	}

	engine, err := evolve.NewEngine(cfg, vektor.Callbacks{}, opts, continueEv)
	if err != nil {
		log.Fatal("Failed to construct engine: ", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	var best evolve.Individual

	go func() {
		var runErr error
		best, runErr = engine.Run(ctx)
		errChan <- runErr
	}()

	go func(cancel context.CancelFunc) {
		fmt.Println("Press Ctrl+C to stop")
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		<-signals
		cancel()
	}(cancel)

	if err := <-errChan; err != nil && err != context.Canceled {
		log.Fatalf("Run failed: %s", err)
	}

	engine.Close(&best)

	fmt.Printf(">>> best individual: %v (fitness=%d)\n", best.Payload, best.Fitness)
	fmt.Printf(">>> generations progressed: %d\n", engine.Generation())

	reportPath := fmt.Sprintf("%s/best.txt", outDir)
	if f, err := os.Create(reportPath); err != nil {
		log.Fatal("Failed to create best-individual report: ", err)
	} else {
		defer f.Close()
		fmt.Fprintf(f, "best=%v fitness=%d generations=%d\n", best.Payload, best.Fitness, engine.Generation())
	}

	npzPath := fmt.Sprintf("%s/fitness_history.npz", outDir)
	if f, err := os.Create(npzPath); err != nil {
		log.Fatalf("Failed to create file for fitness history: [%s], reason: %s", npzPath, err)
	} else if err := history.WriteNPZ(f); err != nil {
		log.Fatal("Failed to save fitness history as NPZ file: ", err)
	}
}

// sizeofVektor approximates a Vektor's in-memory footprint for the
// pre-run capacity estimate; it is not used anywhere on the hot path.
const sizeofVektor = vektor.Size * 8

func loadConfig(path string) (*evolve.Config, error) {
	if path == "" {
		return &evolve.Config{
			PopulationSize:      128,
			NumThreads:          4,
			GenerationLimit:     1000,
			MutationProbability: 1.0,
			DeathPercentage:     0.5,
			UseRecombination:    true,
			UseMutation:         true,
			AlwaysMutate:        true,
			KeepLastGeneration:  true,
			UseAbortRequirement: true,
			Verbose:             "oneline",
		}, nil
	}
	return evolve.ReadConfigFromFile(path)
}
