package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/croplab/phenopipe/internal/log"
	"github.com/croplab/phenopipe/internal/pipeline"
	"github.com/croplab/phenopipe/internal/resultstore"
	"github.com/croplab/phenopipe/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	input := flag.String("input", "", "Path to the mask-area measurement table (CSV with Image Name and Area columns)")
	output := flag.String("output", ".", "Directory receiving the four stage artifacts")
	rangeMax := flag.Int("range-max", 0, "Upper bound on plot IDs (default from config, built-in 420)")
	outlierFilter := flag.Bool("outlier-filter", false, "Exclude per-plot outliers outside the 1.5*IQR fences")
	unmatched := flag.String("unmatched", "", "Policy for rows matching no plot: ignore, warn, or fail")
	cfgFile := flag.String("config", "", "Path to configuration source (YAML or SQLite); flags override config values")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	resultsDB := flag.String("results-db", "", "Optional SQLite run-history database")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	// A boolean flag's default is indistinguishable from an explicit
	// -outlier-filter=false, so track which flags were actually set.
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if *showVersion {
		fmt.Printf("phenopipe %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *input == "" {
		log.Errorf("No input table given. Run with -h for help.")
		os.Exit(1)
	}

	cfgData, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	opts := buildOptions(cfgData, setFlags, *rangeMax, *outlierFilter, *unmatched)
	opts.Log = func(msg string) { log.Info(msg) }
	switch opts.Unmatched {
	case pipeline.UnmatchedIgnore, pipeline.UnmatchedWarn, pipeline.UnmatchedFail:
	default:
		log.Errorf("Invalid unmatched policy %q. Use ignore, warn, or fail.", opts.Unmatched)
		os.Exit(1)
	}

	storePath := *resultsDB
	if storePath == "" && cfgData.Results != nil {
		storePath = cfgData.Results.Database
	}
	var store *resultstore.Store
	if storePath != "" {
		store, err = resultstore.Open(storePath)
		if err != nil {
			log.Errorf("Failed to open run-history database: %v", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	if err := os.MkdirAll(*output, 0o755); err != nil {
		log.Errorf("Failed to create output directory: %v", err)
		os.Exit(1)
	}

	measurements, err := pipeline.ReadMeasurements(*input)
	if err != nil {
		log.Errorf("Failed to read measurement table: %v", err)
		os.Exit(1)
	}
	log.Infof("loaded %d measurements from %s", len(measurements), filepath.Base(*input))

	startedAt := time.Now()
	result, err := pipeline.Run(measurements, *output, opts)
	if err != nil {
		log.Errorf("Pipeline failed: %v", err)
		if store != nil {
			if _, serr := store.RecordFailure(*input, *output, opts, err, startedAt); serr != nil {
				log.Errorf("Failed to record run failure: %v", serr)
			}
		}
		os.Exit(1)
	}

	log.Infof("summarized %d plots from %d measurements (%d unmatched)",
		len(result.Statistics), result.Measurements, result.Unmatched)

	if store != nil {
		runID, err := store.RecordRun(*input, *output, opts, result, startedAt)
		if err != nil {
			log.Errorf("Failed to record run: %v", err)
			os.Exit(1)
		}
		log.Infof("run recorded as %s in %s", runID, storePath)
	}
}

// buildOptions merges configuration-file defaults with command-line
// overrides. Flags win, but only when they were explicitly set: a boolean
// flag's zero value must not mask a config file's true.
func buildOptions(cfgData *config.Data, setFlags map[string]bool, rangeMax int, outlierFilter bool, unmatched string) pipeline.Options {
	opts := pipeline.Options{
		RangeMax:      cfgData.Pipeline.RangeMax,
		OutlierFilter: cfgData.Pipeline.OutlierFilter,
		Unmatched:     pipeline.UnmatchedPolicy(cfgData.Pipeline.Unmatched),
	}
	if rangeMax > 0 {
		opts.RangeMax = rangeMax
	}
	if setFlags["outlier-filter"] {
		opts.OutlierFilter = outlierFilter
	}
	if unmatched != "" {
		opts.Unmatched = pipeline.UnmatchedPolicy(unmatched)
	}
	return opts
}

func loadConfig(cfgFile, cfgBackend string) (*config.Data, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	filename, _ := filepath.Abs(cfgFile)

	var provider config.Provider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
	defer provider.Close()

	cfgData, err := provider.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return cfgData, nil
}
