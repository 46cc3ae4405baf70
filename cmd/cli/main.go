package main

import (
	"context"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/limaJavier/covering/pkg/config"
	"github.com/limaJavier/covering/pkg/coverage"
	"github.com/limaJavier/covering/pkg/model"
	"github.com/namsral/flag"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	exitFailure    = 1
	exitAllPassed  = 10
	exitMismatched = 15
)

var validFormats = []string{"text", "json"}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// Runs the command line and returns its exit code, so that deferred calls complete before the process exits
func run(args []string, stdout, stderr io.Writer) int {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Define arguments; every flag can also be given through a COVERAGE_ prefixed environment variable (e.g. COVERAGE_MAX_COMBINATIONS)
	flags := flag.NewFlagSetWithEnvPrefix(args[0], "COVERAGE", flag.ContinueOnError)
	flags.SetOutput(stderr)
	filePathPtr := flags.String("file", "", "Path to the JSON or YAML file holding the problem set")
	settingsPathPtr := flags.String("settings", "", "Path to a JSON or YAML settings file; flags take precedence over it")
	debugPtr := flags.Bool("debug", false, "Turn debugging information on")
	workersPtr := flags.Int("workers", 0, "Amount of items evaluated concurrently, where the number of CPUs is the default")
	timeoutPtr := flags.Duration("timeout", 0, "Deadline for the whole evaluation (e.g. \"30s\"); 0 disables it")
	maxCombinationsPtr := flags.Uint64("max-combinations", config.DefaultMaxCombinations, "Items with more combinations to check are rejected; 0 disables the limit")
	formatPtr := flags.String("format", "text", "Output format. Allowed values are: \"text\" and \"json\", where \"text\" is the default")
	if err := flags.Parse(args[1:]); err != nil {
		return exitFailure
	}
	filePath := *filePathPtr
	format := strings.ToLower(*formatPtr)

	//** Resolve settings: defaults < settings file < flags
	settings := config.Default()
	if *settingsPathPtr != "" {
		loaded, err := config.Load(*settingsPathPtr)
		if err != nil {
			logger.Errorf("cannot load settings: %v", err)
			return exitFailure
		}
		settings = loaded
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			settings.Debug = *debugPtr
		case "workers":
			settings.Workers = *workersPtr
		case "timeout":
			settings.Timeout = *timeoutPtr
		case "max-combinations":
			settings.MaxCombinations = *maxCombinationsPtr
		}
	})

	// Validate arguments
	if filePath == "" {
		logger.Error("an input file must be specified")
		return exitFailure
	} else if !slices.Contains(validFormats, format) {
		logger.Errorf("%v is not a valid format", format)
		return exitFailure
	} else if err := settings.Validate(); err != nil {
		logger.Error(err)
		return exitFailure
	}

	if settings.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	logger.WithFields(logrus.Fields{
		"file":             filePath,
		"workers":          settings.Workers,
		"timeout":          settings.Timeout,
		"max_combinations": settings.MaxCombinations,
	}).Debug("arguments parsed")

	// Extract input
	problems, err := model.InputFromFile(filePath)
	if err != nil {
		logger.Errorf("cannot parse input file: %v", err)
		return exitFailure
	}

	// Evaluate
	ctx := context.Background()
	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	evaluator := coverage.NewEvaluator(logger, settings.MaxCombinations, settings.Workers)
	records, err := evaluator.EvaluateProblemSet(ctx, problems)
	if err != nil {
		logger.Errorf("an error occurred during evaluation: %v", err)
		return exitFailure
	}

	// Report
	if err := writeReport(stdout, records, format); err != nil {
		logger.Errorf("an error occurred while writing the report: %v", err)
		return exitFailure
	}

	if lo.EveryBy(records, func(record coverage.Record) bool { return record.Passed }) {
		return exitAllPassed
	}
	return exitMismatched
}
