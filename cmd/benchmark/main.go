package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/limaJavier/covering/pkg/config"
	"github.com/limaJavier/covering/pkg/coverage"
	"github.com/limaJavier/covering/pkg/model"
	"github.com/namsral/flag"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const defaultTestDirectory = "../../test/problems/"

type TestMetadata struct {
	Name     string
	Items    int
	Tickets  int
	Numbers  int
	Problems model.ProblemSet
}

type BenchmarkResult struct {
	Test     TestMetadata
	Workers  int
	Duration int64  // Milliseconds
	Memory   uint64 // Bytes allocated during the evaluation
	Passed   int
}

func main() {
	flags := flag.NewFlagSetWithEnvPrefix(os.Args[0], "COVERAGE", flag.ExitOnError)
	directoryPtr := flags.String("dir", defaultTestDirectory, "Directory holding the problem sets to benchmark")
	outPtr := flags.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	maxCombinationsPtr := flags.Uint64("max-combinations", config.DefaultMaxCombinations, "Items with more combinations to check are rejected; 0 disables the limit")
	flags.Parse(os.Args[1:])

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	tests, err := getTests(*directoryPtr)
	if err != nil {
		log.Fatalf("cannot load tests: %v", err)
	}
	workerCounts := getWorkerCounts()
	results := make([]BenchmarkResult, 0, len(tests)*len(workerCounts))

	for _, test := range tests {
		for _, workers := range workerCounts {
			fmt.Printf("Benchmarking test \"%v\" with %v workers\n", test.Name, workers)

			evaluator := coverage.NewEvaluator(logger, *maxCombinationsPtr, workers)
			result, err := measure(evaluator, test)
			if err != nil {
				log.Fatalf("an error occurred while benchmarking test \"%v\" with %v workers: %v", test.Name, workers, err)
			}
			result.Workers = workers
			results = append(results, result)

			fmt.Printf("\t%v ms, %v allocated, %v/%v passed\n", result.Duration, humanize.Bytes(result.Memory), result.Passed, test.Items)
		}
	}

	if err := writeResults(*outPtr, results); err != nil {
		log.Fatalf("cannot write CSV file: %v", err)
	}
}

// Writes results as CSV to path, including any error from closing the file
func writeResults(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create file")
	}

	if err := toCsv(file, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func getTests(directory string) ([]TestMetadata, error) {
	testFiles, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	tests := make([]TestMetadata, 0, len(testFiles))
	for _, file := range testFiles {
		if file.IsDir() {
			continue
		}

		filename := filepath.Join(directory, file.Name())
		problems, err := model.InputFromFile(filename)
		if err != nil {
			return nil, err
		}

		tests = append(tests, TestMetadata{
			Name:     filename,
			Items:    len(problems.Items),
			Tickets:  lo.SumBy(problems.Items, func(item model.ItemSet) int { return len(item.Tickets) }),
			Numbers:  lo.SumBy(problems.Items, func(item model.ItemSet) int { return item.TargetCoverage.Numbers.Len() }),
			Problems: problems,
		})
	}

	return tests, nil
}

func getWorkerCounts() []int {
	return lo.Uniq([]int{1, 2, 4, runtime.NumCPU()})
}

func measure(evaluator coverage.Evaluator, test TestMetadata) (BenchmarkResult, error) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	records, err := evaluator.EvaluateProblemSet(context.Background(), test.Problems)
	if err != nil {
		return BenchmarkResult{}, err
	}

	duration := time.Since(start)
	runtime.ReadMemStats(&after)

	return BenchmarkResult{
		Test:     test,
		Duration: duration.Milliseconds(),
		Memory:   after.TotalAlloc - before.TotalAlloc,
		Passed:   lo.CountBy(records, func(record coverage.Record) bool { return record.Passed }),
	}, nil
}

func toCsv(out io.Writer, results []BenchmarkResult) error {
	writer := csv.NewWriter(out)

	header := []string{"Test", "Items", "Tickets", "Numbers", "Workers", "Duration(ms)", "Memory(B)", "Passed"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, result := range results {
		record := []string{
			result.Test.Name,
			fmt.Sprintf("%d", result.Test.Items),
			fmt.Sprintf("%d", result.Test.Tickets),
			fmt.Sprintf("%d", result.Test.Numbers),
			fmt.Sprintf("%d", result.Workers),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%d", result.Memory),
			fmt.Sprintf("%d", result.Passed),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
