package coverage

import (
	"context"
	"runtime"

	"github.com/limaJavier/covering/pkg/model"
	"github.com/sirupsen/logrus"
)

// Record is the outcome of evaluating one item of a problem set
type Record struct {
	Index        int
	Actual       bool
	Expected     bool
	Passed       bool            // Actual == Expected and the item could be evaluated
	Combinations uint64          // Amount of k-sized combinations of the target numbers
	Direct       uint64          // Combinations found directly covered before a verdict was reached
	Implied      uint64          // Combinations found implied-covered before a verdict was reached
	Uncovered    model.NumberSet `json:",omitempty"` // First combination found uncovered, if any
	Err          error           `json:"-"`
}

type Evaluator interface {
	// Checks whether every k-sized combination of item's target numbers is covered by item's tickets, regardless of item.Expected.
	// An item without combinations (k = 0 or k greater than the amount of target numbers) is always covered
	Evaluate(ctx context.Context, item model.ItemSet) (bool, error)

	// Evaluates every item and returns one record per item in the same order they were given. An item that cannot be evaluated
	// (e.g. it exceeds the combination budget) is reported through its record's Err; only a context error aborts the whole evaluation
	EvaluateProblemSet(ctx context.Context, problems model.ProblemSet) ([]Record, error)
}

// Returns an evaluator that rejects items with more than maxCombinations combinations, or with a ticket that has more than
// maxCombinations substitutes to try for one combination (0 disables the limit), and evaluates up to workers
// items concurrently (a non-positive value stands for the number of CPUs)
func NewEvaluator(logger logrus.FieldLogger, maxCombinations uint64, workers int) Evaluator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	generator := newCombinationGenerator()
	return &evaluatorImplementation{
		generator:       generator,
		checker:         newCoverageChecker(generator, logger, maxCombinations),
		logger:          logger,
		maxCombinations: maxCombinations,
		workers:         workers,
	}
}
