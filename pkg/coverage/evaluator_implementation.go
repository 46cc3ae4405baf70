package coverage

import (
	"context"

	"github.com/limaJavier/covering/pkg/model"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type evaluatorImplementation struct {
	generator       combinationGenerator
	checker         coverageChecker
	logger          logrus.FieldLogger
	maxCombinations uint64
	workers         int
}

type outcome struct {
	covered      bool
	combinations uint64
	direct       uint64
	implied      uint64
	uncovered    model.NumberSet
}

func (evaluator *evaluatorImplementation) Evaluate(ctx context.Context, item model.ItemSet) (bool, error) {
	result, err := evaluator.evaluate(ctx, item, evaluator.logger)
	if err != nil {
		return false, err
	}
	return result.covered, nil
}

func (evaluator *evaluatorImplementation) EvaluateProblemSet(ctx context.Context, problems model.ProblemSet) ([]Record, error) {
	records := make([]Record, len(problems.Items))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(evaluator.workers)

	for index, item := range problems.Items {
		group.Go(func() error {
			logger := evaluator.logger.WithField("item", index)
			logger.WithFields(logrus.Fields{
				"tickets": item.Tickets,
				"numbers": item.TargetCoverage.Numbers,
				"k":       item.TargetCoverage.MinNumbersToCover,
			}).Info("evaluating problem")

			result, err := evaluator.evaluate(groupCtx, item, logger)
			if groupCtx.Err() != nil {
				return groupCtx.Err()
			}

			// Each goroutine owns records[index], therefore no synchronization is needed
			records[index] = Record{
				Index:        index,
				Actual:       result.covered,
				Expected:     item.Expected,
				Passed:       err == nil && result.covered == item.Expected,
				Combinations: result.combinations,
				Direct:       result.direct,
				Implied:      result.implied,
				Uncovered:    result.uncovered,
				Err:          err,
			}

			if err != nil {
				logger.WithError(err).Warn("problem could not be evaluated")
			} else {
				logger.WithFields(logrus.Fields{
					"actual":   result.covered,
					"expected": item.Expected,
				}).Info("problem evaluated")
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (evaluator *evaluatorImplementation) evaluate(ctx context.Context, item model.ItemSet, logger logrus.FieldLogger) (outcome, error) {
	numbers, k := item.TargetCoverage.Numbers, item.TargetCoverage.MinNumbersToCover

	//** Guard against exponential blow-up
	total := Binomial(uint64(numbers.Len()), k)
	if evaluator.maxCombinations > 0 && total > evaluator.maxCombinations {
		return outcome{combinations: total}, budgetError(total, evaluator.maxCombinations)
	}

	//** Generate combinations
	combinations := evaluator.generator.Combinations(numbers, k)
	logger.WithField("combinations", len(combinations)).Debug("winning combinations generated")

	//** Check every combination
	result := outcome{combinations: uint64(len(combinations))}
	for _, combo := range combinations {
		if err := ctx.Err(); err != nil {
			return outcome{}, err
		}

		coverage, err := evaluator.checker.Check(ctx, combo, item.Tickets, numbers, k)
		if err != nil {
			return outcome{combinations: result.combinations}, err
		}

		switch coverage {
		case DirectlyCovered:
			result.direct++
		case ImpliedCovered:
			result.implied++
		default:
			logger.WithField("combo", combo).Info("uncovered combo")
			result.uncovered = combo
			return result, nil
		}
	}

	// An empty sequence of combinations is vacuously covered
	result.covered = result.direct+result.implied == result.combinations
	return result, nil
}
