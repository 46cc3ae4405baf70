package coverage

import (
	"context"

	"github.com/limaJavier/covering/pkg/model"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type coverageCheckerImplementation struct {
	generator       combinationGenerator
	logger          logrus.FieldLogger
	maxCombinations uint64
}

func (checker *coverageCheckerImplementation) IsCovered(ctx context.Context, combo model.NumberSet, tickets []model.NumberSet, allNumbers model.NumberSet, k uint64) (bool, error) {
	coverage, err := checker.Check(ctx, combo, tickets, allNumbers, k)
	if err != nil {
		return false, err
	}
	return coverage != Uncovered, nil
}

func (checker *coverageCheckerImplementation) Check(ctx context.Context, combo model.NumberSet, tickets []model.NumberSet, allNumbers model.NumberSet, k uint64) (Coverage, error) {
	if lo.SomeBy(tickets, func(ticket model.NumberSet) bool { return ticket.IsSupersetOf(combo) }) {
		return DirectlyCovered, nil
	}

	for _, ticket := range tickets {
		implied, err := checker.implies(ctx, ticket, combo, allNumbers, k)
		if err != nil {
			return Uncovered, err
		} else if implied {
			return ImpliedCovered, nil
		}
	}
	return Uncovered, nil
}

// Checks whether ticket covers combo through substitution: the numbers shared by both are covered directly, and the missing ones are
// replaced by an equally-sized subset of the remaining target numbers that ticket contains.
// It must only be called when ticket is not a superset of combo, hence the intersection is always smaller than k
func (checker *coverageCheckerImplementation) implies(ctx context.Context, ticket, combo, allNumbers model.NumberSet, k uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	intersection := ticket.Intersection(combo)
	if intersection.Len() == 0 {
		return false, nil
	}

	// Remaining numbers are taken from the whole target set, not from the ticket
	remainingNumbers := allNumbers.Difference(combo)
	missing := k - uint64(intersection.Len())
	checker.logger.WithFields(logrus.Fields{
		"ticket":       ticket,
		"intersection": intersection,
		"remaining":    remainingNumbers,
	}).Debug("checking implied coverage")

	if total := Binomial(uint64(remainingNumbers.Len()), missing); checker.maxCombinations > 0 && total > checker.maxCombinations {
		return false, budgetError(total, checker.maxCombinations)
	}

	for _, substitute := range checker.generator.Combinations(remainingNumbers, missing) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		if ticket.IsSupersetOf(substitute) {
			return true, nil
		}
	}
	return false, nil
}
