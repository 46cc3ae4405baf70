package coverage

import (
	"context"

	"github.com/limaJavier/covering/pkg/model"
	"github.com/sirupsen/logrus"
)

type Coverage int

const (
	Uncovered Coverage = iota
	DirectlyCovered
	ImpliedCovered
)

var coverageNames = map[Coverage]string{
	Uncovered:       "uncovered",
	DirectlyCovered: "direct",
	ImpliedCovered:  "implied",
}

func (coverage Coverage) String() string {
	return coverageNames[coverage]
}

type coverageChecker interface {
	// Checks how combo is covered by tickets, where allNumbers are the target numbers and k the minimum amount of numbers to cover.
	// A combo is directly covered if some ticket contains all of its numbers. Otherwise, it's implied-covered if some ticket
	// shares at least one number with combo and also contains k - |ticket ∩ combo| numbers taken from allNumbers - combo.
	// The implied test stops with ctx's error once ctx is done, and with ErrCombinationBudgetExceeded when a ticket has more substitutes to try than the budget allows
	Check(ctx context.Context, combo model.NumberSet, tickets []model.NumberSet, allNumbers model.NumberSet, k uint64) (Coverage, error)

	// Checks whether combo is covered (directly or implied) by at least one ticket
	IsCovered(ctx context.Context, combo model.NumberSet, tickets []model.NumberSet, allNumbers model.NumberSet, k uint64) (bool, error)
}

// Returns a checker whose implied test enumerates at most maxCombinations substitutes per ticket (0 disables the limit)
func newCoverageChecker(generator combinationGenerator, logger logrus.FieldLogger, maxCombinations uint64) coverageChecker {
	return &coverageCheckerImplementation{
		generator:       generator,
		logger:          logger,
		maxCombinations: maxCombinations,
	}
}
