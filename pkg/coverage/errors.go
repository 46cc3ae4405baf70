package coverage

import (
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

var ErrCombinationBudgetExceeded = errors.New("combination budget exceeded")

func budgetError(combinations, maxCombinations uint64) error {
	return errors.Wrapf(
		ErrCombinationBudgetExceeded,
		"%v combinations to check, at most %v allowed",
		humanize.Comma(saturatedInt64(combinations)),
		humanize.Comma(saturatedInt64(maxCombinations)),
	)
}

func saturatedInt64(value uint64) int64 {
	if value > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(value)
}
