package coverage

import (
	"math"
	"math/bits"

	"github.com/limaJavier/covering/pkg/model"
)

type combinationGenerator interface {
	// Returns every distinct k-sized subset of elements. The result is empty when k is 0 or greater than the number of elements.
	// The order of the subsets is deterministic: for a given input the same sequence is always produced.
	//
	// Example:
	//
	//	generator := newCombinationGenerator()
	//
	//	combinations := generator.Combinations(model.NewNumberSet(1, 2, 3), 2) // {1, 2}, {1, 3}, {2, 3}
	Combinations(elements model.NumberSet, k uint64) []model.NumberSet
}

func newCombinationGenerator() combinationGenerator {
	return &combinationGeneratorImplementation{}
}

// Returns the amount of k-sized subsets of an n-sized set, saturating at math.MaxUint64 when the value does not fit in 64 bits
func Binomial(n, k uint64) uint64 {
	if k > n {
		return 0
	}
	k = min(k, n-k)

	var result uint64 = 1
	for i := uint64(0); i < k; i++ {
		// result*(n-i) is always divisible by i+1 since result = C(n, i)
		high, low := bits.Mul64(result, n-i)
		if high >= i+1 {
			return math.MaxUint64
		}
		result, _ = bits.Div64(high, low, i+1)
	}
	return result
}
