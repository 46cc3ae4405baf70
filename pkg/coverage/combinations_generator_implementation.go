package coverage

import (
	"github.com/limaJavier/covering/pkg/model"
	"github.com/samber/lo"
)

type combinationGeneratorImplementation struct{}

func (generator *combinationGeneratorImplementation) Combinations(elements model.NumberSet, k uint64) []model.NumberSet {
	combinations := make([]model.NumberSet, 0)
	if k == 0 || k > uint64(len(elements)) {
		return combinations
	}
	generator.combinations(elements, k, &combinations)
	return combinations
}

func (generator *combinationGeneratorImplementation) combinations(elements model.NumberSet, k uint64, combinations *[]model.NumberSet) {
	if k == 1 {
		*combinations = append(*combinations, lo.Map(elements, func(element uint64, _ int) model.NumberSet {
			return model.NumberSet{element}
		})...)
		return
	}

	if k == uint64(len(elements)) {
		combination := make(model.NumberSet, len(elements))
		copy(combination, elements)
		*combinations = append(*combinations, combination)
		return
	}

	first, rest := elements[0], elements[1:]

	// Combinations that include the first element. Since elements is sorted, prepending first keeps each combination sorted
	withFirst := make([]model.NumberSet, 0)
	generator.combinations(rest, k-1, &withFirst)
	for _, combination := range withFirst {
		*combinations = append(*combinations, append(model.NumberSet{first}, combination...))
	}

	// Combinations that exclude the first element
	generator.combinations(rest, k, combinations)
}
