package coverage

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/limaJavier/covering/pkg/model"
	. "github.com/onsi/gomega"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestCombinationsOfSizeOne(t *testing.T) {
	g := NewWithT(t)
	generator := newCombinationGenerator()

	combinations := generator.Combinations(model.NewNumberSet(7, 3, 5), 1)

	g.Expect(combinations).To(ConsistOf(model.NumberSet{3}, model.NumberSet{5}, model.NumberSet{7}))
}

func TestCombinationsOfFullSize(t *testing.T) {
	generator := newCombinationGenerator()
	elements := model.NewNumberSet(1, 2, 3, 4)

	combinations := generator.Combinations(elements, 4)

	assert.Equal(t, []model.NumberSet{{1, 2, 3, 4}}, combinations)

	// The returned subset must not alias the input
	combinations[0][0] = 100
	assert.Equal(t, model.NumberSet{1, 2, 3, 4}, elements)
}

func TestCombinationsDegenerateSizes(t *testing.T) {
	generator := newCombinationGenerator()

	assert.Empty(t, generator.Combinations(model.NewNumberSet(1, 2), 3))
	assert.Empty(t, generator.Combinations(model.NewNumberSet(1, 2), 0))
	assert.Empty(t, generator.Combinations(model.NewNumberSet(), 0))
	assert.Empty(t, generator.Combinations(model.NewNumberSet(), 1))
}

func TestCombinationsAreLexicographic(t *testing.T) {
	generator := newCombinationGenerator()

	combinations := generator.Combinations(model.NewNumberSet(4, 3, 2, 1), 2)

	assert.Equal(t, []model.NumberSet{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}, combinations)
}

func TestCombinationsProperties(t *testing.T) {
	random := rand.New(rand.NewPCG(7, 11))
	generator := newCombinationGenerator()

	for range 50 {
		//** Arrange
		size := random.IntN(11)
		values := make([]uint64, size)
		for i := range values {
			values[i] = random.Uint64N(1000)
		}
		elements := model.NewNumberSet(values...)
		k := random.Uint64N(uint64(elements.Len()) + 2)

		//** Act
		combinations := generator.Combinations(elements, k)
		again := generator.Combinations(elements, k)

		//** Assert
		assert.Equal(t, combinations, again, "generation must be deterministic")
		expected := Binomial(uint64(elements.Len()), k)
		if k == 0 {
			expected = 0
		}
		assert.Equal(t, expected, uint64(len(combinations)))
		for _, combination := range combinations {
			assert.Equal(t, int(k), combination.Len())
			assert.True(t, elements.IsSupersetOf(combination))
			assert.Equal(t, model.NewNumberSet(combination...), combination, "combinations must be sorted sets")
		}
		unique := lo.UniqBy(combinations, func(combination model.NumberSet) string { return combination.String() })
		assert.Len(t, unique, len(combinations))
	}
}

func TestBinomial(t *testing.T) {
	assert.Equal(t, uint64(1), Binomial(0, 0))
	assert.Equal(t, uint64(0), Binomial(3, 4))
	assert.Equal(t, uint64(6), Binomial(4, 2))
	assert.Equal(t, uint64(4), Binomial(4, 3))
	assert.Equal(t, uint64(252), Binomial(10, 5))
	assert.Equal(t, uint64(13983816), Binomial(49, 6))
	assert.Equal(t, uint64(137846528820), Binomial(40, 20))
	assert.Equal(t, uint64(math.MaxUint64), Binomial(1000, 500))
}
