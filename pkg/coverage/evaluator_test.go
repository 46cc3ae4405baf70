package coverage

import (
	"context"
	"testing"

	"github.com/limaJavier/covering/pkg/model"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

const testDirectory = "testdata/"

func item(numbers []uint64, k uint64, tickets ...[]uint64) model.ItemSet {
	return model.ItemSet{
		Tickets: lo.Map(tickets, func(ticket []uint64, _ int) model.NumberSet { return model.NewNumberSet(ticket...) }),
		TargetCoverage: model.TargetCoverage{
			Numbers:           model.NewNumberSet(numbers...),
			MinNumbersToCover: k,
		},
	}
}

func TestEvaluateScenarios(t *testing.T) {
	evaluator := NewEvaluator(newTestLogger(), 0, 1)
	chain := [][]uint64{{1, 2}, {2, 3}, {3, 4}}
	universe := []uint64{1, 2, 3, 4}

	scenarios := []struct {
		name     string
		item     model.ItemSet
		expected bool
	}{
		{"chained tickets with k=2", item(universe, 2, chain...), true},
		{"chained tickets with k=3", item(universe, 3, chain...), false},
		{"no tickets", item([]uint64{1, 2}, 1), false},
		{"no tickets and no combinations", item([]uint64{1, 2}, 3), true},
		{"k equal to zero", item([]uint64{1, 2}, 0), true},
		{"no target numbers", item(nil, 1, []uint64{1}), true},
	}
	for k := uint64(1); k <= 4; k++ {
		scenarios = append(scenarios, struct {
			name     string
			item     model.ItemSet
			expected bool
		}{"ticket holding every number", item(universe, k, universe), true})
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			covered, err := evaluator.Evaluate(context.Background(), scenario.item)

			assert.Nil(t, err)
			assert.Equal(t, scenario.expected, covered)
		})
	}
}

func TestEvaluateIgnoresExpected(t *testing.T) {
	evaluator := NewEvaluator(newTestLogger(), 0, 1)
	problem := item([]uint64{1, 2}, 1, []uint64{1, 2})

	problem.Expected = false
	covered, err := evaluator.Evaluate(context.Background(), problem)

	assert.Nil(t, err)
	assert.True(t, covered)
}

func TestEvaluateProblemSetFromFile(t *testing.T) {
	//** Arrange
	g := NewWithT(t)
	problems, err := model.InputFromJson(testDirectory + "scenarios.json")
	g.Expect(err).NotTo(HaveOccurred())
	evaluator := NewEvaluator(newTestLogger(), 0, 4)

	//** Act
	records, err := evaluator.EvaluateProblemSet(context.Background(), problems)

	//** Assert
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(records).To(HaveLen(6))
	for index, record := range records {
		g.Expect(record.Index).To(Equal(index))
		g.Expect(record.Err).NotTo(HaveOccurred())
	}

	g.Expect(records[0]).To(Equal(Record{Index: 0, Actual: true, Expected: true, Passed: true, Combinations: 6, Direct: 3, Implied: 3}))
	g.Expect(records[1]).To(Equal(Record{Index: 1, Actual: false, Expected: false, Passed: true, Combinations: 4, Uncovered: model.NumberSet{1, 2, 3}}))
	g.Expect(records[2]).To(Equal(Record{Index: 2, Actual: true, Expected: true, Passed: true, Combinations: 1, Direct: 1}))
	g.Expect(records[3]).To(Equal(Record{Index: 3, Actual: false, Expected: false, Passed: true, Combinations: 2, Uncovered: model.NumberSet{1}}))
	g.Expect(records[4]).To(Equal(Record{Index: 4, Actual: true, Expected: true, Passed: true}))

	// A mismatch is reported, not raised
	g.Expect(records[5].Actual).To(BeTrue())
	g.Expect(records[5].Expected).To(BeFalse())
	g.Expect(records[5].Passed).To(BeFalse())
}

func TestEvaluateProblemSetKeepsOrderWithManyWorkers(t *testing.T) {
	problems := model.ProblemSet{}
	for i := range 40 {
		problem := item([]uint64{1, 2, 3, 4, 5, 6}, uint64(i%7), []uint64{1, 2, 3}, []uint64{4, 5, 6})
		problem.Expected = i%2 == 0
		problems.Items = append(problems.Items, problem)
	}

	sequential, err := NewEvaluator(newTestLogger(), 0, 1).EvaluateProblemSet(context.Background(), problems)
	assert.Nil(t, err)
	parallel, err := NewEvaluator(newTestLogger(), 0, 8).EvaluateProblemSet(context.Background(), problems)
	assert.Nil(t, err)

	assert.Equal(t, sequential, parallel)
	for index, record := range parallel {
		assert.Equal(t, index, record.Index)
		assert.Equal(t, problems.Items[index].Expected, record.Expected)
	}
}

func TestCombinationBudget(t *testing.T) {
	evaluator := NewEvaluator(newTestLogger(), 5, 1)
	problems := model.ProblemSet{Items: []model.ItemSet{
		item([]uint64{1, 2, 3, 4}, 2, []uint64{1, 2, 3, 4}), // 6 combinations
		item([]uint64{1, 2, 3, 4}, 3, []uint64{1, 2, 3, 4}), // 4 combinations
	}}
	problems.Items[1].Expected = true

	//** Single item
	_, err := evaluator.Evaluate(context.Background(), problems.Items[0])
	assert.True(t, errors.Is(err, ErrCombinationBudgetExceeded))

	//** Whole problem set
	records, err := evaluator.EvaluateProblemSet(context.Background(), problems)
	assert.Nil(t, err)
	assert.True(t, errors.Is(records[0].Err, ErrCombinationBudgetExceeded))
	assert.False(t, records[0].Passed)
	assert.Equal(t, uint64(6), records[0].Combinations)
	assert.Nil(t, records[1].Err)
	assert.True(t, records[1].Passed)
}

func TestCancelledEvaluation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	evaluator := NewEvaluator(newTestLogger(), 0, 2)
	problems := model.ProblemSet{Items: []model.ItemSet{item([]uint64{1, 2, 3}, 2, []uint64{1, 2, 3})}}

	_, err := evaluator.Evaluate(ctx, problems.Items[0])
	assert.True(t, errors.Is(err, context.Canceled))

	records, err := evaluator.EvaluateProblemSet(ctx, problems)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Nil(t, records)
}
