package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// NumberSet is a set of numbers kept as a sorted slice without duplicates. Every NumberSet built through NewNumberSet (or returned by its methods) holds that invariant, so two sets are equal if and only if their slices are equal
type NumberSet []uint64

func NewNumberSet(values ...uint64) NumberSet {
	set := lo.Uniq(values)
	slices.Sort(set)
	return NumberSet(set)
}

func (set NumberSet) Len() int {
	return len(set)
}

func (set NumberSet) Contains(value uint64) bool {
	_, found := slices.BinarySearch(set, value)
	return found
}

// Checks whether every element of other is present in set
func (set NumberSet) IsSupersetOf(other NumberSet) bool {
	if len(other) > len(set) {
		return false
	}
	return lo.EveryBy(other, set.Contains)
}

func (set NumberSet) Intersection(other NumberSet) NumberSet {
	return lo.Filter(set, func(value uint64, _ int) bool {
		return other.Contains(value)
	})
}

// Returns the elements of set that are not present in other
func (set NumberSet) Difference(other NumberSet) NumberSet {
	return lo.Filter(set, func(value uint64, _ int) bool {
		return !other.Contains(value)
	})
}

func (set NumberSet) Equal(other NumberSet) bool {
	return slices.Equal(set, other)
}

func (set NumberSet) String() string {
	values := lo.Map(set, func(value uint64, _ int) string { return fmt.Sprint(value) })
	return "{" + strings.Join(values, ", ") + "}"
}
