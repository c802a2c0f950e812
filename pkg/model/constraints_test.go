package model

import (
	"testing"

	"github.com/limaJavier/crewscheduling/pkg/milp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

// Two short pairings overlapping each other and a long one, much earlier, covering both flights
func disruptionPairings() []Pairing {
	return []Pairing{
		{Id: 1, StartTime: 1300, EndTime: 1500, Flights: []int{0}},
		{Id: 2, StartTime: 1400, EndTime: 1600, Flights: []int{1}},
		{Id: 3, StartTime: 0, EndTime: 700, Flights: []int{0, 1}},
	}
}

func newTestState(crews int, pairings []Pairing) constraintState {
	coverage := newCoverage(pairings)
	return constraintState{
		evaluator: newPredicateEvaluator(pairings, coverage, buildOverlapGraph(pairings), minimumRest),
		indexer:   newIndexer(crews, len(pairings), coverage.Flights()),
		pairings:  pairings,
		crews:     crews,
		flights:   coverage.Flights(),
	}
}

func TestCoverageConstraints(t *testing.T) {
	//** Arrange
	state := newTestState(2, disruptionPairings())

	//** Act
	constraints := coverageConstraints(state)

	//** Assert
	assert.Len(t, constraints, 2)
	for _, constraint := range constraints {
		assert.Equal(t, 0.0, constraint.Lower)
		assert.Equal(t, 1.0, constraint.Upper)
	}
	assert.ElementsMatch(t, []milp.Term{
		{Variable: state.indexer.Assign(0, 0), Coefficient: 1},
		{Variable: state.indexer.Assign(1, 0), Coefficient: 1},
		{Variable: state.indexer.Assign(0, 2), Coefficient: 1},
		{Variable: state.indexer.Assign(1, 2), Coefficient: 1},
	}, constraints[0].Terms)
	assert.ElementsMatch(t, []milp.Term{
		{Variable: state.indexer.Assign(0, 1), Coefficient: 1},
		{Variable: state.indexer.Assign(1, 1), Coefficient: 1},
		{Variable: state.indexer.Assign(0, 2), Coefficient: 1},
		{Variable: state.indexer.Assign(1, 2), Coefficient: 1},
	}, constraints[1].Terms)
}

func TestOverlapConstraints(t *testing.T) {
	//** Arrange
	state := newTestState(2, disruptionPairings())

	//** Act
	constraints := overlapConstraints(state)

	//** Assert
	assert.Len(t, constraints, 2)
	for crew, constraint := range constraints {
		assert.Equal(t, 1.0, constraint.Upper)
		assert.Equal(t, []milp.Term{
			{Variable: state.indexer.Assign(crew, 0), Coefficient: 1},
			{Variable: state.indexer.Assign(crew, 1), Coefficient: 1},
		}, constraint.Terms)
	}
}

func TestRestPeriodConstraints(t *testing.T) {
	t.Run("Raw times as coefficients", func(t *testing.T) {
		//** Arrange
		state := newTestState(1, disruptionPairings())

		//** Act
		constraints := restPeriodConstraints(state)

		//** Assert
		assert.Len(t, constraints, 2) // 3 -> 1 and 3 -> 2
		assert.Equal(t, milp.Constraint{
			Name:  "rest_0_2_0",
			Lower: -milp.Infinity,
			Upper: 600,
			Terms: []milp.Term{
				{Variable: state.indexer.Assign(0, 2), Coefficient: 700},
				{Variable: state.indexer.Assign(0, 0), Coefficient: -1300},
			},
		}, constraints[0])
	})

	t.Run("Gap shorter than the minimum rest", func(t *testing.T) {
		//** Arrange
		state := newTestState(1, []Pairing{
			{StartTime: 0, EndTime: 100, Flights: []int{0}},
			{StartTime: 699, EndTime: 800, Flights: []int{1}},
			{StartTime: 700, EndTime: 800, Flights: []int{2}},
		})

		//** Act
		constraints := restPeriodConstraints(state)

		//** Assert
		assert.Len(t, constraints, 1)
		assert.Equal(t, "rest_0_0_2", constraints[0].Name)
	})
}

func TestClearedQuota(t *testing.T) {
	//** Arrange
	// Half-up rounding of 0.2n, not a ceiling: 1, 2, 6 and 7 crew members get one cleared crew fewer than ceil(0.2n)
	expected := map[int]float64{1: 0, 2: 0, 3: 1, 5: 1, 6: 1, 7: 1, 8: 2, 10: 2, 12: 2, 13: 3, 100: 20}

	for crews, quota := range expected {
		//** Act
		constraints := clearedQuotaConstraints(newTestState(crews, disruptionPairings()))

		//** Assert
		assert.Equal(t, quota, clearedQuota(crews), "crews: %v", crews)
		assert.Len(t, constraints, 1)
		assert.Equal(t, quota, constraints[0].Lower)
		assert.Len(t, constraints[0].Terms, crews)
	}
}

func TestClearedPairingConstraints(t *testing.T) {
	//** Arrange
	state := newTestState(2, disruptionPairings())

	//** Act
	constraints := clearedPairingConstraints(state)

	//** Assert
	assert.Len(t, constraints, 2)
	for crew, constraint := range constraints {
		assert.Equal(t, 0.0, constraint.Upper)
		assert.Equal(t, milp.Term{Variable: state.indexer.Cleared(crew), Coefficient: -3}, constraint.Terms[3])
		assert.True(t, lo.EveryBy(constraint.Terms[:3], func(term milp.Term) bool { return term.Coefficient == 1 }))
	}
}

func TestModificationConstraints(t *testing.T) {
	//** Arrange
	state := newTestState(2, disruptionPairings())

	//** Act
	constraints := modificationConstraints(state)

	//** Assert
	assert.Len(t, constraints, 2*2*3)
	up, down := constraints[0], constraints[1]
	assert.Equal(t, []milp.Term{
		{Variable: state.indexer.Assign(0, 0), Coefficient: 1},
		{Variable: state.indexer.Altered(0), Coefficient: -1},
		{Variable: state.indexer.Modified(0), Coefficient: -1},
	}, up.Terms)
	assert.Equal(t, []milp.Term{
		{Variable: state.indexer.Altered(0), Coefficient: 1},
		{Variable: state.indexer.Assign(0, 0), Coefficient: -1},
		{Variable: state.indexer.Modified(0), Coefficient: -1},
	}, down.Terms)
}

func TestObjectiveDefinitions(t *testing.T) {
	//** Arrange
	state := newTestState(2, disruptionPairings())

	//** Act
	constraints := objectiveDefinitions(state)
	terms := objectiveTerms(state, Costs{Unassigned: 100, OffPlan: 50, Deassign: 30, Modified: 10})

	//** Assert
	assert.Len(t, constraints, 2+2*3*2)
	assert.True(t, lo.EveryBy(constraints, func(constraint milp.Constraint) bool { return constraint.Lower == constraint.Upper }))
	assert.Equal(t, 1.0, constraints[0].Lower)
	assert.Equal(t, milp.Term{Variable: state.indexer.Unassigned(0), Coefficient: 1}, constraints[0].Terms[0])

	weights := lo.SliceToMap(terms, func(term milp.Term) (int, float64) { return term.Variable, term.Coefficient })
	assert.Len(t, terms, 2+2*3*2+2)
	assert.Equal(t, 100.0, weights[state.indexer.Unassigned(1)])
	assert.Equal(t, 50.0, weights[state.indexer.OffPlan(2, 1)])
	assert.Equal(t, 30.0, weights[state.indexer.Deassign(0, 1)])
	assert.Equal(t, 10.0, weights[state.indexer.Modified(0)])
}
