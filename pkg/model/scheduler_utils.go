package model

import (
	"slices"

	"github.com/limaJavier/crewscheduling/pkg/milp"
	"github.com/samber/lo"
)

var constraintFunctions = []func(state constraintState) []milp.Constraint{
	coverageConstraints,
	overlapConstraints,
	restPeriodConstraints,
	clearedQuotaConstraints,
	clearedPairingConstraints,
	modificationConstraints,
	objectiveDefinitions,
}

// buildModel declares the variables and adds every row before anything is handed to an engine
func buildModel(state constraintState, costs Costs) *milp.Model {
	model := milp.NewModel("crew_rescheduling")
	declareVariables(model, state.indexer)

	for _, constraintFunction := range constraintFunctions {
		for _, constraint := range constraintFunction(state) {
			model.AddConstraint(constraint)
		}
	}

	model.Minimize(objectiveTerms(state, costs)...)
	return model
}

func verify(schedule Schedule, pairings []Pairing, crews int) bool {
	if len(schedule.Assignments) != crews {
		return false
	}

	coverage := newCoverage(pairings)
	evaluator := newPredicateEvaluator(pairings, coverage, buildOverlapGraph(pairings), minimumRest)

	covered := make([]int, coverage.Flights())
	cleared := 0
	for _, assignment := range schedule.Assignments {
		if lo.SomeBy(assignment.Pairings, func(pairing int) bool { return pairing < 0 || pairing >= len(pairings) }) {
			return false
		}
		held := lo.Associate(assignment.Pairings, func(pairing int) (int, bool) { return pairing, true })

		// Check that:
		// - No two held pairings overlap
		// - end_i * x(c,i) - start_j * x(c,j) <= minimumRest whenever the rest precondition holds
		// - Modified is set whenever holding a pairing disagrees with its altered indicator
		for i := range pairings {
			for j := range pairings {
				if held[i] && held[j] && evaluator.Overlap(i, j) {
					return false
				}
				if evaluator.RestApplies(i, j) &&
					pairings[i].EndTime*indicator(held[i])-pairings[j].StartTime*indicator(held[j]) > minimumRest {
					return false
				}
			}
			if held[i] != slices.Contains(schedule.Altered, i) && !assignment.Modified {
				return false
			}
		}

		// A crew carrying pairings must be cleared
		if len(assignment.Pairings) > 0 && !assignment.Cleared {
			return false
		}
		if assignment.Cleared {
			cleared++
		}

		for _, pairing := range assignment.Pairings {
			for flight := range coverage.Flights() {
				if evaluator.Covers(pairing, flight) {
					covered[flight]++
				}
			}
		}
	}

	// Check every flight is covered at most once and the cleared quota is met
	return lo.EveryBy(covered, func(count int) bool { return count <= 1 }) &&
		float64(cleared) >= clearedQuota(crews)
}

func indicator(value bool) int {
	if value {
		return 1
	}
	return 0
}
