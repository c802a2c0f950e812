package model

import (
	"fmt"
	"math"

	"github.com/limaJavier/crewscheduling/pkg/milp"
)

const (
	minimumRest  = 600 // Minutes
	clearedRatio = 0.2
)

type constraintState struct {
	evaluator predicateEvaluator
	indexer   indexer
	pairings  []Pairing

	crews,
	flights int
}

// Each flight is covered by at most one crew-pairing combination
func coverageConstraints(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0, state.flights)
	for flight := range state.flights {
		terms := make([]milp.Term, 0)
		for _, pairing := range state.evaluator.Coverers(flight) {
			for crew := range state.crews {
				terms = append(terms, milp.Term{Variable: state.indexer.Assign(crew, pairing), Coefficient: 1})
			}
		}

		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("coverage_%v", flight),
			Lower: 0,
			Upper: 1,
			Terms: terms,
		})
	}
	return constraints
}

// A crew cannot hold two pairings whose windows intersect
func overlapConstraints(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0)
	for crew := range state.crews {
		for i := 0; i < len(state.pairings)-1; i++ {
			for j := i + 1; j < len(state.pairings); j++ {
				if !state.evaluator.Overlap(i, j) {
					continue
				}
				constraints = append(constraints, milp.Constraint{
					Name:  fmt.Sprintf("overlap_%v_%v_%v", crew, i, j),
					Lower: -milp.Infinity,
					Upper: 1,
					Terms: []milp.Term{
						{Variable: state.indexer.Assign(crew, i), Coefficient: 1},
						{Variable: state.indexer.Assign(crew, j), Coefficient: 1},
					},
				})
			}
		}
	}
	return constraints
}

// end_i * x(c,i) - start_j * x(c,j) <= minimumRest, for every ordered pair where j starts at least minimumRest after i ends.
// Raw minutes are the coefficients
func restPeriodConstraints(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0)
	for crew := range state.crews {
		for i := range state.pairings {
			for j := range state.pairings {
				if !state.evaluator.RestApplies(i, j) {
					continue
				}
				constraints = append(constraints, milp.Constraint{
					Name:  fmt.Sprintf("rest_%v_%v_%v", crew, i, j),
					Lower: -milp.Infinity,
					Upper: minimumRest,
					Terms: []milp.Term{
						{Variable: state.indexer.Assign(crew, i), Coefficient: float64(state.pairings[i].EndTime)},
						{Variable: state.indexer.Assign(crew, j), Coefficient: -float64(state.pairings[j].StartTime)},
					},
				})
			}
		}
	}
	return constraints
}

// At least a fifth of the crew (rounded half up) ends up cleared
func clearedQuotaConstraints(state constraintState) []milp.Constraint {
	terms := make([]milp.Term, 0, state.crews)
	for crew := range state.crews {
		terms = append(terms, milp.Term{Variable: state.indexer.Cleared(crew), Coefficient: 1})
	}

	return []milp.Constraint{{
		Name:  "cleared_quota",
		Lower: clearedQuota(state.crews),
		Upper: milp.Infinity,
		Terms: terms,
	}}
}

func clearedQuota(crews int) float64 {
	return math.Floor(clearedRatio*float64(crews) + 0.5)
}

// sum_i x(c,i) - |P| * z(c) <= 0. A crew may only carry pairings while its cleared indicator is set
func clearedPairingConstraints(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0, state.crews)
	for crew := range state.crews {
		terms := make([]milp.Term, 0, len(state.pairings)+1)
		for pairing := range state.pairings {
			terms = append(terms, milp.Term{Variable: state.indexer.Assign(crew, pairing), Coefficient: 1})
		}
		terms = append(terms, milp.Term{Variable: state.indexer.Cleared(crew), Coefficient: -float64(len(state.pairings))})

		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("cleared_%v", crew),
			Lower: -milp.Infinity,
			Upper: 0,
			Terms: terms,
		})
	}
	return constraints
}

// y(c) >= x(c,i) - s(i) and y(c) >= s(i) - x(c,i)
func modificationConstraints(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0, 2*state.crews*len(state.pairings))
	for crew := range state.crews {
		modified := state.indexer.Modified(crew)
		for pairing := range state.pairings {
			assign, altered := state.indexer.Assign(crew, pairing), state.indexer.Altered(pairing)

			constraints = append(constraints,
				milp.Constraint{
					Name:  fmt.Sprintf("modified_up_%v_%v", crew, pairing),
					Lower: -milp.Infinity,
					Upper: 0,
					Terms: []milp.Term{
						{Variable: assign, Coefficient: 1},
						{Variable: altered, Coefficient: -1},
						{Variable: modified, Coefficient: -1},
					},
				},
				milp.Constraint{
					Name:  fmt.Sprintf("modified_down_%v_%v", crew, pairing),
					Lower: -milp.Infinity,
					Upper: 0,
					Terms: []milp.Term{
						{Variable: altered, Coefficient: 1},
						{Variable: assign, Coefficient: -1},
						{Variable: modified, Coefficient: -1},
					},
				},
			)
		}
	}
	return constraints
}
