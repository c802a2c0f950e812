package model

import (
	"fmt"

	"github.com/limaJavier/crewscheduling/pkg/milp"
)

// Pins every slack variable to the assignment it measures:
//
//	u(f) + sum cov(i,f) x(c,i) = 1
//	a(i,c) - x(c,i) + s(i) = 0
//	d(i,c) - s(i) - x(c,i) = 0
func objectiveDefinitions(state constraintState) []milp.Constraint {
	constraints := make([]milp.Constraint, 0, state.flights+2*len(state.pairings)*state.crews)

	for flight := range state.flights {
		terms := []milp.Term{{Variable: state.indexer.Unassigned(flight), Coefficient: 1}}
		for _, pairing := range state.evaluator.Coverers(flight) {
			for crew := range state.crews {
				terms = append(terms, milp.Term{Variable: state.indexer.Assign(crew, pairing), Coefficient: 1})
			}
		}
		constraints = append(constraints, milp.Constraint{
			Name:  fmt.Sprintf("unassigned_%v", flight),
			Lower: 1,
			Upper: 1,
			Terms: terms,
		})
	}

	for pairing := range state.pairings {
		altered := state.indexer.Altered(pairing)
		for crew := range state.crews {
			assign := state.indexer.Assign(crew, pairing)

			constraints = append(constraints,
				milp.Constraint{
					Name: fmt.Sprintf("off_plan_%v_%v", pairing, crew),
					Terms: []milp.Term{
						{Variable: state.indexer.OffPlan(pairing, crew), Coefficient: 1},
						{Variable: assign, Coefficient: -1},
						{Variable: altered, Coefficient: 1},
					},
				},
				milp.Constraint{
					Name: fmt.Sprintf("deassign_%v_%v", pairing, crew),
					Terms: []milp.Term{
						{Variable: state.indexer.Deassign(pairing, crew), Coefficient: 1},
						{Variable: altered, Coefficient: -1},
						{Variable: assign, Coefficient: -1},
					},
				},
			)
		}
	}
	return constraints
}

// objectiveTerms weights the slack and modified variables: C_u u(f) + C_a a(i,c) + C_d d(i,c) + C_m y(c)
func objectiveTerms(state constraintState, costs Costs) []milp.Term {
	terms := make([]milp.Term, 0, state.flights+2*len(state.pairings)*state.crews+state.crews)

	for flight := range state.flights {
		terms = append(terms, milp.Term{Variable: state.indexer.Unassigned(flight), Coefficient: float64(costs.Unassigned)})
	}
	for pairing := range state.pairings {
		for crew := range state.crews {
			terms = append(terms,
				milp.Term{Variable: state.indexer.OffPlan(pairing, crew), Coefficient: float64(costs.OffPlan)},
				milp.Term{Variable: state.indexer.Deassign(pairing, crew), Coefficient: float64(costs.Deassign)},
			)
		}
	}
	for crew := range state.crews {
		terms = append(terms, milp.Term{Variable: state.indexer.Modified(crew), Coefficient: float64(costs.Modified)})
	}
	return terms
}
