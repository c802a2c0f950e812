package milp

import (
	"context"
	"fmt"
	"math"
	"slices"
)

const tolerance = 1e-6

type definition struct {
	variable    int
	coefficient float64
	rhs         float64
	terms       []Term
}

type enumerationSolver struct {
	maxBinaries int
}

// NewEnumerationSolver returns an exhaustive solver for tiny models: every binary assignment is tried and each continuous variable is read off an equality row in which it is the only continuous term. Meant as a reference oracle for tests
func NewEnumerationSolver(maxBinaries int) Solver {
	return &enumerationSolver{maxBinaries: min(maxBinaries, 62)}
}

func (solver *enumerationSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	binaries := make([]int, 0, len(model.Variables))
	for v, variable := range model.Variables {
		if variable.Kind == Binary {
			binaries = append(binaries, v)
		}
	}
	if len(binaries) > solver.maxBinaries {
		return Solution{Status: Error}, fmt.Errorf("%w: %v binaries exceed the enumeration limit of %v", ErrUnsupportedModel, len(binaries), solver.maxBinaries)
	}

	definitions, err := continuousDefinitions(model)
	if err != nil {
		return Solution{Status: Error}, err
	}

	best := Solution{Status: Infeasible}
	values := make([]float64, len(model.Variables))
	for mask := uint64(0); mask < uint64(1)<<len(binaries); mask++ {
		if mask%1024 == 0 && ctx.Err() != nil {
			best.Status = TimeLimit
			return best, nil
		}

		for b, variable := range binaries {
			values[variable] = float64(mask >> b & 1)
		}
		for _, definition := range definitions {
			value := definition.rhs
			for _, term := range definition.terms {
				value -= term.Coefficient * values[term.Variable]
			}
			values[definition.variable] = value / definition.coefficient
		}

		if len(model.Violated(values, tolerance)) > 0 {
			continue
		}
		objective := model.ObjectiveValue(values)
		// Strict improvement only, so ties keep the first assignment found
		if best.Status != Optimal || objective < best.Objective-tolerance {
			best = Solution{Status: Optimal, Objective: objective, Values: slices.Clone(values)}
		}
	}

	return best, nil
}

func continuousDefinitions(model *Model) ([]definition, error) {
	definitions := make([]definition, 0)
	defined := make(map[int]bool)

	for _, constraint := range model.Constraints {
		if constraint.Lower != constraint.Upper {
			continue
		}
		continuous := make([]Term, 0, 1)
		others := make([]Term, 0, len(constraint.Terms))
		for _, term := range constraint.Terms {
			if model.Variables[term.Variable].Kind == Continuous {
				continuous = append(continuous, term)
			} else {
				others = append(others, term)
			}
		}
		if len(continuous) != 1 || defined[continuous[0].Variable] {
			continue
		}
		defined[continuous[0].Variable] = true
		definitions = append(definitions, definition{
			variable:    continuous[0].Variable,
			coefficient: continuous[0].Coefficient,
			rhs:         constraint.Lower,
			terms:       others,
		})
	}

	for v, variable := range model.Variables {
		if variable.Kind == Continuous && !defined[v] {
			return nil, fmt.Errorf("%w: continuous variable %v is not fixed by an equality row", ErrUnsupportedModel, variable.Name)
		}
	}
	return definitions, nil
}

// AssertSolution checks that the values satisfy every row and bound and reproduce the reported objective
func AssertSolution(model *Model, solution Solution) bool {
	if len(solution.Values) != len(model.Variables) {
		return false
	}
	if len(model.Violated(solution.Values, tolerance)) > 0 {
		return false
	}
	return math.Abs(model.ObjectiveValue(solution.Values)-solution.Objective) <= tolerance*max(1, math.Abs(solution.Objective))
}
