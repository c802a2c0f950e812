package milp

import (
	"context"
	"errors"
)

type Status int

const (
	Optimal Status = iota
	Feasible
	Infeasible
	Unbounded
	TimeLimit
	Error
)

var statusNames = map[Status]string{
	Optimal:    "optimal",
	Feasible:   "feasible",
	Infeasible: "infeasible",
	Unbounded:  "unbounded",
	TimeLimit:  "time-limit",
	Error:      "error",
}

func (status Status) String() string {
	if name, ok := statusNames[status]; ok {
		return name
	}
	return "unknown"
}

type Solution struct {
	Status    Status
	Objective float64
	Values    []float64 // Indexed like Model.Variables; only meaningful when Status is Optimal or Feasible
}

type Solver interface {
	// Solves the model within the context's deadline. A non-optimal outcome (infeasible, time limit...) is reported through Solution.Status with a nil error; errors are reserved for engine failures
	Solve(ctx context.Context, model *Model) (Solution, error)
}

var ErrUnsupportedModel = errors.New("model is not supported by this solver")
