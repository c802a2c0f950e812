package milp

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const cbcPath = "cbc"

type cbcSolver struct{}

func NewCbcSolver() Solver {
	return &cbcSolver{}
}

func (solver *cbcSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	executable, err := getExecutablePath("cbcPath", cbcPath)
	if err != nil {
		return Solution{Status: Error}, err
	}

	modelFile, err := writeModelFile(model)
	if err != nil {
		return Solution{Status: Error}, err
	}
	defer os.Remove(modelFile)

	solutionFile, err := reserveOutputFile("cbc_solution-*.txt")
	if err != nil {
		return Solution{Status: Error}, err
	}
	defer os.Remove(solutionFile)

	args := []string{modelFile}
	if seconds, ok := timeLimit(ctx); ok {
		args = append(args, "sec", strconv.Itoa(seconds))
	}
	args = append(args, "solve", "solu", solutionFile)

	if _, err := run(ctx, executable, args...); err != nil {
		if status, ok := contextStatus(err); ok {
			return Solution{Status: status}, nil
		}
		return Solution{Status: Error}, err
	}

	output, err := os.ReadFile(solutionFile)
	if err != nil {
		return Solution{Status: Error}, fmt.Errorf("failed to read solution file: %w", err)
	}
	return parseCbcSolution(model, string(output))
}

// parseCbcSolution reads a cbc "solu" file: a status line followed by "index name value reducedCost" rows for nonzero columns
func parseCbcSolution(model *Model, output string) (Solution, error) {
	lines := lo.Filter(strings.Split(output, "\n"), func(line string, _ int) bool {
		return strings.TrimSpace(line) != ""
	})
	if len(lines) == 0 {
		return Solution{Status: Error}, fmt.Errorf("empty cbc solution file")
	}

	header := strings.ToLower(strings.TrimSpace(lines[0]))
	solution := Solution{Status: cbcStatus(header)}
	if _, objectiveStr, ok := strings.Cut(header, "objective value"); ok {
		if objective, err := strconv.ParseFloat(strings.TrimSpace(objectiveStr), 64); err == nil {
			solution.Objective = objective
		}
	}
	if solution.Status != Optimal && solution.Status != Feasible && solution.Status != TimeLimit ||
		strings.Contains(header, "no integer solution") {
		return solution, nil
	}

	named := make(map[string]float64)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) > 0 && fields[0] == "**" { // Marks values violating their bounds
			fields = fields[1:]
		}
		if len(fields) < 3 {
			continue
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Solution{Status: Error}, fmt.Errorf("invalid value in cbc output: %v", err)
		}
		named[fields[1]] = value
	}
	solution.Values = valuesFromNames(model, named)
	return solution, nil
}

func cbcStatus(header string) Status {
	switch {
	case strings.HasPrefix(header, "optimal"):
		return Optimal
	case strings.Contains(header, "infeasible"):
		return Infeasible
	case strings.Contains(header, "unbounded"):
		return Unbounded
	case strings.HasPrefix(header, "stopped on time"):
		return TimeLimit
	case strings.HasPrefix(header, "stopped"):
		return Feasible
	}
	return Error
}
