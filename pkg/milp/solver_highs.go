package milp

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const highsPath = "highs"

type highsSolver struct{}

func NewHighsSolver() Solver {
	return &highsSolver{}
}

func (solver *highsSolver) Solve(ctx context.Context, model *Model) (Solution, error) {
	executable, err := getExecutablePath("highsPath", highsPath)
	if err != nil {
		return Solution{Status: Error}, err
	}

	modelFile, err := writeModelFile(model)
	if err != nil {
		return Solution{Status: Error}, err
	}
	defer os.Remove(modelFile)

	solutionFile, err := reserveOutputFile("highs_solution-*.txt")
	if err != nil {
		return Solution{Status: Error}, err
	}
	defer os.Remove(solutionFile)

	args := []string{"--model_file", modelFile, "--solution_file", solutionFile}
	if seconds, ok := timeLimit(ctx); ok {
		args = append(args, "--time_limit", strconv.Itoa(seconds))
	}

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
	return parseHighsSolution(model, string(output))
}

// parseHighsSolution reads the raw solution file: a "Model status" section, then "# Primal solution values" holding the objective and one "name value" line per column
func parseHighsSolution(model *Model, output string) (Solution, error) {
	lines := strings.Split(output, "\n")
	solution := Solution{Status: Error}
	statusFound := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "Model status" && i+1 < len(lines):
			solution.Status = highsStatus(strings.TrimSpace(lines[i+1]))
			statusFound = true
			i++
		case strings.HasPrefix(line, "Objective "):
			objective, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(line, "Objective ")), 64)
			if err != nil {
				return Solution{Status: Error}, fmt.Errorf("invalid objective in highs output: %v", err)
			}
			solution.Objective = objective
		case strings.HasPrefix(line, "# Columns "):
			columns, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "# Columns ")))
			if err != nil {
				return Solution{Status: Error}, fmt.Errorf("invalid column count in highs output: %v", err)
			}
			if i+columns >= len(lines) {
				return Solution{Status: Error}, fmt.Errorf("truncated highs output: expected %v columns", columns)
			}

			named := make(map[string]float64, columns)
			for _, columnLine := range lines[i+1 : i+1+columns] {
				fields := strings.Fields(columnLine)
				if len(fields) < 2 {
					return Solution{Status: Error}, fmt.Errorf("invalid column line in highs output: %q", columnLine)
				}
				value, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return Solution{Status: Error}, fmt.Errorf("invalid value in highs output: %v", err)
				}
				named[fields[0]] = value
			}
			solution.Values = valuesFromNames(model, named)
			// Primal values come first, the dual section is not needed
			return solution, nil
		}
	}

	if !statusFound {
		return solution, fmt.Errorf("highs output has no model status")
	}
	return solution, nil
}

func highsStatus(status string) Status {
	switch strings.ToLower(status) {
	case "optimal":
		return Optimal
	case "infeasible":
		return Infeasible
	case "unbounded", "primal infeasible or unbounded":
		return Unbounded
	case "time limit reached":
		return TimeLimit
	}
	return Error
}
