package milp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"time"

	"github.com/mitchellh/mapstructure"
)

var ConfigPath = "../../config.json"

// getExecutablePath looks the solver up in config.json; when the file does not exist the fallback (a binary on PATH) is used
func getExecutablePath(solver, fallback string) (string, error) {
	content, err := os.ReadFile(ConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return fallback, nil
	} else if err != nil {
		return "", fmt.Errorf("cannot read config.json file: %w", err)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(content, &inputJson); err != nil {
		return "", fmt.Errorf("cannot parse config.json file: %w", err)
	}

	var config map[string]string
	if err := mapstructure.Decode(inputJson, &config); err != nil {
		return "", fmt.Errorf("cannot decode config.json file: %w", err)
	}

	path, ok := config[solver]
	if !ok || path == "" {
		return fallback, nil
	}
	return path, nil
}

// writeModelFile dumps the model in LP format into a temporary file and returns its name
func writeModelFile(model *Model) (string, error) {
	modelFile, err := os.CreateTemp("", "model-*.lp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	if _, err := modelFile.WriteString(model.ToLP()); err != nil {
		modelFile.Close()
		os.Remove(modelFile.Name())
		return "", fmt.Errorf("failed to write LP to temporary file: %w", err)
	}
	if err := modelFile.Close(); err != nil {
		os.Remove(modelFile.Name())
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return modelFile.Name(), nil
}

func reserveOutputFile(pattern string) (string, error) {
	outputFile, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	outputFile.Close()
	return outputFile.Name(), nil
}

// timeLimit returns the whole seconds left before the context's deadline, or false when there is no deadline
func timeLimit(ctx context.Context) (int, bool) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0, false
	}
	return max(1, int(math.Ceil(time.Until(deadline).Seconds()))), true
}

// run executes the solver binary, killing it when the context ends. A context error is returned as is so callers can map it to TimeLimit
func run(ctx context.Context, name string, args ...string) (stdout string, err error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return stdOut.String(), ctx.Err()
	} else if err != nil {
		return stdOut.String(), fmt.Errorf("an error occurred during %v execution: %v : %v", name, err.Error(), stderr.String())
	}
	return stdOut.String(), nil
}

// valuesFromNames lays named values out in model order; absent variables are zero
func valuesFromNames(model *Model, named map[string]float64) []float64 {
	positions := make(map[string]int, len(model.Variables))
	for position, variable := range model.Variables {
		positions[variable.Name] = position
	}

	values := make([]float64, len(model.Variables))
	for name, value := range named {
		if position, ok := positions[name]; ok {
			values[position] = value
		}
	}
	return values
}

func contextStatus(err error) (Status, bool) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return TimeLimit, true
	}
	return Error, false
}
