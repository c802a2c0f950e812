package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/limaJavier/crewscheduling/internal/config"
	"github.com/limaJavier/crewscheduling/pkg/logger"
	"github.com/limaJavier/crewscheduling/pkg/metrics"
	"github.com/limaJavier/crewscheduling/pkg/milp"
	"github.com/limaJavier/crewscheduling/pkg/model"
	"github.com/samber/lo"
)

const (
	exitOptimal    = 10
	exitUnverified = 15
	exitNotOptimal = 20
)

var solvers = map[string]func() milp.Solver{
	"cbc":   milp.NewCbcSolver,
	"highs": milp.NewHighsSolver,
}

type crewOutput struct {
	Id       int    `json:"id"`
	Name     string `json:"name"`
	Pairings []int  `json:"pairings"` // Pairing ids
	Modified bool   `json:"modified"`
	Cleared  bool   `json:"cleared"`
}

type output struct {
	Status      string       `json:"status"`
	Objective   float64      `json:"objective"`
	Variables   int          `json:"variables"`
	Constraints int          `json:"constraints"`
	Crew        []crewOutput `json:"crew"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}

	// Define arguments
	solverPtr := flag.String("solver", cfg.Solver, "MILP solver to use. Allowed values are: \"cbc\" and \"highs\"")
	filePathPtr := flag.String("file", "", "Path to the input file; if empty, a random instance is generated")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	crewsPtr := flag.Int("crews", 10, "Crew members of the generated instance")
	pairingsPtr := flag.Int("pairings", 20, "Pairings of the generated instance")
	flightsPtr := flag.Int("flights", 15, "Flights referenced by the generated instance")
	seedPtr := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed of the generated instance")
	timeoutPtr := flag.Int("timeout", cfg.SolverTimeout, "Seconds granted to the solver, 0 means no limit")
	strictPtr := flag.Bool("strict", cfg.StrictFlightIds, "Reject flight ids that are not dense and zero-based")
	metricsFilePtr := flag.String("metrics-file", cfg.MetricsFile, "Path to a prometheus textfile where metrics are written")
	printPtr := flag.Bool("print", false, "Print a readable report of the schedule instead of json")
	flag.Parse()
	solverStr := strings.ToLower(*solverPtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	// Validate arguments
	if !slices.Contains(lo.Keys(solvers), solverStr) {
		log.Fatalf("%v is not a valid solver", solverStr)
	} else if *timeoutPtr < 0 {
		log.Fatalf("timeout must be non-negative: %v", *timeoutPtr)
	}

	appLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer appLogger.Sync()
	setConfigPath(cfg, appLogger)

	// Extract input
	var input model.Input
	if filePath != "" {
		input, err = model.InputFromJson(filePath)
	} else {
		input, err = model.GenerateInput(*crewsPtr, *pairingsPtr, *flightsPtr, 24*60, *seedPtr)
		appLogger.Info("generated instance", "crews", *crewsPtr, "pairings", *pairingsPtr, "flights", *flightsPtr, "seed", *seedPtr)
	}
	if err != nil {
		appLogger.Fatal("cannot obtain input", "error", err)
	}

	// Initialize engines
	collectors := metrics.NewMetrics("crew_scheduling")
	scheduler := model.NewCrewSchedulerFromInput(
		solvers[solverStr](),
		input,
		model.WithLogger(appLogger.With("solver", solverStr)),
		model.WithMetrics(collectors),
		model.WithStrictFlightIds(*strictPtr),
		model.WithMaxVariables(cfg.MaxVariables),
	)

	ctx := context.Background()
	if *timeoutPtr > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*timeoutPtr)*time.Second)
		defer cancel()
	}

	// Build schedule
	schedule, err := scheduler.OptimizeSchedule(ctx)
	writeMetrics(collectors, *metricsFilePtr, appLogger)

	var notOptimal model.NotOptimalError
	if errors.As(err, &notOptimal) {
		printSize(os.Stderr, schedule)
		os.Exit(exitNotOptimal)
	} else if err != nil {
		appLogger.Fatal("an error occurred during schedule construction", "error", err)
	}

	// Verify schedule correctness
	if !scheduler.Verify(schedule) {
		printSize(os.Stderr, schedule)
		os.Exit(exitUnverified)
	}

	if *printPtr {
		if err := scheduler.PrintSchedule(os.Stdout); err != nil {
			appLogger.Fatal("an error occurred while printing the schedule", "error", err)
		}
	} else {
		writeOutput(buildOutput(schedule, scheduler.Pairings()), outFile, appLogger)
	}

	printSize(os.Stderr, schedule)
	os.Exit(exitOptimal)
}

func buildOutput(schedule model.Schedule, pairings []model.Pairing) output {
	return output{
		Status:      schedule.Status.String(),
		Objective:   schedule.Objective,
		Variables:   schedule.Variables,
		Constraints: schedule.Constraints,
		Crew: lo.Map(schedule.Assignments, func(assignment model.Assignment, _ int) crewOutput {
			return crewOutput{
				Id:       assignment.CrewId,
				Name:     assignment.Name,
				Pairings: lo.Map(assignment.Pairings, func(pairing int, _ int) int { return pairings[pairing].Id }),
				Modified: assignment.Modified,
				Cleared:  assignment.Cleared,
			}
		}),
	}
}

func writeOutput(output output, outFile string, appLogger logger.Logger) {
	// Marshal output into json
	outputJson, err := json.Marshal(output)
	if err != nil {
		appLogger.Fatal("an error occurred while building output json", "error", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(outputJson))
	} else if err := os.WriteFile(outFile, outputJson, 0666); err != nil {
		appLogger.Fatal("an error occurred while writing to the output file", "error", err)
	}
}

func writeMetrics(collectors *metrics.Metrics, metricsFile string, appLogger logger.Logger) {
	if metricsFile == "" {
		return
	}
	if err := collectors.WriteToTextfile(metricsFile); err != nil {
		appLogger.Error("cannot write metrics file", "error", err, "file", metricsFile)
	}
}

// printSize reports the model size. Callers pass stderr, stdout carries only the JSON output or the printed schedule
func printSize(writer io.Writer, schedule model.Schedule) {
	fmt.Fprintf(writer, "Variables: %v\n", schedule.Variables)
	fmt.Fprintf(writer, "Constraints: %v\n", schedule.Constraints)
}

// setConfigPath points the solvers at config.json: the configured path, else the one next to the executable. Without it solvers are looked up on PATH
func setConfigPath(cfg *config.Config, appLogger logger.Logger) {
	if cfg.SolverConfig != "" {
		milp.ConfigPath = cfg.SolverConfig
		return
	}

	execPath, err := os.Executable()
	if err != nil {
		appLogger.Fatal("cannot determine executable path", "error", err)
	}
	execPath = path.Dir(execPath)

	// Verify config.json exists
	files, err := os.ReadDir(execPath)
	if err != nil {
		appLogger.Fatal("cannot read executable's directory", "error", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })

	if !slices.Contains(fileNames, "config.json") {
		appLogger.Debug("config.json file was not found, solvers are taken from PATH", "directory", execPath)
	}
	milp.ConfigPath = execPath + "/config.json"
}
