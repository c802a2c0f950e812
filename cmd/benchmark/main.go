package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/limaJavier/crewscheduling/pkg/model"

	"github.com/samber/lo"
)

const (
	executablePath = "../../bin/crewscheduling"
	timeRange      = 24 * 60
	solverTimeout  = 300 // Seconds
	KB             = 1024
)

type SolverType int

const (
	cbc SolverType = iota
	highs
)

type ResultType int

const (
	optimal ResultType = iota
	notOptimal
)

var (
	solverTypes = map[SolverType]string{
		cbc:   "cbc",
		highs: "highs",
	}
	resultTypes = map[ResultType]string{
		optimal:    "optimal",
		notOptimal: "not-optimal",
	}
)

type TestMetadata struct {
	Name     string
	Seed     uint64
	Crews    int
	Pairings int
	Flights  int
}

type BenchmarkResult struct {
	Solver        SolverType
	Test          TestMetadata
	Variables     int64
	Constraints   int64
	Duration      int64
	Memory        float32
	CpuPercentage int64
	Result        ResultType
}

func main() {
	directory, err := os.MkdirTemp("", "crew-benchmark-*")
	if err != nil {
		log.Fatalf("cannot create instances directory: %v", err)
	}
	defer os.RemoveAll(directory)

	tests := getTests(directory)
	solvers := getSolvers()
	results := make([]BenchmarkResult, 0, len(tests)*len(solvers))

	for _, test := range tests {
		for _, solver := range solvers {
			fmt.Printf("Benchmarking test \"%v\" (%v crews, %v pairings, %v flights) with solver \"%v\"\n", filepath.Base(test.Name), test.Crews, test.Pairings, test.Flights, solverTypes[solver])

			variables, constraints, duration, maxMemory, cpuPercentage, result := measure(solver, test.Name)

			results = append(results, BenchmarkResult{
				Solver:        solver,
				Test:          test,
				Variables:     variables,
				Constraints:   constraints,
				Duration:      duration,
				Memory:        maxMemory,
				CpuPercentage: cpuPercentage,
				Result:        result,
			})
		}
	}

	toCsv(results)
}

// getTests writes one generated instance per size into directory
func getTests(directory string) []TestMetadata {
	sizes := [][3]int{
		{5, 10, 8},
		{10, 20, 15},
		{20, 40, 30},
		{40, 80, 60},
		{80, 160, 120},
	}

	return lo.Map(sizes, func(size [3]int, i int) TestMetadata {
		crews, pairings, flights := size[0], size[1], size[2]
		seed := uint64(i + 1)

		input, err := model.GenerateInput(crews, pairings, flights, timeRange, seed)
		if err != nil {
			log.Fatalf("cannot generate instance: %v", err)
		}

		filename := filepath.Join(directory, fmt.Sprintf("%v_%v_%v.json", crews, pairings, flights))
		if err := model.InputToJson(input, filename); err != nil {
			log.Fatalf("cannot write instance file: %v", err)
		}

		return TestMetadata{
			Name:     filename,
			Seed:     seed,
			Crews:    crews,
			Pairings: pairings,
			Flights:  flights,
		}
	})
}

func getSolvers() []SolverType {
	return []SolverType{cbc, highs}
}

func measure(solver SolverType, testFile string) (variables, constraints, duration int64, maxMemory float32, cpuPercentage int64, result ResultType) {
	cmd := exec.Command("/usr/bin/time", "-v", executablePath, "-solver", solverTypes[solver], "-file", testFile, "-timeout", fmt.Sprint(solverTimeout), "-out", os.DevNull)

	var stdOut bytes.Buffer
	cmd.Stdout = &stdOut
	var stdErr bytes.Buffer
	cmd.Stderr = &stdErr

	cmd.Run()
	if cmd.ProcessState.ExitCode() != 10 && cmd.ProcessState.ExitCode() != 20 {
		log.Fatalf("an error occurred during the execution \"crewscheduling\" at test \"%v\" using solver \"%v\": %v\n", testFile, solverTypes[solver], stdErr.String())
	} else if cmd.ProcessState.ExitCode() == 20 {
		result = notOptimal
	} else {
		result = optimal
	}

	getLine := func(output, substr string) string {
		line, ok := lo.Find(strings.Split(output, "\n"), func(line string) bool {
			return strings.Contains(strings.ToLower(line), substr)
		})
		if !ok {
			log.Fatalf("Substring \"%v\" could not be found", substr)
		}
		return line
	}

	variables = parseSizeLine(getLine(stdErr.String(), "variables:"))
	constraints = parseSizeLine(getLine(stdErr.String(), "constraints:"))
	duration = parseDurationLine(getLine(stdErr.String(), "wall clock"))
	maxMemory = parseMemoryLine(getLine(stdErr.String(), "maximum resident set size"))
	cpuPercentage = parseCpuPercentageLine(getLine(stdErr.String(), "percent of cpu"))

	return variables, constraints, duration, maxMemory, cpuPercentage, result
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Solver", "Seed", "Crews", "Pairings", "Flights", "Variables", "Constraints", "Duration(ms)", "Memory(MB)", "CPU(%)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			solverTypes[result.Solver],
			fmt.Sprintf("%d", result.Test.Seed),
			fmt.Sprintf("%d", result.Test.Crews),
			fmt.Sprintf("%d", result.Test.Pairings),
			fmt.Sprintf("%d", result.Test.Flights),
			fmt.Sprintf("%d", result.Variables),
			fmt.Sprintf("%d", result.Constraints),
			fmt.Sprintf("%d", result.Duration),
			fmt.Sprintf("%.1f", result.Memory),
			fmt.Sprintf("%d", result.CpuPercentage),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}

func parseSizeLine(line string) int64 {
	sizeStr := strings.TrimSpace(strings.Split(line, ":")[1])
	return int64(lo.Must(strconv.Atoi(sizeStr)))
}

func parseDurationLine(line string) int64 {
	durationStr := strings.Split(line, "(h:mm:ss or m:ss):")[1][1:]
	return parseDuration(durationStr)
}

func parseDuration(durationStr string) int64 {
	parts := strings.Split(durationStr, ":")
	secondsStr := parts[len(parts)-1]
	secondsParts := strings.Split(secondsStr, ".")

	var duration int64
	if len(parts) == 3 { // h:mm:ss
		hours := lo.Must(strconv.Atoi(parts[0]))
		minutes := lo.Must(strconv.Atoi(parts[1]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(hours*3600+minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else if len(parts) == 2 { // m:ss
		minutes := lo.Must(strconv.Atoi(parts[0]))
		seconds := lo.Must(strconv.Atoi(secondsParts[0]))
		hundredthOfSeconds := lo.Must(strconv.Atoi(secondsParts[1]))
		duration = int64(minutes*60+seconds)*1000 + int64(hundredthOfSeconds*10)
	} else {
		log.Fatalf("unexpected duration format: %v", durationStr)
	}
	return duration
}

func parseMemoryLine(line string) float32 {
	memoryStr := strings.Split(line, ":")[1][1:]
	return float32(lo.Must(strconv.ParseFloat(memoryStr, 32))) / KB
}

func parseCpuPercentageLine(line string) int64 {
	percentageStr := strings.Split(line, ":")[1][1:]
	percentageStr = percentageStr[:len(percentageStr)-1]
	return int64(lo.Must(strconv.Atoi(percentageStr)))
}
