package model

import (
	"context"
	"fmt"
	"time"

	"github.com/limaJavier/crewscheduling/pkg/logger"
	"github.com/limaJavier/crewscheduling/pkg/metrics"
	"github.com/limaJavier/crewscheduling/pkg/milp"
)

const defaultMaxVariables = 2_000_000

type Option func(scheduler *CrewScheduler)

func WithLogger(logger logger.Logger) Option {
	return func(scheduler *CrewScheduler) {
		scheduler.logger = logger
	}
}

func WithMetrics(metrics *metrics.Metrics) Option {
	return func(scheduler *CrewScheduler) {
		scheduler.metrics = metrics
	}
}

// WithStrictFlightIds rejects flight ids that are not dense and zero-based instead of remapping them
func WithStrictFlightIds(strict bool) Option {
	return func(scheduler *CrewScheduler) {
		scheduler.strictFlightIds = strict
	}
}

// WithMaxVariables bounds the model size, a non-positive limit disables the check
func WithMaxVariables(maxVariables int) Option {
	return func(scheduler *CrewScheduler) {
		scheduler.maxVariables = maxVariables
	}
}

// CrewScheduler owns the crew and pairing records and rebuilds the whole model on every optimization
type CrewScheduler struct {
	solver  milp.Solver
	logger  logger.Logger
	metrics *metrics.Metrics

	strictFlightIds bool
	maxVariables    int

	crew      []CrewMember
	pairings  []Pairing
	costs     Costs
	timeRange TimeRange
}

func NewCrewScheduler(solver milp.Solver, options ...Option) *CrewScheduler {
	scheduler := &CrewScheduler{
		solver:       solver,
		logger:       logger.NewNop(),
		maxVariables: defaultMaxVariables,
	}
	for _, option := range options {
		option(scheduler)
	}
	return scheduler
}

func NewCrewSchedulerFromInput(solver milp.Solver, input Input, options ...Option) *CrewScheduler {
	scheduler := NewCrewScheduler(solver, options...)
	scheduler.SetCrew(input.Crew)
	scheduler.SetPairings(input.Pairings)
	scheduler.SetCosts(input.Costs.Unassigned, input.Costs.OffPlan, input.Costs.Deassign, input.Costs.Modified)
	scheduler.SetTimeRange(input.TimeRange.Start, input.TimeRange.End)
	return scheduler
}

func (scheduler *CrewScheduler) SetCrew(crew []CrewMember) {
	scheduler.crew = copyCrew(crew)
}

func (scheduler *CrewScheduler) SetPairings(pairings []Pairing) {
	scheduler.pairings = copyPairings(pairings)
}

func (scheduler *CrewScheduler) SetCosts(unassigned, offPlan, deassign, modified int) {
	scheduler.costs = Costs{
		Unassigned: unassigned,
		OffPlan:    offPlan,
		Deassign:   deassign,
		Modified:   modified,
	}
}

func (scheduler *CrewScheduler) SetTimeRange(start, end int) {
	scheduler.timeRange = TimeRange{Start: start, End: end}
}

func (scheduler *CrewScheduler) Crew() []CrewMember {
	return copyCrew(scheduler.crew)
}

func (scheduler *CrewScheduler) Pairings() []Pairing {
	return copyPairings(scheduler.pairings)
}

func (scheduler *CrewScheduler) Input() Input {
	return Input{
		Crew:      scheduler.Crew(),
		Pairings:  scheduler.Pairings(),
		Costs:     scheduler.costs,
		TimeRange: scheduler.timeRange,
	}
}

// OptimizeSchedule builds the model, solves it and, only when the engine proves optimality, rebuilds every crew member's assignments.
// On any other outcome the crew records are left as they were and the returned schedule carries no assignments
func (scheduler *CrewScheduler) OptimizeSchedule(ctx context.Context) (Schedule, error) {
	if err := validateInput(scheduler.Input(), scheduler.strictFlightIds); err != nil {
		scheduler.logger.Warn("rejected scheduling input", "error", err)
		if scheduler.metrics != nil {
			scheduler.metrics.InvalidInputs.Inc()
		}
		return Schedule{Status: milp.Error}, err
	}

	crews, pairings := len(scheduler.crew), len(scheduler.pairings)

	//** Initialize dependencies
	coverage := newCoverage(scheduler.pairings)
	flights := coverage.Flights()
	if coverage.Remapped() {
		scheduler.logger.Warn("flight ids are not dense, remapping them to columns", "flights", flights, "lowestId", coverage.FlightId(0), "highestId", coverage.FlightId(flights-1))
	}

	indexer := newIndexer(crews, pairings, flights)
	if scheduler.maxVariables > 0 && indexer.Variables() > scheduler.maxVariables {
		return Schedule{Status: milp.Error}, fmt.Errorf("%w: %v variables for %v crew members and %v pairings, limit is %v", ErrModelTooLarge, indexer.Variables(), crews, pairings, scheduler.maxVariables)
	}
	evaluator := newPredicateEvaluator(scheduler.pairings, coverage, buildOverlapGraph(scheduler.pairings), minimumRest)

	state := constraintState{
		evaluator: evaluator,
		indexer:   indexer,
		pairings:  scheduler.pairings,
		crews:     crews,
		flights:   flights,
	}

	//** Build MILP instance
	model := buildModel(state, scheduler.costs)
	log := scheduler.logger.With("crews", crews, "pairings", pairings, "flights", flights)
	log.Info("model built", "variables", len(model.Variables), "constraints", len(model.Constraints))
	if scheduler.metrics != nil {
		scheduler.metrics.ModelVariables.Set(float64(len(model.Variables)))
		scheduler.metrics.ModelConstraints.Set(float64(len(model.Constraints)))
	}

	//** Solve MILP instance
	start := time.Now()
	solution, err := scheduler.solver.Solve(ctx, model)
	elapsed := time.Since(start)
	if err != nil {
		solution.Status = milp.Error
	}
	if scheduler.metrics != nil {
		scheduler.metrics.SolveDuration.Observe(elapsed.Seconds())
		scheduler.metrics.Optimizations.WithLabelValues(solution.Status.String()).Inc()
	}

	schedule := Schedule{
		Status:      solution.Status,
		Objective:   solution.Objective,
		Variables:   len(model.Variables),
		Constraints: len(model.Constraints),
	}
	if err != nil {
		log.Error("solving engine failed", "error", err, "elapsed", elapsed)
		return schedule, fmt.Errorf("solving engine failed: %w", err)
	} else if solution.Status != milp.Optimal {
		log.Warn("no optimal schedule", "status", solution.Status.String(), "elapsed", elapsed)
		return schedule, NotOptimalError{Status: solution.Status}
	} else if len(solution.Values) != len(model.Variables) {
		return schedule, fmt.Errorf("solving engine returned %v values for %v variables", len(solution.Values), len(model.Variables))
	}

	extracted := extractSchedule(solution, indexer, scheduler.crew, pairings)
	extracted.Variables, extracted.Constraints = schedule.Variables, schedule.Constraints
	scheduler.crew = extracted.Apply(scheduler.crew)

	log.Info("schedule optimized", "objective", solution.Objective, "elapsed", elapsed)
	return extracted, nil
}

// Verify checks the schedule against every hard constraint of the model built from the scheduler's pairings
func (scheduler *CrewScheduler) Verify(schedule Schedule) bool {
	return verify(schedule, scheduler.pairings, len(scheduler.crew))
}
