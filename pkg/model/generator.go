package model

import (
	"fmt"
	"math/rand/v2"
)

const (
	minimumDuty   = 120 // Minutes
	dutyVariation = 480
)

// GenerateInput builds a synthetic instance: every pairing lasts between 2 and 10 hours, clipped to the horizon, and references two random flights
func GenerateInput(crews, pairings, flights, timeRange int, seed uint64) (Input, error) {
	if crews <= 0 || pairings < 0 || flights <= 0 {
		return Input{}, fmt.Errorf("%w: crews and flights must be positive and pairings non-negative", ErrInvalidInput)
	} else if timeRange <= minimumDuty {
		return Input{}, fmt.Errorf("%w: time range must be longer than %v minutes", ErrInvalidInput, minimumDuty)
	}
	random := rand.New(rand.NewPCG(seed, seed))

	input := Input{
		Crew:      make([]CrewMember, 0, crews),
		Pairings:  make([]Pairing, 0, pairings),
		Costs:     Costs{Unassigned: 100, OffPlan: 50, Deassign: 30, Modified: 10},
		TimeRange: TimeRange{Start: 0, End: timeRange},
	}

	for i := range crews {
		input.Crew = append(input.Crew, CrewMember{Id: i, Name: fmt.Sprintf("Crew %v", i)})
	}
	for i := range pairings {
		startTime := random.IntN(timeRange - minimumDuty)
		input.Pairings = append(input.Pairings, Pairing{
			Id:        i,
			StartTime: startTime,
			EndTime:   min(startTime+minimumDuty+random.IntN(dutyVariation), timeRange),
			Flights:   []int{random.IntN(flights), random.IntN(flights)},
		})
	}
	return input, nil
}
