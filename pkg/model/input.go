package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type CrewMember struct {
	Id               int    `json:"id"`
	Name             string `json:"name"`
	AssignedPairings []int  `json:"assignedPairings,omitempty"` // Pairing positions, not ids
	ScheduleModified bool   `json:"scheduleModified,omitempty"`
	ScheduleCleared  bool   `json:"scheduleCleared,omitempty"`
}

type Pairing struct {
	Id        int   `json:"id"`
	StartTime int   `json:"startTime"`
	EndTime   int   `json:"endTime" validate:"gtfield=StartTime"`
	Flights   []int `json:"flights" validate:"min=1,dive,gte=0"`
}

// Costs are the objective weights: C_u, C_a, C_d and C_m
type Costs struct {
	Unassigned int `json:"unassigned" validate:"gte=0"`
	OffPlan    int `json:"offPlan" validate:"gte=0"`
	Deassign   int `json:"deassign" validate:"gte=0"`
	Modified   int `json:"modified" validate:"gte=0"`
}

type TimeRange struct {
	Start int `json:"start"`
	End   int `json:"end" validate:"gtfield=Start"`
}

type Input struct {
	Crew      []CrewMember `json:"crew"`
	Pairings  []Pairing    `json:"pairings"`
	Costs     Costs        `json:"costs"`
	TimeRange TimeRange    `json:"timeRange"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func InputFromJson(file string) (Input, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Input{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Input{}, err
	}

	var input Input
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return Input{}, fmt.Errorf("cannot decode input: %w", err)
	}
	return input, nil
}

func InputToJson(input Input, file string) error {
	bytes, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(file, bytes, 0666)
}

// validateInput rejects whatever would make the model meaningless, before anything is built
func validateInput(input Input, strictFlightIds bool) error {
	if len(input.Crew) == 0 {
		return fmt.Errorf("%w: at least one crew member is required", ErrInvalidInput)
	}
	if err := validate.Struct(input.Costs); err != nil {
		return fmt.Errorf("%w: costs must be non-negative: %v", ErrInvalidInput, describe(err))
	}
	if err := validate.Struct(input.TimeRange); err != nil {
		return fmt.Errorf("%w: time range end (%v) must be greater than its start (%v)", ErrInvalidInput, input.TimeRange.End, input.TimeRange.Start)
	}

	if duplicates := lo.FindDuplicatesBy(input.Crew, func(crew CrewMember) int { return crew.Id }); len(duplicates) > 0 {
		return fmt.Errorf("%w: duplicate crew id %v", ErrInvalidInput, duplicates[0].Id)
	}
	if duplicates := lo.FindDuplicatesBy(input.Pairings, func(pairing Pairing) int { return pairing.Id }); len(duplicates) > 0 {
		return fmt.Errorf("%w: duplicate pairing id %v", ErrInvalidInput, duplicates[0].Id)
	}

	for _, member := range input.Crew {
		position, found := lo.Find(member.AssignedPairings, func(position int) bool { return position < 0 || position >= len(input.Pairings) })
		if found {
			return fmt.Errorf("%w: crew %v holds pairing position %v outside [0, %v)", ErrInvalidInput, member.Id, position, len(input.Pairings))
		}
	}

	for _, pairing := range input.Pairings {
		if err := validate.Struct(pairing); err != nil {
			return fmt.Errorf("%w: pairing %v: %v", ErrInvalidInput, pairing.Id, describe(err))
		}
		if pairing.StartTime < input.TimeRange.Start || pairing.EndTime > input.TimeRange.End {
			return fmt.Errorf("%w: pairing %v [%v, %v) lies outside the time range [%v, %v]", ErrInvalidInput, pairing.Id, pairing.StartTime, pairing.EndTime, input.TimeRange.Start, input.TimeRange.End)
		}
	}

	if strictFlightIds {
		if err := checkDenseFlights(input.Pairings); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return nil
}

func describe(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	return fmt.Sprint(lo.Map(validationErrors, func(fieldError validator.FieldError, _ int) string {
		return fmt.Sprintf("%v failed on %v", fieldError.Namespace(), fieldError.Tag())
	}))
}

func copyCrew(crew []CrewMember) []CrewMember {
	return lo.Map(crew, func(member CrewMember, _ int) CrewMember {
		member.AssignedPairings = slices.Clone(member.AssignedPairings)
		return member
	})
}

func copyPairings(pairings []Pairing) []Pairing {
	return lo.Map(pairings, func(pairing Pairing, _ int) Pairing {
		pairing.Flights = slices.Clone(pairing.Flights)
		return pairing
	})
}
