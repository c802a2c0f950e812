package model

import (
	"github.com/limaJavier/crewscheduling/pkg/milp"
	"github.com/samber/lo"
)

const threshold = 0.5

type Assignment struct {
	Crew     int // Position in the crew list
	CrewId   int
	Name     string
	Pairings []int // Pairing positions in declaration order
	Modified bool
	Cleared  bool
}

// Schedule is the outcome of one optimization. It never aliases the scheduler's records
type Schedule struct {
	Status      milp.Status
	Objective   float64
	Variables   int
	Constraints int
	Altered     []int // Pairing positions whose altered indicator is set
	Assignments []Assignment
}

func extractSchedule(solution milp.Solution, indexer indexer, crew []CrewMember, pairings int) Schedule {
	schedule := Schedule{
		Status:      solution.Status,
		Objective:   solution.Objective,
		Assignments: make([]Assignment, 0, len(crew)),
	}

	for c, member := range crew {
		schedule.Assignments = append(schedule.Assignments, Assignment{
			Crew:   c,
			CrewId: member.Id,
			Name:   member.Name,
			Pairings: lo.Filter(lo.Range(pairings), func(pairing int, _ int) bool {
				return solution.Values[indexer.Assign(c, pairing)] > threshold
			}),
			Modified: solution.Values[indexer.Modified(c)] > threshold,
			Cleared:  solution.Values[indexer.Cleared(c)] > threshold,
		})
	}

	schedule.Altered = lo.Filter(lo.Range(pairings), func(pairing int, _ int) bool {
		return solution.Values[indexer.Altered(pairing)] > threshold
	})
	return schedule
}

// Apply returns a copy of crew with every assignment list rebuilt from the schedule
func (schedule Schedule) Apply(crew []CrewMember) []CrewMember {
	updated := copyCrew(crew)
	for _, assignment := range schedule.Assignments {
		if assignment.Crew >= len(updated) {
			continue
		}
		member := &updated[assignment.Crew]
		member.AssignedPairings = append(make([]int, 0, len(assignment.Pairings)), assignment.Pairings...)
		member.ScheduleModified = assignment.Modified
		member.ScheduleCleared = assignment.Cleared
	}
	return updated
}
