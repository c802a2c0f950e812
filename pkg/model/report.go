package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
)

// PrintSchedule writes a human readable listing of every crew member's schedule. Positions that no longer
// name a loaded pairing are left out
func (scheduler *CrewScheduler) PrintSchedule(writer io.Writer) error {
	var builder strings.Builder
	for _, member := range scheduler.crew {
		fmt.Fprintf(&builder, "Crew %v (ID: %v):\n", member.Name, member.Id)
		for _, position := range member.AssignedPairings {
			if position < 0 || position >= len(scheduler.pairings) {
				continue
			}
			pairing := scheduler.pairings[position]
			flights := lo.Map(pairing.Flights, func(flight int, _ int) string { return fmt.Sprint(flight) })
			fmt.Fprintf(&builder, "  Pairing %v: Start: %v, End: %v, Flights: %v\n", pairing.Id, pairing.StartTime, pairing.EndTime, strings.Join(flights, " "))
		}
		if member.ScheduleCleared {
			builder.WriteString("  Schedule cleared\n")
		}
		if member.ScheduleModified {
			builder.WriteString("  Schedule modified\n")
		}
		builder.WriteString("\n")
	}

	_, err := io.WriteString(writer, builder.String())
	return err
}
