package model

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// coverage maps every distinct flight id to a dense column and keeps the pairing x column incidence matrix
type coverage struct {
	flightIds []int    // Column -> flight id, ascending
	matrix    [][]bool // [pairing][column]
	coverers  [][]int  // Column -> pairings covering it, in declaration order
}

func newCoverage(pairings []Pairing) coverage {
	flightIds := flightUniverse(pairings)

	columns := make(map[int]int, len(flightIds))
	for column, flightId := range flightIds {
		columns[flightId] = column
	}

	matrix := make([][]bool, len(pairings))
	coverers := make([][]int, len(flightIds))
	for i, pairing := range pairings {
		matrix[i] = make([]bool, len(flightIds))
		for _, flightId := range pairing.Flights {
			column := columns[flightId]
			if matrix[i][column] { // Repeated flight inside the same pairing
				continue
			}
			matrix[i][column] = true
			coverers[column] = append(coverers[column], i)
		}
	}

	return coverage{
		flightIds: flightIds,
		matrix:    matrix,
		coverers:  coverers,
	}
}

func (coverage coverage) Flights() int {
	return len(coverage.flightIds)
}

func (coverage coverage) FlightId(column int) int {
	return coverage.flightIds[column]
}

// Remapped reports whether some flight id differs from its column
func (coverage coverage) Remapped() bool {
	last := len(coverage.flightIds) - 1
	return last >= 0 && coverage.FlightId(last) != last
}

func (coverage coverage) Covers(pairing, column int) bool {
	return coverage.matrix[pairing][column]
}

func (coverage coverage) Coverers(column int) []int {
	return coverage.coverers[column]
}

// flightUniverse returns the distinct flight ids referenced by the pairings, ascending
func flightUniverse(pairings []Pairing) []int {
	flightIds := lo.Uniq(lo.FlatMap(pairings, func(pairing Pairing, _ int) []int { return pairing.Flights }))
	slices.Sort(flightIds)
	return flightIds
}

// checkDenseFlights reports the first missing id when flight ids are not exactly 0..n-1
func checkDenseFlights(pairings []Pairing) error {
	for column, flightId := range flightUniverse(pairings) {
		if flightId != column {
			return fmt.Errorf("flight ids must be dense and zero-based: expected %v but found %v", column, flightId)
		}
	}
	return nil
}

// buildOverlapGraph marks every pair of pairings whose half-open windows intersect. The relation is symmetric and irreflexive
func buildOverlapGraph(pairings []Pairing) [][]bool {
	overlapGraph := make([][]bool, len(pairings))
	for i := range overlapGraph {
		overlapGraph[i] = make([]bool, len(pairings))
	}

	for i := 0; i < len(pairings)-1; i++ {
		for j := i + 1; j < len(pairings); j++ {
			if pairings[i].StartTime < pairings[j].EndTime && pairings[j].StartTime < pairings[i].EndTime {
				overlapGraph[i][j] = true
				overlapGraph[j][i] = true
			}
		}
	}
	return overlapGraph
}
