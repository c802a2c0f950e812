package model

import "fmt"

// Blocks follow each other in kind order: assign, modified, cleared, altered, unassigned, off-plan and deassign
type indexerImplementation struct {
	crews    int
	pairings int
	flights  int
}

func (indexer *indexerImplementation) Assign(crew, pairing int) int {
	return crew*indexer.pairings + pairing
}

func (indexer *indexerImplementation) Modified(crew int) int {
	return indexer.crews*indexer.pairings + crew
}

func (indexer *indexerImplementation) Cleared(crew int) int {
	return indexer.crews*indexer.pairings + indexer.crews + crew
}

func (indexer *indexerImplementation) Altered(pairing int) int {
	return indexer.crews*indexer.pairings + 2*indexer.crews + pairing
}

func (indexer *indexerImplementation) Unassigned(flight int) int {
	return indexer.crews*indexer.pairings + 2*indexer.crews + indexer.pairings + flight
}

func (indexer *indexerImplementation) OffPlan(pairing, crew int) int {
	return indexer.slackBase() + pairing*indexer.crews + crew
}

func (indexer *indexerImplementation) Deassign(pairing, crew int) int {
	return indexer.slackBase() + indexer.pairings*indexer.crews + pairing*indexer.crews + crew
}

func (indexer *indexerImplementation) Variables() int {
	return 3*indexer.crews*indexer.pairings + 2*indexer.crews + indexer.pairings + indexer.flights
}

func (indexer *indexerImplementation) Attributes(index int) (kind variableKind, first, second int) {
	if index < 0 || index >= indexer.Variables() {
		panic(fmt.Sprintf("variable index %v out of range [0, %v)", index, indexer.Variables()))
	}

	blocks := []struct {
		kind  variableKind
		size  int
		width int // Size of the second attribute, 1 for single-attribute kinds
	}{
		{assignKind, indexer.crews * indexer.pairings, indexer.pairings},
		{modifiedKind, indexer.crews, 1},
		{clearedKind, indexer.crews, 1},
		{alteredKind, indexer.pairings, 1},
		{unassignedKind, indexer.flights, 1},
		{offPlanKind, indexer.pairings * indexer.crews, indexer.crews},
		{deassignKind, indexer.pairings * indexer.crews, indexer.crews},
	}

	for _, block := range blocks {
		if index < block.size {
			if block.width == 1 {
				return block.kind, index, 0
			}
			return block.kind, index / block.width, index % block.width
		}
		index -= block.size
	}
	panic("unreachable")
}

func (indexer *indexerImplementation) slackBase() int {
	return indexer.crews*indexer.pairings + 2*indexer.crews + indexer.pairings + indexer.flights
}
