package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allIndices(indexer indexer, crews, pairings, flights int) []int {
	indices := make([]int, 0, indexer.Variables())
	for crew := range crews {
		for pairing := range pairings {
			indices = append(indices, indexer.Assign(crew, pairing))
		}
	}
	for crew := range crews {
		indices = append(indices, indexer.Modified(crew), indexer.Cleared(crew))
	}
	for pairing := range pairings {
		indices = append(indices, indexer.Altered(pairing))
	}
	for flight := range flights {
		indices = append(indices, indexer.Unassigned(flight))
	}
	for pairing := range pairings {
		for crew := range crews {
			indices = append(indices, indexer.OffPlan(pairing, crew), indexer.Deassign(pairing, crew))
		}
	}
	return indices
}

func reindex(indexer indexer, index int) int {
	kind, first, second := indexer.Attributes(index)
	switch kind {
	case assignKind:
		return indexer.Assign(first, second)
	case modifiedKind:
		return indexer.Modified(first)
	case clearedKind:
		return indexer.Cleared(first)
	case alteredKind:
		return indexer.Altered(first)
	case unassignedKind:
		return indexer.Unassigned(first)
	case offPlanKind:
		return indexer.OffPlan(first, second)
	default:
		return indexer.Deassign(first, second)
	}
}

func TestIndexAndAttributesDeterministic(t *testing.T) {
	//** Arrange
	scenarios := [][3]int{
		{1, 1, 1},
		{2, 3, 2},
		{10, 20, 15},
		{7, 1, 30},
		{1, 12, 4},
	}

	for _, scenario := range scenarios {
		crews, pairings, flights := scenario[0], scenario[1], scenario[2]

		//** Act
		indexer := newIndexer(crews, pairings, flights)
		indices := allIndices(indexer, crews, pairings, flights)

		//** Assert
		assert.Equal(t, 3*crews*pairings+2*crews+pairings+flights, indexer.Variables())
		for _, index := range indices {
			assert.Equal(t, index, reindex(indexer, index))
		}
	}
}

func TestIndexAndAttributesNonDeterministic(t *testing.T) {
	for range 10 {
		//** Arrange
		crews, pairings, flights := rand.Intn(15)+1, rand.Intn(30)+1, rand.Intn(40)+1

		//** Act
		indexer := newIndexer(crews, pairings, flights)

		//** Assert
		for index := range indexer.Variables() {
			assert.Equal(t, index, reindex(indexer, index))
		}
	}
}

func TestIndicesAreDense(t *testing.T) {
	//** Arrange
	crews, pairings, flights := 4, 6, 9
	indexer := newIndexer(crews, pairings, flights)

	//** Act
	indices := allIndices(indexer, crews, pairings, flights)

	//** Assert
	seen := make([]bool, indexer.Variables())
	for _, index := range indices {
		if assert.True(t, index >= 0 && index < indexer.Variables(), "index %v out of range", index) {
			assert.False(t, seen[index], "index %v assigned twice", index)
			seen[index] = true
		}
	}
	assert.Len(t, indices, indexer.Variables())
}

func TestAttributes(t *testing.T) {
	indexer := newIndexer(2, 3, 4)

	t.Run("Assign block comes first", func(t *testing.T) {
		kind, crew, pairing := indexer.Attributes(indexer.Assign(1, 2))
		assert.Equal(t, assignKind, kind)
		assert.Equal(t, 1, crew)
		assert.Equal(t, 2, pairing)
		assert.Equal(t, 5, indexer.Assign(1, 2))
	})

	t.Run("Deassign block comes last", func(t *testing.T) {
		kind, pairing, crew := indexer.Attributes(indexer.Variables() - 1)
		assert.Equal(t, deassignKind, kind)
		assert.Equal(t, 2, pairing)
		assert.Equal(t, 1, crew)
	})

	t.Run("Out of range index panics", func(t *testing.T) {
		assert.Panics(t, func() { indexer.Attributes(indexer.Variables()) })
		assert.Panics(t, func() { indexer.Attributes(-1) })
	})
}
