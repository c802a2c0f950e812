package model

import (
	"fmt"

	"github.com/limaJavier/crewscheduling/pkg/milp"
)

// declareVariables creates every decision variable in index order, so a variable's position in the model equals its indexer index
func declareVariables(model *milp.Model, indexer indexer) {
	for index := range indexer.Variables() {
		kind, first, second := indexer.Attributes(index)
		switch kind {
		case assignKind:
			model.NewBoolVar(fmt.Sprintf("x_%v_%v", first, second))
		case modifiedKind:
			model.NewBoolVar(fmt.Sprintf("y_%v", first))
		case clearedKind:
			model.NewBoolVar(fmt.Sprintf("z_%v", first))
		case alteredKind:
			model.NewBoolVar(fmt.Sprintf("s_%v", first))
		case unassignedKind:
			model.NewNumVar(0, 1, fmt.Sprintf("u_%v", first))
		case offPlanKind:
			model.NewNumVar(0, 1, fmt.Sprintf("a_%v_%v", first, second))
		case deassignKind:
			model.NewNumVar(0, 1, fmt.Sprintf("d_%v_%v", first, second))
		}
	}
}
