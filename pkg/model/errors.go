package model

import (
	"errors"
	"fmt"

	"github.com/limaJavier/crewscheduling/pkg/milp"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrModelTooLarge = errors.New("model exceeds the variable limit")
)

// NotOptimalError is returned when the solving engine ends without proving optimality
type NotOptimalError struct {
	Status milp.Status
}

func (err NotOptimalError) Error() string {
	return fmt.Sprintf("the problem does not have an optimal solution: status %v", err.Status)
}
