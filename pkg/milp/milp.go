package milp

import (
	"fmt"
	"math"
	"strings"
)

var Infinity = math.Inf(1)

type VariableKind int

const (
	Binary VariableKind = iota
	Continuous
)

type Variable struct {
	Name  string
	Kind  VariableKind
	Lower float64
	Upper float64
}

type Term struct {
	Variable    int
	Coefficient float64
}

// Constraint is a ranged linear row: Lower <= sum(Terms) <= Upper. Use -Infinity/Infinity for one-sided rows
type Constraint struct {
	Name  string
	Lower float64
	Upper float64
	Terms []Term
}

// Model is a minimization MILP. Variables are referred to by their position in Variables
type Model struct {
	Name        string
	Variables   []Variable
	Constraints []Constraint
	Objective   []Term

	objectiveIndex map[int]int
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

func (m *Model) NewBoolVar(name string) int {
	m.Variables = append(m.Variables, Variable{Name: name, Kind: Binary, Lower: 0, Upper: 1})
	return len(m.Variables) - 1
}

func (m *Model) NewNumVar(lower, upper float64, name string) int {
	m.Variables = append(m.Variables, Variable{Name: name, Kind: Continuous, Lower: lower, Upper: upper})
	return len(m.Variables) - 1
}

// AddConstraint appends a row, dropping zero coefficients. An unnamed row is named after its position
func (m *Model) AddConstraint(constraint Constraint) int {
	if constraint.Name == "" {
		constraint.Name = fmt.Sprintf("c%d", len(m.Constraints))
	}
	terms := make([]Term, 0, len(constraint.Terms))
	for _, term := range constraint.Terms {
		if term.Coefficient != 0 {
			terms = append(terms, term)
		}
	}
	constraint.Terms = terms
	m.Constraints = append(m.Constraints, constraint)
	return len(m.Constraints) - 1
}

// Minimize adds the terms to the objective, accumulating coefficients of repeated variables
func (m *Model) Minimize(terms ...Term) {
	for _, term := range terms {
		if term.Coefficient == 0 {
			continue
		}
		if m.objectiveIndex == nil {
			m.objectiveIndex = make(map[int]int)
		}
		if position, ok := m.objectiveIndex[term.Variable]; ok {
			m.Objective[position].Coefficient += term.Coefficient
			continue
		}
		m.objectiveIndex[term.Variable] = len(m.Objective)
		m.Objective = append(m.Objective, term)
	}
}

func (m *Model) ObjectiveValue(values []float64) float64 {
	return evaluate(m.Objective, values)
}

// Violated returns the positions of the constraints (and, with index -1-v, the variable bounds) not satisfied by values within tolerance
func (m *Model) Violated(values []float64, tolerance float64) []int {
	violated := make([]int, 0)
	for v, variable := range m.Variables {
		value := values[v]
		if value < variable.Lower-tolerance || value > variable.Upper+tolerance ||
			(variable.Kind == Binary && math.Abs(value-math.Round(value)) > tolerance) {
			violated = append(violated, -1-v)
		}
	}
	for c, constraint := range m.Constraints {
		activity := evaluate(constraint.Terms, values)
		if activity < constraint.Lower-tolerance || activity > constraint.Upper+tolerance {
			violated = append(violated, c)
		}
	}
	return violated
}

func evaluate(terms []Term, values []float64) float64 {
	total := 0.0
	for _, term := range terms {
		total += term.Coefficient * values[term.Variable]
	}
	return total
}

// ToLP renders the model in CPLEX LP format, which both cbc and highs read
func (m *Model) ToLP() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "\\ %v\n", m.Name)

	builder.WriteString("Minimize\n obj:")
	if len(m.Objective) == 0 && len(m.Variables) > 0 {
		fmt.Fprintf(&builder, " 0 %v", m.Variables[0].Name)
	}
	m.writeTerms(&builder, m.Objective)
	builder.WriteString("\n")

	builder.WriteString("Subject To\n")
	for _, constraint := range m.Constraints {
		lowerBounded, upperBounded := !math.IsInf(constraint.Lower, -1), !math.IsInf(constraint.Upper, 1)
		switch {
		case lowerBounded && upperBounded && constraint.Lower == constraint.Upper:
			m.writeRow(&builder, constraint.Name, constraint.Terms, "=", constraint.Lower)
		case lowerBounded && upperBounded:
			// Ranged rows are split in two, LP format has no portable range syntax
			m.writeRow(&builder, constraint.Name+"_lo", constraint.Terms, ">=", constraint.Lower)
			m.writeRow(&builder, constraint.Name+"_up", constraint.Terms, "<=", constraint.Upper)
		case lowerBounded:
			m.writeRow(&builder, constraint.Name, constraint.Terms, ">=", constraint.Lower)
		case upperBounded:
			m.writeRow(&builder, constraint.Name, constraint.Terms, "<=", constraint.Upper)
		}
	}

	builder.WriteString("Bounds\n")
	for _, variable := range m.Variables {
		if variable.Kind == Binary {
			continue
		}
		fmt.Fprintf(&builder, " %v <= %v <= %v\n", formatBound(variable.Lower), variable.Name, formatBound(variable.Upper))
	}

	binaries := make([]string, 0, len(m.Variables))
	for _, variable := range m.Variables {
		if variable.Kind == Binary {
			binaries = append(binaries, variable.Name)
		}
	}
	if len(binaries) > 0 {
		builder.WriteString("Binaries\n")
		for _, name := range binaries {
			fmt.Fprintf(&builder, " %v\n", name)
		}
	}

	builder.WriteString("End\n")
	return builder.String()
}

func (m *Model) writeRow(builder *strings.Builder, name string, terms []Term, sense string, rhs float64) {
	fmt.Fprintf(builder, " %v:", name)
	if len(terms) == 0 {
		fmt.Fprintf(builder, " 0 %v", m.Variables[0].Name)
	}
	m.writeTerms(builder, terms)
	fmt.Fprintf(builder, " %v %v\n", sense, formatNumber(rhs))
}

func (m *Model) writeTerms(builder *strings.Builder, terms []Term) {
	for i, term := range terms {
		coefficient := term.Coefficient
		sign := "+"
		if coefficient < 0 {
			sign = "-"
			coefficient = -coefficient
		}
		if i == 0 && sign == "+" {
			fmt.Fprintf(builder, " %v %v", formatNumber(coefficient), m.Variables[term.Variable].Name)
			continue
		}
		fmt.Fprintf(builder, " %v %v %v", sign, formatNumber(coefficient), m.Variables[term.Variable].Name)
	}
}

func formatBound(value float64) string {
	if math.IsInf(value, 1) {
		return "+inf"
	} else if math.IsInf(value, -1) {
		return "-inf"
	}
	return formatNumber(value)
}

func formatNumber(value float64) string {
	return fmt.Sprintf("%g", value)
}
