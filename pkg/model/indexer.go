package model

type variableKind int

const (
	assignKind variableKind = iota
	modifiedKind
	clearedKind
	alteredKind
	unassignedKind
	offPlanKind
	deassignKind
)

func (kind variableKind) String() string {
	return [...]string{"assign", "modified", "cleared", "altered", "unassigned", "offPlan", "deassign"}[kind]
}

// indexer interface is design to give a unique dense index to every decision variable and vice versa
type indexer interface {
	Assign(crew, pairing int) int
	Modified(crew int) int
	Cleared(crew int) int
	Altered(pairing int) int
	Unassigned(flight int) int
	OffPlan(pairing, crew int) int
	Deassign(pairing, crew int) int

	// Returns the number of variables, every index lies in [0, Variables())
	Variables() int
	// Returns the kind and the attributes of a variable from its index. Single-attribute kinds leave second at zero
	Attributes(index int) (kind variableKind, first int, second int)
}

func newIndexer(crews, pairings, flights int) indexer {
	return &indexerImplementation{
		crews:    crews,
		pairings: pairings,
		flights:  flights,
	}
}
