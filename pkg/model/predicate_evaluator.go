package model

type predicateEvaluator interface {
	// Checks whether the pairing includes the flight at the given coverage column
	Covers(pairing, flight int) bool

	// Returns the pairings that include the flight at the given coverage column
	Coverers(flight int) []int

	// Checks whether the time windows of pairing1 and pairing2 intersect
	Overlap(pairing1, pairing2 int) bool

	// Checks whether pairing2 starts at least the minimum rest after pairing1 ends
	RestApplies(pairing1, pairing2 int) bool
}
