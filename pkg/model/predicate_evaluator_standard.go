package model

type predicateEvaluatorStandard struct {
	pairings     []Pairing
	coverage     coverage
	overlapGraph [][]bool
	minimumRest  int // Minutes between the end of a duty and the start of the next one
}

func newPredicateEvaluator(pairings []Pairing, coverage coverage, overlapGraph [][]bool, minimumRest int) predicateEvaluator {
	return &predicateEvaluatorStandard{
		pairings:     pairings,
		coverage:     coverage,
		overlapGraph: overlapGraph,
		minimumRest:  minimumRest,
	}
}

func (evaluator *predicateEvaluatorStandard) Covers(pairing, flight int) bool {
	return evaluator.coverage.Covers(pairing, flight)
}

func (evaluator *predicateEvaluatorStandard) Coverers(flight int) []int {
	return evaluator.coverage.Coverers(flight)
}

func (evaluator *predicateEvaluatorStandard) Overlap(pairing1, pairing2 int) bool {
	return evaluator.overlapGraph[pairing1][pairing2]
}

func (evaluator *predicateEvaluatorStandard) RestApplies(pairing1, pairing2 int) bool {
	return pairing1 != pairing2 &&
		evaluator.pairings[pairing1].EndTime+evaluator.minimumRest <= evaluator.pairings[pairing2].StartTime
}
