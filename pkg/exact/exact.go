// Package exact computes a minimum-weight cover with a MaxSAT solver.
//
// Enumeration ranks covers heuristically. This package gives the true
// optimum so callers can report how far the first and best enumerated
// covers are from it. Each element becomes a hard clause over the sets
// that contain it and each set a soft clause "not chosen" weighted by the
// set's weight; the minimum-cost model is the minimum-weight cover.
//
// The solver is exponential in the worst case and is intended for the
// instance sizes found in tests and small benchmarks.
package exact

import (
	"fmt"

	"github.com/crillab/gophersat/maxsat"

	"github.com/cohensara/coverenum/pkg/setcover"
)

// Optimum returns a minimum-weight cover of p. The boolean is false when
// no cover exists.
func Optimum(p *setcover.Problem) (*setcover.Solution, bool) {
	if !p.IsCover(p.AllSets()) {
		return nil, false
	}

	model, cost := maxsat.New(constraints(p)...).Solve()
	if cost < 0 || model == nil {
		return nil, false
	}

	sol := setcover.NewSolution()
	for i := range p.NumSets() {
		if model[varName(i)] {
			sol.Add(i, p.Weight(i))
		}
	}
	return sol, true
}

// Gap reports how much heavier weight is than the optimum, as a fraction of
// the optimum.
func Gap(weight, optimum int) float64 {
	if optimum <= 0 {
		return 0
	}
	return float64(weight-optimum) / float64(optimum)
}

func constraints(p *setcover.Problem) []maxsat.Constr {
	byElem := make([][]maxsat.Lit, p.UniverseSize())
	for i := range p.NumSets() {
		for _, e := range p.Elements(i) {
			byElem[e] = append(byElem[e], maxsat.Var(varName(i)))
		}
	}

	constrs := make([]maxsat.Constr, 0, p.UniverseSize()+p.NumSets())
	for _, lits := range byElem {
		constrs = append(constrs, maxsat.HardClause(lits...))
	}
	for i := range p.NumSets() {
		constrs = append(constrs, maxsat.WeightedClause([]maxsat.Lit{maxsat.Var(varName(i)).Negation()}, p.Weight(i)))
	}
	return constrs
}

func varName(i int) string {
	return fmt.Sprintf("s%d", i)
}
