package engine

import "github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"

// SelectionConfig carries the population-shape constants controlled
// selection and replacement need: population size, crossover slot count,
// elite prefix size, mutation pool size, and the elite age ceiling.
type SelectionConfig struct {
	NP, NC, NE, NM, LS uint32
}

// SelectCrossover samples the two parent pools controlled selection draws
// progeny from: g is a uniform sample of NC/2 individuals from the best NC
// (population[:NC]); r is a uniform sample of NC/2 from the random-origin
// range population[NE:NP]. rIdx carries the population indices r was drawn
// from, since replacement substitutes progeny back into those exact slots.
// Any g[i] == r[i] self-pairing is broken by swapping r[i] with its
// neighbour in r (and rIdx along with it), one of the two fix-ups the
// grouping crossover literature uses.
func SelectCrossover(env *Environment, population []*model.Solution, cfg SelectionConfig) (g, r []*model.Solution, rIdx []int) {
	half := int(cfg.NC / 2)

	gPool := append([]*model.Solution(nil), population[:cfg.NC]...)
	g = append([]*model.Solution(nil), SampleInPlace(env, gPool, half)...)

	rPoolIdx := make([]int, int(cfg.NP-cfg.NE))
	for i := range rPoolIdx {
		rPoolIdx[i] = int(cfg.NE) + i
	}
	rIdx = append([]int(nil), SampleInPlace(env, rPoolIdx, half)...)
	r = make([]*model.Solution, half)
	for i, idx := range rIdx {
		r[i] = population[idx]
	}

	for i := 0; i < half; i++ {
		if g[i] == r[i] {
			j := (i + 1) % half
			r[i], r[j] = r[j], r[i]
			rIdx[i], rIdx[j] = rIdx[j], rIdx[i]
		}
	}

	return g, r, rIdx
}

// SelectMutation collects the elite individuals still young enough to be
// cloned (age < LS) and the first NM individuals of the population, the
// mutation pool. clones holds pointers into the population's elite prefix,
// not copies; the caller deep-clones them before mutating so the originals
// survive until replacement decides what to do with the mutated copies.
func SelectMutation(population []*model.Solution, cfg SelectionConfig) (clones, mutants []*model.Solution) {
	for _, s := range population[:cfg.NE] {
		if s.Age < cfg.LS {
			clones = append(clones, s)
		}
	}
	mutants = append([]*model.Solution(nil), population[:cfg.NM]...)
	return clones, mutants
}

// Pure returns the members of mutants that are not also in clones, by
// pointer identity: the set difference the solver mutates in place with
// the gentler aggressiveness k1, while clones' own deep copies are mutated
// separately with the harsher k2.
func Pure(mutants, clones []*model.Solution) []*model.Solution {
	excluded := make(map[*model.Solution]bool, len(clones))
	for _, c := range clones {
		excluded[c] = true
	}
	pure := make([]*model.Solution, 0, len(mutants))
	for _, m := range mutants {
		if !excluded[m] {
			pure = append(pure, m)
		}
	}
	return pure
}
