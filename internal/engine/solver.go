package engine

import "github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"

// SolverConfig fixes the population shape and mutation aggressiveness the
// generational loop runs with. Defaults follow the grouping genetic
// algorithm this solver was grounded on.
type SolverConfig struct {
	NP, NC, NM, NE, LS, NG, DL uint32
	K1, K2                     MutationRate
}

// DefaultSolverConfig returns the parameters the solver was tuned with.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		NP: 100, NC: 20, NM: 83, NE: 10, LS: 10, NG: 500, DL: 100,
		K1: MutationRate{Num: 13, Den: 10},
		K2: MutationRate{Num: 4, Den: 1},
	}
}

func (c SolverConfig) selection() SelectionConfig {
	return SelectionConfig{NP: c.NP, NC: c.NC, NE: c.NE, NM: c.NM, LS: c.LS}
}

// Solver runs the grouping genetic algorithm's generational loop over a
// Problem's population of Solutions.
type Solver struct {
	Problem *Problem
	Config  SolverConfig
}

// NewSolver binds a Problem and its solving parameters together.
func NewSolver(p *Problem, cfg SolverConfig) *Solver {
	return &Solver{Problem: p, Config: cfg}
}

// Solve advances population through up to Config.NG generations of
// controlled selection, crossover, mutation, and replacement, stopping
// early once the feasible maximum block count (bin_count - lower_bound) is
// attained or the best solution stagnates for Config.DL generations in a
// row. It returns the best solution observed, the number of generations
// actually run, and the running best block count after every generation
// (including generation 0, before any evolution), for callers that want to
// plot convergence.
func (s *Solver) Solve(population []*model.Solution) (best *model.Solution, generations uint32, blocksOverTime []uint32) {
	p := s.Problem
	cfg := s.Config
	sel := cfg.selection()

	sortPopulationDescending(population)
	best = population[0].Clone()
	blocksOverTime = append(blocksOverTime, uint32(best.Size()))

	maxBlocks := p.BinCount - p.LowerBound
	if uint32(best.Size()) == maxBlocks {
		return best, 0, blocksOverTime
	}

	half := cfg.NC / 2
	var deltaCounter uint32

	for gen := uint32(0); gen < cfg.NG; gen++ {
		g, r, rIdx := SelectCrossover(p.Env, population, sel)
		progeny := make([]*model.Solution, cfg.NC)
		for i := uint32(0); i < half; i++ {
			progeny[i] = p.Crossover(g[i], r[i], true)
			progeny[i+half] = p.Crossover(r[i], g[i], true)
		}
		ReplacementCrossover(population, progeny, rIdx, sel)

		clones, mutants := SelectMutation(population, sel)
		pure := Pure(mutants, clones)
		cloned := make([]*model.Solution, len(clones))
		for i, c := range clones {
			cloned[i] = c.Clone()
		}

		for _, m := range pure {
			p.Mutate(m, cfg.K1, true)
		}
		for _, c := range cloned {
			p.Mutate(c, cfg.K2, true)
		}

		sortPopulationDescending(population)
		if len(cloned) > 0 {
			ReplacementMutation(population, cloned, sel)
		}

		if uint32(population[0].Size()) > uint32(best.Size()) {
			best = population[0].Clone()
			deltaCounter = 0
		} else {
			deltaCounter++
		}
		blocksOverTime = append(blocksOverTime, uint32(best.Size()))

		for _, e := range population[:cfg.NE] {
			e.Age++
		}

		generations = gen + 1

		if uint32(best.Size()) == maxBlocks || deltaCounter >= cfg.DL {
			break
		}
	}

	return best, generations, blocksOverTime
}
