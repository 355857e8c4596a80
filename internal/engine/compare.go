package engine

import (
	"time"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// ComparisonScenario names a SolverConfig variant to run against the same
// Problem, for side-by-side what-if tuning.
type ComparisonScenario struct {
	Name   string
	Config SolverConfig
}

// ComparisonResult holds one scenario's outcome and the statistics worth
// comparing across scenarios.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Best        *model.Solution
	Generations uint32
	Duration    time.Duration
}

// CompareScenarios runs the solver against problem once per scenario, each
// starting from its own freshly generated population, and returns the
// results in scenario order.
func CompareScenarios(problem *Problem, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		population := make([]*model.Solution, scenario.Config.NP)
		for i := range population {
			population[i] = problem.GenerateIndividual(true)
		}

		solver := NewSolver(problem, scenario.Config)

		start := time.Now()
		best, generations, _ := solver.Solve(population)
		duration := time.Since(start)

		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Best:        best,
			Generations: generations,
			Duration:    duration,
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios around a
// base configuration, varying population size, crossover slot count and
// mutation aggressiveness to show
// what-if alternatives to the caller's chosen tuning.
func BuildDefaultScenarios(base SolverConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{Name: "Default", Config: base},
	}

	larger := base
	larger.NP *= 2
	scenarios = append(scenarios, ComparisonScenario{Name: "Larger population", Config: larger})

	if base.NP > 20 {
		smaller := base
		smaller.NP /= 2
		if smaller.NC > smaller.NP {
			smaller.NC = smaller.NP
		}
		if smaller.NE > smaller.NP {
			smaller.NE = smaller.NP
		}
		if smaller.NM > smaller.NP {
			smaller.NM = smaller.NP
		}
		scenarios = append(scenarios, ComparisonScenario{Name: "Smaller population", Config: smaller})
	}

	if base.NC >= 4 {
		moreCrossover := base
		moreCrossover.NC *= 2
		scenarios = append(scenarios, ComparisonScenario{Name: "More crossover slots", Config: moreCrossover})
	}

	higherAggressiveness := base
	higherAggressiveness.K1.Num *= 2
	higherAggressiveness.K2.Num *= 2
	scenarios = append(scenarios, ComparisonScenario{Name: "More aggressive mutation", Config: higherAggressiveness})

	return scenarios
}
