// Command optimizer generates a random bin-packing instance and solves it.
//
// Usage:
//
//	optimizer <item_count> <bin_capacity>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/engine"
	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: optimizer <item_count> <bin_capacity>\n")
		return -1
	}

	itemCount, err := parsePositiveUint(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid item_count: %v\n", err)
		return -1
	}
	binCapacity, err := parsePositiveUint(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid bin_capacity: %v\n", err)
		return -1
	}

	env := engine.NewEnvironment()
	seed := env.Seed()
	fmt.Printf("Seed: %d\n", seed)

	sizes := make([]uint32, itemCount)
	for i := range sizes {
		sizes[i] = 1 + env.BoundedRand(binCapacity)
	}

	start := time.Now()
	problem, err := engine.NewProblem(env, sizes, binCapacity, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build problem: %v\n", err)
		return -1
	}
	reductionDuration := time.Since(start)

	cfg := engine.DefaultSolverConfig()
	population := make([]*model.Solution, cfg.NP)
	for i := range population {
		population[i] = problem.GenerateIndividual(true)
	}

	solver := engine.NewSolver(problem, cfg)
	solveStart := time.Now()
	best, generations, _ := solver.Solve(population)
	elapsed := time.Since(solveStart)

	n := float64(problem.OriginalItemCount)
	nReduced := float64(problem.ItemCount)
	m := float64(problem.BinCount)
	lb := float64(problem.LowerBound)
	size := float64(best.Size())

	optGap := (n + lb) / (n + m - size)
	optGapReduced := (nReduced + lb) / (nReduced + m - size)

	fmt.Printf("Reduction: %d -> %d items in %s\n", problem.OriginalItemCount, problem.ItemCount, reductionDuration)
	fmt.Printf("Best solution: %s\n", best)
	fmt.Printf("Blocks: %d (bin count %d, lower bound %d)\n", best.Size(), problem.BinCount, problem.LowerBound)
	fmt.Printf("Generations: %d\n", generations)
	fmt.Printf("Elapsed: %s\n", elapsed)
	fmt.Printf("OptGap: %g\n", optGap)
	fmt.Printf("OptGap (reduced): %g\n", optGapReduced)

	if uint32(best.Size()) == problem.BinCount-problem.LowerBound {
		fmt.Println("===OPTIMAL==")
	}

	return 0
}

func parsePositiveUint(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("must be a positive integer")
	}
	return uint32(v), nil
}
