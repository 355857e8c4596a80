package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/engine"
	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// StageResult is one row of the .dat block table: the block count a
// packing strategy produced, how far short of bin_count that left it
// (splits — the cost the fragmentation this system minimizes actually
// pays), and how long the strategy took to run.
type StageResult struct {
	Blocks   uint32
	Splits   uint32
	Duration time.Duration
}

// Summarize turns a finished Solution into a StageResult against the bin
// count it was packed for.
func Summarize(binCount uint32, s *model.Solution, duration time.Duration) StageResult {
	return StageResult{Blocks: uint32(s.Size()), Splits: binCount - uint32(s.Size()), Duration: duration}
}

// Result is everything one .dat/PDF/XLSX row needs: the problem's
// reduction statistics plus the four comparison stages the literal .dat
// format lists.
type Result struct {
	RunID RunID
	Seed  uint64

	ItemCountBefore   uint32
	ItemCountAfter    uint32
	ReductionDuration time.Duration

	BinCount   uint32
	LowerBound uint32

	// G and B3G are single samples of the plain and B3-assisted packer,
	// both drawn from the same RNG state (the run is reseeded to Seed
	// before each) so they are directly comparable head to head.
	G, B3G StageResult

	// FFFStage1 is the best of a population of B3G samples, stopping
	// early the moment any sample attains the lower bound. FFFStage2 is
	// what the genetic solver does with that same population afterward
	// — equal to FFFStage1 with zero duration when stage 1 already found
	// the optimum, since there is nothing left to improve.
	FFFStage1, FFFStage2 StageResult

	// Best is FFFStage2's actual packing, kept for callers that need the
	// block list itself (the XLSX block table) rather than just its
	// summary statistics.
	Best *model.Solution

	// BlocksOverTime is the per-generation running-best block count the
	// solver's genetic stage produced, generation 0 first. When FFFStage1
	// already found the optimum and the solver never ran, it holds just
	// FFFStage1's block count.
	BlocksOverTime []uint32
}

// RunStages reproduces one benchmark iteration's four-stage comparison:
// a single G run, a single B3G run (both reseeded to seed so they start
// from the same RNG state), a population of B3G samples taking the best
// (or stopping the instant one hits the lower bound), and finally the
// genetic solver run over that same population when the population
// didn't already reach the optimum. Problem.Items[].Count is left exactly
// as it was found: every packer call restores its own borrow before
// returning.
func RunStages(problem *engine.Problem, seed uint64, reductionDuration time.Duration, cfg engine.SolverConfig) Result {
	env := problem.Env

	env.ReseedWith(seed)
	gStart := time.Now()
	solutionG := problem.GenerateIndividual(false)
	g := Summarize(problem.BinCount, solutionG, time.Since(gStart))

	env.ReseedWith(seed)
	b3gStart := time.Now()
	solutionB3G := problem.GenerateIndividual(true)
	b3g := Summarize(problem.BinCount, solutionB3G, time.Since(b3gStart))

	env.ReseedWith(seed)
	population := make([]*model.Solution, cfg.NP)
	optimalBlocks := problem.BinCount - problem.LowerBound
	foundOptimal := false
	var stage1Solution *model.Solution

	stage1Start := time.Now()
	for j := range population {
		population[j] = problem.GenerateIndividual(true)
		if uint32(population[j].Size()) == optimalBlocks {
			stage1Solution = population[j]
			foundOptimal = true
			break
		}
	}
	if !foundOptimal {
		sort.SliceStable(population, func(i, j int) bool {
			return population[i].Size() > population[j].Size()
		})
		stage1Solution = population[0]
	}
	stage1 := Summarize(problem.BinCount, stage1Solution, time.Since(stage1Start))

	var stage2Solution *model.Solution
	var stage2 StageResult
	var blocksOverTime []uint32

	if foundOptimal {
		stage2Solution = stage1Solution
		stage2 = StageResult{Blocks: stage1.Blocks, Splits: stage1.Splits, Duration: 0}
		blocksOverTime = []uint32{stage1.Blocks}
	} else {
		solver := engine.NewSolver(problem, cfg)
		stage2Start := time.Now()
		best, _, bot := solver.Solve(population)
		stage2 = Summarize(problem.BinCount, best, time.Since(stage2Start))
		stage2Solution = best
		blocksOverTime = bot
	}

	return Result{
		RunID:             NewRunID(),
		Seed:              seed,
		ItemCountBefore:   problem.OriginalItemCount,
		ItemCountAfter:    problem.ItemCount,
		ReductionDuration: reductionDuration,
		BinCount:          problem.BinCount,
		LowerBound:        problem.LowerBound,
		G:                 g,
		B3G:               b3g,
		FFFStage1:         stage1,
		FFFStage2:         stage2,
		Best:              stage2Solution,
		BlocksOverTime:    blocksOverTime,
	}
}

// WriteDat writes r in the literal .dat format: a commented header block
// of run metadata followed by one "blocks splits duration" line per stage,
// in the fixed order G, B3G, FFF Stage 1, FFF Stage 2.
func WriteDat(w io.Writer, r Result) error {
	upperBound := r.BinCount - 1
	_, err := fmt.Fprintf(w,
		"# Seed: %d\n"+
			"# Item count before reduction: %d\n"+
			"# Item count after reduction: %d\n"+
			"# Time spent in reduction: %g\n"+
			"# Bin count: %d\n"+
			"# Lower bound: %d\n"+
			"# Upper bound: %d\n"+
			"#\n"+
			"# Format:\n"+
			"# blocks splits duration\n"+
			"#\n"+
			"# Order:\n"+
			"# G\n"+
			"# B3G\n"+
			"# FFF Stage 1\n"+
			"# FFF Stage 2\n"+
			"%d %d %g\n"+
			"%d %d %g\n"+
			"%d %d %g\n"+
			"%d %d %g\n",
		r.Seed,
		r.ItemCountBefore,
		r.ItemCountAfter,
		r.ReductionDuration.Seconds(),
		r.BinCount,
		r.LowerBound,
		upperBound,
		r.G.Blocks, r.G.Splits, r.G.Duration.Seconds(),
		r.B3G.Blocks, r.B3G.Splits, r.B3G.Duration.Seconds(),
		r.FFFStage1.Blocks, r.FFFStage1.Splits, r.FFFStage1.Duration.Seconds(),
		r.FFFStage2.Blocks, r.FFFStage2.Splits, r.FFFStage2.Duration.Seconds(),
	)
	return err
}

// WriteGen writes the per-generation running-best block count history the
// genetic stage produced, the literal .gen format: one commented header
// line followed by one count per line, generation 0 first.
func WriteGen(w io.Writer, blocksOverTime []uint32) error {
	if _, err := fmt.Fprint(w, "# Blocks for generations of FFF, including generation 0\n"); err != nil {
		return err
	}
	for _, count := range blocksOverTime {
		if _, err := fmt.Fprintf(w, "%d\n", count); err != nil {
			return err
		}
	}
	return nil
}
