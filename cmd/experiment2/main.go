// Command experiment2 runs the G/B3G/FFF-stage benchmark comparison over
// BPP-lib-format problem instance files, writing one .dat/.gen pair per
// run.
//
// Usage:
//
//	experiment2 <input_file>... <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/engine"
	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/instance"
	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/report"
)

const defaultRuns = 10

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: experiment2 <input_file>... <output_dir>\n")
		return -1
	}

	runs := defaultRuns
	inputPaths := args[:len(args)-1]
	outputDir := args[len(args)-1]

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create output dir %s: %v\n", outputDir, err)
		return -1
	}

	env := engine.NewEnvironment()
	cfg := engine.DefaultSolverConfig()

	var allResults []report.Result
	var allBlocks []report.RunBlocks

	for _, inputPath := range inputPaths {
		results, blocks, err := runOneInstance(env, cfg, inputPath, outputDir, runs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inputPath, err)
			continue
		}
		allResults = append(allResults, results...)
		allBlocks = append(allBlocks, blocks...)
	}

	if err := writeAggregateReports(outputDir, allResults, allBlocks); err != nil {
		fmt.Fprintf(os.Stderr, "aggregate report: %v\n", err)
	}

	return 0
}

func runOneInstance(env *engine.Environment, cfg engine.SolverConfig, inputPath, outputDir string, runs int) ([]report.Result, []report.RunBlocks, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open: %w", err)
	}
	defer f.Close()

	inst, err := instance.ParseBPPLib(f)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse: %w", err)
	}

	reductionStart := time.Now()
	problem, err := engine.NewProblem(env, inst.Sizes, inst.BinCapacity, inst.BinCount)
	reductionDuration := time.Since(reductionStart)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build problem: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	var results []report.Result
	var blocks []report.RunBlocks

	for i := 0; i < runs; i++ {
		env.Reseed()
		seed := env.Seed()

		result := report.RunStages(problem, seed, reductionDuration, cfg)

		datPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d.dat", baseName, i))
		genPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d.gen", baseName, i))

		if err := writeResultFiles(datPath, genPath, result); err != nil {
			fmt.Fprintf(os.Stderr, "%s run %d: %v\n", inputPath, i, err)
			continue
		}

		fmt.Printf("%s run %d: seed=%d blocks=%d lower_bound=%d\n",
			baseName, i, seed, result.Best.Size(), problem.LowerBound)

		results = append(results, result)
		blocks = append(blocks, report.RunBlocks{
			RunID:       result.RunID,
			BinCapacity: problem.BinCapacity,
			Solution:    result.Best,
		})
	}

	return results, blocks, nil
}

func writeAggregateReports(outputDir string, results []report.Result, blocks []report.RunBlocks) error {
	if len(results) == 0 {
		return nil
	}
	if err := report.WritePDF(filepath.Join(outputDir, "report.pdf"), results); err != nil {
		return fmt.Errorf("write report.pdf: %w", err)
	}
	if err := report.WriteXLSX(filepath.Join(outputDir, "report.xlsx"), blocks); err != nil {
		return fmt.Errorf("write report.xlsx: %w", err)
	}
	return nil
}

func writeResultFiles(datPath, genPath string, result report.Result) error {
	datFile, err := os.Create(datPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", datPath, err)
	}
	defer datFile.Close()
	if err := report.WriteDat(datFile, result); err != nil {
		return fmt.Errorf("write %s: %w", datPath, err)
	}

	genFile, err := os.Create(genPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", genPath, err)
	}
	defer genFile.Close()
	if err := report.WriteGen(genFile, result.BlocksOverTime); err != nil {
		return fmt.Errorf("write %s: %w", genPath, err)
	}

	return nil
}
