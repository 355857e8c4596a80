// Command experiment runs the G/B3G/FFF-stage benchmark comparison over a
// uniform-format problem instance file, writing one .dat/.gen pair per
// instance line per run.
//
// Usage:
//
//	experiment <input_file> <bin_capacity> <output_dir> [runs]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
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
	if len(args) != 3 && len(args) != 4 {
		fmt.Fprintf(os.Stderr, "usage: experiment <input_file> <bin_capacity> <output_dir> [runs]\n")
		return -1
	}

	inputPath := args[0]
	binCapacity, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil || binCapacity == 0 {
		fmt.Fprintf(os.Stderr, "invalid bin_capacity: %q\n", args[1])
		return -1
	}
	outputDir := args[2]

	runs := defaultRuns
	if len(args) == 4 {
		runs, err = strconv.Atoi(args[3])
		if err != nil || runs <= 0 {
			fmt.Fprintf(os.Stderr, "invalid runs: %q\n", args[3])
			return -1
		}
	}

	f, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", inputPath, err)
		return -1
	}
	defer f.Close()

	problems, err := instance.ParseUniform(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse %s: %v\n", inputPath, err)
		return -1
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create output dir %s: %v\n", outputDir, err)
		return -1
	}

	baseName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	env := engine.NewEnvironment()
	cfg := engine.DefaultSolverConfig()

	var allResults []report.Result
	var allBlocks []report.RunBlocks

	for instIdx, sizes := range problems {
		reductionStart := time.Now()
		problem, err := engine.NewProblem(env, sizes, uint32(binCapacity), 0)
		reductionDuration := time.Since(reductionStart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "instance %d: skipping, %v\n", instIdx, err)
			continue
		}

		for i := 0; i < runs; i++ {
			env.Reseed()
			seed := env.Seed()

			result := report.RunStages(problem, seed, reductionDuration, cfg)

			datPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d_%d.dat", baseName, instIdx, i))
			genPath := filepath.Join(outputDir, fmt.Sprintf("%s_%d_%d.gen", baseName, instIdx, i))

			if err := writeResultFiles(datPath, genPath, result); err != nil {
				fmt.Fprintf(os.Stderr, "instance %d run %d: %v\n", instIdx, i, err)
				continue
			}

			fmt.Printf("instance %d run %d: seed=%d blocks=%d lower_bound=%d\n",
				instIdx, i, seed, result.Best.Size(), problem.LowerBound)

			allResults = append(allResults, result)
			allBlocks = append(allBlocks, report.RunBlocks{
				RunID:       result.RunID,
				BinCapacity: problem.BinCapacity,
				Solution:    result.Best,
			})
		}
	}

	if err := writeAggregateReports(outputDir, allResults, allBlocks); err != nil {
		fmt.Fprintf(os.Stderr, "aggregate report: %v\n", err)
	}

	return 0
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
