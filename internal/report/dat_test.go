package report

import (
	"strings"
	"testing"
	"time"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/engine"
	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

func TestSummarizeReportsGapFromBinCountAsSplits(t *testing.T) {
	s := &model.Solution{
		Blocks: []model.Block{
			{Begin: 0, End: 1, BinCount: 1, Size: 4},
			{Begin: 1, End: 2, BinCount: 2, Size: 9},
			{Begin: 2, End: 3, BinCount: 2, Size: 8},
		},
	}

	got := Summarize(5, s, 5*time.Millisecond)

	if got.Blocks != 3 {
		t.Errorf("expected 3 blocks, got %d", got.Blocks)
	}
	if got.Splits != 2 {
		t.Errorf("expected splits = bin_count - blocks = 2, got %d", got.Splits)
	}
	if got.Duration != 5*time.Millisecond {
		t.Errorf("expected duration preserved, got %v", got.Duration)
	}
}

func TestWriteDatProducesLiteralFormat(t *testing.T) {
	r := Result{
		RunID:             "abcd1234",
		Seed:              42,
		ItemCountBefore:   10,
		ItemCountAfter:    6,
		ReductionDuration: 0,
		BinCount:          5,
		LowerBound:        1,
		G:                 StageResult{Blocks: 3, Splits: 1, Duration: 0},
		B3G:               StageResult{Blocks: 4, Splits: 0, Duration: 0},
		FFFStage1:         StageResult{Blocks: 3, Splits: 2, Duration: 0},
		FFFStage2:         StageResult{Blocks: 3, Splits: 1, Duration: 0},
	}

	var buf strings.Builder
	if err := WriteDat(&buf, r); err != nil {
		t.Fatalf("WriteDat returned error: %v", err)
	}

	want := "# Seed: 42\n" +
		"# Item count before reduction: 10\n" +
		"# Item count after reduction: 6\n" +
		"# Time spent in reduction: 0\n" +
		"# Bin count: 5\n" +
		"# Lower bound: 1\n" +
		"# Upper bound: 4\n" +
		"#\n" +
		"# Format:\n" +
		"# blocks splits duration\n" +
		"#\n" +
		"# Order:\n" +
		"# G\n" +
		"# B3G\n" +
		"# FFF Stage 1\n" +
		"# FFF Stage 2\n" +
		"3 1 0\n" +
		"4 0 0\n" +
		"3 2 0\n" +
		"3 1 0\n"

	if buf.String() != want {
		t.Errorf("unexpected .dat output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteGenProducesLiteralFormat(t *testing.T) {
	var buf strings.Builder
	if err := WriteGen(&buf, []uint32{2, 2, 3, 4}); err != nil {
		t.Fatalf("WriteGen returned error: %v", err)
	}

	want := "# Blocks for generations of FFF, including generation 0\n" +
		"2\n2\n3\n4\n"
	if buf.String() != want {
		t.Errorf("unexpected .gen output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRunStagesReportsReductionStatsAndRestoresCounts(t *testing.T) {
	a := &model.ItemCount{Size: 4, Count: 6}
	p := &engine.Problem{
		Env:               engine.NewEnvironmentSeeded(3),
		Items:             []*model.ItemCount{a},
		BinCapacity:       10,
		BinCount:          4,
		ItemCount:         6,
		OriginalItemCount: 8,
		Slack:             16,
		LowerBound:        0,
	}
	cfg := engine.SolverConfig{
		NP: 4, NC: 2, NM: 2, NE: 1, LS: 1, NG: 2, DL: 1,
		K1: engine.MutationRate{Num: 13, Den: 10},
		K2: engine.MutationRate{Num: 4, Den: 1},
	}

	result := RunStages(p, p.Env.Seed(), 2*time.Millisecond, cfg)

	if result.ItemCountBefore != 8 {
		t.Errorf("expected ItemCountBefore to mirror Problem.OriginalItemCount, got %d", result.ItemCountBefore)
	}
	if result.ItemCountAfter != 6 {
		t.Errorf("expected ItemCountAfter to mirror Problem.ItemCount, got %d", result.ItemCountAfter)
	}
	if result.BinCount != 4 || result.LowerBound != 0 {
		t.Errorf("expected bin count/lower bound carried from Problem, got %d/%d", result.BinCount, result.LowerBound)
	}
	if a.Count != 6 {
		t.Errorf("expected Problem.Items counts restored after all stage runs, got %d", a.Count)
	}
	if result.RunID == "" {
		t.Errorf("expected a non-empty RunID")
	}
	if result.Best == nil {
		t.Errorf("expected Best to hold the final stage's solution")
	}
	if len(result.BlocksOverTime) == 0 {
		t.Errorf("expected a non-empty generation history")
	}
	if result.FFFStage1.Blocks > result.BinCount || result.FFFStage2.Blocks > result.BinCount {
		t.Errorf("expected stage block counts to never exceed bin count, got stage1=%d stage2=%d bincount=%d",
			result.FFFStage1.Blocks, result.FFFStage2.Blocks, result.BinCount)
	}
}

func TestRunStagesStopsEarlyWhenPopulationHitsLowerBound(t *testing.T) {
	a := &model.ItemCount{Size: 5, Count: 2}
	p := &engine.Problem{
		Env:               engine.NewEnvironmentSeeded(11),
		Items:             []*model.ItemCount{a},
		BinCapacity:       10,
		BinCount:          1,
		ItemCount:         2,
		OriginalItemCount: 2,
		Slack:             0,
		LowerBound:        0,
	}
	cfg := engine.SolverConfig{
		NP: 4, NC: 2, NM: 2, NE: 1, LS: 1, NG: 5, DL: 2,
		K1: engine.MutationRate{Num: 13, Den: 10},
		K2: engine.MutationRate{Num: 4, Den: 1},
	}

	result := RunStages(p, p.Env.Seed(), 0, cfg)

	if result.FFFStage1.Blocks != result.BinCount-result.LowerBound {
		t.Fatalf("expected stage 1 to reach the optimum with a single bin, got %d blocks", result.FFFStage1.Blocks)
	}
	if result.FFFStage2.Duration != 0 {
		t.Errorf("expected stage 2 to be a no-op once stage 1 already found the optimum, got duration %v", result.FFFStage2.Duration)
	}
	if result.FFFStage2.Blocks != result.FFFStage1.Blocks {
		t.Errorf("expected stage 2 to mirror stage 1's block count, got %d vs %d", result.FFFStage2.Blocks, result.FFFStage1.Blocks)
	}
}
