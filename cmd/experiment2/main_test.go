package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const bppLibBody = "ignored header 1\n" +
	"ignored header 2\n" +
	"ignored header 3\n" +
	"bins count value 3\n" +
	"capacity value is 10\n" +
	"0 4\n" +
	"1 4\n" +
	"2 4\n" +
	"3 4\n"

func TestRunRejectsWrongArgCount(t *testing.T) {
	if code := run([]string{"only_one_arg"}); code != -1 {
		t.Errorf("expected exit code -1 for too few args, got %d", code)
	}
}

func TestRunSkipsUnreadableInstancesButKeepsGoing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.txt")
	good := filepath.Join(dir, "good.bpp")
	if err := os.WriteFile(good, []byte(bppLibBody), 0o644); err != nil {
		t.Fatalf("failed to write test input: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	if code := run([]string{missing, good, outDir}); code != 0 {
		t.Fatalf("expected exit code 0 even with one bad input, got %d", code)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}

	var datCount, genCount int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".dat"):
			datCount++
		case strings.HasSuffix(e.Name(), ".gen"):
			genCount++
		}
	}

	if datCount != defaultRuns {
		t.Errorf("expected %d .dat files from the one good instance, got %d", defaultRuns, datCount)
	}
	if genCount != defaultRuns {
		t.Errorf("expected %d .gen files from the one good instance, got %d", defaultRuns, genCount)
	}

	if _, err := os.Stat(filepath.Join(outDir, "report.pdf")); err != nil {
		t.Errorf("expected an aggregate report.pdf despite the missing input, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "report.xlsx")); err != nil {
		t.Errorf("expected an aggregate report.xlsx despite the missing input, got %v", err)
	}
}

func TestRunOneInstanceWritesResultFilesNamedAfterInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.bpp")
	if err := os.WriteFile(input, []byte(bppLibBody), 0o644); err != nil {
		t.Fatalf("failed to write test input: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	if code := run([]string{input, outDir}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}

	if _, err := os.Stat(filepath.Join(outDir, "sample_0.dat")); err != nil {
		t.Errorf("expected sample_0.dat to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "sample_0.gen")); err != nil {
		t.Errorf("expected sample_0.gen to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "report.pdf")); err != nil {
		t.Errorf("expected report.pdf to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "report.xlsx")); err != nil {
		t.Errorf("expected report.xlsx to exist: %v", err)
	}
}
