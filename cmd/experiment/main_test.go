package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRejectsWrongArgCount(t *testing.T) {
	if code := run([]string{"only_one_arg"}); code != -1 {
		t.Errorf("expected exit code -1 for too few args, got %d", code)
	}
}

func TestRunRejectsInvalidBinCapacity(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "instances.txt")
	if err := os.WriteFile(input, []byte("4 4 4\n"), 0o644); err != nil {
		t.Fatalf("failed to write test input: %v", err)
	}

	if code := run([]string{input, "0", dir}); code != -1 {
		t.Errorf("expected exit code -1 for zero bin_capacity, got %d", code)
	}
	if code := run([]string{input, "notanumber", dir}); code != -1 {
		t.Errorf("expected exit code -1 for non-numeric bin_capacity, got %d", code)
	}
}

func TestRunRejectsMissingInputFile(t *testing.T) {
	dir := t.TempDir()
	if code := run([]string{filepath.Join(dir, "missing.txt"), "10", dir}); code != -1 {
		t.Errorf("expected exit code -1 for a missing input file, got %d", code)
	}
}

func TestRunWritesDatAndGenForEachInstanceAndRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "instances.txt")
	body := "# a comment line\n4 4 4 4 4 4\n3 3 3 3\n"
	if err := os.WriteFile(input, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write test input: %v", err)
	}
	outDir := filepath.Join(dir, "out")

	if code := run([]string{input, "10", outDir, "2"}); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
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

	// 2 instances * 2 runs each = 4 of each file.
	if datCount != 4 {
		t.Errorf("expected 4 .dat files, got %d", datCount)
	}
	if genCount != 4 {
		t.Errorf("expected 4 .gen files, got %d", genCount)
	}

	if _, err := os.Stat(filepath.Join(outDir, "report.pdf")); err != nil {
		t.Errorf("expected an aggregate report.pdf: %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "report.xlsx")); err != nil {
		t.Errorf("expected an aggregate report.xlsx: %v", err)
	}
}
