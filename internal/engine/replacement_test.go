package engine

import (
	"testing"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

func solutionOfSize(size int) *model.Solution {
	return &model.Solution{Blocks: make([]model.Block, size)}
}

func TestDedupPicksDistinctSizeRepresentatives(t *testing.T) {
	population := []*model.Solution{
		solutionOfSize(5), solutionOfSize(5), solutionOfSize(4),
		solutionOfSize(4), solutionOfSize(4), solutionOfSize(3),
		solutionOfSize(2), solutionOfSize(2),
	}
	idx := []int{0, 1, 2, 3, 4, 5, 6, 7}

	got := dedup(idx, population, 3)

	want := []int{0, 2, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestDedupFallsBackWhenFewerDistinctSizesThanWant(t *testing.T) {
	population := []*model.Solution{solutionOfSize(5), solutionOfSize(5), solutionOfSize(5), solutionOfSize(5)}
	idx := []int{0, 1, 2, 3}

	got := dedup(idx, population, 3)

	if len(got) != 3 {
		t.Fatalf("expected fallback to still return 3 positions, got %v", got)
	}
	want := []int{0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestDedupNeverReturnsMoreThanAvailable(t *testing.T) {
	population := []*model.Solution{solutionOfSize(1), solutionOfSize(1)}
	idx := []int{0, 1}

	got := dedup(idx, population, 5)

	if len(got) != 2 {
		t.Errorf("expected dedup to cap at len(idx)=2, got %d", len(got))
	}
}

func TestReplacementCrossoverOverwritesRAndRemainderSlots(t *testing.T) {
	population := []*model.Solution{
		solutionOfSize(10), // elite, index 0
		solutionOfSize(7),  // remainder, index 1 - best of the remainder
		solutionOfSize(6),  // remainder, index 2
		solutionOfSize(5),  // r slot, index 3
		solutionOfSize(6),  // remainder, index 4
		solutionOfSize(4),  // remainder, index 5
	}
	oldAtR := population[3]
	oldAtRemainderTop := population[1]

	progeny := []*model.Solution{solutionOfSize(20), solutionOfSize(21)}
	cfg := SelectionConfig{NP: 6, NC: 2, NE: 1, NM: 3, LS: 1}

	ReplacementCrossover(population, progeny, []int{3}, cfg)

	contains := func(s *model.Solution) bool {
		for _, p := range population {
			if p == s {
				return true
			}
		}
		return false
	}

	if !contains(progeny[0]) {
		t.Errorf("progeny[0] should have replaced the r slot")
	}
	if !contains(progeny[1]) {
		t.Errorf("progeny[1] should have replaced the best remainder slot")
	}
	if contains(oldAtR) {
		t.Errorf("the original occupant of the r slot should have been replaced")
	}
	if contains(oldAtRemainderTop) {
		t.Errorf("the original best-of-remainder occupant should have been replaced")
	}
	if len(population) != 6 {
		t.Errorf("population size must be preserved, got %d", len(population))
	}
}

func TestReplacementMutationSubstitutesOnePerClone(t *testing.T) {
	population := []*model.Solution{
		solutionOfSize(9), solutionOfSize(8), solutionOfSize(7), solutionOfSize(6), solutionOfSize(5),
	}
	clones := []*model.Solution{solutionOfSize(30), solutionOfSize(31)}
	cfg := SelectionConfig{NP: 5, NC: 2, NE: 1, NM: 3, LS: 1}

	ReplacementMutation(population, clones, cfg)

	contains := func(s *model.Solution) bool {
		for _, p := range population {
			if p == s {
				return true
			}
		}
		return false
	}
	if !contains(clones[0]) || !contains(clones[1]) {
		t.Errorf("expected both clones to be present in the population after replacement")
	}
	if len(population) != 5 {
		t.Errorf("population size must be preserved, got %d", len(population))
	}
}

func TestReplacementMutationIsNoopWithoutClones(t *testing.T) {
	population := []*model.Solution{solutionOfSize(3), solutionOfSize(2)}
	snapshot := append([]*model.Solution(nil), population...)
	cfg := SelectionConfig{NP: 2, NC: 2, NE: 1, NM: 2, LS: 1}

	ReplacementMutation(population, nil, cfg)

	for i, s := range population {
		if s != snapshot[i] {
			t.Errorf("expected no-op with empty clones, index %d changed", i)
		}
	}
}
