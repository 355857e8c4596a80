package engine

import (
	"sort"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// sortPopulationDescending orders population by block count descending, the
// tie-breaking rule used throughout selection and replacement: more blocks
// is better, since the total bin count a solution spends is fixed and more
// blocks means fewer of them pay the two-bin fragmentation penalty.
func sortPopulationDescending(population []*model.Solution) {
	sort.SliceStable(population, func(i, j int) bool {
		return population[i].Size() > population[j].Size()
	})
}

// dedup walks idx (assumed already sorted by the caller) and returns up to
// want entries, picking one representative per distinct Size() run first;
// if fewer than want distinct sizes are found, it falls back to padding the
// result with whatever indices remain, in order, so the returned slice
// always has exactly min(want, len(idx)) entries.
func dedup(idx []int, population []*model.Solution, want int) []int {
	if want > len(idx) {
		want = len(idx)
	}
	selected := make([]int, 0, want)
	used := make(map[int]bool, want)
	lastSize := -1
	for _, i := range idx {
		if len(selected) == want {
			break
		}
		sz := population[i].Size()
		if sz != lastSize {
			selected = append(selected, i)
			used[i] = true
			lastSize = sz
		}
	}
	for _, i := range idx {
		if len(selected) == want {
			break
		}
		if !used[i] {
			selected = append(selected, i)
			used[i] = true
		}
	}
	return selected
}

// ReplacementCrossover writes progeny back into the population. rIdx (the
// random-origin slots controlled selection drew r from) are overwritten by
// progeny's first half directly. The second half goes to the top NC/2
// distinct-size individuals of the remainder P \ r \ elite, sorted
// block-count descending — the dedup rule's fallback shift covers the case
// where that remainder has fewer than NC/2 distinct sizes. Finally the
// whole population is re-sorted so the elite prefix reflects any new
// arrivals that outscored it.
func ReplacementCrossover(population []*model.Solution, progeny []*model.Solution, rIdx []int, cfg SelectionConfig) {
	half := len(rIdx)
	for i, idx := range rIdx {
		population[idx] = progeny[i]
	}

	excluded := make(map[int]bool, half+int(cfg.NE))
	for _, idx := range rIdx {
		excluded[idx] = true
	}
	for i := uint32(0); i < cfg.NE; i++ {
		excluded[int(i)] = true
	}

	remainder := make([]int, 0, int(cfg.NP)-half-int(cfg.NE))
	for i := int(cfg.NE); i < int(cfg.NP); i++ {
		if !excluded[i] {
			remainder = append(remainder, i)
		}
	}
	sort.Slice(remainder, func(i, j int) bool {
		return population[remainder[i]].Size() > population[remainder[j]].Size()
	})

	positions := dedup(remainder, population, half)
	for i, idx := range positions {
		population[idx] = progeny[half+i]
	}

	sortPopulationDescending(population)
}

// ReplacementMutation re-inserts clones — the deep-cloned, now-mutated
// copies of elite individuals — into the population. Positions are chosen
// against the full population sorted block-count descending, by the same
// distinct-size dedup rule crossover replacement uses, substituting exactly
// len(clones) positions (clones is always far smaller than NM, so picking
// NM positions as spec prose literally reads would overrun the available
// copies). The population is re-sorted afterward to merge the new arrivals
// in.
func ReplacementMutation(population []*model.Solution, clones []*model.Solution, cfg SelectionConfig) {
	if len(clones) == 0 {
		return
	}

	sortPopulationDescending(population)

	idx := make([]int, len(population))
	for i := range idx {
		idx[i] = i
	}

	positions := dedup(idx, population, len(clones))
	for i, pos := range positions {
		population[pos] = clones[i]
	}

	sortPopulationDescending(population)
}
