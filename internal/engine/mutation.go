package engine

import (
	"math"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// MutationRate is the k = Num/Den aggressiveness constant operators.h fixes
// at compile time via a template parameter; Go has no such mechanism, so it
// becomes a runtime ratio threaded through Mutate.
type MutationRate struct {
	Num, Den float64
}

// demotionProbability is the per-block chance that a triple B3 just packed
// during mutation's repack step is immediately torn back down, returning its
// items to the pool so later generations aren't stuck with it.
const demotionProbability = 0.125

// minBlocksToTearDown returns the number of blocks, counted from the end of
// blocks, that must always be torn down during mutation: every trailing
// block that is completely empty (slack == capacity), plus one more if the
// last non-empty block occupies a single bin, so the remaining chain still
// ends on a well-formed boundary.
func minBlocksToTearDown(blocks []model.Block, binCapacity uint32) uint32 {
	i := len(blocks) - 1
	var count uint32
	for i >= 0 && blocks[i].BinCount == 1 && blocks[i].Slack(binCapacity) == binCapacity {
		count++
		i--
	}
	if i >= 0 && blocks[i].BinCount == 1 {
		count++
	}
	return count
}

// Mutate adaptively tears down a random suffix of mutant's blocks — at least
// minBlocksToTearDown of them, more as mutant approaches the problem's
// feasible minimum block count — returns their items to the shared pool, and
// repacks via B3 (when withB3) and G+, exactly as GenerateIndividual does.
// Some of the blocks B3 repacks during that repack step are randomly
// demoted back to unplaced, so a mutation never just reconstructs its input.
func (p *Problem) Mutate(mutant *model.Solution, rate MutationRate, withB3 bool) {
	m := uint32(len(mutant.Blocks))
	maxBlocks := p.BinCount - p.LowerBound
	if maxBlocks == m {
		return
	}

	minBlocks := minBlocksToTearDown(mutant.Blocks, p.BinCapacity)

	const f = 0.1
	prob := math.Pow(0.5-float64(m)/(2*float64(maxBlocks)), rate.Den/rate.Num)
	a := (1 - f) / f * prob
	b := (1 - f) / f * (1 - prob)
	u := 1 - p.Env.Uniform01()
	q := math.Pow(1-u, 1/b)
	pe := math.Pow(1-q, 1/a)

	nb := uint32(math.Ceil(float64(m) * pe))
	if nb < minBlocks {
		nb = minBlocks
	}
	if nb < 1 {
		nb = 1
	}
	if nb > m {
		nb = m
	}

	snapshot := snapshotCounts(p.Items)
	defer restoreCounts(p.Items, snapshot)
	for _, ic := range p.Items {
		ic.Count = 0
	}

	poolLen := m - minBlocks
	SampleSuffixInPlace(p.Env, mutant.Blocks[:poolLen], int(nb-minBlocks))

	var slack uint32
	var itemCount uint32
	var binCount uint32
	for _, b := range mutant.Blocks[m-nb:] {
		for i := b.Begin; i < b.End; i++ {
			if item := mutant.Items[i]; item != nil {
				item.Count++
				itemCount++
			}
		}
		slack += b.Slack(p.BinCapacity)
		binCount += b.BinCount
	}

	survivors := mutant.Blocks[:m-nb]
	newItems := make([]*model.ItemCount, 0, len(mutant.Items))
	newBlocks := make([]model.Block, 0, len(survivors))
	for _, b := range survivors {
		begin := len(newItems)
		newItems = append(newItems, mutant.Items[b.Begin:b.End]...)
		newBlocks = append(newBlocks, model.Block{Begin: begin, End: len(newItems), BinCount: b.BinCount, Size: b.Size})
	}
	mutant.Items = newItems
	mutant.Blocks = newBlocks

	if withB3 {
		repacked := len(mutant.Blocks)
		if itemCount >= p.ItemCount-6 {
			binCount -= p.FindPacking(p.InitialPartitions, &slack, &itemCount, p.one(), mutant)
		} else {
			binCount -= p.B3(p.Items, &slack, &itemCount, mutant)
		}
		demote(p, mutant, repacked, &slack, &itemCount)
	}

	if itemCount != 0 {
		begin := len(mutant.Items)
		for _, v := range p.Items {
			for i := uint32(0); i < v.Count; i++ {
				mutant.Items = append(mutant.Items, v)
			}
		}
		dummies := binCount - 1
		for i := uint32(0); i < dummies; i++ {
			mutant.Items = append(mutant.Items, nil)
		}
		p.G(mutant, begin, &slack)
	}

	mutant.Age = 0
}

// demote randomly tears back down some of the blocks mutant.Blocks[from:]
// that a just-finished B3 repack produced, returning their items to the
// pool and their slack to *slack, so the repack step doesn't deterministically
// re-form the same triples every time.
func demote(p *Problem, mutant *model.Solution, from int, slack *uint32, itemCount *uint32) {
	if from >= len(mutant.Blocks) {
		return
	}
	kept := mutant.Blocks[:from]
	items := mutant.Items[:mutant.Blocks[from].Begin]
	for _, b := range mutant.Blocks[from:] {
		if p.Env.Uniform01() >= demotionProbability {
			begin := len(items)
			items = append(items, mutant.Items[b.Begin:b.End]...)
			kept = append(kept, model.Block{Begin: begin, End: len(items), BinCount: b.BinCount, Size: b.Size})
			continue
		}
		for i := b.Begin; i < b.End; i++ {
			if item := mutant.Items[i]; item != nil {
				item.Count++
				*itemCount++
			}
		}
		*slack += b.Slack(p.BinCapacity)
	}
	mutant.Items = items
	mutant.Blocks = kept
}
