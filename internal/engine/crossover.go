package engine

import (
	"sort"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// copyBlock tries to copy block b of src into dst, consuming its items from
// the shared pool and its slack from *slack via model.Allowed. It reports
// whether the copy succeeded and, on success, how many bins the copied
// block used (so the caller can track a declining dummy-padding budget).
func copyBlock(dst, src *model.Solution, b model.Block, items []*model.ItemCount, binCapacity uint32, slack *uint32, itemCount *uint32) uint32 {
	if !model.Allowed(src.Items, b, binCapacity, slack) {
		return 0
	}
	begin := len(dst.Items)
	dst.Items = append(dst.Items, src.Items[b.Begin:b.End]...)
	*itemCount -= uint32(b.ItemCount())
	dst.Blocks = append(dst.Blocks, model.Block{Begin: begin, End: len(dst.Items), BinCount: b.BinCount, Size: b.Size})
	return b.BinCount
}

// Crossover performs gene-level grouping crossover: blocks are walked from
// both parents in score order and copied into the child wherever the shared
// item pool and slack budget still allow it, preferring the better-scoring
// block of each pair first. Whatever items remain unplaced afterward are
// packed via B3 (when withB3) and then G+, exactly as Problem.GenerateIndividual
// does for a fresh individual.
func (p *Problem) Crossover(l, r *model.Solution, withB3 bool) *model.Solution {
	snapshot := snapshotCounts(p.Items)
	defer restoreCounts(p.Items, snapshot)

	itemCount := p.ItemCount
	slack := p.Slack
	binCount := p.BinCount

	result := &model.Solution{
		Items:  make([]*model.ItemCount, 0, itemCount),
		Blocks: make([]model.Block, 0, (itemCount+slack)/3),
	}

	aa, bb := 0, 0
	switch {
	case len(l.Blocks) > len(r.Blocks):
		d := len(l.Blocks) - len(r.Blocks)
		for ; aa < d; aa++ {
			binCount -= copyBlock(result, l, l.Blocks[aa], p.Items, p.BinCapacity, &slack, &itemCount)
		}
	case len(r.Blocks) > len(l.Blocks):
		d := len(r.Blocks) - len(l.Blocks)
		for ; bb < d; bb++ {
			binCount -= copyBlock(result, r, r.Blocks[bb], p.Items, p.BinCapacity, &slack, &itemCount)
		}
	}

	for aa < len(l.Blocks) {
		if l.Blocks[aa].Score(p.BinCapacity) <= r.Blocks[bb].Score(p.BinCapacity) {
			binCount -= copyBlock(result, l, l.Blocks[aa], p.Items, p.BinCapacity, &slack, &itemCount)
			aa++
			binCount -= copyBlock(result, r, r.Blocks[bb], p.Items, p.BinCapacity, &slack, &itemCount)
			bb++
		} else {
			binCount -= copyBlock(result, r, r.Blocks[bb], p.Items, p.BinCapacity, &slack, &itemCount)
			bb++
			binCount -= copyBlock(result, l, l.Blocks[aa], p.Items, p.BinCapacity, &slack, &itemCount)
			aa++
		}
	}

	if itemCount != 0 {
		if withB3 {
			if itemCount >= p.ItemCount-6 {
				binCount -= p.FindPacking(p.InitialPartitions, &slack, &itemCount, p.one(), result)
			} else {
				binCount -= p.B3(p.Items, &slack, &itemCount, result)
			}
		}
		if itemCount != 0 {
			begin := len(result.Items)
			for _, v := range p.Items {
				for i := uint32(0); i < v.Count; i++ {
					result.Items = append(result.Items, v)
				}
			}
			dummies := binCount - 1
			for i := uint32(0); i < dummies; i++ {
				result.Items = append(result.Items, nil)
			}
			p.G(result, begin, &slack)
		}
	}

	sort.Slice(result.Blocks, func(i, j int) bool {
		return result.Blocks[i].Score(p.BinCapacity) < result.Blocks[j].Score(p.BinCapacity)
	})

	return result
}
