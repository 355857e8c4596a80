package engine

import (
	"sort"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// snapshotCounts records the Count of every entry in items, so a caller
// that lets packers draw down those counts can restore them afterward.
func snapshotCounts(items []*model.ItemCount) []uint32 {
	counts := make([]uint32, len(items))
	for i, ic := range items {
		counts[i] = ic.Count
	}
	return counts
}

func restoreCounts(items []*model.ItemCount, counts []uint32) {
	for i, ic := range items {
		ic.Count = counts[i]
	}
}

// GenerateIndividual produces one initial solution. When withB3 is true,
// algorithm B3 G+ packs as many 3-item blocks as it can first, and G+ only
// fragments whatever remains; when false, every item goes straight to G+.
// Problem.Items' counts are drawn down as a shared pool during the call and
// restored to their original values before returning, per the packers'
// snapshot/restore contract.
func (p *Problem) GenerateIndividual(withB3 bool) *model.Solution {
	snapshot := snapshotCounts(p.Items)
	defer restoreCounts(p.Items, snapshot)

	itemCount := p.ItemCount
	binCount := p.BinCount
	slack := p.Slack
	maxBlocks := p.BinCount - p.LowerBound

	result := &model.Solution{
		Items:  make([]*model.ItemCount, 0, itemCount+binCount-1),
		Blocks: make([]model.Block, 0, maxBlocks),
	}

	if withB3 {
		binCount -= p.FindPacking(p.InitialPartitions, &slack, &itemCount, p.one(), result)
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

	sort.Slice(result.Blocks, func(i, j int) bool {
		return result.Blocks[i].Score(p.BinCapacity) < result.Blocks[j].Score(p.BinCapacity)
	})

	return result
}
