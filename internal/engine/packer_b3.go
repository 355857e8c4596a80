package engine

import "github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"

// allowedPartition tries to consume all three members of a partition from
// the shared item pool. Each member is either a genuine item (decremented
// from its ItemCount) or, if it is the size-1 sentinel, a unit of slack.
// The attempt is all-or-nothing: any member that cannot be satisfied rolls
// back every decrement already made for this partition and reports failure.
func allowedPartition(p model.Partition, slack *uint32, pOne *model.ItemCount) ([3]*model.ItemCount, bool) {
	items := p.Items()

	if items[0].Count == 0 {
		return items, false
	}
	items[0].Count--

	usedSlack := false
	if items[1] == pOne {
		switch {
		case items[1].Count > 0:
			items[1].Count--
		case *slack > 0:
			*slack--
			usedSlack = true
		default:
			items[0].Count++
			return items, false
		}
	} else if items[1].Count > 0 {
		items[1].Count--
	} else {
		items[0].Count++
		return items, false
	}

	rollbackFirstTwo := func() {
		if usedSlack {
			*slack++
		} else {
			items[1].Count++
		}
		items[0].Count++
	}

	if items[2] == pOne {
		switch {
		case items[2].Count > 0:
			items[2].Count--
		case *slack > 0:
			*slack--
		default:
			rollbackFirstTwo()
			return items, false
		}
	} else if items[2].Count > 0 {
		items[2].Count--
	} else {
		rollbackFirstTwo()
		return items, false
	}

	return items, true
}

// FindPacking is the core of algorithm B3: it repeatedly draws a random
// partition from pool, tries to consume it via allowedPartition, and either
// emits a Block for a successful draw or tombstones the partition (swap to
// the end, shrink the live prefix) on failure. pool is mutated in place but
// its surviving prefix order is reusable by a later call. slack and
// itemCount are in/out accumulators. pOne marks whichever ItemCount entry
// may additionally be satisfied by spending a unit of slack instead of its
// own count — the problem's global size-1 sentinel for an unrestricted call,
// or the tail of a restricted item range for B3.
func (p *Problem) FindPacking(pool []model.Partition, slack, itemCount *uint32, pOne *model.ItemCount, solution *model.Solution) uint32 {
	s := uint32(len(pool))
	var binsUsed uint32

	for s > 0 {
		idx := p.Env.BoundedRand(s)
		items, ok := allowedPartition(pool[idx], slack, pOne)
		if !ok {
			s--
			pool[idx], pool[s] = pool[s], pool[idx]
			continue
		}

		*itemCount -= 3
		begin := len(solution.Items)
		solution.Items = append(solution.Items, items[0], items[1], items[2])

		size := items[0].Size + items[1].Size + items[2].Size
		binCount := uint32(1)
		if size > p.BinCapacity {
			binCount = 2
		}
		binsUsed += binCount
		solution.Blocks = append(solution.Blocks, model.Block{
			Begin: begin, End: len(solution.Items), BinCount: binCount, Size: size,
		})
	}

	return binsUsed
}

// B3 enumerates 3-partitions over items for both r=C and r=2C and packs them
// via FindPacking, with the last entry of items as the size-1 sentinel.
// Crossover and mutation call it with the problem's full item list while its
// counts hold only the still-unplaced items, so it builds a fresh partition
// table instead of reusing the problem's initial one.
func (p *Problem) B3(items []*model.ItemCount, slack, itemCount *uint32, solution *model.Solution) uint32 {
	if len(items) == 0 {
		return 0
	}
	partitions := make([]model.Partition, 0, len(p.InitialPartitions))
	Threesum(items, 1, p.BinCapacity, &partitions)
	Threesum(items, 2, p.BinCapacity, &partitions)
	pOne := items[len(items)-1]
	return p.FindPacking(partitions, slack, itemCount, pOne, solution)
}
