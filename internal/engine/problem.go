package engine

import (
	"fmt"
	"sort"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// Optimal22 records one E2_2 reduction pairing: min(count of size a, count
// of size b) item pairs that exactly fill a bin together, removed from the
// working item list before the remainder is solved.
type Optimal22 struct {
	Count      uint32
	SizeA      uint32
	SizeB      uint32
}

// Problem is a bin-packing instance after the E1/E2_1/E2_2 reductions: a
// frequency-counted, descending-by-size item list, the residual bin count
// and slack left to solve, and the precomputed L3* lower bound and 3-item
// partition pool the solver's packers draw from.
type Problem struct {
	Env *Environment

	Items       []*model.ItemCount
	BinCount    uint32
	BinCapacity uint32
	ItemCount   uint32

	OriginalBinCount  uint32
	OriginalItemCount uint32
	OriginalSlack     uint32
	UniqueSizeCount   uint32

	Slack      uint32
	LowerBound uint32

	Optimal1  uint32
	Optimal21 uint32
	Optimal22 []Optimal22

	InitialPartitions []model.Partition

	Solved bool
}

// one returns the ItemCount entry for size 1, the sentinel slack placeholder
// threesum and the B3 packer treat as fungible with a unit of slack. It is
// always the last entry of Items once the constructor appends it.
func (p *Problem) one() *model.ItemCount {
	if len(p.Items) == 0 {
		return nil
	}
	last := p.Items[len(p.Items)-1]
	if last.Size != 1 {
		return nil
	}
	return last
}

// NewProblem reduces a raw multiset of item sizes into a Problem. binCount,
// if nonzero, overrides the default M = ceil(sum(sizes)/binCapacity); it
// must not be smaller than that default.
func NewProblem(env *Environment, sizes []uint32, binCapacity uint32, binCount uint32) (*Problem, error) {
	if binCapacity == 0 {
		return nil, fmt.Errorf("new problem: invalid bin capacity 0")
	}

	p := &Problem{
		Env:               env,
		BinCapacity:       binCapacity,
		ItemCount:         uint32(len(sizes)),
		OriginalItemCount: uint32(len(sizes)),
	}

	var sum uint64
	for _, s := range sizes {
		sum += uint64(s)
	}

	defaultBinCount := uint32(1 + (sum-1)/uint64(binCapacity))
	if sum == 0 {
		defaultBinCount = 0
	}
	if binCount != 0 {
		if binCount < defaultBinCount {
			return nil, fmt.Errorf("new problem: requested bin count %d below minimum %d", binCount, defaultBinCount)
		}
		p.BinCount = binCount
	} else {
		p.BinCount = defaultBinCount
	}

	if p.BinCount >= p.ItemCount || p.BinCount < 2 {
		p.Solved = true
	}

	p.OriginalBinCount = p.BinCount
	p.OriginalSlack = p.BinCount*binCapacity - uint32(sum)
	p.Slack = p.OriginalSlack

	sizesCopy := make([]uint32, 0, len(sizes))
	for _, s := range sizes {
		switch {
		case s == binCapacity:
			p.Optimal1++
		case s == binCapacity-1 && p.Slack > 0:
			p.Optimal21++
			p.Slack--
		default:
			sizesCopy = append(sizesCopy, s)
		}
	}

	p.BinCount -= p.Optimal1 + p.Optimal21
	p.ItemCount -= p.Optimal1 + p.Optimal21

	sort.Slice(sizesCopy, func(i, j int) bool { return sizesCopy[i] > sizesCopy[j] })
	p.Items = model.FrequencyCount(sizesCopy)

	p.reduceE22(binCapacity)

	if p.BinCount >= p.ItemCount || p.BinCount < 2 {
		p.Solved = true
	}

	p.Items = compactNonZero(p.Items)

	p.LowerBound = L3Star(p.Items, p.Slack, p.BinCount, binCapacity)
	p.UniqueSizeCount = uint32(len(p.Items))

	if len(p.Items) > 0 && p.Items[len(p.Items)-1].Size != 1 && p.Slack > 0 {
		p.Items = append(p.Items, &model.ItemCount{Size: 1, Count: 0})
	}

	Threesum(p.Items, 1, binCapacity, &p.InitialPartitions)
	Threesum(p.Items, 2, binCapacity, &p.InitialPartitions)

	return p, nil
}

// reduceE22 removes item pairs whose sizes sum exactly to the bin capacity,
// walking inward from the largest and smallest remaining sizes.
func (p *Problem) reduceE22(binCapacity uint32) {
	if len(p.Items) == 0 {
		return
	}
	l, r := 0, len(p.Items)-1
	p.Optimal22 = make([]Optimal22, 0, len(p.Items)/2)

	for l < r {
		left, right := p.Items[l], p.Items[r]
		together := left.Size + right.Size
		switch {
		case together == binCapacity:
			m := min(left.Count, right.Count)
			left.Count -= m
			right.Count -= m
			p.Optimal22 = append(p.Optimal22, Optimal22{Count: m, SizeA: left.Size, SizeB: right.Size})
			p.BinCount -= m
			p.ItemCount -= 2 * m
			l++
			r--
		case together < binCapacity:
			r--
		default:
			l++
		}
	}

	if l == r {
		last := p.Items[l]
		together := last.Size * 2
		if together == binCapacity {
			pairs := last.Count / 2
			p.Optimal22 = append(p.Optimal22, Optimal22{Count: pairs, SizeA: last.Size, SizeB: last.Size})
			p.BinCount -= pairs
			p.ItemCount -= last.Count - last.Count%2
			last.Count %= 2
		}
	}
}

func compactNonZero(items []*model.ItemCount) []*model.ItemCount {
	out := items[:0]
	for _, ic := range items {
		if ic.Count > 0 {
			out = append(out, ic)
		}
	}
	return out
}
