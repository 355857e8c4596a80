package engine

import (
	"sort"

	"github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"
)

// lStarIterations bounds the p in the L*^(p) bound family; the bound stops
// improving well before this in practice, but iterating further never hurts.
const lStarIterations = 20

// fitterBin is one potential bin tracked by Fitter: first is the size of the
// bin's first item, second the size of its (optional) second item.
type fitterBin struct {
	first, second uint32
}

// Fitter packs items into bins using first fit with at most two items per
// bin, backed by a segment tree whose internal nodes store the minimum
// "used capacity" among their children so the leftmost fitting bin can be
// found in O(log n).
type Fitter struct {
	n, c uint32
	tree []uint32
	bins []fitterBin
}

// NewFitter allocates a Fitter able to track up to n potential bins of
// capacity c.
func NewFitter(n, c uint32) *Fitter {
	return &Fitter{n: n, c: c, tree: make([]uint32, (n+1)<<2), bins: make([]fitterBin, 0, n)}
}

func (f *Fitter) query(idx, val, left, right uint32) uint32 {
	if left == right {
		return left
	}
	mid := (left + right) >> 1
	if f.tree[2*idx] <= f.c-val {
		return f.query(2*idx, val, left, mid)
	}
	return f.query(2*idx+1, val, mid+1, right)
}

func (f *Fitter) update(idx, x, val, left, right uint32) {
	if left == right {
		f.tree[idx] += val
		return
	}
	mid := (left + right) >> 1
	if x <= mid {
		f.update(2*idx, x, val, left, mid)
	} else {
		f.update(2*idx+1, x, val, mid+1, right)
	}
	f.tree[idx] = min(f.tree[2*idx], f.tree[2*idx+1])
}

// Fit places val into the leftmost bin it fits in, opening a new bin if none
// of the already-opened bins have room. A bin holds at most two items: once
// a second item is placed, c-first is added to its used value (first), so
// it becomes c, which blocks any further insertion into that bin.
func (f *Fitter) Fit(val uint32) {
	idx := f.query(1, val, 1, f.n)
	if int(idx) > len(f.bins) {
		f.bins = append(f.bins, fitterBin{first: val})
		f.update(1, idx, val, 1, f.n)
	} else {
		f.bins[idx-1].second = val
		f.update(1, idx, f.c-f.bins[idx-1].first, 1, f.n)
	}
}

// Bins returns the bins opened so far, in the order they were opened.
func (f *Fitter) Bins() []fitterBin {
	return f.bins
}

// div3u computes n/3 via a fixed-point reciprocal multiply, avoiding a
// hardware division in the bound's inner loop.
func div3u(n uint32) uint32 {
	return uint32((uint64(0xaaaaaaab) * uint64(n)) >> 33)
}

// stepU is the step function used by the L*^(k) bound family: it returns
// x*k when x*(k+1) is a multiple of c, and otherwise floor(x*(k+1)/c)*c,
// so an item is charged in whole units of c by how many (k+1)-th parts of
// a bin it covers.
func stepU(k, x, c uint32) uint32 {
	scaled := x * (k + 1)
	quot := scaled / c
	rem := scaled % c
	if rem == 0 {
		return x * k
	}
	return quot * c
}

func ceilDiv(total, denom uint64) uint32 {
	if total == 0 {
		return 0
	}
	return uint32(1 + (total-1)/denom)
}

// L3Star computes the L3* lower bound on the number of bins needed to pack
// items (sorted descending by size, as produced by the problem reduction),
// given residual slack, the current bin count, and bin capacity.
func L3Star(items []*model.ItemCount, slack, binCount, binCapacity uint32) uint32 {
	if binCount <= 1 {
		return 0
	}

	var n uint32
	for _, ic := range items {
		n += ic.Count
	}
	if n <= binCount {
		return 0
	}

	desc := items
	asc := make([]*model.ItemCount, len(items))
	for i, ic := range items {
		asc[len(items)-1-i] = ic
	}

	var x, y uint32
	infeasible := false

	if slack != 0 {
		s := slack
		fitter := NewFitter(n, binCapacity)
		for _, ic := range desc {
			for i := uint32(0); i < ic.Count; i++ {
				d := binCapacity - ic.Size
				if s >= d {
					x++
					if x == binCount {
						return 0
					}
					s -= d
				}
				fitter.Fit(ic.Size)
			}
		}

		filled := filterFilledBins(fitter.Bins())
		sort.Slice(filled, func(i, j int) bool {
			return filled[i].first+filled[i].second > filled[j].first+filled[j].second
		})

		slackUsedByX := slack - s
		s = slack
		for _, b := range filled {
			d := binCapacity - (b.first + b.second)
			if s < d {
				break
			}
			y++
			if y == binCount {
				return 0
			}
			s -= d
		}
		slackUsedByY := slack - s
		infeasible = slackUsedByX+slackUsedByY > slack
	}

	half := binCapacity / 2
	rightIdx := len(asc)
	for i, ic := range asc {
		if ic.Size > half {
			rightIdx = i
			break
		}
	}

	var infeasibleAdj uint32
	if infeasible {
		infeasibleAdj = 1
	}
	possibleBlocks := div3u(n + 2*x + y - infeasibleAdj)

	var minsplit uint32
	if binCount > possibleBlocks {
		minsplit = binCount - possibleBlocks
	}

	if rightIdx == 0 && slack == 0 {
		return max(minsplit, n-binCount)
	}

	var kmax uint32
	for k := uint32(2); k <= lStarIterations; k++ {
		if v := lStarKBound(asc, desc, k, binCapacity, rightIdx); v > kmax {
			kmax = v
		}
	}

	l2max := l2Bound(asc, desc, binCapacity, rightIdx)

	maxval := max(kmax, l2max)
	if maxval < binCount {
		return minsplit
	}
	return max(minsplit, maxval-binCount)
}

func filterFilledBins(bins []fitterBin) []fitterBin {
	filled := make([]fitterBin, 0, len(bins))
	for _, b := range bins {
		if b.second != 0 {
			filled = append(filled, b)
		}
	}
	return filled
}

// lStarKBound computes one refinement of the L*^(k) bound: every item's size
// is replaced by the step function stepU, then an anchor sweep over the
// ascending view excludes contributions from small items while admitting
// large "companion" items (via the descending cursor) as long as the
// resulting ceiling keeps improving.
func lStarKBound(asc, desc []*model.ItemCount, k, binCapacity uint32, rightIdx int) uint32 {
	var total uint64
	for _, ic := range asc {
		total += uint64(ic.Count) * uint64(stepU(k, ic.Size, binCapacity))
	}
	denom := uint64(binCapacity) * uint64(k)
	maximum := ceilDiv(total, denom)

	ritIdx, itIdx, prevIdx := 0, 0, 0

	admit := func() {
		for ritIdx < len(desc) && desc[ritIdx].Size > binCapacity-asc[itIdx].Size {
			total += uint64(desc[ritIdx].Count) * uint64(binCapacity*k-stepU(k, desc[ritIdx].Size, binCapacity))
			ritIdx++
		}
	}

	if itIdx != rightIdx {
		admit()
		if ceiling := ceilDiv(total, denom); ceiling > maximum {
			maximum = ceiling
		}
		itIdx++
	}

	for itIdx != rightIdx {
		admit()
		total -= uint64(asc[prevIdx].Count) * uint64(stepU(k, asc[prevIdx].Size, binCapacity))
		prevIdx++

		ceiling := ceilDiv(total, denom)
		if ceiling < maximum {
			break
		}
		maximum = ceiling
		itIdx++
	}

	return maximum
}

// l2Bound is the same anchor-sweep refinement as lStarKBound, specialised to
// plain item size (the L2 bound, i.e. L*^(1) without the step function).
func l2Bound(asc, desc []*model.ItemCount, binCapacity uint32, rightIdx int) uint32 {
	var total uint64
	for _, ic := range asc {
		total += uint64(ic.Count) * uint64(ic.Size)
	}
	l2max := ceilDiv(total, uint64(binCapacity))

	ritIdx, prevIdx := 0, 0
	for itIdx := 0; itIdx != rightIdx; itIdx++ {
		for ritIdx < len(desc) && asc[itIdx].Size > binCapacity-desc[ritIdx].Size {
			total += uint64(desc[ritIdx].Count) * uint64(binCapacity-desc[ritIdx].Size)
			ritIdx++
		}
		if itIdx != 0 {
			total -= uint64(asc[prevIdx].Count) * uint64(asc[prevIdx].Size)
			prevIdx++
		}
		ceiling := ceilDiv(total, uint64(binCapacity))
		if ceiling < l2max {
			break
		}
		l2max = ceiling
	}
	return l2max
}
