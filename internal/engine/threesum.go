package engine

import "github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"

// Threesum enumerates every distinct unordered triple of (possibly equal)
// item sizes from a sorted-descending items slice whose sizes sum exactly to
// r = k*binCapacity, appending one Partition per distinct size-triple to out.
// Multiplicity against the pool's counts is enforced by consumers (the B3
// packer), not here: an item of size 4 with count 1 still yields a partition
// (4,4,4) if that triple sums to r.
//
// items must be sorted descending by Size. The outer cursor walks from the
// largest element toward the smallest; a is the largest element still in
// play, so no triple anchored at or beyond it can exceed 3*a. Once that
// ceiling drops below r, no further triple is possible and the scan stops.
func Threesum(items []*model.ItemCount, k uint32, binCapacity uint32, out *[]model.Partition) {
	n := len(items)
	if n == 0 {
		return
	}
	r := k * binCapacity
	lowerBoundA := ceilDiv(uint64(r), 3)

	for i := 0; i < n; i++ {
		a := items[i]
		if a.Size < lowerBoundA {
			break
		}
		if a.Size > r {
			continue
		}

		left := i
		right := n - 1
		target := r - a.Size

		for left <= right {
			b := items[left]
			c := items[right]
			t := b.Size + c.Size
			switch {
			case t == target:
				emitTriple(a, b, c, out)
				left++
			case t > target:
				// overshoot: items are sorted descending, so advancing
				// left moves to a smaller value and reduces the sum.
				left++
			default:
				// undershoot: retreating right moves to a larger value
				// (descending order) and increases the sum.
				right--
			}
		}
	}
}

// emitTriple records a partition referencing the same three slots the
// C++ allowed_partition walk expects: always three pointers, with equal
// sizes represented by aliasing the same *ItemCount pointer rather than by
// a variable-length slot count.
func emitTriple(a, b, c *model.ItemCount, out *[]model.Partition) {
	*out = append(*out, model.Partition{A: a, B: b, C: c})
}
