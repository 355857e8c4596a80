package model

// Block is a contiguous range [Begin, End) into a Solution's Items slice,
// together with how many bins it occupies and the total size of its
// referenced items. BinCount is 1 for a block fully contained in a single
// bin, or 2 for a block whose items straddle exactly one cut between two
// bins fused together.
type Block struct {
	Begin, End int
	BinCount   uint32
	Size       uint32
}

// Capacity returns the total capacity across the block's bins.
func (b Block) Capacity(binCapacity uint32) uint32 {
	return b.BinCount * binCapacity
}

// Slack returns the residual capacity left unused by the block's items.
func (b Block) Slack(binCapacity uint32) uint32 {
	return b.Capacity(binCapacity) - b.Size
}

// Score orders blocks for crossover and the initial sort after packing:
// smaller scores (fewer items, less slack, fewer bins) sort first.
func (b Block) Score(binCapacity uint32) uint32 {
	return uint32(b.End-b.Begin) + b.Slack(binCapacity) + b.BinCount - 1
}

// ItemCount returns the number of item slots (real or slack-placeholder)
// referenced by the block.
func (b Block) ItemCount() int {
	return b.End - b.Begin
}

// Allowed reports whether block can be copied into a child/mutant given
// the shared item pool's current availability and the slack budget left
// to spend. On success, every referenced item's Count is decremented and
// *slack is reduced by the block's slack — the caller owns restoring
// Items[].Count afterward per the snapshot/restore contract. On failure,
// any partial decrements already applied by this call are rolled back and
// *slack is left untouched.
func Allowed(items []*ItemCount, b Block, binCapacity uint32, slack *uint32) bool {
	blockSlack := b.Slack(binCapacity)
	if blockSlack > *slack {
		return false
	}

	failedAt := -1
	for i := b.Begin; i < b.End; i++ {
		item := items[i]
		if item == nil {
			continue
		}
		if item.Count == 0 {
			failedAt = i
			break
		}
		item.Count--
	}

	if failedAt >= 0 {
		for i := failedAt - 1; i >= b.Begin; i-- {
			if items[i] != nil {
				items[i].Count++
			}
		}
		return false
	}

	*slack -= blockSlack
	return true
}
