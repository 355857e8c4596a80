package engine

import "github.com/SELAB-AA/fragbinpacking-optimizer/internal/model"

// nextFitFragmentation is the core of algorithm G+. It walks items[begin:end]
// — already placed in a Solution's Items slice by the caller, and shuffled
// into a random order by G — growing a running block, and only closes it off
// early when the next item doesn't fit the current block's slack and there
// is enough accumulated slack budget to justify paying for the cut. nil
// entries are slack placeholders: they mark that slack has been seen since
// the block was last closed, but contribute no size of their own.
func nextFitFragmentation(binCapacity uint32, items []*model.ItemCount, begin, end int, slack uint32) []model.Block {
	if begin == end {
		return nil
	}

	var blocks []model.Block
	blockBegin := begin
	binCount := uint32(1)
	var size uint32
	hasSlack := false

	closeBlock := func(at int) {
		blockSlack := binCount*binCapacity - size
		slack -= blockSlack
		blocks = append(blocks, model.Block{Begin: blockBegin, End: at, BinCount: binCount, Size: size})
		blockBegin = at
		binCount = 1
		size = 0
		hasSlack = false
	}

	for i := begin; i < end; i++ {
		item := items[i]
		if item != nil {
			blockSlack := binCount*binCapacity - size
			var budget uint32
			if hasSlack {
				budget = slack
			}
			if item.Size > blockSlack && budget >= blockSlack {
				closeBlock(i)
			}
			size += item.Size
			if size > binCount*binCapacity {
				binCount++
			}
		} else {
			hasSlack = true
		}
	}
	closeBlock(end)

	if slack > 0 {
		for i := uint32(0); i < slack/binCapacity; i++ {
			blocks = append(blocks, model.Block{Begin: end, End: end, BinCount: 1, Size: 0})
		}
	}

	return blocks
}

// G shuffles solution.Items[begin:] in place and runs nextFitFragmentation
// over the result, appending the blocks it finds to solution.Blocks. When the
// tail is empty it returns at once and leaves *slack untouched. Otherwise
// *slack is reset to 0 on return: every unit of slack given to this call is
// either spent inside a block or reported back as a trailing empty block, so
// the caller's budget is fully accounted for.
func (p *Problem) G(solution *model.Solution, begin int, slack *uint32) {
	tail := solution.Items[begin:]
	if len(tail) == 0 {
		return
	}
	p.Env.Shuffle(len(tail), func(i, j int) { tail[i], tail[j] = tail[j], tail[i] })

	slackIn := *slack
	*slack = 0
	solution.Blocks = append(solution.Blocks, nextFitFragmentation(p.BinCapacity, solution.Items, begin, len(solution.Items), slackIn)...)
}
