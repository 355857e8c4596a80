// Package model holds the value types shared by the packing engine: items,
// partitions, blocks, and solutions. Types here carry no randomness and no
// algorithmic state — that lives in package engine.
package model

import "fmt"

// ItemCount is a distinct item size together with how many items of that
// size remain available. Problem.Items is sorted strictly descending by
// Size, with Count always > 0 except for the synthetic size-1 sentinel
// that Problem appends when slack is present and no genuine 1-item exists.
type ItemCount struct {
	Size  uint32
	Count uint32
}

func (ic ItemCount) String() string {
	return fmt.Sprintf("%d^%d", ic.Size, ic.Count)
}

// FrequencyCount compresses a sorted-descending slice of sizes into the
// (size, count) pairs that preserve its order. Each pair is heap-allocated
// and returned by pointer: Problem and its packers alias these pointers
// (as partition members, as the size-1 sentinel, as Solution.Items
// entries) and rely on mutations through one alias being visible through
// all the others. An empty input yields an empty, non-nil result.
func FrequencyCount(sizes []uint32) []*ItemCount {
	result := make([]*ItemCount, 0, len(sizes))
	i := 0
	for i < len(sizes) {
		j := i + 1
		for j < len(sizes) && sizes[j] == sizes[i] {
			j++
		}
		result = append(result, &ItemCount{Size: sizes[i], Count: uint32(j - i)})
		i = j
	}
	return result
}
