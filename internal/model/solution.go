package model

// Solution is a candidate packing: a flat placement order of item
// references (nil entries are slack placeholders, see the G+ packer)
// together with the Blocks that partition that order, sorted ascending
// by Score, and an Age counter used by elite turnover.
type Solution struct {
	Items  []*ItemCount
	Blocks []Block
	Age    uint32
}

// Size is the number of blocks in the solution — the quantity the GGA
// maximizes (fewer blocks is worse; the solver tracks bin_count - Size
// against the problem's lower bound).
func (s *Solution) Size() int {
	return len(s.Blocks)
}

// Clone deep-copies the placement order and block list. Because Blocks
// reference Items by index rather than by iterator/pointer, a verbatim
// slice copy keeps every index valid with no rebasing arithmetic.
func (s *Solution) Clone() *Solution {
	items := make([]*ItemCount, len(s.Items))
	copy(items, s.Items)
	blocks := make([]Block, len(s.Blocks))
	copy(blocks, s.Blocks)
	return &Solution{Items: items, Blocks: blocks, Age: s.Age}
}

// String renders a solution the way the teacher's domain types render
// themselves for debugging: one parenthesized block per element.
func (s *Solution) String() string {
	out := make([]byte, 0, 64)
	out = append(out, '[')
	for i, b := range s.Blocks {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, '(')
		for j := b.Begin; j < b.End; j++ {
			if j > b.Begin {
				out = append(out, ' ')
			}
			if s.Items[j] == nil {
				out = append(out, '_')
			} else {
				out = append(out, itoa(s.Items[j].Size)...)
			}
		}
		out = append(out, ')')
	}
	out = append(out, ']')
	return string(out)
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
