package model

// Partition is an unordered multiset of three pointers into a Problem's
// frozen item list whose sizes sum to a target r (either C or 2C).
// Pointers may repeat when the same ItemCount entry participates more
// than once in the triple (e.g. three items of equal size).
type Partition struct {
	A, B, C *ItemCount
}

// Items returns the partition's three members in the fixed order they
// were enumerated in (largest anchor first).
func (p Partition) Items() [3]*ItemCount {
	return [3]*ItemCount{p.A, p.B, p.C}
}

// Size returns the sum of sizes of the partition's three members.
func (p Partition) Size() uint32 {
	return p.A.Size + p.B.Size + p.C.Size
}
