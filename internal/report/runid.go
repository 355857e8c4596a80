// Package report writes solver results to the file formats drivers and
// analysts consume: the literal .dat block table, and the supplemented
// PDF/XLSX batch summaries.
package report

import "github.com/google/uuid"

// RunID identifies one RunStages call in the PDF/XLSX outputs (the .dat
// output does not carry it), the same role uuid.New() plays
// for Part/StockSheet identity in the teacher's model package, shortened
// to an 8-character string the same way.
type RunID string

// NewRunID mints a fresh RunID.
func NewRunID() RunID {
	return RunID(uuid.New().String()[:8])
}
