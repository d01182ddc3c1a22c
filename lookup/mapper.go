package lookup

import (
	"gonum.org/v1/gonum/mat"

	"github.com/shanto268/scqubits/pkg/linalg"
)

// The two mapping conventions below deliberately coexist. MapByBare serves
// single-point HilbertSpace lookups; MapByDressed serves full sweeps, where
// injectivity of the assignment matters. Their tie-break and uniqueness
// guarantees differ and callers depend on each separately, so they are not
// unified.

// MapByBare assigns each bare basis position to the dressed eigenstate that
// overlaps it most, subject to the squared-overlap threshold. overlaps is
// the (dressed x bare) amplitude matrix and is never mutated.
//
// This convention does not enforce injectivity: under pathological overlap
// patterns two bare positions can claim the same dressed index. That is a
// known property of the single-point convention, preserved as-is.
func MapByBare(overlaps *mat.CDense) []int {
	rows, cols := overlaps.Dims()
	assignments := make([]int, cols)
	for b := 0; b < cols; b++ {
		assignments[b] = Unassigned
		if rows == 0 {
			continue
		}
		d := linalg.ArgMaxAbsCol(overlaps, b)
		if linalg.AbsSq(overlaps.At(d, b)) > OverlapThreshold {
			assignments[b] = d
		}
	}
	return assignments
}

// MapByDressed walks dressed indices in ascending eigenenergy order and
// assigns each to its best-overlapping bare position, consuming that
// position so no later dressed index can claim it. The result maps bare
// position -> dressed index and is injective where defined; lower dressed
// indices win because earlier iterations remove options from later ones.
//
// ignoreThreshold skips the squared-overlap test and forces an assignment
// for every dressed index. overlaps is copied, never mutated.
//
// With fewer dressed rows than bare columns (truncated spectrum) the surplus
// bare positions stay unassigned.
func MapByDressed(overlaps *mat.CDense, ignoreThreshold bool) []int {
	rows, cols := overlaps.Dims()
	work := mat.NewCDense(rows, cols, nil)
	work.Copy(overlaps)

	assignments := make([]int, cols)
	for b := range assignments {
		assignments[b] = Unassigned
	}
	if cols == 0 {
		return assignments
	}

	for d := 0; d < rows; d++ {
		b := linalg.ArgMaxAbsRow(work, d)
		if ignoreThreshold || linalg.AbsSq(work.At(d, b)) > OverlapThreshold {
			assignments[b] = d
			for r := 0; r < rows; r++ {
				work.Set(r, b, 0)
			}
		}
	}
	return assignments
}
