// Package linalg provides small complex linear-algebra helpers shared by the
// spectrum lookup code. Anything 2-D lives on gonum matrices; these helpers
// cover the pieces gonum does not ship directly.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AbsSq returns |z|^2 without the sqrt round-trip of cmplx.Abs.
func AbsSq(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}

// ArgMaxAbsCol returns the row index r maximizing |m[r,c]| within column c.
// Ties resolve to the lowest row index, matching ascending-eigenenergy priority.
func ArgMaxAbsCol(m mat.CMatrix, c int) int {
	rows, _ := m.Dims()
	best := 0
	bestSq := AbsSq(m.At(0, c))
	for r := 1; r < rows; r++ {
		if sq := AbsSq(m.At(r, c)); sq > bestSq {
			best = r
			bestSq = sq
		}
	}
	return best
}

// ArgMaxAbsRow returns the column index c maximizing |m[r,c]| within row r.
// Ties resolve to the lowest column index.
func ArgMaxAbsRow(m mat.CMatrix, r int) int {
	_, cols := m.Dims()
	best := 0
	bestSq := AbsSq(m.At(r, 0))
	for c := 1; c < cols; c++ {
		if sq := AbsSq(m.At(r, c)); sq > bestSq {
			best = c
			bestSq = sq
		}
	}
	return best
}

// BasisKet returns the basis vector |index> in a Hilbert space of the given
// dimension.
func BasisKet(dim, index int) (*mat.CVecDense, error) {
	if dim < 1 {
		return nil, fmt.Errorf("invalid dimension %d", dim)
	}
	if index < 0 || index >= dim {
		return nil, fmt.Errorf("basis index %d out of range for dimension %d", index, dim)
	}
	ket := mat.NewCVecDense(dim, nil)
	ket.SetVec(index, 1)
	return ket, nil
}

// Kron returns the Kronecker product a ⊗ b of two complex vectors.
func Kron(a, b *mat.CVecDense) *mat.CVecDense {
	na := a.Len()
	nb := b.Len()
	out := mat.NewCVecDense(na*nb, nil)
	for i := 0; i < na; i++ {
		av := a.AtVec(i)
		if av == 0 {
			continue
		}
		for j := 0; j < nb; j++ {
			out.SetVec(i*nb+j, av*b.AtVec(j))
		}
	}
	return out
}
