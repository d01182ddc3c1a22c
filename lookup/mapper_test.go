package lookup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/shanto268/scqubits/pkg/linalg"
)

// amp returns a real amplitude whose squared overlap equals p.
func amp(p float64) complex128 {
	return complex(math.Sqrt(p), 0)
}

func TestMapByBareAssignsColumnArgmax(t *testing.T) {
	// Columns 0 and 1 dominated by dressed rows 1 and 0 respectively.
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.1), amp(0.9),
		amp(0.9), amp(0.1),
	})

	got := MapByBare(m)
	assert.Equal(t, []int{1, 0}, got)
}

func TestMapByBareThresholdRejection(t *testing.T) {
	// Best squared overlap for column 1 is 0.4: below threshold, so the
	// position stays unassigned rather than snapping to the nearest row.
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.9), amp(0.4),
		amp(0.1), amp(0.3),
	})

	got := MapByBare(m)
	assert.Equal(t, []int{0, Unassigned}, got)
}

func TestMapByBareDoesNotMutateInput(t *testing.T) {
	data := []complex128{
		amp(0.9), amp(0.8),
		amp(0.1), amp(0.1),
	}
	m := mat.NewCDense(2, 2, data)
	orig := append([]complex128(nil), data...)

	MapByBare(m)

	for i, want := range orig {
		assert.Equal(t, want, data[i])
	}
}

func TestMapByBareAllowsAliasing(t *testing.T) {
	// Both bare columns overlap dressed row 0 most strongly. The
	// bare-indexed convention accepts the collision.
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.9), amp(0.8),
		amp(0.1), amp(0.2),
	})

	got := MapByBare(m)
	assert.Equal(t, []int{0, 0}, got)
}

func TestMapByDressedInjective(t *testing.T) {
	// Dressed row 0 claims column 0; row 1 would also prefer column 0 but
	// finds it consumed, and its remaining best falls below threshold.
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.9), amp(0.1),
		amp(0.64), amp(0.36),
	})

	got := MapByDressed(m, false)
	assert.Equal(t, []int{0, Unassigned}, got)
}

func TestMapByDressedIgnoreThreshold(t *testing.T) {
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.9), amp(0.1),
		amp(0.64), amp(0.36),
	})

	got := MapByDressed(m, true)
	assert.Equal(t, []int{0, 1}, got)
}

func TestMapByDressedLowerIndexWins(t *testing.T) {
	// Both rows prefer column 1; ascending iteration gives it to row 0.
	m := mat.NewCDense(2, 2, []complex128{
		amp(0.2), amp(0.8),
		amp(0.1), amp(0.9),
	})

	got := MapByDressed(m, false)
	assert.Equal(t, []int{Unassigned, 0}, got)
}

func TestMapByDressedNeverAliases(t *testing.T) {
	// Property check on a handful of dense matrices: no dressed index is
	// ever assigned to two bare positions.
	cases := []*mat.CDense{
		mat.NewCDense(3, 3, []complex128{
			amp(0.6), amp(0.3), amp(0.1),
			amp(0.55), amp(0.35), amp(0.1),
			amp(0.2), amp(0.2), amp(0.6),
		}),
		mat.NewCDense(2, 4, []complex128{
			amp(0.51), amp(0.51), amp(0.51), amp(0.51),
			amp(0.52), amp(0.52), amp(0.52), amp(0.52),
		}),
	}

	for ci, m := range cases {
		got := MapByDressed(m, false)
		seen := map[int]bool{}
		for _, d := range got {
			if d == Unassigned {
				continue
			}
			assert.False(t, seen[d], "case %d: dressed index %d assigned twice", ci, d)
			seen[d] = true
		}
	}
}

func TestMapByDressedDoesNotMutateInput(t *testing.T) {
	data := []complex128{
		amp(0.9), amp(0.1),
		amp(0.3), amp(0.7),
	}
	m := mat.NewCDense(2, 2, data)
	orig := append([]complex128(nil), data...)

	MapByDressed(m, false)

	for i, want := range orig {
		assert.Equal(t, want, data[i])
	}
}

func TestTruncatedSpectrum(t *testing.T) {
	// One dressed row, three bare columns: only one position can ever be
	// assigned, the rest stay unassigned.
	m := mat.NewCDense(1, 3, []complex128{
		amp(0.1), amp(0.85), amp(0.05),
	})

	assert.Equal(t, []int{Unassigned, 0, Unassigned}, MapByDressed(m, false))
	assert.Equal(t, []int{Unassigned, 0, Unassigned}, MapByBare(m))
}

func TestThresholdIsStrict(t *testing.T) {
	// Squared overlap exactly 0.5 does not exceed the threshold.
	m := mat.NewCDense(1, 1, []complex128{amp(0.5)})
	require.InDelta(t, 0.5, linalg.AbsSq(m.At(0, 0)), 1e-12)

	assert.Equal(t, []int{Unassigned}, MapByBare(m))
	assert.Equal(t, []int{Unassigned}, MapByDressed(m, false))
}
