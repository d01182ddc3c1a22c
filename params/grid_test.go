package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridValidation(t *testing.T) {
	_, err := NewGrid(Axis{Name: "", Values: []float64{1}})
	assert.Error(t, err)

	_, err = NewGrid(Axis{Name: "flux", Values: nil})
	assert.Error(t, err)

	_, err = NewGrid(
		Axis{Name: "flux", Values: []float64{0, 0.5}},
		Axis{Name: "flux", Values: []float64{0, 0.5}},
	)
	assert.Error(t, err)
}

func TestGridCountsAndNames(t *testing.T) {
	g, err := NewGrid(
		Axis{Name: "flux", Values: []float64{0, 0.25, 0.5}},
		Axis{Name: "ng", Values: []float64{0, 0.5}},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, []int{3, 2}, g.Counts())
	assert.Equal(t, []string{"flux", "ng"}, g.Names())
	assert.Equal(t, 6, g.NumPoints())

	i, ok := g.AxisIndex("ng")
	require.True(t, ok)
	assert.Equal(t, 1, i)
	_, ok = g.AxisIndex("missing")
	assert.False(t, ok)
}

func TestGridPointsRowMajor(t *testing.T) {
	g, err := NewGrid(
		Axis{Name: "a", Values: []float64{0, 1}},
		Axis{Name: "b", Values: []float64{0, 1, 2}},
	)
	require.NoError(t, err)

	want := [][]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1}, {1, 2},
	}
	assert.Equal(t, want, g.Points())
}

func TestZeroAxisGridHasOnePoint(t *testing.T) {
	g, err := NewGrid()
	require.NoError(t, err)

	assert.Equal(t, 1, g.NumPoints())
	points := g.Points()
	require.Len(t, points, 1)
	assert.Empty(t, points[0])
}

func TestValidateSelection(t *testing.T) {
	g, err := NewGrid(
		Axis{Name: "a", Values: []float64{0, 1}},
		Axis{Name: "b", Values: []float64{0, 1, 2}},
	)
	require.NoError(t, err)

	assert.NoError(t, g.ValidateSelection(Selection{1, Free}))
	assert.NoError(t, g.ValidateSelection(At(0, 2)))
	assert.Error(t, g.ValidateSelection(Selection{0}))
	assert.Error(t, g.ValidateSelection(Selection{2, 0}))
	assert.Error(t, g.ValidateSelection(Selection{0, 3}))
}

func TestSelectionHelpers(t *testing.T) {
	sel := AllFree(3)
	assert.False(t, sel.Full())
	assert.Equal(t, []int{0, 1, 2}, sel.FreeAxes())

	sel[0] = 1
	sel[2] = 0
	assert.Equal(t, []int{1}, sel.FreeAxes())
	assert.False(t, sel.Full())

	sel[1] = 2
	assert.True(t, sel.Full())

	clone := sel.Clone()
	clone[0] = Free
	assert.Equal(t, 1, sel[0])
}

func TestIndexGrid(t *testing.T) {
	g := IndexGrid(2, 4)
	assert.Equal(t, []int{2, 4}, g.Counts())
	assert.Equal(t, []float64{0, 1, 2, 3}, g.Axis(1).Values)
}
