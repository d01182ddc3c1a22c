// Package params models the rectangular sweep grid of named external
// parameters and the full or partial index specifications used to address it.
package params

import "fmt"

// Free marks an axis left unfixed in a Selection.
const Free = -1

// Axis is one named sweep parameter with its ordered list of values.
type Axis struct {
	Name   string
	Values []float64
}

// Grid is an ordered set of parameter axes. Points on the grid are addressed
// by integer index tuples, one index per axis, and iterate in row-major order
// (last axis varies fastest). A grid with zero axes has exactly one point,
// the empty tuple; this is the single-point HilbertSpace case.
type Grid struct {
	axes []Axis
}

// NewGrid validates the axes and assembles a grid.
func NewGrid(axes ...Axis) (*Grid, error) {
	seen := make(map[string]bool, len(axes))
	for i, ax := range axes {
		if ax.Name == "" {
			return nil, fmt.Errorf("axis %d has no name", i)
		}
		if len(ax.Values) == 0 {
			return nil, fmt.Errorf("axis %q has no values", ax.Name)
		}
		if seen[ax.Name] {
			return nil, fmt.Errorf("duplicate axis name %q", ax.Name)
		}
		seen[ax.Name] = true
	}
	g := &Grid{axes: make([]Axis, len(axes))}
	copy(g.axes, axes)
	return g, nil
}

// IndexGrid builds a grid of unnamed axes whose values are just the indices
// themselves. Used when a lookup table is restored from serialized form and
// the original parameter values are no longer available.
func IndexGrid(counts ...int) *Grid {
	axes := make([]Axis, len(counts))
	for i, n := range counts {
		vals := make([]float64, n)
		for j := range vals {
			vals[j] = float64(j)
		}
		axes[i] = Axis{Name: fmt.Sprintf("axis%d", i), Values: vals}
	}
	g, _ := NewGrid(axes...)
	return g
}

// Len returns the number of axes.
func (g *Grid) Len() int {
	return len(g.axes)
}

// Axis returns the axis at position i.
func (g *Grid) Axis(i int) Axis {
	return g.axes[i]
}

// AxisIndex returns the position of the named axis.
func (g *Grid) AxisIndex(name string) (int, bool) {
	for i, ax := range g.axes {
		if ax.Name == name {
			return i, true
		}
	}
	return 0, false
}

// Names returns the ordered axis names.
func (g *Grid) Names() []string {
	names := make([]string, len(g.axes))
	for i, ax := range g.axes {
		names[i] = ax.Name
	}
	return names
}

// Counts returns the per-axis value counts.
func (g *Grid) Counts() []int {
	counts := make([]int, len(g.axes))
	for i, ax := range g.axes {
		counts[i] = len(ax.Values)
	}
	return counts
}

// NumPoints returns the total number of grid points.
func (g *Grid) NumPoints() int {
	n := 1
	for _, ax := range g.axes {
		n *= len(ax.Values)
	}
	return n
}

// Points returns every grid point as an index tuple, in row-major order.
func (g *Grid) Points() [][]int {
	counts := g.Counts()
	total := g.NumPoints()
	points := make([][]int, 0, total)

	point := make([]int, len(counts))
	for p := 0; p < total; p++ {
		points = append(points, append([]int(nil), point...))
		for i := len(counts) - 1; i >= 0; i-- {
			point[i]++
			if point[i] < counts[i] {
				break
			}
			point[i] = 0
		}
	}
	return points
}

// ValidateSelection checks arity and bounds of a full or partial selection.
func (g *Grid) ValidateSelection(sel Selection) error {
	if len(sel) != len(g.axes) {
		return fmt.Errorf("selection has %d entries, grid has %d axes", len(sel), len(g.axes))
	}
	for i, v := range sel {
		if v == Free {
			continue
		}
		if v < 0 || v >= len(g.axes[i].Values) {
			return fmt.Errorf("index %d out of range for axis %q (count %d)", v, g.axes[i].Name, len(g.axes[i].Values))
		}
	}
	return nil
}

// Selection fixes a subset of the grid axes to concrete indices. One entry
// per axis; Free entries denote axes left to range over their full extent.
type Selection []int

// AllFree returns a selection leaving every one of n axes free.
func AllFree(n int) Selection {
	sel := make(Selection, n)
	for i := range sel {
		sel[i] = Free
	}
	return sel
}

// At returns a fully-fixed selection for the given point.
func At(point ...int) Selection {
	return Selection(append([]int(nil), point...))
}

// Full reports whether every axis is fixed.
func (s Selection) Full() bool {
	for _, v := range s {
		if v == Free {
			return false
		}
	}
	return true
}

// FreeAxes returns the positions of unfixed axes.
func (s Selection) FreeAxes() []int {
	var free []int
	for i, v := range s {
		if v == Free {
			free = append(free, i)
		}
	}
	return free
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	return append(Selection(nil), s...)
}
