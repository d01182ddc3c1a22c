package lookup

import (
	"strconv"
	"strings"
)

// BareLabels enumerates every bare product-state label for the given ordered
// subsystem dimensions, in row-major order (last subsystem varies fastest).
// For dims (2,3) the result is [(0,0) (0,1) (0,2) (1,0) (1,1) (1,2)].
// Zero subsystems yield a single empty label.
func BareLabels(dims []int) [][]int {
	total := 1
	for _, d := range dims {
		total *= d
	}

	labels := make([][]int, 0, total)
	label := make([]int, len(dims))
	for p := 0; p < total; p++ {
		labels = append(labels, append([]int(nil), label...))
		for i := len(dims) - 1; i >= 0; i-- {
			label[i]++
			if label[i] < dims[i] {
				break
			}
			label[i] = 0
		}
	}
	return labels
}

// LabelSet holds the canonical bare-label ordering together with a reverse
// index, so lookup positions resolve in O(1).
type LabelSet struct {
	dims      []int
	labels    [][]int
	positions map[string]int
}

// NewLabelSet enumerates the canonical labels for the given dimensions.
func NewLabelSet(dims []int) *LabelSet {
	return newLabelSet(append([]int(nil), dims...), BareLabels(dims))
}

// NewLabelSetFromLabels rebuilds a set from an already-enumerated canonical
// list, as restored from serialized form. The list is trusted to be in
// canonical order.
func NewLabelSetFromLabels(labels [][]int) *LabelSet {
	var dims []int
	if len(labels) > 0 {
		dims = make([]int, len(labels[0]))
		for _, label := range labels {
			for i, v := range label {
				if v+1 > dims[i] {
					dims[i] = v + 1
				}
			}
		}
	}
	return newLabelSet(dims, labels)
}

func newLabelSet(dims []int, labels [][]int) *LabelSet {
	ls := &LabelSet{
		dims:      dims,
		labels:    labels,
		positions: make(map[string]int, len(labels)),
	}
	for p, label := range labels {
		ls.positions[labelKey(label)] = p
	}
	return ls
}

func labelKey(label []int) string {
	var b strings.Builder
	for i, v := range label {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Len returns the number of canonical labels.
func (ls *LabelSet) Len() int {
	return len(ls.labels)
}

// Dims returns the subsystem dimensions the set was enumerated from.
func (ls *LabelSet) Dims() []int {
	return append([]int(nil), ls.dims...)
}

// Label returns the canonical label at the given lookup position.
func (ls *LabelSet) Label(pos int) []int {
	return append([]int(nil), ls.labels[pos]...)
}

// Labels returns the full canonical list.
func (ls *LabelSet) Labels() [][]int {
	out := make([][]int, len(ls.labels))
	for i, label := range ls.labels {
		out[i] = append([]int(nil), label...)
	}
	return out
}

// Position returns the lookup position of a label, or false when the label
// is malformed in arity or outside the enumerated set.
func (ls *LabelSet) Position(label []int) (int, bool) {
	if len(label) != len(ls.dims) {
		return 0, false
	}
	p, ok := ls.positions[labelKey(label)]
	return p, ok
}
