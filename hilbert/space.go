// Package hilbert describes the composite Hilbert space: the ordered list of
// qubit subsystems whose bare product basis the spectrum lookup maps against.
package hilbert

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/shanto268/scqubits/pkg/linalg"
)

// Subsystem is one unit of the composite space. The lookup never inspects a
// subsystem beyond its truncated basis dimension; identity within the
// composite ordering is what matters.
type Subsystem interface {
	Name() string
	TruncatedDim() int
}

// Mode is a plain named subsystem with a fixed truncated dimension, enough
// for any caller that does not bring its own qubit type.
type Mode struct {
	Label string
	Dim   int
}

// Name returns the mode label.
func (m Mode) Name() string { return m.Label }

// TruncatedDim returns the truncated basis dimension.
func (m Mode) TruncatedDim() int { return m.Dim }

// Space is an ordered sequence of subsystems forming the composite Hilbert
// space. Subsystems are referenced by position everywhere downstream.
type Space struct {
	subsystems []Subsystem
}

// NewSpace validates the subsystem list and assembles a space.
func NewSpace(subsystems ...Subsystem) (*Space, error) {
	for i, sub := range subsystems {
		if sub == nil {
			return nil, fmt.Errorf("subsystem %d is nil", i)
		}
		if sub.TruncatedDim() < 1 {
			return nil, fmt.Errorf("subsystem %d (%s) has invalid dimension %d", i, sub.Name(), sub.TruncatedDim())
		}
	}
	s := &Space{subsystems: make([]Subsystem, len(subsystems))}
	copy(s.subsystems, subsystems)
	return s, nil
}

// SubsystemCount returns the number of subsystems.
func (s *Space) SubsystemCount() int {
	return len(s.subsystems)
}

// Subsystem returns the subsystem at position i.
func (s *Space) Subsystem(i int) Subsystem {
	return s.subsystems[i]
}

// Dims returns the ordered truncated dimensions.
func (s *Space) Dims() []int {
	dims := make([]int, len(s.subsystems))
	for i, sub := range s.subsystems {
		dims[i] = sub.TruncatedDim()
	}
	return dims
}

// Dimension returns the composite dimension, the product of all subsystem
// dimensions.
func (s *Space) Dimension() int {
	dim := 1
	for _, sub := range s.subsystems {
		dim *= sub.TruncatedDim()
	}
	return dim
}

// SubsysIndex returns the position of the given subsystem in the composite
// ordering.
func (s *Space) SubsysIndex(sub Subsystem) (int, error) {
	for i, candidate := range s.subsystems {
		if candidate == sub {
			return i, nil
		}
	}
	return 0, fmt.Errorf("subsystem %q is not part of this Hilbert space", sub.Name())
}

// BareProductState builds the tensor-product basis ket for the given bare
// label. The bare product basis carries no parameter dependence, so this
// bypasses any lookup table.
func (s *Space) BareProductState(label []int) (*mat.CVecDense, error) {
	if len(label) != len(s.subsystems) {
		return nil, fmt.Errorf("label arity %d does not match subsystem count %d", len(label), len(s.subsystems))
	}
	var ket *mat.CVecDense
	for i, sub := range s.subsystems {
		factor, err := linalg.BasisKet(sub.TruncatedDim(), label[i])
		if err != nil {
			return nil, fmt.Errorf("subsystem %d (%s): %w", i, sub.Name(), err)
		}
		if ket == nil {
			ket = factor
		} else {
			ket = linalg.Kron(ket, factor)
		}
	}
	if ket == nil {
		// Zero subsystems: the one-dimensional trivial space.
		ket = mat.NewCVecDense(1, []complex128{1})
	}
	return ket, nil
}
