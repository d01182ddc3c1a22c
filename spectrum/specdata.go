package spectrum

import "fmt"

// Data bundles the eigenvalue and eigenvector tables of one diagonalized
// system across the sweep grid.
//
// Energies is shaped (axis counts..., evals); rows are ascending
// eigenenergies at one grid point. States is shaped
// (axis counts..., evals, dim); each row of the trailing matrix is one
// eigenvector expressed in the system's reference basis. For the dressed
// system that basis is the canonical bare product basis, which makes the
// trailing matrix exactly the overlap matrix the mapper consumes.
type Data struct {
	Energies *Float   `msgpack:"energies"`
	States   *Complex `msgpack:"states"`
}

// Validate checks that the two tables agree on grid shape and eigenstate
// count for a grid with the given per-axis counts.
func (d Data) Validate(counts []int) error {
	if d.Energies == nil || d.States == nil {
		return fmt.Errorf("spectral data missing energies or states table")
	}
	es := d.Energies.Shape()
	ss := d.States.Shape()
	if len(es) != len(counts)+1 {
		return fmt.Errorf("energies rank %d does not match grid rank %d", len(es), len(counts))
	}
	if len(ss) != len(counts)+2 {
		return fmt.Errorf("states rank %d does not match grid rank %d", len(ss), len(counts))
	}
	for i, c := range counts {
		if es[i] != c || ss[i] != c {
			return fmt.Errorf("axis %d count mismatch: energies %d, states %d, grid %d", i, es[i], ss[i], c)
		}
	}
	if es[len(es)-1] != ss[len(ss)-2] {
		return fmt.Errorf("eigenstate count mismatch: energies %d, states %d", es[len(es)-1], ss[len(ss)-2])
	}
	return nil
}

// EvalsCount returns the number of eigenvalues per grid point.
func (d Data) EvalsCount() int {
	es := d.Energies.Shape()
	return es[len(es)-1]
}

// Dim returns the basis dimension of the eigenvectors.
func (d Data) Dim() int {
	ss := d.States.Shape()
	return ss[len(ss)-1]
}
