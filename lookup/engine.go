package lookup

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/shanto268/scqubits/hilbert"
	"github.com/shanto268/scqubits/params"
	"github.com/shanto268/scqubits/spectrum"
)

// EngineConfig tunes engine construction.
type EngineConfig struct {
	Mode                Mode
	Workers             int
	IgnoreHybridization bool
	// AutoBuild runs the mapping immediately on construction, the way a
	// sweep framework generates its lookup as part of the sweep run.
	AutoBuild bool
}

// Engine owns the dressed-index lookup table and serves every spectrum query
// against it. It holds the Hilbert space through a non-owning hilbert.Ref
// and reads the dressed/bare spectral tables produced by the eigensolver
// layer; those tables stay external and read-only from the engine's
// perspective.
type Engine struct {
	spaceRef *hilbert.Ref
	grid     *params.Grid
	labels   *LabelSet
	dressed  spectrum.Data
	bare     []spectrum.Data
	table    *spectrum.Int

	cfg       EngineConfig
	outOfSync bool
	current   params.Selection
	log       zerolog.Logger
}

// NewEngine validates the spectral tables against the grid and Hilbert space
// and assembles an engine. With cfg.AutoBuild the lookup table is generated
// immediately; otherwise Build must be called before querying.
func NewEngine(
	ref *hilbert.Ref,
	grid *params.Grid,
	dressed spectrum.Data,
	bare []spectrum.Data,
	cfg EngineConfig,
	log zerolog.Logger,
) (*Engine, error) {
	space := ref.Get()
	counts := grid.Counts()

	if err := dressed.Validate(counts); err != nil {
		return nil, fmt.Errorf("dressed spectral data: %w", err)
	}
	if dressed.Dim() != space.Dimension() {
		return nil, fmt.Errorf("dressed states have dimension %d, Hilbert space has %d", dressed.Dim(), space.Dimension())
	}
	if len(bare) != space.SubsystemCount() {
		return nil, fmt.Errorf("%d bare spectral tables for %d subsystems", len(bare), space.SubsystemCount())
	}
	for i, bd := range bare {
		if err := bd.Validate(counts); err != nil {
			return nil, fmt.Errorf("bare spectral data for subsystem %d: %w", i, err)
		}
	}

	e := &Engine{
		spaceRef: ref,
		grid:     grid,
		labels:   NewLabelSet(space.Dims()),
		dressed:  dressed,
		bare:     bare,
		cfg:      cfg,
		current:  params.AllFree(grid.Len()),
		log:      log.With().Str("component", "spectrum_lookup").Logger(),
	}

	if cfg.AutoBuild {
		if err := e.Build(context.Background()); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// stateTableSource adapts the dressed eigenvector table to the builder's
// point-by-point interface. Dressed eigenvectors are stored in the bare
// product basis, so the per-point state matrix is the overlap matrix.
type stateTableSource struct {
	states *spectrum.Complex
	evals  int
	dim    int
}

func (s stateTableSource) Overlaps(point []int) (*mat.CDense, error) {
	sub, err := s.states.Slice(point)
	if err != nil {
		return nil, err
	}
	return mat.NewCDense(s.evals, s.dim, sub.Data()), nil
}

// Build (re)generates the lookup table from the current spectral data and
// clears the stale flag. Rebuilding from identical input yields an identical
// table.
func (e *Engine) Build(ctx context.Context) error {
	builder := NewBuilder(e.grid, e.labels, BuilderConfig{
		Mode:                e.cfg.Mode,
		Workers:             e.cfg.Workers,
		IgnoreHybridization: e.cfg.IgnoreHybridization,
	}, e.log)

	src := stateTableSource{
		states: e.dressed.States,
		evals:  e.dressed.EvalsCount(),
		dim:    e.dressed.Dim(),
	}
	table, err := builder.Build(ctx, src)
	if err != nil {
		return fmt.Errorf("lookup build failed: %w", err)
	}
	e.table = table
	e.outOfSync = false
	return nil
}

// MarkStale flags the table as out of sync with its eigensystem. Called by
// the framework whenever the spectrum is recomputed or the Hilbert-space
// composition changes; every query fails with ErrStaleLookup until the next
// Build.
func (e *Engine) MarkStale() {
	e.outOfSync = true
}

// Synced reports whether the table matches the current eigensystem.
func (e *Engine) Synced() bool {
	return !e.outOfSync && e.table != nil
}

// Labels returns the canonical bare-label set.
func (e *Engine) Labels() *LabelSet {
	return e.labels
}

// Grid returns the parameter grid.
func (e *Engine) Grid() *params.Grid {
	return e.grid
}

// Table returns the dressed-index table, or nil before the first build.
func (e *Engine) Table() *spectrum.Int {
	return e.table
}

// WithSelection returns a shallow copy of the engine whose queries default
// to the given selection, the pre-slicing idiom for repeated queries over
// the same sub-grid.
func (e *Engine) WithSelection(sel params.Selection) (*Engine, error) {
	if err := e.grid.ValidateSelection(sel); err != nil {
		return nil, err
	}
	clone := *e
	clone.current = sel.Clone()
	return &clone, nil
}

func (e *Engine) checkSync() error {
	if !e.Synced() {
		return ErrStaleLookup
	}
	return nil
}

// selection resolves a per-call selection, falling back to the engine's
// current default.
func (e *Engine) selection(sel params.Selection) (params.Selection, error) {
	if sel == nil {
		sel = e.current
	}
	if err := e.grid.ValidateSelection(sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// DressedIndex returns, for the given bare label, the assigned dressed index
// at every selected parameter point: a 0-d scalar array when the selection
// fixes every axis, otherwise an array over the free axes. Unassigned
// positions carry the Unassigned sentinel. Unknown or malformed labels
// return ErrLabelNotFound.
func (e *Engine) DressedIndex(label []int, sel params.Selection) (*spectrum.Int, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	pos, ok := e.labels.Position(label)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrLabelNotFound, label)
	}
	return e.table.Slice(append(sel.Clone(), pos))
}

// DressedIndexAt is the scalar form of DressedIndex for a fully specified
// parameter point.
func (e *Engine) DressedIndexAt(label []int, point ...int) (int, error) {
	arr, err := e.DressedIndex(label, params.At(point...))
	if err != nil {
		return Unassigned, err
	}
	return arr.Scalar()
}

// BareIndex returns the canonical bare label assigned to the given dressed
// index. The selection must fix every axis: a "first match" across several
// parameter points is undefined, so partial selections return
// ErrPartialSelection. A dressed index no bare position maps to returns
// ErrBareNotFound.
func (e *Engine) BareIndex(dressedIndex int, sel params.Selection) ([]int, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	if !sel.Full() {
		return nil, fmt.Errorf("%w: bare index lookup needs a single parameter point", ErrPartialSelection)
	}

	row, err := e.table.Row(sel...)
	if err != nil {
		return nil, err
	}
	for pos, d := range row {
		if d == dressedIndex {
			return e.labels.Label(pos), nil
		}
	}
	return nil, fmt.Errorf("%w: %d at point %v", ErrBareNotFound, dressedIndex, []int(sel))
}

// Eigenvals returns the dressed eigenenergies over the selected points,
// shaped (free axes..., evals).
func (e *Engine) Eigenvals(sel params.Selection) (*spectrum.Float, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	return e.dressed.Energies.Slice(sel)
}

// Eigensys returns the dressed eigenvector tables over the selected points,
// shaped (free axes..., evals, dim).
func (e *Engine) Eigensys(sel params.Selection) (*spectrum.Complex, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	return e.dressed.States.Slice(sel)
}

// EnergyByBareIndex composes the dressed-index lookup with the energy table:
// the dressed energy tracking the given bare label across the selected
// points. Points where the label is unassigned yield NaN rather than
// failing. With subtractGround, the per-point ground energy is removed.
func (e *Engine) EnergyByBareIndex(label []int, subtractGround bool, sel params.Selection) (*spectrum.Float, error) {
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	indices, err := e.DressedIndex(label, sel)
	if err != nil {
		return nil, err
	}
	energies, err := e.dressed.Energies.Slice(sel)
	if err != nil {
		return nil, err
	}

	// indices is shaped over the free axes; energies adds the trailing
	// evals axis. Both are row-major, so flat positions pair up.
	evals := e.dressed.EvalsCount()
	out := spectrum.NewFloat(indices.Shape()...)
	ed := energies.Data()
	for i, d := range indices.Data() {
		row := ed[i*evals : (i+1)*evals]
		if d == Unassigned || d >= len(row) {
			out.Data()[i] = math.NaN()
			continue
		}
		v := row[d]
		if subtractGround {
			v -= row[0]
		}
		out.Data()[i] = v
	}
	return out, nil
}

// EnergyByDressedIndex returns the dressed energy of the given spectral row
// over the selected points, optionally with the per-point ground energy
// subtracted.
func (e *Engine) EnergyByDressedIndex(dressedIndex int, subtractGround bool, sel params.Selection) (*spectrum.Float, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	if dressedIndex < 0 || dressedIndex >= e.dressed.EvalsCount() {
		return nil, fmt.Errorf("dressed index %d out of range [0, %d)", dressedIndex, e.dressed.EvalsCount())
	}

	energies, err := e.dressed.Energies.Slice(append(sel.Clone(), dressedIndex))
	if err != nil {
		return nil, err
	}
	if subtractGround {
		ground, err := e.dressed.Energies.Slice(append(sel.Clone(), 0))
		if err != nil {
			return nil, err
		}
		floats.Sub(energies.Data(), ground.Data())
	}
	return energies, nil
}

// BareEigenvals returns the bare eigenenergies of one subsystem over the
// selected points. The subsystem is resolved through its position in the
// composite ordering; panics if the owning framework has been detached.
func (e *Engine) BareEigenvals(sub hilbert.Subsystem, sel params.Selection) (*spectrum.Float, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	i, err := e.spaceRef.Get().SubsysIndex(sub)
	if err != nil {
		return nil, err
	}
	return e.bare[i].Energies.Slice(sel)
}

// BareEigenstates returns the bare eigenvectors of one subsystem over the
// selected points, expressed in the basis internal to the subsystem.
func (e *Engine) BareEigenstates(sub hilbert.Subsystem, sel params.Selection) (*spectrum.Complex, error) {
	if err := e.checkSync(); err != nil {
		return nil, err
	}
	sel, err := e.selection(sel)
	if err != nil {
		return nil, err
	}
	i, err := e.spaceRef.Get().SubsysIndex(sub)
	if err != nil {
		return nil, err
	}
	return e.bare[i].States.Slice(sel)
}

// BareProductState builds the tensor-product ket for the given bare label,
// bypassing the lookup table: the bare product basis has no parameter
// dependence.
func (e *Engine) BareProductState(label []int) (*mat.CVecDense, error) {
	return e.spaceRef.Get().BareProductState(label)
}
