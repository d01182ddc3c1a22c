package lookup

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/shanto268/scqubits/params"
	"github.com/shanto268/scqubits/spectrum"
)

// Mode selects the mapping convention used when building the table. The tag
// is fixed at construction; callers state which guarantee they depend on
// instead of the builder inspecting its framework at runtime.
type Mode int

const (
	// ModeHilbertSpace uses the bare-indexed, non-injective convention of
	// single-point lookups.
	ModeHilbertSpace Mode = iota
	// ModeSweep uses the dressed-indexed, injective convention of full
	// parameter sweeps.
	ModeSweep
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeHilbertSpace:
		return "hilbertspace"
	case ModeSweep:
		return "sweep"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// OverlapSource yields the (dressed x bare) overlap matrix at one grid
// point. Supplying matrices point by point keeps the builder from needing
// the whole eigenvector tensor in memory at once.
type OverlapSource interface {
	Overlaps(point []int) (*mat.CDense, error)
}

// BuilderConfig tunes a table build.
type BuilderConfig struct {
	Mode Mode
	// Workers bounds the number of concurrent per-point mappings.
	// Zero or negative means GOMAXPROCS.
	Workers int
	// IgnoreHybridization forces a full assignment in ModeSweep by
	// skipping the overlap threshold. Ignored in ModeHilbertSpace.
	IgnoreHybridization bool
}

// Builder assembles the dense dressed-index table by running the mapper over
// every point of the parameter grid.
type Builder struct {
	grid   *params.Grid
	labels *LabelSet
	cfg    BuilderConfig
	log    zerolog.Logger
}

// NewBuilder creates a builder for the given grid and canonical label set.
func NewBuilder(grid *params.Grid, labels *LabelSet, cfg BuilderConfig, log zerolog.Logger) *Builder {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	return &Builder{
		grid:   grid,
		labels: labels,
		cfg:    cfg,
		log:    log.With().Str("component", "lookup_builder").Logger(),
	}
}

// Build maps every grid point and returns the table shaped
// (axis counts..., bare label count), with Unassigned for rejected
// positions. Each invocation starts from a fresh table, so rebuilding after
// an eigensystem change carries no dependency on prior contents.
//
// Points are independent and write disjoint rows of the pre-allocated table,
// so the per-point work runs in parallel without locking.
func (b *Builder) Build(ctx context.Context, src OverlapSource) (*spectrum.Int, error) {
	start := time.Now()
	shape := append(b.grid.Counts(), b.labels.Len())
	table := spectrum.NewInt(shape...)

	points := b.grid.Points()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for _, point := range points {
		point := point
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			overlaps, err := src.Overlaps(point)
			if err != nil {
				return fmt.Errorf("overlap matrix at point %v: %w", point, err)
			}
			if _, cols := overlaps.Dims(); cols != b.labels.Len() {
				return fmt.Errorf("overlap matrix at point %v has %d bare columns, expected %d", point, cols, b.labels.Len())
			}

			var assignments []int
			switch b.cfg.Mode {
			case ModeSweep:
				assignments = MapByDressed(overlaps, b.cfg.IgnoreHybridization)
			default:
				assignments = MapByBare(overlaps)
			}

			row, err := table.Row(point...)
			if err != nil {
				return fmt.Errorf("table row at point %v: %w", point, err)
			}
			copy(row, assignments)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b.log.Debug().
		Str("mode", b.cfg.Mode.String()).
		Int("points", len(points)).
		Int("bare_labels", b.labels.Len()).
		Dur("elapsed", time.Since(start)).
		Msg("Built dressed-index lookup table")

	return table, nil
}
