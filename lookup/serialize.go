package lookup

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shanto268/scqubits/hilbert"
	"github.com/shanto268/scqubits/params"
	"github.com/shanto268/scqubits/spectrum"
)

// payload is the serialization contract: exactly these four fields round-trip
// unchanged, and a restored engine is reconstructed from them directly
// without re-running the mapping.
type payload struct {
	DressedSpecData     spectrum.Data   `msgpack:"dressed_specdata"`
	BareSpecDataList    []spectrum.Data `msgpack:"bare_specdata_list"`
	CanonicalBareLabels [][]int         `msgpack:"canonical_bare_labels"`
	DressedIndices      *spectrum.Int   `msgpack:"dressed_indices"`
}

// Serialize encodes the engine's spectral data, canonical labels and lookup
// table. The table must have been built.
func (e *Engine) Serialize() ([]byte, error) {
	if e.table == nil {
		return nil, fmt.Errorf("cannot serialize before the lookup table is built")
	}
	return msgpack.Marshal(payload{
		DressedSpecData:     e.dressed,
		BareSpecDataList:    e.bare,
		CanonicalBareLabels: e.labels.Labels(),
		DressedIndices:      e.table,
	})
}

// Deserialize restores an engine from serialized form. The restored engine
// is detached from any framework: queries that only touch the table and
// spectral data work immediately, while subsystem-resolved operations panic
// on the dead reference. The parameter grid is reconstructed as a plain
// index grid since axis values are not part of the contract.
func Deserialize(data []byte, log zerolog.Logger) (*Engine, error) {
	var p payload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode lookup payload: %w", err)
	}
	if p.DressedIndices == nil {
		return nil, fmt.Errorf("lookup payload has no dressed-index table")
	}

	shape := p.DressedIndices.Shape()
	if len(shape) == 0 {
		return nil, fmt.Errorf("dressed-index table has no label axis")
	}
	counts := shape[:len(shape)-1]
	labels := NewLabelSetFromLabels(p.CanonicalBareLabels)
	if labels.Len() != shape[len(shape)-1] {
		return nil, fmt.Errorf("%d canonical labels for table label axis of %d", labels.Len(), shape[len(shape)-1])
	}

	grid := params.IndexGrid(counts...)
	return &Engine{
		spaceRef: hilbert.DetachedRef(),
		grid:     grid,
		labels:   labels,
		dressed:  p.DressedSpecData,
		bare:     p.BareSpecDataList,
		table:    p.DressedIndices,
		current:  params.AllFree(grid.Len()),
		log:      log.With().Str("component", "spectrum_lookup").Logger(),
	}, nil
}
