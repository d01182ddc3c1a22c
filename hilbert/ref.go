package hilbert

// Ref is a non-owning handle to a Space. The lookup engine holds its Hilbert
// space through a Ref so that discarding the owning framework can release the
// large eigensystem data it carries; the engine never keeps the space alive
// on its own. Once the owner detaches the handle, dereferencing it is a fatal
// usage error, not a recoverable condition.
type Ref struct {
	space    *Space
	detached bool
}

// NewRef wraps a space in a live handle.
func NewRef(s *Space) *Ref {
	return &Ref{space: s}
}

// DetachedRef returns a handle that was never attached, as used by lookups
// restored from serialized form.
func DetachedRef() *Ref {
	return &Ref{detached: true}
}

// Detach severs the handle. Called by the owning framework when it goes away.
func (r *Ref) Detach() {
	r.space = nil
	r.detached = true
}

// Alive reports whether the handle still points at a space.
func (r *Ref) Alive() bool {
	return !r.detached && r.space != nil
}

// Get returns the underlying space. Panics if the owner has detached the
// handle or it was never attached.
func (r *Ref) Get() *Space {
	if !r.Alive() {
		panic("hilbert: space dereferenced after owning framework was detached")
	}
	return r.space
}
