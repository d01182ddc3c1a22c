// Package spectrum provides the dense N-dimensional containers holding
// eigenvalue, eigenvector and dressed-index tables across a parameter sweep.
//
// gonum's mat package is strictly two-dimensional, so the sweep-shaped
// containers are implemented here as flat row-major arrays with explicit
// shapes and strides; all 2-D linear algebra stays on gonum types.
package spectrum

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Free marks an axis left unfixed when slicing. Matches params.Free.
const Free = -1

// Array is a dense row-major N-dimensional array. A zero-dimensional array
// holds exactly one element and represents a scalar result.
type Array[T any] struct {
	shape  []int
	stride []int
	data   []T
}

// Float, Complex and Int are the three array kinds used by the lookup:
// energy tables, state tables and dressed-index tables respectively.
type (
	Float   = Array[float64]
	Complex = Array[complex128]
	Int     = Array[int]
)

// NewArray allocates a zero-filled array of the given shape.
func NewArray[T any](shape ...int) *Array[T] {
	a := &Array[T]{shape: append([]int(nil), shape...)}
	a.stride = strides(a.shape)
	a.data = make([]T, size(a.shape))
	return a
}

// NewFloat allocates a float64 array.
func NewFloat(shape ...int) *Float { return NewArray[float64](shape...) }

// NewComplex allocates a complex128 array.
func NewComplex(shape ...int) *Complex { return NewArray[complex128](shape...) }

// NewInt allocates an int array.
func NewInt(shape ...int) *Int { return NewArray[int](shape...) }

// FromSlice wraps flat row-major data in an array of the given shape.
// The slice is used directly, not copied.
func FromSlice[T any](data []T, shape ...int) (*Array[T], error) {
	if len(data) != size(shape) {
		return nil, fmt.Errorf("data length %d does not match shape %v", len(data), shape)
	}
	a := &Array[T]{shape: append([]int(nil), shape...), data: data}
	a.stride = strides(a.shape)
	return a, nil
}

func size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}

func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// Shape returns the dimensions of the array.
func (a *Array[T]) Shape() []int {
	return append([]int(nil), a.shape...)
}

// NDim returns the number of dimensions.
func (a *Array[T]) NDim() int {
	return len(a.shape)
}

// Size returns the total element count.
func (a *Array[T]) Size() int {
	return len(a.data)
}

// Data returns the flat row-major backing slice.
func (a *Array[T]) Data() []T {
	return a.data
}

func (a *Array[T]) offset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("index arity %d does not match array rank %d", len(idx), len(a.shape))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			return 0, fmt.Errorf("index %d out of range for axis %d (size %d)", v, i, a.shape[i])
		}
		off += v * a.stride[i]
	}
	return off, nil
}

// At returns the element at the given index tuple.
func (a *Array[T]) At(idx ...int) T {
	off, err := a.offset(idx)
	if err != nil {
		panic(fmt.Sprintf("spectrum: %v", err))
	}
	return a.data[off]
}

// Set stores v at the given index tuple.
func (a *Array[T]) Set(v T, idx ...int) {
	off, err := a.offset(idx)
	if err != nil {
		panic(fmt.Sprintf("spectrum: %v", err))
	}
	a.data[off] = v
}

// Row returns the contiguous innermost row addressed by fixing all but the
// last axis. The returned slice aliases the backing data.
func (a *Array[T]) Row(idx ...int) ([]T, error) {
	if len(a.shape) == 0 {
		return nil, fmt.Errorf("cannot take a row of a 0-d array")
	}
	if len(idx) != len(a.shape)-1 {
		return nil, fmt.Errorf("row index arity %d does not match array rank %d", len(idx), len(a.shape))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= a.shape[i] {
			return nil, fmt.Errorf("index %d out of range for axis %d (size %d)", v, i, a.shape[i])
		}
		off += v * a.stride[i]
	}
	last := a.shape[len(a.shape)-1]
	return a.data[off : off+last], nil
}

// Scalar returns the single element of a size-1 array.
func (a *Array[T]) Scalar() (T, error) {
	var zero T
	if len(a.data) != 1 {
		return zero, fmt.Errorf("array of shape %v is not a scalar", a.shape)
	}
	return a.data[0], nil
}

// Slice copies out the sub-array obtained by fixing the selected leading
// axes. sel holds one entry per leading axis: a concrete index, or Free to
// keep the axis. Axes beyond len(sel) are kept. A fully-fixed slice of all
// axes yields a 0-d scalar array.
func (a *Array[T]) Slice(sel []int) (*Array[T], error) {
	if len(sel) > len(a.shape) {
		return nil, fmt.Errorf("selection arity %d exceeds array rank %d", len(sel), len(a.shape))
	}

	var outShape []int
	for i, s := range a.shape {
		if i < len(sel) && sel[i] != Free {
			if sel[i] < 0 || sel[i] >= s {
				return nil, fmt.Errorf("index %d out of range for axis %d (size %d)", sel[i], i, s)
			}
			continue
		}
		outShape = append(outShape, s)
	}

	out := NewArray[T](outShape...)
	src := make([]int, len(a.shape))
	for i := range src {
		if i < len(sel) && sel[i] != Free {
			src[i] = sel[i]
		}
	}

	outIdx := make([]int, len(outShape))
	for flat := 0; flat < out.Size(); flat++ {
		// Decompose flat into the free-axis multi-index.
		rem := flat
		for i := range outShape {
			outIdx[i] = rem / out.stride[i]
			rem %= out.stride[i]
		}
		k := 0
		for i := range a.shape {
			if i < len(sel) && sel[i] != Free {
				continue
			}
			src[i] = outIdx[k]
			k++
		}
		off := 0
		for i, v := range src {
			off += v * a.stride[i]
		}
		out.data[flat] = a.data[off]
	}
	return out, nil
}

// Clone returns a deep copy.
func (a *Array[T]) Clone() *Array[T] {
	out := NewArray[T](a.shape...)
	copy(out.data, a.data)
	return out
}

// EncodeMsgpack implements msgpack.CustomEncoder. Complex data is stored as
// interleaved re/im float64 pairs since msgpack has no complex type.
func (a *Array[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.Encode(a.shape); err != nil {
		return err
	}
	switch data := any(a.data).(type) {
	case []complex128:
		flat := make([]float64, 2*len(data))
		for i, z := range data {
			flat[2*i] = real(z)
			flat[2*i+1] = imag(z)
		}
		return enc.Encode(flat)
	default:
		return enc.Encode(a.data)
	}
}

// DecodeMsgpack implements msgpack.CustomDecoder.
func (a *Array[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("expected 2-element array envelope, got %d", n)
	}
	var shape []int
	if err := dec.Decode(&shape); err != nil {
		return err
	}
	if len(shape) == 0 {
		shape = nil
	}

	var data []T
	switch any(data).(type) {
	case []complex128:
		var flat []float64
		if err := dec.Decode(&flat); err != nil {
			return err
		}
		if len(flat)%2 != 0 {
			return fmt.Errorf("odd complex payload length %d", len(flat))
		}
		cdata := make([]complex128, len(flat)/2)
		for i := range cdata {
			cdata[i] = complex(flat[2*i], flat[2*i+1])
		}
		data = any(cdata).([]T)
	default:
		if err := dec.Decode(&data); err != nil {
			return err
		}
	}

	if len(data) != size(shape) {
		return fmt.Errorf("payload length %d does not match shape %v", len(data), shape)
	}
	a.shape = shape
	a.stride = strides(shape)
	a.data = data
	return nil
}
