package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestArrayAtSetRowMajor(t *testing.T) {
	a := NewFloat(2, 3)
	a.Set(1.5, 0, 2)
	a.Set(-2.0, 1, 0)

	assert.Equal(t, 1.5, a.At(0, 2))
	assert.Equal(t, -2.0, a.At(1, 0))
	// Row-major layout: (0,2) is flat position 2, (1,0) is flat position 3.
	assert.Equal(t, []float64{0, 0, 1.5, -2, 0, 0}, a.Data())
}

func TestArrayRow(t *testing.T) {
	a := NewInt(2, 2, 3)
	row, err := a.Row(1, 0)
	require.NoError(t, err)
	require.Len(t, row, 3)
	row[2] = 7
	assert.Equal(t, 7, a.At(1, 0, 2))

	_, err = a.Row(1)
	assert.Error(t, err)
}

func TestSlicePartialAndFull(t *testing.T) {
	a := NewFloat(2, 3)
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			a.Set(float64(10*i+j), i, j)
		}
	}

	// Fix axis 0, keep axis 1.
	sub, err := a.Slice([]int{1, Free})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, sub.Shape())
	assert.Equal(t, []float64{10, 11, 12}, sub.Data())

	// Fix axis 1, keep axis 0.
	sub, err = a.Slice([]int{Free, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 12}, sub.Data())

	// Full fix yields a 0-d scalar array.
	sub, err = a.Slice([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, sub.NDim())
	v, err := sub.Scalar()
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	// Short selection keeps trailing axes.
	sub, err = a.Slice([]int{0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, sub.Data())

	_, err = a.Slice([]int{0, 0, 0})
	assert.Error(t, err)
	_, err = a.Slice([]int{5, Free})
	assert.Error(t, err)
}

func TestSliceCopiesData(t *testing.T) {
	a := NewInt(2, 2)
	a.Set(3, 0, 0)
	sub, err := a.Slice([]int{0, Free})
	require.NoError(t, err)
	sub.Data()[0] = 9
	assert.Equal(t, 3, a.At(0, 0))
}

func TestScalarErrors(t *testing.T) {
	a := NewFloat(2)
	_, err := a.Scalar()
	assert.Error(t, err)
}

func TestMsgpackRoundTripComplex(t *testing.T) {
	a := NewComplex(2, 2)
	a.Set(complex(0.5, -0.5), 0, 1)
	a.Set(complex(-1, 2), 1, 0)

	raw, err := msgpack.Marshal(a)
	require.NoError(t, err)

	var back Complex
	require.NoError(t, msgpack.Unmarshal(raw, &back))
	assert.Equal(t, a.Shape(), back.Shape())
	assert.Equal(t, a.Data(), back.Data())
}

func TestMsgpackRoundTripIntWithSentinels(t *testing.T) {
	a := NewInt(3)
	a.Set(-1, 0)
	a.Set(4, 2)

	raw, err := msgpack.Marshal(a)
	require.NoError(t, err)

	var back Int
	require.NoError(t, msgpack.Unmarshal(raw, &back))
	assert.Equal(t, []int{-1, 0, 4}, back.Data())
}

func TestDataValidate(t *testing.T) {
	counts := []int{3}
	good := Data{
		Energies: NewFloat(3, 4),
		States:   NewComplex(3, 4, 6),
	}
	require.NoError(t, good.Validate(counts))
	assert.Equal(t, 4, good.EvalsCount())
	assert.Equal(t, 6, good.Dim())

	bad := Data{
		Energies: NewFloat(3, 5),
		States:   NewComplex(3, 4, 6),
	}
	assert.Error(t, bad.Validate(counts))

	assert.Error(t, Data{}.Validate(counts))
}
