package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/internal/tensor"
)

func TestConcatChannels(t *testing.T) {
	backend := New()
	a := arangeRaw(t, tensor.Shape{2, 1, 1, 2}, tensor.Float32) // n0: [0 1], n1: [2 3]
	b := arangeRaw(t, tensor.Shape{2, 2, 1, 2}, tensor.Float32) // n0: [0 1 2 3], n1: [4 5 6 7]

	out := backend.ConcatChannels(a, b)

	require.Equal(t, tensor.Shape{2, 3, 1, 2}, out.Shape())
	assert.Equal(t, []float32{0, 1, 0, 1, 2, 3, 2, 3, 4, 5, 6, 7}, out.AsFloat32())
}

func TestSplitChannels_InvertsConcat(t *testing.T) {
	backend := New()
	a := arangeRaw(t, tensor.Shape{3, 4, 2, 2}, tensor.Int64)
	b := arangeRaw(t, tensor.Shape{3, 1, 2, 2}, tensor.Int64)
	c := arangeRaw(t, tensor.Shape{3, 2, 2, 2}, tensor.Int64)

	parts := backend.SplitChannels(backend.ConcatChannels(a, b, c), []int{4, 1, 2})

	require.Len(t, parts, 3)
	assert.Equal(t, a.AsInt64(), parts[0].AsInt64())
	assert.Equal(t, b.AsInt64(), parts[1].AsInt64())
	assert.Equal(t, c.AsInt64(), parts[2].AsInt64())
}

func TestConcatChannels_MatchesMock(t *testing.T) {
	mock := tensor.NewMockBackend()
	backend := New()
	a := arangeRaw(t, tensor.Shape{2, 3, 3, 2}, tensor.Float64)
	b := arangeRaw(t, tensor.Shape{2, 5, 3, 2}, tensor.Float64)

	assert.Equal(t, mock.ConcatChannels(a, b).AsFloat64(), backend.ConcatChannels(a, b).AsFloat64())
}

func TestConcatChannels_Panics(t *testing.T) {
	backend := New()
	a := arangeRaw(t, tensor.Shape{1, 1, 2, 2}, tensor.Float32)

	assert.Panics(t, func() { backend.ConcatChannels() })
	assert.Panics(t, func() {
		backend.ConcatChannels(a, arangeRaw(t, tensor.Shape{1, 1, 2, 3}, tensor.Float32))
	})
	assert.Panics(t, func() {
		backend.ConcatChannels(a, arangeRaw(t, tensor.Shape{1, 1, 2, 2}, tensor.Float64))
	})
	assert.Panics(t, func() { backend.SplitChannels(a, []int{2}) })
	assert.Panics(t, func() { backend.SplitChannels(a, []int{1, 0}) })
}
