// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/backend/cpu"
	"github.com/born-ml/reorg/tensor"
)

func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = cpu.New()
}

func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{1, 4, 2, 2}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 4, 2, 2}, raw.Shape())
	assert.Equal(t, tensor.Float32, raw.DType())
	assert.Equal(t, tensor.CPU, raw.Device())
	assert.Len(t, raw.AsFloat32(), 16)

	view, err := raw.View(tensor.Shape{1, 1, 4, 4})
	require.NoError(t, err)
	assert.True(t, raw.SharesStorage(view))
}

func TestReorgShapeLaw(t *testing.T) {
	packed, err := tensor.ReorgShape(tensor.Shape{2, 4, 8, 8}, 2, tensor.Pack)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 16, 4, 4}, packed)

	spatial, err := tensor.ReorgShape(tensor.Shape{2, 16, 4, 4}, 2, tensor.Unpack)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 4, 8, 8}, spatial)

	_, err = tensor.ReorgShape(tensor.Shape{1, 1, 7, 8}, 2, tensor.Pack)
	assert.ErrorIs(t, err, tensor.ErrShape)
	var shapeErr *tensor.ShapeError
	assert.ErrorAs(t, err, &shapeErr)

	_, err = tensor.ReorgShape(tensor.Shape{1, 1, 8, 8}, 0, tensor.Pack)
	assert.ErrorIs(t, err, tensor.ErrConfig)
}

func TestTensorReorg(t *testing.T) {
	backend := cpu.New()
	x := tensor.Arange[float32](tensor.Shape{2, 3, 6, 6}, backend)

	packed := x.Reorg(3, tensor.Pack)
	assert.Equal(t, tensor.Shape{2, 27, 2, 2}, packed.Shape())
	assert.Equal(t, x.Data(), packed.Reorg(3, tensor.Unpack).Data())

	g, err := tensor.ReorgGeometryFor(x.Shape(), 3, tensor.Pack)
	require.NoError(t, err)
	assert.Equal(t, packed.Shape(), g.PackedShape())
	assert.Equal(t, x.Shape(), g.SpatialShape())
}

func TestFromSliceAndConcat(t *testing.T) {
	backend := cpu.NewSequential()
	a, err := tensor.FromSlice([]int32{1, 2, 3, 4}, tensor.Shape{1, 1, 2, 2}, backend)
	require.NoError(t, err)
	b := tensor.Full[int32](tensor.Shape{1, 2, 2, 2}, 9, backend)

	c := tensor.ConcatChannels(a, b)
	assert.Equal(t, tensor.Shape{1, 3, 2, 2}, c.Shape())
	assert.Equal(t, []int32{1, 2, 3, 4, 9, 9, 9, 9, 9, 9, 9, 9}, c.Data())

	_, err = tensor.FromSlice([]int32{1, 2, 3}, tensor.Shape{1, 1, 2, 2}, backend)
	assert.Error(t, err)
}
