package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/internal/autodiff"
	"github.com/born-ml/reorg/internal/backend/cpu"
	"github.com/born-ml/reorg/internal/nn"
	"github.com/born-ml/reorg/internal/tensor"
)

func TestPassthrough_Shape(t *testing.T) {
	backend := cpu.New()
	route, err := nn.NewPassthrough(2, backend)
	require.NoError(t, err)
	assert.Equal(t, "Passthrough(stride=2)", route.String())

	got, err := route.InferOutputShape(tensor.Shape{1, 64, 26, 26}, tensor.Shape{1, 1024, 13, 13})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 1280, 13, 13}, got)

	_, err = route.InferOutputShape(tensor.Shape{1, 64, 25, 26}, tensor.Shape{1, 1024, 13, 13})
	assert.ErrorIs(t, err, tensor.ErrShape)

	_, err = route.InferOutputShape(tensor.Shape{1, 64, 26, 26}, tensor.Shape{1, 1024, 12, 13})
	assert.Error(t, err)

	_, err = route.InferOutputShape(tensor.Shape{2, 64, 26, 26}, tensor.Shape{1, 1024, 13, 13})
	assert.Error(t, err)

	_, err = nn.NewPassthrough(0, backend)
	assert.ErrorIs(t, err, tensor.ErrConfig)
}

func TestPassthrough_Forward(t *testing.T) {
	backend := cpu.New()
	route, err := nn.NewPassthrough(2, backend)
	require.NoError(t, err)

	fine := tensor.Arange[float32](tensor.Shape{1, 1, 4, 4}, backend)
	coarse := tensor.Full[float32](tensor.Shape{1, 1, 2, 2}, 100, backend)

	fused := route.Forward(fine, coarse)
	require.Equal(t, tensor.Shape{1, 5, 2, 2}, fused.Shape())
	assert.Equal(t, []float32{
		0, 2, 8, 10,
		1, 3, 9, 11,
		4, 6, 12, 14,
		5, 7, 13, 15,
		100, 100, 100, 100,
	}, fused.Data())

	assert.Panics(t, func() {
		route.Forward(fine, tensor.Zeros[float32](tensor.Shape{1, 1, 4, 4}, backend))
	})
}

func TestPassthrough_Backward(t *testing.T) {
	backend := autodiff.New(cpu.New())
	route, err := nn.NewPassthrough(2, backend)
	require.NoError(t, err)

	backend.Tape().StartRecording()
	fine := tensor.Arange[float32](tensor.Shape{2, 3, 4, 6}, backend)
	coarse := tensor.Arange[float32](tensor.Shape{2, 5, 2, 3}, backend)
	fused := route.Forward(fine, coarse)
	require.Equal(t, tensor.Shape{2, 17, 2, 3}, fused.Shape())

	grads := autodiff.Backward(fused, backend)
	for _, x := range []*tensor.Tensor[float32, *autodiff.AutodiffBackend[*cpu.CPUBackend]]{fine, coarse} {
		grad, ok := grads[x.Raw()]
		require.True(t, ok)
		require.Equal(t, x.Shape(), grad.Shape())
		for _, v := range grad.AsFloat32() {
			require.InDelta(t, float32(1), v, 0)
		}
	}
}
