package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/internal/backend/cpu"
	"github.com/born-ml/reorg/internal/nn"
	"github.com/born-ml/reorg/internal/tensor"
)

type opaqueModule struct{}

func (opaqueModule) Forward(x *tensor.Tensor[float32, *cpu.CPUBackend]) *tensor.Tensor[float32, *cpu.CPUBackend] {
	return x
}

func TestSequential_PackUnpack(t *testing.T) {
	backend := cpu.New()
	twice := newReorg(t, 2, false)
	model := nn.NewSequential[*cpu.CPUBackend](newReorg(t, 2, false), twice)
	model.Add(newReorg(t, 2, true))
	model.Add(newReorg(t, 2, true))
	assert.Equal(t, 4, model.Len())
	assert.Same(t, twice, model.Module(1))
	assert.Panics(t, func() { model.Module(4) })

	shape, err := model.InferOutputShape(tensor.Shape{1, 2, 8, 8})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 2, 8, 8}, shape)

	x := tensor.Arange[float32](tensor.Shape{1, 2, 8, 8}, backend)
	assert.Equal(t, x.Data(), model.Forward(x).Data())
}

func TestSequential_InferOutputShapeErrors(t *testing.T) {
	model := nn.NewSequential[*cpu.CPUBackend](newReorg(t, 2, false), newReorg(t, 2, false))
	_, err := model.InferOutputShape(tensor.Shape{1, 1, 6, 6})
	assert.ErrorIs(t, err, tensor.ErrShape)

	model = nn.NewSequential[*cpu.CPUBackend](opaqueModule{})
	_, err = model.InferOutputShape(tensor.Shape{1, 1, 6, 6})
	assert.Error(t, err)
}
