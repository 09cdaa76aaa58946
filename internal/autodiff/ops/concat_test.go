package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/internal/tensor"
)

func TestConcatOp_Backward(t *testing.T) {
	backend := tensor.NewMockBackend()
	a := arange(t, tensor.Shape{2, 3, 2, 2})
	b := arange(t, tensor.Shape{2, 1, 2, 2})
	output := backend.ConcatChannels(a, b)

	op := NewConcatOp([]*tensor.RawTensor{a, b}, output)
	grads := op.Backward(output, backend)

	require.Len(t, grads, 2)
	assert.Equal(t, a.Shape(), grads[0].Shape())
	assert.Equal(t, b.Shape(), grads[1].Shape())
	assert.Equal(t, a.AsFloat32(), grads[0].AsFloat32())
	assert.Equal(t, b.AsFloat32(), grads[1].AsFloat32())
	assert.Len(t, op.Inputs(), 2)
	assert.Same(t, output, op.Output())
}

func TestAddOp_Backward(t *testing.T) {
	backend := tensor.NewMockBackend()
	a := arange(t, tensor.Shape{2, 2})
	b := arange(t, tensor.Shape{2, 2})
	out := backend.Add(a, b)

	op := NewAddOp(a, b, out)
	grads := op.Backward(out, backend)

	require.Len(t, grads, 2)
	assert.Same(t, out, grads[0])
	assert.Same(t, out, grads[1])
}
