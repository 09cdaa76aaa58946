package autodiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/reorg/internal/autodiff"
	"github.com/born-ml/reorg/internal/backend/cpu"
	"github.com/born-ml/reorg/internal/tensor"
)

func TestAutodiffBackend_Metadata(t *testing.T) {
	backend := autodiff.New(cpu.New())
	assert.Equal(t, "Autodiff(CPU)", backend.Name())
	assert.Equal(t, tensor.CPU, backend.Device())
	assert.NotNil(t, backend.Inner())
	assert.Same(t, backend.Tape(), backend.GetTape())
}

func TestTape_Recording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()

	assert.False(t, tape.IsRecording(), "tape should not be recording initially")
	tape.StartRecording()
	assert.True(t, tape.IsRecording())
	tape.StopRecording()
	assert.False(t, tape.IsRecording())
}

func TestTape_RecordsOnlyWhileRecording(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	x := tensor.Arange[float32](tensor.Shape{1, 1, 4, 4}, backend)

	_ = x.Reorg(2, tensor.Pack)
	assert.Equal(t, 0, tape.NumOps())

	tape.StartRecording()
	_ = x.Reorg(2, tensor.Pack)
	assert.Equal(t, 1, tape.NumOps())

	tape.Clear()
	assert.Equal(t, 0, tape.NumOps())
	assert.True(t, tape.IsRecording(), "Clear must preserve recording state")
}

func TestBackward_ReorgOnesGradient(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.Arange[float32](tensor.Shape{2, 3, 4, 6}, backend)
	y := x.Reorg(2, tensor.Pack)

	grads := autodiff.Backward(y, backend)

	dx, ok := grads[x.Raw()]
	require.True(t, ok, "gradient for x missing")
	assert.Equal(t, x.Shape(), dx.Shape())
	for i, g := range dx.AsFloat32() {
		require.Equal(t, float32(1), g, "dx[%d]", i)
	}
}

// TestBackward_GradientSymmetry feeds the forward output back as the output
// gradient; the inverse permutation must hand back the forward input.
func TestBackward_GradientSymmetry(t *testing.T) {
	for _, dir := range []tensor.ReorgDirection{tensor.Pack, tensor.Unpack} {
		for stride := 1; stride <= 4; stride++ {
			backend := autodiff.New(cpu.New())
			backend.Tape().StartRecording()

			shape := tensor.Shape{2, 3, 2 * stride, 2 * stride}
			if dir == tensor.Unpack {
				shape = tensor.Shape{2, 3 * stride * stride, 2, 3}
			}
			x := tensor.Arange[float64](shape, backend)
			y := x.Reorg(stride, dir)

			grads := autodiff.BackwardWithGrad(y.Raw(), y.Raw().Copy(), backend)

			dx := grads[x.Raw()]
			require.NotNil(t, dx, "%s stride %d", dir, stride)
			assert.Equal(t, x.Shape(), dx.Shape())
			assert.Equal(t, x.Data(), dx.AsFloat64(), "%s stride %d", dir, stride)
		}
	}
}

func TestBackward_ChainedReorgs(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.Arange[float32](tensor.Shape{1, 2, 8, 8}, backend)
	packed := x.Reorg(2, tensor.Pack)     // [1, 8, 4, 4]
	twice := packed.Reorg(2, tensor.Pack) // [1, 32, 2, 2]
	back := twice.Reorg(4, tensor.Unpack) // [1, 2, 8, 8]
	require.Equal(t, x.Shape(), back.Shape())

	grads := autodiff.BackwardWithGrad(back.Raw(), back.Raw().Copy(), backend)
	assert.Equal(t, x.Data(), grads[x.Raw()].AsFloat32())
}

func TestBackward_ConcatAndFanOut(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.Arange[float32](tensor.Shape{1, 1, 4, 4}, backend)
	coarse := tensor.Full[float32](tensor.Shape{1, 2, 2, 2}, 7, backend)

	// x feeds two branches; its gradient is the sum of both.
	a := x.Reorg(2, tensor.Pack)
	b := x.Reorg(2, tensor.Pack)
	out := tensor.ConcatChannels(a, b, coarse)
	require.Equal(t, tensor.Shape{1, 10, 2, 2}, out.Shape())

	grads := autodiff.Backward(out, backend)

	for i, g := range grads[x.Raw()].AsFloat32() {
		assert.Equal(t, float32(2), g, "dx[%d]", i)
	}
	for i, g := range grads[coarse.Raw()].AsFloat32() {
		assert.Equal(t, float32(1), g, "dcoarse[%d]", i)
	}
}

func TestBackward_AccumulationKeepsSharedGradients(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	x := tensor.Arange[float32](tensor.Shape{1, 1, 2, 2}, backend)
	y := x.Reorg(1, tensor.Pack)
	sum := backend.Add(x.Raw(), y.Raw())

	// Add hands the same gradient to x and y; the fan-out sum for x must
	// not write into it.
	seed := tensor.Full[float32](tensor.Shape{1, 1, 2, 2}, 1, backend).Raw()
	grads := autodiff.BackwardWithGrad(sum, seed, backend)

	assert.Equal(t, []float32{1, 1, 1, 1}, seed.AsFloat32())
	assert.Equal(t, []float32{1, 1, 1, 1}, grads[y.Raw()].AsFloat32())
	assert.Equal(t, []float32{2, 2, 2, 2}, grads[x.Raw()].AsFloat32())
	assert.Equal(t, []float32{0, 1, 2, 3}, x.Data())
	assert.Equal(t, []float32{0, 2, 4, 6}, sum.AsFloat32())
}

func TestBackward_Panics(t *testing.T) {
	backend := autodiff.New(cpu.New())
	x := tensor.Arange[float32](tensor.Shape{1, 1, 2, 2}, backend)

	assert.Panics(t, func() { autodiff.Backward(x, backend) }, "empty tape")

	backend.Tape().StartRecording()
	y := x.Reorg(2, tensor.Pack)
	_ = y.Reorg(2, tensor.Unpack)

	assert.Panics(t, func() { autodiff.Backward(y, backend) }, "not the last output")

	i := tensor.Arange[int32](tensor.Shape{1, 1, 2, 2}, backend)
	iy := i.Reorg(2, tensor.Pack)
	assert.Panics(t, func() { autodiff.Backward(iy, backend) }, "integer dtype")
}

func TestTape_BackwardDoesNotRecord(t *testing.T) {
	backend := autodiff.New(cpu.New())
	tape := backend.Tape()
	tape.StartRecording()

	x := tensor.Arange[float32](tensor.Shape{1, 4, 2, 2}, backend)
	y := x.Reorg(2, tensor.Unpack)
	_ = autodiff.Backward(y, backend)

	assert.Equal(t, 1, tape.NumOps())
	assert.True(t, tape.IsRecording())
}
