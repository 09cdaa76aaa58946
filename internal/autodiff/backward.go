package autodiff

import (
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// BackwardCapable is an interface for backends that support backward pass.
// AutodiffBackend implements this interface.
type BackwardCapable interface {
	tensor.Backend
	// GetTape returns the gradient tape for backward computation.
	GetTape() *GradientTape
}

// GetTape returns the gradient tape (implements BackwardCapable interface).
func (b *AutodiffBackend[B]) GetTape() *GradientTape {
	return b.tape
}

// Backward computes gradients of t with respect to every recorded tensor,
// seeding the output gradient with ones.
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Arange[float32](tensor.Shape{1, 1, 4, 4}, backend)
//	y := x.Reorg(2, tensor.Pack)
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()]
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	outputGrad, err := tensor.NewRaw(t.Shape(), t.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("backward: failed to create output gradient: %v", err))
	}

	switch t.DType() {
	case tensor.Float32:
		data := outputGrad.AsFloat32()
		for i := range data {
			data[i] = 1.0
		}
	case tensor.Float64:
		data := outputGrad.AsFloat64()
		for i := range data {
			data[i] = 1.0
		}
	default:
		panic(fmt.Sprintf("backward: unsupported dtype %s (only float32/float64 supported)", t.DType()))
	}

	return BackwardWithGrad(t.Raw(), outputGrad, backend)
}

// BackwardWithGrad propagates an explicit output gradient from output.
// Panics if no operations were recorded or output is not the last result.
func BackwardWithGrad[B BackwardCapable](output, outputGrad *tensor.RawTensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	tape := backend.GetTape()

	if tape.NumOps() == 0 {
		panic("backward: no operations recorded (did you forget to call Tape().StartRecording()?)")
	}
	if last := tape.Operations()[tape.NumOps()-1]; last.Output() != output {
		panic("backward: tensor is not the output of the last recorded operation")
	}
	if !outputGrad.Shape().Equal(output.Shape()) {
		panic(fmt.Sprintf("backward: gradient shape %v does not match output %v", outputGrad.Shape(), output.Shape()))
	}

	return tape.Backward(outputGrad, backend)
}
