package ops

import (
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// ReorgOp records a reorg for autodiff.
//
// Forward:
//
//	output = Reorg(input, stride, dir)
//
// Backward:
//   - Reorg is a pure permutation with no accumulation, so the input
//     gradient is the output gradient run through the inverse permutation:
//     d_input = Reorg(d_output, stride, dir.Inverse())
//
// The input shape is captured at record time; backward never re-derives it
// from the (possibly reshaped) output.
type ReorgOp struct {
	input     *tensor.RawTensor
	output    *tensor.RawTensor
	inputSize tensor.Shape
	geometry  tensor.ReorgGeometry
	dir       tensor.ReorgDirection
}

// NewReorgOp creates a new Reorg operation.
func NewReorgOp(input, output *tensor.RawTensor, stride int, dir tensor.ReorgDirection) *ReorgOp {
	g, err := tensor.ReorgGeometryFor(input.Shape(), stride, dir)
	if err != nil {
		panic(fmt.Sprintf("reorg op: %v", err))
	}
	return &ReorgOp{
		input:     input,
		output:    output,
		inputSize: input.Shape().Clone(),
		geometry:  g,
		dir:       dir,
	}
}

// Inputs returns the input tensors.
func (op *ReorgOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ReorgOp) Output() *tensor.RawTensor {
	return op.output
}

// Geometry returns the packed-side geometry recorded in the forward pass.
func (op *ReorgOp) Geometry() tensor.ReorgGeometry {
	return op.geometry
}

// Direction returns the forward direction.
func (op *ReorgOp) Direction() tensor.ReorgDirection {
	return op.dir
}

// Backward applies the inverse permutation to the output gradient.
func (op *ReorgOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	inputGrad, err := tensor.NewRaw(op.inputSize, outputGrad.DType(), backend.Device())
	if err != nil {
		panic(fmt.Sprintf("reorg backward: %v", err))
	}
	backend.ReorgInto(inputGrad, outputGrad, op.geometry, op.dir.Inverse())
	return []*tensor.RawTensor{inputGrad}
}
