package ops

import "github.com/born-ml/reorg/internal/tensor"

// ConcatOp represents a channel concatenation of 4D tensors.
//
// Forward: output = ConcatChannels(input1, input2, ...)
//
// Backward:
//
//	Split gradOutput along the channel dimension at the input boundaries;
//	each input receives the slice matching its contribution.
type ConcatOp struct {
	inputs []*tensor.RawTensor
	sizes  []int // Channel count of each input
	output *tensor.RawTensor
}

// NewConcatOp creates a new channel concat operation.
func NewConcatOp(inputs []*tensor.RawTensor, output *tensor.RawTensor) *ConcatOp {
	sizes := make([]int, len(inputs))
	for i, in := range inputs {
		sizes[i] = in.Shape()[1]
	}
	return &ConcatOp{
		inputs: inputs,
		sizes:  sizes,
		output: output,
	}
}

// Inputs returns the input tensors.
func (op *ConcatOp) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the output tensor.
func (op *ConcatOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward splits the output gradient back into per-input gradients.
func (op *ConcatOp) Backward(gradOutput *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return backend.SplitChannels(gradOutput, op.sizes)
}
