// Package nn implements neural network modules for the reorg operator.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Reorg: Space-to-depth / depth-to-space layer
//   - Passthrough: Fine-to-coarse feature fusion (reorg + channel concat)
//   - Sequential: Container for stacking layers
package nn

import (
	"github.com/born-ml/reorg/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]
}

// ShapeInferer is implemented by modules that can report their output shape
// without running a forward pass.
type ShapeInferer interface {
	InferOutputShape(input tensor.Shape) (tensor.Shape, error)
}
