// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides automatic differentiation for reorg graphs.
//
// It wraps any backend and records Reorg, ConcatChannels and Add on a
// gradient tape; Backward walks the tape in reverse.
//
// Example:
//
//	import (
//	    "github.com/born-ml/reorg/autodiff"
//	    "github.com/born-ml/reorg/backend/cpu"
//	    "github.com/born-ml/reorg/tensor"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    backend.Tape().StartRecording()
//
//	    x := tensor.Arange[float32](tensor.Shape{1, 4, 8, 8}, backend)
//	    y := x.Reorg(2, tensor.Pack)
//
//	    grads := autodiff.Backward(y, backend)
//	    dx := grads[x.Raw()]
//	}
package autodiff

import (
	"github.com/born-ml/reorg/internal/autodiff"
	"github.com/born-ml/reorg/internal/tensor"
)

// Backend is the autodiff-enabled backend.
type Backend[B tensor.Backend] = autodiff.AutodiffBackend[B]

// New creates a new autodiff backend wrapping the given backend.
func New[B tensor.Backend](backend B) *Backend[B] {
	return autodiff.New(backend)
}

// GradientTape records operations for automatic differentiation.
type GradientTape = autodiff.GradientTape

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return autodiff.NewGradientTape()
}

// BackwardCapable interface for backends that support backpropagation.
type BackwardCapable = autodiff.BackwardCapable

// Backward computes gradients of t seeded with ones.
func Backward[T tensor.DType, B BackwardCapable](t *tensor.Tensor[T, B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.Backward(t, backend)
}

// BackwardWithGrad computes gradients of output seeded with outputGrad.
func BackwardWithGrad[B BackwardCapable](output, outputGrad *tensor.RawTensor, backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	return autodiff.BackwardWithGrad(output, outputGrad, backend)
}
