// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient
// tracking through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op (Add, Reorg, ConcatChannels) implements backward pass
//   - Reverse-mode AD: Computes gradients efficiently using chain rule
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//
//	x := tensor.Arange[float32](tensor.Shape{1, 4, 8, 8}, backend)
//	y := x.Reorg(2, tensor.Pack)
//
//	grads := autodiff.Backward(y, backend)
//	dx := grads[x.Raw()] // all ones, permuted back to x's layout
package autodiff

import (
	"github.com/born-ml/reorg/internal/autodiff/ops"
	"github.com/born-ml/reorg/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewAddOp(a, c, result))
	}

	return result
}

// Reorg reorganizes x and records a ReorgOp so gradients flow back
// through the inverse permutation.
func (b *AutodiffBackend[B]) Reorg(x *tensor.RawTensor, stride int, dir tensor.ReorgDirection) *tensor.RawTensor {
	result := b.inner.Reorg(x, stride, dir)

	if b.tape.IsRecording() {
		b.tape.Record(ops.NewReorgOp(x, result, stride, dir))
	}

	return result
}

// ReorgInto writes into a caller-owned buffer and is not recorded.
// Layers that manage their own gradient buffers use it for both passes.
func (b *AutodiffBackend[B]) ReorgInto(dst, src *tensor.RawTensor, g tensor.ReorgGeometry, dir tensor.ReorgDirection) {
	b.inner.ReorgInto(dst, src, g, dir)
}

// ConcatChannels concatenates along the channel dimension and records the operation.
func (b *AutodiffBackend[B]) ConcatChannels(tensors ...*tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.ConcatChannels(tensors...)

	if b.tape.IsRecording() {
		inputs := append([]*tensor.RawTensor(nil), tensors...)
		b.tape.Record(ops.NewConcatOp(inputs, result))
	}

	return result
}

// SplitChannels splits along the channel dimension. It is used by ConcatOp's
// backward pass and is not recorded.
func (b *AutodiffBackend[B]) SplitChannels(x *tensor.RawTensor, sizes []int) []*tensor.RawTensor {
	return b.inner.SplitChannels(x, sizes)
}
