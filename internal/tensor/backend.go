package tensor

// Backend defines the interface that all compute backends must implement.
// Backends handle the actual computation for tensor operations.
//
// Implementations:
//   - CPU: Pure Go, parallel over batch and channel planes
//
// Decorators:
//   - autodiff.AutodiffBackend: records operations for backpropagation
type Backend interface {
	// Element-wise addition of same-shaped tensors (gradient accumulation).
	Add(a, b *RawTensor) *RawTensor

	// Reorg allocates and returns x reorganized in direction dir.
	// Panics if the shape is not divisible by the stride.
	Reorg(x *RawTensor, stride int, dir ReorgDirection) *RawTensor

	// ReorgInto writes src reorganized in direction dir into dst.
	// For Pack, src is the spatial side and dst the packed side of g;
	// for Unpack the roles swap.
	ReorgInto(dst, src *RawTensor, g ReorgGeometry, dir ReorgDirection)

	// Channel manipulation for 4D [N,C,H,W] tensors.
	ConcatChannels(tensors ...*RawTensor) *RawTensor      // Concatenate along C.
	SplitChannels(x *RawTensor, sizes []int) []*RawTensor // Inverse of ConcatChannels.

	// Metadata
	Name() string
	Device() Device
}
