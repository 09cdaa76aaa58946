// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/reorg/internal/tensor"

// Backend defines the interface that all compute backends must implement.
//
// Implementations:
//   - backend/cpu: Pure Go, parallel over batch and channel planes
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
type Backend interface {
	// Add is element-wise addition, used to accumulate gradients.
	Add(a, b *RawTensor) *RawTensor

	// Reorg allocates and returns x reorganized with stride in direction dir.
	Reorg(x *RawTensor, stride int, dir ReorgDirection) *RawTensor
	// ReorgInto writes src reorganized in direction dir into dst.
	ReorgInto(dst, src *RawTensor, g ReorgGeometry, dir ReorgDirection)

	// Channel concatenation and its inverse.
	ConcatChannels(tensors ...*RawTensor) *RawTensor
	SplitChannels(x *RawTensor, sizes []int) []*RawTensor

	// Metadata.
	Name() string
	Device() Device
}

// Compile-time check that the public and internal interfaces agree.
var _ tensor.Backend = Backend(nil)
