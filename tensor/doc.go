// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public tensor API of the reorg module.
//
// # Overview
//
// This package provides:
//   - Generic type-safe tensors (Tensor[T, B]) over NCHW buffers
//   - RawTensor, the reference-counted byte buffer underneath
//   - Reorg shape algebra: ReorgShape, ReorgGeometry, Pack and Unpack
//   - Typed errors: ErrConfig, ErrShape, ErrInPlace
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/reorg/backend/cpu"
//	    "github.com/born-ml/reorg/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.Arange[float32](tensor.Shape{2, 4, 8, 8}, backend)
//	    packed := x.Reorg(2, tensor.Pack)         // [2, 16, 4, 4]
//	    back := packed.Reorg(2, tensor.Unpack)    // [2, 4, 8, 8], equal to x
//	}
//
// # Layout
//
// Tensors are dense row-major NCHW. Element (n, c, h, w) lives at
// w + W*(h + H*(c + C*n)).
package tensor
