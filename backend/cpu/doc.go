// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for the reorg module.
//
// # Overview
//
// The backend implements:
//   - Reorg (space-to-depth / depth-to-space) for every supported dtype
//   - Channel concatenation and split
//   - Element-wise addition for gradient accumulation
//
// Reorg fans out over (batch, channel) planes on all CPUs and copies each
// strided row with gonum BLAS for float data.
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
//	    x := tensor.Zeros[float32](tensor.Shape{2, 4, 8, 8}, backend)
//	    y := x.Reorg(2, tensor.Pack)
//	}
//
// Use NewSequential for single-threaded execution.
package cpu
