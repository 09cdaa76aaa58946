// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the reorg layers.
//
// # Overview
//
// This package contains:
//   - Reorg: space-to-depth (Pack) or depth-to-space (Unpack) layer
//   - Passthrough: packs a fine feature map and concatenates it with a
//     coarse one, as in YOLOv2's route/reorg
//   - Sequential, Module, ShapeInferer
//
// # Basic Usage
//
//	backend := cpu.New()
//	layer, err := nn.NewReorg(nn.ReorgConfig{Stride: 2}, backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := layer.Forward(x) // [N, C, H, W] -> [N, 4C, H/2, W/2]
//
// # Raw buffers
//
// ForwardInto and Backward work on caller-owned RawTensors and return errors
// instead of panicking:
//
//	if err := layer.ForwardInto(input, output); err != nil { ... }
//	if err := layer.Backward(outputGrad, []bool{true}, inputGrad); err != nil { ... }
//
// Backward does nothing when the needs-gradient flag is false.
package nn
