// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/reorg/internal/nn"
	"github.com/born-ml/reorg/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// ShapeInferer is implemented by modules that report their output shape.
type ShapeInferer = nn.ShapeInferer

// ReorgConfig configures a Reorg layer.
type ReorgConfig = nn.ReorgConfig

// Reorg is the space-to-depth / depth-to-space layer.
type Reorg[B tensor.Backend] = nn.Reorg[B]

// NewReorg creates a new Reorg layer.
//
// Example:
//
//	backend := cpu.New()
//	layer, err := nn.NewReorg(nn.ReorgConfig{Stride: 2, Reverse: true}, backend)
func NewReorg[B tensor.Backend](cfg ReorgConfig, backend B) (*Reorg[B], error) {
	return nn.NewReorg(cfg, backend)
}

// Passthrough fuses a fine feature map into a coarser one.
type Passthrough[B tensor.Backend] = nn.Passthrough[B]

// NewPassthrough creates a passthrough with the given stride.
func NewPassthrough[B tensor.Backend](stride int, backend B) (*Passthrough[B], error) {
	return nn.NewPassthrough(stride, backend)
}

// Sequential chains modules together.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential(modules...)
}
