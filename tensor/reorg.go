// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/reorg/internal/tensor"
)

// ReorgDirection selects space-to-depth (Pack) or depth-to-space (Unpack).
type ReorgDirection = tensor.ReorgDirection

// Reorg directions.
const (
	Pack   ReorgDirection = tensor.Pack
	Unpack ReorgDirection = tensor.Unpack
)

// ReorgGeometry describes the channel-packed side of a reorg.
type ReorgGeometry = tensor.ReorgGeometry

// ReorgShape computes the output shape of a reorg of the given input.
//
//	Pack:   [N, C, H, W] -> [N, C*s*s, H/s, W/s]
//	Unpack: [N, C, H, W] -> [N, C/(s*s), H*s, W*s]
func ReorgShape(input Shape, stride int, dir ReorgDirection) (Shape, error) {
	return tensor.ReorgShape(input, stride, dir)
}

// ReorgGeometryFor returns the geometry of a reorg applied to input.
func ReorgGeometryFor(input Shape, stride int, dir ReorgDirection) (ReorgGeometry, error) {
	return tensor.ReorgGeometryFor(input, stride, dir)
}

// NewReorgGeometry returns the geometry for a packed-side shape.
func NewReorgGeometry(packed Shape, stride int) (ReorgGeometry, error) {
	return tensor.NewReorgGeometry(packed, stride)
}

// Errors.
var (
	ErrConfig  = tensor.ErrConfig
	ErrShape   = tensor.ErrShape
	ErrInPlace = tensor.ErrInPlace
)

// ConfigError describes a rejected operator configuration.
type ConfigError = tensor.ConfigError

// ShapeError describes an input shape the stride cannot divide.
type ShapeError = tensor.ShapeError
