// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/reorg/internal/tensor"
)

// RawTensor is the low-level tensor representation.
//
// RawTensor provides:
//   - Shape and type information via Shape(), DType(), Device()
//   - Type-safe data access via AsFloat32(), AsInt64(), etc.
//   - Zero-copy reshaping via View()
//   - Storage overlap checks via SharesStorage()
//
// Example:
//
//	raw, _ := tensor.NewRaw(tensor.Shape{1, 4, 2, 2}, tensor.Float32, tensor.CPU)
//	data := raw.AsFloat32()
//	view, _ := raw.View(tensor.Shape{1, 1, 4, 4}) // same buffer
type RawTensor = tensor.RawTensor

// NewRaw creates a new raw tensor with the given shape, data type, and device.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}
