package cpu

import (
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// ConcatChannels concatenates 4D tensors along the channel dimension.
//
// All tensors must share batch, height, width and dtype.
//
// Example:
//
//	fine := backend.Reorg(x, 2, tensor.Pack)       // [N, 256, 13, 13]
//	out := backend.ConcatChannels(fine, coarse)    // [N, 256+1024, 13, 13]
func (cpu *CPUBackend) ConcatChannels(tensors ...*tensor.RawTensor) *tensor.RawTensor {
	if len(tensors) == 0 {
		panic("concat: at least one tensor required")
	}

	first := tensors[0].Shape()
	if len(first) != 4 {
		panic(fmt.Sprintf("concat: expected 4D tensors [N,C,H,W], got %dD", len(first)))
	}
	dtype := tensors[0].DType()

	total := 0
	for i, t := range tensors {
		s := t.Shape()
		if len(s) != 4 {
			panic(fmt.Sprintf("concat: tensor %d has %d dimensions, expected 4", i, len(s)))
		}
		if t.DType() != dtype {
			panic(fmt.Sprintf("concat: tensor %d has dtype %s, expected %s", i, t.DType(), dtype))
		}
		if s[0] != first[0] || s[2] != first[2] || s[3] != first[3] {
			panic(fmt.Sprintf("concat: tensor %d shape %v incompatible with %v", i, s, first))
		}
		total += s[1]
	}

	result, err := tensor.NewRaw(tensor.Shape{first[0], total, first[2], first[3]}, dtype, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("concat: %v", err))
	}

	// Each batch item is one contiguous run per input; copy bytes directly.
	plane := first[2] * first[3] * dtype.Size()
	out := result.Data()
	for n := 0; n < first[0]; n++ {
		offset := n * total * plane
		for _, t := range tensors {
			run := t.Shape()[1] * plane
			copy(out[offset:offset+run], t.Data()[n*run:(n+1)*run])
			offset += run
		}
	}

	return result
}

// SplitChannels splits a 4D tensor along the channel dimension into parts
// with the given channel counts. It is the inverse of ConcatChannels.
func (cpu *CPUBackend) SplitChannels(x *tensor.RawTensor, sizes []int) []*tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("split: expected 4D tensor [N,C,H,W], got %dD", len(shape)))
	}

	sum := 0
	for _, c := range sizes {
		if c <= 0 {
			panic(fmt.Sprintf("split: invalid channel count %d", c))
		}
		sum += c
	}
	if sum != shape[1] {
		panic(fmt.Sprintf("split: sizes %v sum to %d, tensor has %d channels", sizes, sum, shape[1]))
	}

	plane := shape[2] * shape[3] * x.DType().Size()
	src := x.Data()
	parts := make([]*tensor.RawTensor, len(sizes))
	channelOffset := 0
	for i, c := range sizes {
		part, err := tensor.NewRaw(tensor.Shape{shape[0], c, shape[2], shape[3]}, x.DType(), cpu.device)
		if err != nil {
			panic(fmt.Sprintf("split: %v", err))
		}
		dst := part.Data()
		run := c * plane
		for n := 0; n < shape[0]; n++ {
			start := (n*shape[1] + channelOffset) * plane
			copy(dst[n*run:(n+1)*run], src[start:start+run])
		}
		parts[i] = part
		channelOffset += c
	}
	return parts
}
