package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/reorg/internal/parallel"
	"github.com/born-ml/reorg/internal/tensor"
)

// ReorgTransform is the sequential reference reorg over flat NCHW buffers.
//
// g describes the channel-packed side. For every element (n, c, h, w) of
// that side, with sc = C/(s*s) and block = c/sc:
//
//	packed  = w + W*(h + H*(c + C*n))
//	spatial = (w*s + block%s) + W*s*((h*s + block/s) + H*s*(c%sc + sc*n))
//
// Packed channels are block-major: channel c holds offset (dy, dx) of the
// s×s block, with block = dy*s + dx, taken from original channel c%sc. The
// spatial side is always the large one whichever way data moves.
//
// Pack gathers dst[packed] = src[spatial]; Unpack scatters
// dst[spatial] = src[packed]. Both buffers must hold g.NumElements() values
// and must not overlap. No validation is done here.
func ReorgTransform[T tensor.Numeric](dst, src []T, g tensor.ReorgGeometry, dir tensor.ReorgDirection) {
	for n := 0; n < g.Batch; n++ {
		for c := 0; c < g.Channels; c++ {
			reorgPlane(dst, src, g, dir, n, c)
		}
	}
}

// reorgPlane moves one packed channel plane (n, c).
func reorgPlane[T tensor.Numeric](dst, src []T, g tensor.ReorgGeometry, dir tensor.ReorgDirection, n, c int) {
	for h := 0; h < g.Height; h++ {
		for w := 0; w < g.Width; w++ {
			p, q := g.Pair(n, c, h, w)
			if dir == tensor.Pack {
				dst[p] = src[q]
			} else {
				dst[q] = src[p]
			}
		}
	}
}

// reorgPlaneFloat32 moves one packed plane row by row. Consecutive packed
// columns sit s apart on the spatial side, so each row is one strided copy.
func reorgPlaneFloat32(dst, src []float32, g tensor.ReorgGeometry, dir tensor.ReorgDirection, n, c int) {
	for h := 0; h < g.Height; h++ {
		p, q := g.Pair(n, c, h, 0)
		packed := blas32.Vector{N: g.Width, Inc: 1}
		spatial := blas32.Vector{N: g.Width, Inc: g.Stride}
		if dir == tensor.Pack {
			spatial.Data, packed.Data = src[q:], dst[p:]
			blas32.Copy(spatial, packed)
		} else {
			packed.Data, spatial.Data = src[p:], dst[q:]
			blas32.Copy(packed, spatial)
		}
	}
}

func reorgPlaneFloat64(dst, src []float64, g tensor.ReorgGeometry, dir tensor.ReorgDirection, n, c int) {
	for h := 0; h < g.Height; h++ {
		p, q := g.Pair(n, c, h, 0)
		packed := blas64.Vector{N: g.Width, Inc: 1}
		spatial := blas64.Vector{N: g.Width, Inc: g.Stride}
		if dir == tensor.Pack {
			spatial.Data, packed.Data = src[q:], dst[p:]
			blas64.Copy(spatial, packed)
		} else {
			packed.Data, spatial.Data = src[p:], dst[q:]
			blas64.Copy(packed, spatial)
		}
	}
}

// ReorgTransformParallel computes the same mapping as ReorgTransform with
// the batch/channel loops spread over goroutines. No two planes write the
// same destination offset, so the only synchronization is the final barrier.
func ReorgTransformParallel[T tensor.Numeric](dst, src []T, g tensor.ReorgGeometry, dir tensor.ReorgDirection, cfg parallel.Config) {
	plane := g.Height * g.Width
	switch d := any(dst).(type) {
	case []float32:
		s := any(src).([]float32)
		parallel.ForBatch(g.Batch, g.Channels, plane, func(n, c int) {
			reorgPlaneFloat32(d, s, g, dir, n, c)
		}, cfg)
	case []float64:
		s := any(src).([]float64)
		parallel.ForBatch(g.Batch, g.Channels, plane, func(n, c int) {
			reorgPlaneFloat64(d, s, g, dir, n, c)
		}, cfg)
	default:
		parallel.ForBatch(g.Batch, g.Channels, plane, func(n, c int) {
			reorgPlane(dst, src, g, dir, n, c)
		}, cfg)
	}
}

// Reorg rearranges a 4D tensor between spatial and channel-packed layouts.
//
//	Pack:   [N, C, H, W] -> [N, C*s*s, H/s, W/s]
//	Unpack: [N, C, H, W] -> [N, C/(s*s), H*s, W*s]
//
// Example (Pack, stride 2, one channel):
//
//	Input: [[ 0, 1, 2, 3],    Output channels:
//	        [ 4, 5, 6, 7],      c0: [[0, 2], [ 8, 10]]
//	        [ 8, 9,10,11],      c1: [[1, 3], [ 9, 11]]
//	        [12,13,14,15]]      c2: [[4, 6], [12, 14]]
//	                            c3: [[5, 7], [13, 15]]
//
// Panics if the input shape is not divisible by the stride.
func (cpu *CPUBackend) Reorg(x *tensor.RawTensor, stride int, dir tensor.ReorgDirection) *tensor.RawTensor {
	g, err := tensor.ReorgGeometryFor(x.Shape(), stride, dir)
	if err != nil {
		panic(fmt.Sprintf("reorg: %v", err))
	}

	outShape := g.PackedShape()
	if dir == tensor.Unpack {
		outShape = g.SpatialShape()
	}
	output, err := tensor.NewRaw(outShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reorg: failed to create output: %v", err))
	}

	cpu.ReorgInto(output, x, g, dir)
	return output
}

// ReorgInto writes src reorganized in direction dir into dst.
//
// For Pack, src must have g.SpatialShape() and dst g.PackedShape();
// for Unpack the roles swap. Panics on shape, dtype or aliasing violations.
func (cpu *CPUBackend) ReorgInto(dst, src *tensor.RawTensor, g tensor.ReorgGeometry, dir tensor.ReorgDirection) {
	if err := checkReorgOperands(dst, src, g, dir); err != nil {
		panic(fmt.Sprintf("reorg: %v", err))
	}

	switch src.DType() {
	case tensor.Float32:
		ReorgTransformParallel(dst.AsFloat32(), src.AsFloat32(), g, dir, cpu.par)
	case tensor.Float64:
		ReorgTransformParallel(dst.AsFloat64(), src.AsFloat64(), g, dir, cpu.par)
	case tensor.Int32:
		ReorgTransformParallel(dst.AsInt32(), src.AsInt32(), g, dir, cpu.par)
	case tensor.Int64:
		ReorgTransformParallel(dst.AsInt64(), src.AsInt64(), g, dir, cpu.par)
	case tensor.Uint8:
		ReorgTransformParallel(dst.AsUint8(), src.AsUint8(), g, dir, cpu.par)
	default:
		panic(fmt.Sprintf("reorg: unsupported dtype %s", src.DType()))
	}
}

func checkReorgOperands(dst, src *tensor.RawTensor, g tensor.ReorgGeometry, dir tensor.ReorgDirection) error {
	if g.Stride < 1 || g.Channels%(g.Stride*g.Stride) != 0 {
		return fmt.Errorf("invalid geometry %+v", g)
	}
	if src.DType() != dst.DType() {
		return fmt.Errorf("dtype mismatch: src %s, dst %s", src.DType(), dst.DType())
	}
	if dst.SharesStorage(src) {
		return fmt.Errorf("%w: source and destination share storage", tensor.ErrInPlace)
	}

	wantSrc, wantDst := g.SpatialShape(), g.PackedShape()
	if dir == tensor.Unpack {
		wantSrc, wantDst = wantDst, wantSrc
	}
	if !src.Shape().Equal(wantSrc) {
		return fmt.Errorf("%s source shape %v, want %v", dir, src.Shape(), wantSrc)
	}
	if !dst.Shape().Equal(wantDst) {
		return fmt.Errorf("%s destination shape %v, want %v", dir, dst.Shape(), wantDst)
	}
	return nil
}
