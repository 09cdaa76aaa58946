package tensor

import "fmt"

// ReorgDirection selects which way a reorg moves data.
type ReorgDirection int

const (
	// Pack folds s×s spatial blocks into channels (space-to-depth):
	// [N, C, H, W] -> [N, C*s*s, H/s, W/s].
	Pack ReorgDirection = iota
	// Unpack spreads channel groups back over space (depth-to-space):
	// [N, C, H, W] -> [N, C/(s*s), H*s, W*s].
	Unpack
)

// Inverse returns the opposite direction.
func (d ReorgDirection) Inverse() ReorgDirection {
	if d == Pack {
		return Unpack
	}
	return Pack
}

// String returns "pack" or "unpack".
func (d ReorgDirection) String() string {
	switch d {
	case Pack:
		return "pack"
	case Unpack:
		return "unpack"
	default:
		return fmt.Sprintf("ReorgDirection(%d)", int(d))
	}
}

// ReorgGeometry describes a reorg by its channel-packed side: the tensor
// with many channels and small spatial extent. The spatial side is derived.
//
//	packed:  [Batch, Channels,       Height,   Width  ]
//	spatial: [Batch, Channels/(s*s), Height*s, Width*s]
type ReorgGeometry struct {
	Batch    int
	Channels int
	Height   int
	Width    int
	Stride   int
}

// NewReorgGeometry builds the geometry for a reorg whose packed side has
// the given NCHW shape.
func NewReorgGeometry(packed Shape, stride int) (ReorgGeometry, error) {
	n, c, h, w, err := packed.NCHW()
	if err != nil {
		return ReorgGeometry{}, err
	}
	if stride < 1 {
		return ReorgGeometry{}, &ConfigError{Field: "stride", Details: fmt.Sprintf("got %d, must be >= 1", stride)}
	}
	if c%(stride*stride) != 0 {
		return ReorgGeometry{}, &ShapeError{
			Op:      "unpack",
			Shape:   packed.Clone(),
			Stride:  stride,
			Details: fmt.Sprintf("channels %d not divisible by %d", c, stride*stride),
		}
	}
	return ReorgGeometry{Batch: n, Channels: c, Height: h, Width: w, Stride: stride}, nil
}

// SpatialChannels returns the channel count of the spatial side.
func (g ReorgGeometry) SpatialChannels() int {
	return g.Channels / (g.Stride * g.Stride)
}

// SpatialHeight returns the height of the spatial side.
func (g ReorgGeometry) SpatialHeight() int {
	return g.Height * g.Stride
}

// SpatialWidth returns the width of the spatial side.
func (g ReorgGeometry) SpatialWidth() int {
	return g.Width * g.Stride
}

// PackedShape returns the NCHW shape of the channel-packed side.
func (g ReorgGeometry) PackedShape() Shape {
	return Shape{g.Batch, g.Channels, g.Height, g.Width}
}

// SpatialShape returns the NCHW shape of the spatial side.
func (g ReorgGeometry) SpatialShape() Shape {
	return Shape{g.Batch, g.SpatialChannels(), g.SpatialHeight(), g.SpatialWidth()}
}

// NumElements returns the element count, identical on both sides.
func (g ReorgGeometry) NumElements() int {
	return g.Batch * g.Channels * g.Height * g.Width
}

// Pair returns the flat offsets that element (n, c, h, w) of the packed side
// occupies in the packed and spatial layouts.
func (g ReorgGeometry) Pair(n, c, h, w int) (packedIdx, spatialIdx int) {
	s := g.Stride
	sc := g.SpatialChannels()

	packedIdx = w + g.Width*(h+g.Height*(c+g.Channels*n))

	block := c / sc
	h2 := h*s + block/s
	w2 := w*s + block%s
	spatialIdx = w2 + g.Width*s*(h2+g.Height*s*(c%sc+sc*n))
	return packedIdx, spatialIdx
}

// ReorgShape computes the output shape of a reorg of the given input.
//
//	Pack:   [N, C, H, W] -> [N, C*s*s, H/s, W/s]   (requires H%s == 0 and W%s == 0)
//	Unpack: [N, C, H, W] -> [N, C/(s*s), H*s, W*s] (requires C%(s*s) == 0)
func ReorgShape(input Shape, stride int, dir ReorgDirection) (Shape, error) {
	if stride < 1 {
		return nil, &ConfigError{Field: "stride", Details: fmt.Sprintf("got %d, must be >= 1", stride)}
	}
	n, c, h, w, err := input.NCHW()
	if err != nil {
		return nil, &ShapeError{Op: dir.String(), Shape: input.Clone(), Stride: stride, Details: err.Error()}
	}
	if err := input.Validate(); err != nil {
		return nil, &ShapeError{Op: dir.String(), Shape: input.Clone(), Stride: stride, Details: err.Error()}
	}

	switch dir {
	case Pack:
		if h%stride != 0 || w%stride != 0 {
			return nil, &ShapeError{
				Op:      dir.String(),
				Shape:   input.Clone(),
				Stride:  stride,
				Details: fmt.Sprintf("height %d and width %d must both be divisible by %d", h, w, stride),
			}
		}
		return Shape{n, c * stride * stride, h / stride, w / stride}, nil
	case Unpack:
		if c%(stride*stride) != 0 {
			return nil, &ShapeError{
				Op:      dir.String(),
				Shape:   input.Clone(),
				Stride:  stride,
				Details: fmt.Sprintf("channels %d not divisible by %d", c, stride*stride),
			}
		}
		return Shape{n, c / (stride * stride), h * stride, w * stride}, nil
	default:
		return nil, &ConfigError{Field: "direction", Details: dir.String()}
	}
}

// ReorgGeometryFor returns the geometry of a reorg applied to input in the
// given direction. The packed side is the output for Pack and the input for
// Unpack.
func ReorgGeometryFor(input Shape, stride int, dir ReorgDirection) (ReorgGeometry, error) {
	out, err := ReorgShape(input, stride, dir)
	if err != nil {
		return ReorgGeometry{}, err
	}
	packed := out
	if dir == Unpack {
		packed = input
	}
	return ReorgGeometry{
		Batch:    packed[0],
		Channels: packed[1],
		Height:   packed[2],
		Width:    packed[3],
		Stride:   stride,
	}, nil
}
