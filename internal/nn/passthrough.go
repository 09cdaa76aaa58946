package nn

import (
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// Passthrough fuses a fine feature map into a coarser one.
//
// The fine map is packed with the configured stride so its spatial size
// matches the coarse map, then the two are concatenated along channels:
//
//	fine:   [N, Cf, H*s, W*s]
//	coarse: [N, Cc, H, W]
//	output: [N, Cf*s*s + Cc, H, W]
//
// Example:
//
//	route, _ := nn.NewPassthrough(2, backend)
//	fused := route.Forward(fine, coarse) // [1, 64, 26, 26] + [1, 1024, 13, 13] -> [1, 1280, 13, 13]
type Passthrough[B tensor.Backend] struct {
	reorg *Reorg[B]
}

// NewPassthrough creates a passthrough with the given stride.
func NewPassthrough[B tensor.Backend](stride int, backend B) (*Passthrough[B], error) {
	r, err := NewReorg(ReorgConfig{Stride: stride}, backend)
	if err != nil {
		return nil, err
	}
	return &Passthrough[B]{reorg: r}, nil
}

// InferOutputShape returns the fused shape for the given fine and coarse shapes.
func (p *Passthrough[B]) InferOutputShape(fine, coarse tensor.Shape) (tensor.Shape, error) {
	packed, err := p.reorg.InferOutputShape(fine)
	if err != nil {
		return nil, err
	}
	n, c, h, w, err := coarse.NCHW()
	if err != nil {
		return nil, fmt.Errorf("coarse map: %w", err)
	}
	if packed[0] != n || packed[2] != h || packed[3] != w {
		return nil, fmt.Errorf("packed fine map %v does not match coarse map %v", packed, coarse)
	}
	return tensor.Shape{n, packed[1] + c, h, w}, nil
}

// Forward packs fine and concatenates it in front of coarse.
//
// Panics when the shapes cannot be fused.
func (p *Passthrough[B]) Forward(fine, coarse *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if _, err := p.InferOutputShape(fine.Shape(), coarse.Shape()); err != nil {
		panic(fmt.Sprintf("passthrough: %v", err))
	}
	return tensor.ConcatChannels(p.reorg.Forward(fine), coarse)
}

// Reorg returns the underlying reorg layer.
func (p *Passthrough[B]) Reorg() *Reorg[B] {
	return p.reorg
}

// String returns a string representation of the layer.
func (p *Passthrough[B]) String() string {
	return fmt.Sprintf("Passthrough(stride=%d)", p.reorg.Stride())
}
