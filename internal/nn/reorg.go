package nn

import (
	"errors"
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// ReorgConfig configures a Reorg layer.
//
// Stride is required. Reverse selects depth-to-space (Unpack); the zero
// value packs space into depth.
type ReorgConfig struct {
	Stride  int
	Reverse bool
}

// Validate checks the configuration.
func (c ReorgConfig) Validate() error {
	if c.Stride == 0 {
		return &tensor.ConfigError{Field: "stride", Details: "required"}
	}
	if c.Stride < 1 {
		return &tensor.ConfigError{Field: "stride", Details: fmt.Sprintf("got %d, must be >= 1", c.Stride)}
	}
	return nil
}

// Direction returns the forward direction selected by Reverse.
func (c ReorgConfig) Direction() tensor.ReorgDirection {
	if c.Reverse {
		return tensor.Unpack
	}
	return tensor.Pack
}

// Reorg is a space-to-depth (Pack) or depth-to-space (Unpack) layer.
//
// Pack moves every s×s spatial block into channels; Unpack is its exact
// inverse. The layer has no learnable parameters.
//
//	Pack:   [N, C, H, W] -> [N, C*s*s, H/s, W/s]
//	Unpack: [N, C, H, W] -> [N, C/(s*s), H*s, W*s]
//
// Example:
//
//	layer, err := nn.NewReorg(nn.ReorgConfig{Stride: 2}, backend)
//	if err != nil {
//	    return err
//	}
//	out := layer.Forward(input) // [2, 4, 8, 8] -> [2, 16, 4, 4]
//
// Shapes seen by the most recent Reshape (or Setup / ForwardInto) are kept so
// that Backward inverts exactly that forward pass.
type Reorg[B tensor.Backend] struct {
	stride  int
	dir     tensor.ReorgDirection
	backend B

	inputShape  tensor.Shape
	outputShape tensor.Shape
	geometry    tensor.ReorgGeometry
}

// NewReorg creates a new Reorg layer.
//
// Returns a *tensor.ConfigError when the stride is missing or not positive.
func NewReorg[B tensor.Backend](cfg ReorgConfig, backend B) (*Reorg[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Reorg[B]{
		stride:  cfg.Stride,
		dir:     cfg.Direction(),
		backend: backend,
	}, nil
}

// InferOutputShape returns the output shape for the given input shape
// without changing the layer's state.
func (r *Reorg[B]) InferOutputShape(input tensor.Shape) (tensor.Shape, error) {
	return tensor.ReorgShape(input, r.stride, r.dir)
}

// Setup validates a pair of buffers and records their shapes for Backward.
// Input and output must not share storage and must have the same dtype.
// On error the shapes of the previous forward pass are kept.
func (r *Reorg[B]) Setup(input, output *tensor.RawTensor) error {
	if input.SharesStorage(output) {
		return fmt.Errorf("reorg setup: %w", tensor.ErrInPlace)
	}
	g, out, err := r.plan(input.Shape())
	if err != nil {
		return err
	}
	if !output.Shape().Equal(out) {
		return fmt.Errorf("reorg setup: output shape %v, want %v", output.Shape(), out)
	}
	if input.DType() != output.DType() {
		return fmt.Errorf("reorg setup: dtype mismatch: input %s, output %s", input.DType(), output.DType())
	}
	r.record(input.Shape(), out, g)
	return nil
}

// Reshape recomputes the output shape for a (possibly new) input shape and
// stores both for the next Backward. On error nothing is stored.
func (r *Reorg[B]) Reshape(input tensor.Shape) (tensor.Shape, error) {
	g, out, err := r.plan(input)
	if err != nil {
		return nil, err
	}
	r.record(input, out, g)
	return out.Clone(), nil
}

func (r *Reorg[B]) plan(input tensor.Shape) (tensor.ReorgGeometry, tensor.Shape, error) {
	g, err := tensor.ReorgGeometryFor(input, r.stride, r.dir)
	if err != nil {
		return tensor.ReorgGeometry{}, nil, err
	}
	if r.dir == tensor.Unpack {
		return g, g.SpatialShape(), nil
	}
	return g, g.PackedShape(), nil
}

func (r *Reorg[B]) record(input, output tensor.Shape, g tensor.ReorgGeometry) {
	r.inputShape = input.Clone()
	r.outputShape = output.Clone()
	r.geometry = g
}

// ForwardInto writes the reorganized input into output.
//
// The input is only read. Output must have the shape InferOutputShape
// reports and the input's dtype, and must not share storage with input.
// A rejected call leaves the layer's recorded shapes unchanged.
func (r *Reorg[B]) ForwardInto(input, output *tensor.RawTensor) error {
	if err := r.Setup(input, output); err != nil {
		return err
	}
	r.backend.ReorgInto(output, input, r.geometry, r.dir)
	return nil
}

// Forward performs the forward pass.
//
// Panics on a shape the configured stride cannot divide. When the backend
// records gradients the reorg is recorded on its tape.
func (r *Reorg[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if _, err := r.Reshape(input.Shape()); err != nil {
		panic(fmt.Sprintf("reorg: %v", err))
	}
	return input.Reorg(r.stride, r.dir)
}

// Backward propagates outputGrad to inputGrad with the inverse permutation.
//
// If propagateDown is empty or its first flag is false nothing is read or
// written. Otherwise outputGrad must have the output shape and inputGrad the
// input shape recorded by the last forward pass, and the two must not share
// storage.
func (r *Reorg[B]) Backward(outputGrad *tensor.RawTensor, propagateDown []bool, inputGrad *tensor.RawTensor) error {
	if len(propagateDown) == 0 || !propagateDown[0] {
		return nil
	}
	if r.inputShape == nil {
		return errors.New("reorg backward: no forward pass recorded")
	}
	if !outputGrad.Shape().Equal(r.outputShape) {
		return fmt.Errorf("reorg backward: output gradient shape %v, want %v", outputGrad.Shape(), r.outputShape)
	}
	if !inputGrad.Shape().Equal(r.inputShape) {
		return fmt.Errorf("reorg backward: input gradient shape %v, want %v", inputGrad.Shape(), r.inputShape)
	}
	if outputGrad.DType() != inputGrad.DType() {
		return fmt.Errorf("reorg backward: dtype mismatch: output gradient %s, input gradient %s",
			outputGrad.DType(), inputGrad.DType())
	}
	if outputGrad.SharesStorage(inputGrad) {
		return fmt.Errorf("reorg backward: %w", tensor.ErrInPlace)
	}

	r.backend.ReorgInto(inputGrad, outputGrad, r.geometry, r.dir.Inverse())
	return nil
}

// String returns a string representation of the layer.
func (r *Reorg[B]) String() string {
	return fmt.Sprintf("Reorg(stride=%d, direction=%s)", r.stride, r.dir)
}

// Stride returns the stride.
func (r *Reorg[B]) Stride() int {
	return r.stride
}

// Direction returns the forward direction.
func (r *Reorg[B]) Direction() tensor.ReorgDirection {
	return r.dir
}

// InputShape returns the input shape recorded by the last forward pass, or
// nil before the first one.
func (r *Reorg[B]) InputShape() tensor.Shape {
	if r.inputShape == nil {
		return nil
	}
	return r.inputShape.Clone()
}
