package nn

import (
	"fmt"

	"github.com/born-ml/reorg/internal/tensor"
)

// Sequential chains modules; each output becomes the next input.
//
// Example:
//
//	pack, _ := nn.NewReorg(nn.ReorgConfig{Stride: 2}, backend)
//	unpack, _ := nn.NewReorg(nn.ReorgConfig{Stride: 2, Reverse: true}, backend)
//	model := nn.NewSequential[Backend](pack, unpack)
//	output := model.Forward(input) // equal to input
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// InferOutputShape threads input through every module's shape inference.
// Every module must implement ShapeInferer.
func (s *Sequential[B]) InferOutputShape(input tensor.Shape) (tensor.Shape, error) {
	shape := input.Clone()
	for i, module := range s.modules {
		inferer, ok := module.(ShapeInferer)
		if !ok {
			return nil, fmt.Errorf("sequential: module %d (%T) cannot infer its output shape", i, module)
		}
		next, err := inferer.InferOutputShape(shape)
		if err != nil {
			return nil, fmt.Errorf("sequential: module %d: %w", i, err)
		}
		shape = next
	}
	return shape, nil
}

// Add appends a module to the sequence.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}
