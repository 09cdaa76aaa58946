// Package cpu implements the CPU backend in pure Go.
//
// Reorg kernels fan batch/channel planes out over goroutines and copy rows
// with gonum BLAS strided copies for float data.
package cpu

import (
	"fmt"

	"github.com/born-ml/reorg/internal/parallel"
	"github.com/born-ml/reorg/internal/tensor"
)

// CPUBackend implements tensor operations on CPU.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

// New creates a new CPU backend using all available cores.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
// Pass parallel.Sequential() to force single-threaded execution.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Parallelism returns the backend's parallel execution settings.
func (cpu *CPUBackend) Parallelism() parallel.Config {
	return cpu.par
}

// Add performs element-wise addition of two tensors with the same shape.
// Used by the gradient tape to accumulate gradients.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("add: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}
	if a.DType() != b.DType() {
		panic(fmt.Sprintf("add: dtype mismatch %s vs %s", a.DType(), b.DType()))
	}

	result, err := tensor.NewRaw(a.Shape(), a.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("add: failed to create result tensor: %v", err))
	}

	switch a.DType() {
	case tensor.Float32:
		addSlices(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), cpu.par)
	case tensor.Float64:
		addSlices(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), cpu.par)
	case tensor.Int32:
		addSlices(result.AsInt32(), a.AsInt32(), b.AsInt32(), cpu.par)
	case tensor.Int64:
		addSlices(result.AsInt64(), a.AsInt64(), b.AsInt64(), cpu.par)
	case tensor.Uint8:
		addSlices(result.AsUint8(), a.AsUint8(), b.AsUint8(), cpu.par)
	default:
		panic(fmt.Sprintf("add: unsupported dtype %s", a.DType()))
	}

	return result
}

func addSlices[T tensor.Numeric](dst, a, b []T, cfg parallel.Config) {
	parallel.For(len(dst), func(i int) {
		dst[i] = a[i] + b[i]
	}, cfg)
}
