package tensor

import "fmt"

// Verify that MockBackend implements Backend.
var _ Backend = (*MockBackend)(nil)

// MockBackend is a simple backend for testing.
// It implements all operations naively, element by element at the byte
// level, for correctness verification of the real backends.
type MockBackend struct{}

// NewMockBackend creates a new MockBackend.
func NewMockBackend() *MockBackend {
	return &MockBackend{}
}

// Name returns the backend name.
func (m *MockBackend) Name() string {
	return "mock"
}

// Device returns the device type.
func (m *MockBackend) Device() Device {
	return CPU
}

// Add performs element-wise addition of same-shaped float tensors.
func (m *MockBackend) Add(a, b *RawTensor) *RawTensor {
	if !a.Shape().Equal(b.Shape()) {
		panic(fmt.Sprintf("mock add: shape mismatch %v vs %v", a.Shape(), b.Shape()))
	}
	out, err := NewRaw(a.Shape(), a.DType(), CPU)
	if err != nil {
		panic(err)
	}
	switch a.DType() {
	case Float32:
		ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
		for i := range od {
			od[i] = ad[i] + bd[i]
		}
	case Float64:
		ad, bd, od := a.AsFloat64(), b.AsFloat64(), out.AsFloat64()
		for i := range od {
			od[i] = ad[i] + bd[i]
		}
	default:
		panic(fmt.Sprintf("mock add: unsupported dtype %s", a.DType()))
	}
	return out
}

// Reorg reorganizes x one element at a time using ReorgGeometry.Pair.
func (m *MockBackend) Reorg(x *RawTensor, stride int, dir ReorgDirection) *RawTensor {
	g, err := ReorgGeometryFor(x.Shape(), stride, dir)
	if err != nil {
		panic(fmt.Sprintf("mock reorg: %v", err))
	}
	outShape := g.PackedShape()
	if dir == Unpack {
		outShape = g.SpatialShape()
	}
	out, err := NewRaw(outShape, x.DType(), CPU)
	if err != nil {
		panic(err)
	}
	m.ReorgInto(out, x, g, dir)
	return out
}

// ReorgInto copies every element between the packed and spatial layouts.
func (m *MockBackend) ReorgInto(dst, src *RawTensor, g ReorgGeometry, dir ReorgDirection) {
	size := src.DType().Size()
	d, s := dst.Data(), src.Data()
	for n := 0; n < g.Batch; n++ {
		for c := 0; c < g.Channels; c++ {
			for h := 0; h < g.Height; h++ {
				for w := 0; w < g.Width; w++ {
					p, q := g.Pair(n, c, h, w)
					if dir == Pack {
						copy(d[p*size:(p+1)*size], s[q*size:(q+1)*size])
					} else {
						copy(d[q*size:(q+1)*size], s[p*size:(p+1)*size])
					}
				}
			}
		}
	}
}

// ConcatChannels concatenates 4D tensors along dimension 1.
func (m *MockBackend) ConcatChannels(tensors ...*RawTensor) *RawTensor {
	first := tensors[0].Shape()
	total := 0
	for _, t := range tensors {
		total += t.Shape()[1]
	}
	out, err := NewRaw(Shape{first[0], total, first[2], first[3]}, tensors[0].DType(), CPU)
	if err != nil {
		panic(err)
	}
	plane := first[2] * first[3] * tensors[0].DType().Size()
	od := out.Data()
	for n := 0; n < first[0]; n++ {
		cOff := 0
		for _, t := range tensors {
			c := t.Shape()[1]
			src := t.Data()[n*c*plane : (n+1)*c*plane]
			dstStart := (n*total + cOff) * plane
			copy(od[dstStart:dstStart+c*plane], src)
			cOff += c
		}
	}
	return out
}

// SplitChannels splits a 4D tensor along dimension 1.
func (m *MockBackend) SplitChannels(x *RawTensor, sizes []int) []*RawTensor {
	shape := x.Shape()
	plane := shape[2] * shape[3] * x.DType().Size()
	parts := make([]*RawTensor, len(sizes))
	cOff := 0
	for i, c := range sizes {
		part, err := NewRaw(Shape{shape[0], c, shape[2], shape[3]}, x.DType(), CPU)
		if err != nil {
			panic(err)
		}
		pd := part.Data()
		for n := 0; n < shape[0]; n++ {
			srcStart := (n*shape[1] + cOff) * plane
			copy(pd[n*c*plane:(n+1)*c*plane], x.Data()[srcStart:srcStart+c*plane])
		}
		parts[i] = part
		cOff += c
	}
	return parts
}
