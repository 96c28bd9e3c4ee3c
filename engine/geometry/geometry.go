package geometry

import (
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/flicker-go/common"
)

// triangle is the implementation of the Triangle interface.
// It holds the fixed vertex data for a single triangle: three positions,
// three mutable colors, and the index sequence [0, 1, 2].
type triangle struct {
	// positions is the flat xyz position data for the three vertices (9 floats).
	// Never mutated after construction.
	positions []float32

	// colors is the flat rgb color data for the three vertices (9 floats).
	// Mutated by Jitter every frame.
	colors []float32

	// indices is always [0, 1, 2] and never changes.
	indices []uint16

	// rng drives the per-channel color jitter. Injectable for deterministic tests.
	rng *rand.Rand
}

// Triangle defines the vertex data for a single jittering triangle. Positions and
// indices are fixed for the lifetime of the value; colors drift by a small random
// offset each time Jitter is called. The byte accessors expose the data in the
// tightly packed layout the renderer uploads to the GPU.
type Triangle interface {
	// Positions returns a copy of the flat xyz position data (9 floats, 3 per vertex).
	//
	// Returns:
	//   - []float32: copy of the position data
	Positions() []float32

	// Colors returns a copy of the flat rgb color data (9 floats, 3 per vertex).
	//
	// Returns:
	//   - []float32: copy of the current color data
	Colors() []float32

	// Indices returns a copy of the triangle's index sequence.
	//
	// Returns:
	//   - []uint16: always [0, 1, 2]
	Indices() []uint16

	// IndexCount returns the number of indices in the triangle.
	//
	// Returns:
	//   - int: always 3
	IndexCount() int

	// Jitter adds an independent pseudo-random offset drawn uniformly from
	// [-0.25, +0.25) to every color channel of every vertex. Values are not
	// clamped; colors drift without bound across repeated calls and the GPU
	// decides how out-of-range channel values appear.
	Jitter()

	// PositionBytes returns the position data as a byte view suitable for GPU upload.
	// The view shares memory with the triangle - do not modify or retain it.
	//
	// Returns:
	//   - []byte: 36-byte view of the position data
	PositionBytes() []byte

	// ColorBytes returns the current color data as a byte view suitable for GPU upload.
	// The view shares memory with the triangle - do not modify or retain it.
	//
	// Returns:
	//   - []byte: 36-byte view of the color data
	ColorBytes() []byte

	// IndexBytes returns the index data as a byte view suitable for GPU upload.
	// The view shares memory with the triangle - do not modify or retain it.
	//
	// Returns:
	//   - []byte: 6-byte view of the index data
	IndexBytes() []byte
}

var _ Triangle = &triangle{}

// NewTriangle creates a Triangle with the default positions (apex up, centered)
// and the default red/green/blue corner colors, then applies the given options.
//
// Parameters:
//   - options: functional options to configure the triangle
//
// Returns:
//   - Triangle: the configured triangle
func NewTriangle(options ...TriangleBuilderOption) Triangle {
	t := &triangle{
		positions: []float32{
			0.0, 0.5, 0.0,
			-0.5, -0.5, 0.0,
			0.5, -0.5, 0.0,
		},
		colors: []float32{
			1.0, 0.0, 0.0,
			0.0, 1.0, 0.0,
			0.0, 0.0, 1.0,
		},
		indices: []uint16{0, 1, 2},
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *triangle) Positions() []float32 {
	cp := make([]float32, len(t.positions))
	copy(cp, t.positions)
	return cp
}

func (t *triangle) Colors() []float32 {
	cp := make([]float32, len(t.colors))
	copy(cp, t.colors)
	return cp
}

func (t *triangle) Indices() []uint16 {
	cp := make([]uint16, len(t.indices))
	copy(cp, t.indices)
	return cp
}

func (t *triangle) IndexCount() int {
	return len(t.indices)
}

func (t *triangle) Jitter() {
	for i := range t.colors {
		t.colors[i] += float32((t.rng.Float64() - 0.5) * 0.5)
	}
}

func (t *triangle) PositionBytes() []byte {
	return common.SliceToBytes(t.positions)
}

func (t *triangle) ColorBytes() []byte {
	return common.SliceToBytes(t.colors)
}

func (t *triangle) IndexBytes() []byte {
	return common.SliceToBytes(t.indices)
}
