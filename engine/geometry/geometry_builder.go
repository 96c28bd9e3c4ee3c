package geometry

import "math/rand"

// TriangleBuilderOption is a functional option applied to a triangle during construction via NewTriangle.
type TriangleBuilderOption func(*triangle)

// WithPositions replaces the triangle's position data.
// The slice must hold exactly 9 floats (3 per vertex); other lengths are ignored.
//
// Parameters:
//   - positions: flat xyz position data for the three vertices
//
// Returns:
//   - TriangleBuilderOption: a function that applies the position option to a triangle
func WithPositions(positions []float32) TriangleBuilderOption {
	return func(t *triangle) {
		if len(positions) != len(t.positions) {
			return
		}
		copy(t.positions, positions)
	}
}

// WithColors replaces the triangle's initial color data.
// The slice must hold exactly 9 floats (3 per vertex); other lengths are ignored.
//
// Parameters:
//   - colors: flat rgb color data for the three vertices
//
// Returns:
//   - TriangleBuilderOption: a function that applies the color option to a triangle
func WithColors(colors []float32) TriangleBuilderOption {
	return func(t *triangle) {
		if len(colors) != len(t.colors) {
			return
		}
		copy(t.colors, colors)
	}
}

// WithRand sets the random source used by Jitter. When not specified, a
// time-seeded source is used. Inject a fixed-seed source for deterministic
// jitter sequences in tests.
//
// Parameters:
//   - rng: the random source to draw jitter offsets from
//
// Returns:
//   - TriangleBuilderOption: a function that applies the random source option to a triangle
func WithRand(rng *rand.Rand) TriangleBuilderOption {
	return func(t *triangle) {
		if rng != nil {
			t.rng = rng
		}
	}
}
