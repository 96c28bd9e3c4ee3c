package engine

import (
	"github.com/Carmen-Shannon/flicker-go/engine/renderer"
	"github.com/Carmen-Shannon/flicker-go/engine/window"
)

// EngineBuilderOption is a functional option applied to an engine during construction via NewEngine.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: the window to attach
//
// Returns:
//   - EngineBuilderOption: a function that applies the window option to an engine
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer attaches the renderer invoked once per loop iteration.
// Pass nil to run the loop without rendering (every iteration no-ops).
//
// Parameters:
//   - r: the renderer to attach, or nil
//
// Returns:
//   - EngineBuilderOption: a function that applies the renderer option to an engine
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithProfiling enables or disables frame rate and memory profiling output.
//
// Parameters:
//   - enabled: true to log profiling stats once per second
//
// Returns:
//   - EngineBuilderOption: a function that applies the profiling option to an engine
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}
