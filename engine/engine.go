package engine

import (
	"github.com/Carmen-Shannon/flicker-go/engine/profiler"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer"
	"github.com/Carmen-Shannon/flicker-go/engine/window"
	"github.com/Carmen-Shannon/flicker-go/log"
)

var logger = log.New("engine")

// engine implements the Engine interface.
// One logical thread of control: the window message loop drives a
// display-synchronized render callback, one invocation per iteration.
type engine struct {
	window   window.Window
	renderer renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool
}

// Engine is the driver loop for the renderer. It pumps the platform message
// loop and invokes the renderer's per-frame render operation once per
// iteration, indefinitely, until the window closes. When no renderer is
// attached (the GPU capability probe failed at startup) every iteration is a
// silent no-op.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the attached renderer, or nil if none is attached.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance or nil
	Renderer() renderer.Renderer

	// EnableProfiler enables frame rate and memory profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// Run starts the driver loop (blocks until the window closes).
	Run()
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Run() {
	e.window.SetUpdateCallback(e.renderOnce)
	e.window.ProcessMessages()
}

// renderOnce runs a single driver loop iteration. The renderer presence check
// makes the loop safe when GPU initialization failed at startup: iterations
// perform zero GPU calls and never fault.
func (e *engine) renderOnce() {
	if e.renderer == nil {
		return
	}

	if err := e.renderer.RenderFrame(); err != nil {
		logger.Errorf("render frame: %v", err)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}
