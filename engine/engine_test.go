package engine

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/flicker-go/engine/geometry"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer/pipeline"
)

// stubRenderer counts frame invocations without touching any GPU state.
type stubRenderer struct {
	frames int
	err    error
}

var _ renderer.Renderer = &stubRenderer{}

func (s *stubRenderer) Geometry() geometry.Triangle { return nil }
func (s *stubRenderer) Pipeline() pipeline.Pipeline { return nil }

func (s *stubRenderer) RenderFrame() error {
	s.frames++
	return s.err
}

func TestRenderOnceWithoutRenderer(t *testing.T) {
	e := NewEngine().(*engine)

	// With no renderer attached every iteration must be a silent no-op; the
	// loop keeps spinning instead of faulting.
	for i := 0; i < 1000; i++ {
		e.renderOnce()
	}
}

func TestRenderOnceInvokesRendererEachIteration(t *testing.T) {
	stub := &stubRenderer{}
	e := NewEngine(WithRenderer(stub)).(*engine)

	for i := 0; i < 5; i++ {
		e.renderOnce()
	}

	if stub.frames != 5 {
		t.Errorf("renderer invoked %d times, want 5", stub.frames)
	}
}

func TestRenderOnceSurvivesRenderErrors(t *testing.T) {
	stub := &stubRenderer{err: errors.New("surface lost")}
	e := NewEngine(WithRenderer(stub)).(*engine)

	// A failed frame is logged, not fatal; the next iteration still renders.
	e.renderOnce()
	e.renderOnce()

	if stub.frames != 2 {
		t.Errorf("renderer invoked %d times, want 2", stub.frames)
	}
}

func TestProfilerToggle(t *testing.T) {
	e := NewEngine(WithProfiling(false)).(*engine)
	if e.profilingEnabled {
		t.Error("profiling should start disabled")
	}

	e.EnableProfiler()
	if !e.profilingEnabled {
		t.Error("EnableProfiler did not enable profiling")
	}

	e.DisableProfiler()
	if e.profilingEnabled {
		t.Error("DisableProfiler did not disable profiling")
	}
}
