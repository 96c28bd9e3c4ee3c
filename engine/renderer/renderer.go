package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/flicker-go/engine/geometry"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer/shader"
	"github.com/Carmen-Shannon/flicker-go/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// trianglePipelineKey labels the single render pipeline this renderer compiles.
const trianglePipelineKey = "flicker_triangle"

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	geometry geometry.Triangle
	pipeline pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Renderer owns the GPU resources for the jittering triangle and encodes one
// render pass per RenderFrame call. All resources except the color buffer are
// created once at construction and persist for the process lifetime; the color
// buffer is rebuilt every frame to reflect the mutated color data.
type Renderer interface {
	// Geometry returns the triangle whose colors this renderer jitters each frame.
	//
	// Returns:
	//   - geometry.Triangle: the triangle geometry
	Geometry() geometry.Triangle

	// Pipeline returns the compiled triangle render pipeline configuration.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline registered during construction
	Pipeline() pipeline.Pipeline

	// RenderFrame runs the per-frame render operation: jitter every color
	// channel by a pseudo-random offset from [-0.25, +0.25), rebuild the color
	// buffer from the mutated data, then encode and submit one render pass
	// drawing the triangle. Intended to be called once per display refresh by
	// the driver loop.
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired or a GPU call failed
	RenderFrame() error
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing
// surface, and triangle geometry. Adapter and device acquisition happen here; if the
// GPU subsystem is unavailable an error is returned and the caller should run without
// a renderer (the driver loop no-ops when none is attached).
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window supplying the platform surface descriptor and pixel dimensions
//   - tri: the triangle geometry to own and render
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer with all GPU resources created
//   - error: an error if GPU acquisition or resource creation failed
func NewRenderer(backendType RendererBackendType, win window.Window, tri geometry.Triangle, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		geometry:    tri,
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		r.backend = backend
	}

	if err := r.initResources(win.Width(), win.Height()); err != nil {
		return nil, err
	}

	return r, nil
}

// initResources configures the surface and creates the persistent GPU resources:
// depth/stencil texture, the three geometry buffers, the two shader modules, and
// the compiled render pipeline.
func (r *renderer) initResources(width, height int) error {
	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.ConfigureSurface(width, height)

	// Two separate per-vertex buffers, each a tightly packed vec3<f32>
	// attribute (stride 12), at shader locations 0 (position) and 1 (color).
	r.pipeline = pipeline.NewPipeline(trianglePipelineKey,
		pipeline.WithVertexShader(shader.NewShader("flicker_vert", shader.ShaderTypeVertex, shader.TriangleVertexSource)),
		pipeline.WithFragmentShader(shader.NewShader("flicker_frag", shader.ShaderTypeFragment, shader.TriangleFragmentSource)),
		pipeline.WithFrontFace(wgpu.FrontFaceCW),
		pipeline.WithCullMode(wgpu.CullModeNone),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithVertexLayouts(
			wgpu.VertexBufferLayout{
				ArrayStride: 12,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				},
			},
			wgpu.VertexBufferLayout{
				ArrayStride: 12,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 1},
				},
			},
		),
	)

	if err := r.backend.RegisterRenderPipeline(r.pipeline); err != nil {
		return err
	}

	return r.backend.InitGeometryBuffers(
		r.geometry.PositionBytes(),
		r.geometry.ColorBytes(),
		r.geometry.IndexBytes(),
		r.geometry.IndexCount(),
	)
}

func (r *renderer) Geometry() geometry.Triangle {
	return r.geometry
}

func (r *renderer) Pipeline() pipeline.Pipeline {
	return r.pipeline
}

func (r *renderer) RenderFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.geometry.Jitter()
	if err := r.backend.UpdateColorBuffer(r.geometry.ColorBytes()); err != nil {
		return err
	}
	return r.backend.RenderFrame(r.pipeline)
}
