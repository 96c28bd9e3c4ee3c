package renderer

import (
	"bytes"
	"math/rand"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/flicker-go/engine/geometry"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeBackend records backend calls so renderer behavior can be verified
// without a GPU.
type fakeBackend struct {
	configuredWidth  int
	configuredHeight int
	presentMode      PresentMode

	registered pipeline.Pipeline

	initCalls    int
	positionData []byte
	indexData    []byte
	indexCount   int

	colorUploads [][]byte

	frameCalls int
}

var _ RendererBackend = &fakeBackend{}

func (f *fakeBackend) Device() *wgpu.Device   { return nil }
func (f *fakeBackend) Queue() *wgpu.Queue     { return nil }
func (f *fakeBackend) Surface() *wgpu.Surface { return nil }

func (f *fakeBackend) ConfigureSurface(width, height int) {
	f.configuredWidth = width
	f.configuredHeight = height
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) {
	f.presentMode = mode
}

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	f.registered = p
	return nil
}

func (f *fakeBackend) InitGeometryBuffers(positionData, colorData, indexData []byte, indexCount int) error {
	f.initCalls++
	f.positionData = append([]byte(nil), positionData...)
	f.indexData = append([]byte(nil), indexData...)
	f.indexCount = indexCount
	f.colorUploads = append(f.colorUploads, append([]byte(nil), colorData...))
	return nil
}

func (f *fakeBackend) UpdateColorBuffer(colorData []byte) error {
	f.colorUploads = append(f.colorUploads, append([]byte(nil), colorData...))
	return nil
}

func (f *fakeBackend) RenderFrame(p pipeline.Pipeline) error {
	f.frameCalls++
	return nil
}

func newTestRenderer(backend RendererBackend) *renderer {
	return &renderer{
		mu:          &sync.Mutex{},
		geometry:    geometry.NewTriangle(geometry.WithRand(rand.New(rand.NewSource(99)))),
		backendType: BackendTypeWGPU,
		backend:     backend,
	}
}

func TestAlignBufferSize(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 0},
		{1, 4},
		{4, 4},
		{6, 8},   // 3 uint16 indices
		{9, 12},  // hypothetical unaligned payload
		{12, 12}, // 3 vec3<f32> colors, already aligned
		{108, 108},
	}
	for _, c := range cases {
		if got := alignBufferSize(c.in); got != c.want {
			t.Errorf("alignBufferSize(%d) = %d, want %d", c.in, got, c.want)
		}
	}

	// Rounding up twice must not move the value again.
	for _, c := range cases {
		once := alignBufferSize(c.in)
		if twice := alignBufferSize(once); twice != once {
			t.Errorf("alignBufferSize not idempotent: %d -> %d -> %d", c.in, once, twice)
		}
	}
}

func TestInitResourcesConfiguresPipelineAndBuffers(t *testing.T) {
	fake := &fakeBackend{}
	r := newTestRenderer(fake)

	if err := r.initResources(640, 480); err != nil {
		t.Fatalf("initResources: %v", err)
	}

	if fake.configuredWidth != 640 || fake.configuredHeight != 480 {
		t.Errorf("surface configured %dx%d, want 640x480", fake.configuredWidth, fake.configuredHeight)
	}
	if fake.initCalls != 1 {
		t.Fatalf("geometry buffers initialized %d times, want 1", fake.initCalls)
	}
	if fake.indexCount != 3 {
		t.Errorf("index count %d, want 3", fake.indexCount)
	}
	if len(fake.positionData) != 36 {
		t.Errorf("position data %d bytes, want 36", len(fake.positionData))
	}
	if len(fake.indexData) != 6 {
		t.Errorf("index data %d bytes, want 6", len(fake.indexData))
	}

	p := fake.registered
	if p == nil {
		t.Fatal("no pipeline registered")
	}
	if p.PipelineKey() != trianglePipelineKey {
		t.Errorf("pipeline key %q, want %q", p.PipelineKey(), trianglePipelineKey)
	}
	if p.FrontFace() != wgpu.FrontFaceCW {
		t.Error("front face should be clockwise")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Error("culling should be disabled")
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Error("topology should be triangle list")
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write should both be enabled")
	}

	layouts := p.VertexLayouts()
	if len(layouts) != 2 {
		t.Fatalf("got %d vertex layouts, want 2 (position + color)", len(layouts))
	}
	for i, l := range layouts {
		if l.ArrayStride != 12 {
			t.Errorf("layout %d stride %d, want 12", i, l.ArrayStride)
		}
		if len(l.Attributes) != 1 || l.Attributes[0].Format != wgpu.VertexFormatFloat32x3 {
			t.Errorf("layout %d should carry a single vec3<f32> attribute", i)
		}
		if l.Attributes[0].ShaderLocation != uint32(i) {
			t.Errorf("layout %d bound to shader location %d, want %d", i, l.Attributes[0].ShaderLocation, i)
		}
	}
}

func TestRenderFrameUploadsFreshColorsEachFrame(t *testing.T) {
	fake := &fakeBackend{}
	r := newTestRenderer(fake)

	if err := r.initResources(640, 480); err != nil {
		t.Fatalf("initResources: %v", err)
	}
	if err := r.RenderFrame(); err != nil {
		t.Fatalf("first RenderFrame: %v", err)
	}
	if err := r.RenderFrame(); err != nil {
		t.Fatalf("second RenderFrame: %v", err)
	}

	if fake.frameCalls != 2 {
		t.Errorf("backend rendered %d frames, want 2", fake.frameCalls)
	}
	if fake.initCalls != 1 {
		t.Errorf("geometry buffers initialized %d times, want 1", fake.initCalls)
	}

	// One upload at init plus one per frame, each a distinct jittered snapshot.
	if len(fake.colorUploads) != 3 {
		t.Fatalf("got %d color uploads, want 3", len(fake.colorUploads))
	}
	if bytes.Equal(fake.colorUploads[0], fake.colorUploads[1]) {
		t.Error("first frame uploaded colors identical to the initial colors")
	}
	if bytes.Equal(fake.colorUploads[1], fake.colorUploads[2]) {
		t.Error("second frame uploaded colors identical to the first frame's")
	}

	// Positions are uploaded once and never touched again.
	if !bytes.Equal(fake.positionData, r.geometry.PositionBytes()) {
		t.Error("position data diverged from the geometry's positions")
	}
}

func TestRenderFrameOnTinySurface(t *testing.T) {
	fake := &fakeBackend{}
	r := newTestRenderer(fake)

	if err := r.initResources(1, 1); err != nil {
		t.Fatalf("initResources: %v", err)
	}
	if err := r.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	// A 1x1 surface still draws the full triangle; rasterization coverage is
	// the GPU's problem, not the encoder's.
	if fake.configuredWidth != 1 || fake.configuredHeight != 1 {
		t.Errorf("surface configured %dx%d, want 1x1", fake.configuredWidth, fake.configuredHeight)
	}
	if fake.indexCount != 3 {
		t.Errorf("index count %d, want 3", fake.indexCount)
	}
	if fake.frameCalls != 1 {
		t.Errorf("backend rendered %d frames, want 1", fake.frameCalls)
	}
}

func TestPendingPresentModeAppliedBeforeSurfaceConfig(t *testing.T) {
	fake := &fakeBackend{presentMode: PresentModeVSync}
	r := newTestRenderer(fake)
	WithPresentMode(PresentModeUncapped)(r)

	if err := r.initResources(320, 240); err != nil {
		t.Fatalf("initResources: %v", err)
	}

	if fake.presentMode != PresentModeUncapped {
		t.Error("pending present mode was not forwarded to the backend")
	}
}
