package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/flicker-go/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/flicker-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// surfaceFormat is the fixed pixel format the presentation surface is configured
// with. BGRA8Unorm is supported by every wgpu surface backend.
const surfaceFormat = wgpu.TextureFormatBGRA8Unorm

// depthFormat is the depth/stencil texture format: 24-bit depth + 8-bit stencil.
const depthFormat = wgpu.TextureFormatDepth24PlusStencil8

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	presentMode wgpu.PresentMode // defaults to PresentModeFifo (VSync)

	// Surface dimensions captured at ConfigureSurface time; viewport and
	// scissor are set to these every frame.
	surfaceWidth  int
	surfaceHeight int

	// Geometry buffers. Position and index buffers persist unchanged for the
	// process lifetime; the color buffer is replaced every frame.
	positionBuffer *wgpu.Buffer
	colorBuffer    *wgpu.Buffer
	indexBuffer    *wgpu.Buffer
	indexCount     int
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Surface() *wgpu.Surface

	// ConfigureSurface is a wrapper for boilerplate logic required when configuring the surface.
	// It also (re)creates the depth/stencil texture and the cached render pass descriptor.
	//
	// Parameters:
	//   - width: the width of the surface in pixels
	//   - height: the height of the surface in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to ConfigureSurface is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// RegisterRenderPipeline is a high-level function that creates a render pipeline based on the provided pipeline.
	// It handles creating the shader modules, the (empty) pipeline layout, and the render pipeline based on the
	// pipeline's configuration, then stores the compiled pipeline back on the Pipeline via SetRenderPipeline.
	//
	// Parameters:
	//   - p: the pipeline object containing the shaders and fixed-function configuration
	//
	// Returns:
	//   - error: an error if the pipeline could not be created, otherwise nil
	RegisterRenderPipeline(p pipeline.Pipeline) error

	// InitGeometryBuffers creates the position, color, and index buffers from raw byte data.
	// Each buffer is allocated mapped, filled from the source bytes, then unmapped.
	//
	// Parameters:
	//   - positionData: the raw position data bytes to upload to the GPU
	//   - colorData: the raw color data bytes to upload to the GPU
	//   - indexData: the raw 16-bit index data bytes to upload to the GPU
	//   - indexCount: the number of indices represented in indexData, used for draw calls
	//
	// Returns:
	//   - error: an error if a buffer could not be created, otherwise nil
	InitGeometryBuffers(positionData, colorData, indexData []byte, indexCount int) error

	// UpdateColorBuffer replaces the color buffer with a freshly created buffer holding the
	// given bytes. The previous buffer handle is released; committed draws always see the
	// latest color data and never race an in-flight frame.
	//
	// Parameters:
	//   - colorData: the raw color data bytes to upload to the GPU
	//
	// Returns:
	//   - error: an error if the buffer could not be created, otherwise nil
	UpdateColorBuffer(colorData []byte) error

	// RenderFrame acquires the current surface texture, encodes one render pass drawing the
	// indexed geometry with the given pipeline, submits the command buffer to the queue, and
	// presents the surface. Command submission returns immediately; GPU execution is
	// asynchronous and not awaited.
	//
	// Parameters:
	//   - p: the registered Pipeline to draw with
	//
	// Returns:
	//   - error: an error if the surface texture could not be acquired or encoding failed
	RenderFrame(p pipeline.Pipeline) error
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

// newWGPURendererBackend creates the wgpu instance, surface, adapter, device, and queue.
// This is the one asynchronous acquisition step at startup; everything after it is
// synchronous from the caller's viewpoint. Acquisition failure is returned rather than
// panicking so the caller can degrade to a no-op driver loop.
func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool) (wgpuRendererBackend, error) {
	runtime.LockOSThread()
	w := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	w.surface = w.instance.CreateSurface(surfaceDescriptor)

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    w.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("no compatible GPU adapter: %w", err)
	}
	w.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to acquire logical device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.surfaceWidth = width
	b.surfaceHeight = height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
		Format:      surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   wgpu.CompositeAlphaModeOpaque,
	})

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Stencil Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		panic(err)
	}
	b.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// Build the cached render pass descriptor. The color attachment View is
	// set per-frame to the freshly acquired swapchain view; the depth/stencil
	// view persists for the process lifetime.
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    nil, // set in RenderFrame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: 0.0, G: 0.0, B: 0.0, A: 1.0,
				},
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:              b.depthTextureView,
			DepthLoadOp:       wgpu.LoadOpClear,
			DepthStoreOp:      wgpu.StoreOpStore,
			DepthClearValue:   1.0, // far plane
			StencilLoadOp:     wgpu.LoadOpClear,
			StencilStoreOp:    wgpu.StoreOpStore,
			StencilClearValue: 0,
		},
	}
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if p.Shader(shader.ShaderTypeVertex) == nil || p.Shader(shader.ShaderTypeFragment) == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertexShader.Source(),
		},
	})
	if err != nil {
		return err
	}
	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragmentShader.Source(),
		},
	})
	if err != nil {
		return err
	}

	// The triangle shaders use vertex attributes only, so the pipeline layout
	// carries no bind group layouts at all.
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: nil,
	})
	if err != nil {
		return err
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets: []wgpu.ColorTargetState{
				{
					Format:    surfaceFormat,
					WriteMask: p.WriteMask(),
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: func() *wgpu.DepthStencilState {
			depthCompare := wgpu.CompareFunctionLess
			if !p.DepthTestEnabled() {
				depthCompare = wgpu.CompareFunctionAlways
			}
			return &wgpu.DepthStencilState{
				Format:            depthFormat,
				DepthWriteEnabled: p.DepthWriteEnabled(),
				DepthCompare:      depthCompare,
				StencilFront: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
				StencilBack: wgpu.StencilFaceState{
					Compare: wgpu.CompareFunctionAlways,
				},
			}
		}(),
	})
	if err != nil {
		return err
	}

	p.SetRenderPipeline(created)

	return nil
}

// alignBufferSize rounds n up to the next multiple of 4 bytes. The wgpu
// allocator mandates 4-byte-aligned buffer sizes.
func alignBufferSize(n uint64) uint64 {
	return (n + 3) &^ 3
}

// createBufferInit allocates a buffer of the 4-byte-aligned size in a
// host-mapped state, copies the source bytes into the mapped range, and unmaps.
// After unmap the buffer is device-accessible and ready for binding.
func (b *wgpuRendererBackendImpl) createBufferInit(label string, data []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	size := alignBufferSize(uint64(len(data)))
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage,
		MappedAtCreation: true,
	})
	if err != nil {
		return nil, err
	}
	copy(buf.GetMappedRange(0, uint(size)), data)
	buf.Unmap()
	return buf, nil
}

func (b *wgpuRendererBackendImpl) InitGeometryBuffers(positionData, colorData, indexData []byte, indexCount int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	positionBuffer, err := b.createBufferInit("Triangle Position Buffer", positionData, wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}
	colorBuffer, err := b.createBufferInit("Triangle Color Buffer", colorData, wgpu.BufferUsageVertex)
	if err != nil {
		positionBuffer.Release()
		return err
	}
	indexBuffer, err := b.createBufferInit("Triangle Index Buffer", indexData, wgpu.BufferUsageIndex)
	if err != nil {
		positionBuffer.Release()
		colorBuffer.Release()
		return err
	}

	b.positionBuffer = positionBuffer
	b.colorBuffer = colorBuffer
	b.indexBuffer = indexBuffer
	b.indexCount = indexCount

	return nil
}

func (b *wgpuRendererBackendImpl) UpdateColorBuffer(colorData []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.createBufferInit("Triangle Color Buffer", colorData, wgpu.BufferUsageVertex)
	if err != nil {
		return err
	}

	// The old handle is not garbage collected on the wgpu-native side, so it
	// is released here rather than abandoned. The swap happens before any new
	// encoding, so no in-flight pass references the released buffer.
	if b.colorBuffer != nil {
		b.colorBuffer.Release()
	}
	b.colorBuffer = buf

	return nil
}

func (b *wgpuRendererBackendImpl) RenderFrame(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// The previous frame's surface texture was retired by Present; acquire a
	// fresh one and derive a fresh view for this frame's color attachment.
	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(b.renderPassDescriptor)

	pass.SetPipeline(p.Pipeline())
	pass.SetViewport(0, 0, float32(b.surfaceWidth), float32(b.surfaceHeight), 0, 1)
	pass.SetScissorRect(0, 0, uint32(b.surfaceWidth), uint32(b.surfaceHeight))
	pass.SetVertexBuffer(0, b.positionBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(1, b.colorBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(b.indexCount), 1, 0, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		surfaceTexture.Release()
		return err
	}

	b.queue.Submit(commandBuffer)
	b.surface.Present()

	commandBuffer.Release()
	encoder.Release()
	view.Release()
	surfaceTexture.Release()

	return nil
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Surface() *wgpu.Surface {
	return b.surface
}
