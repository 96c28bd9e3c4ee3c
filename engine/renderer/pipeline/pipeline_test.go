package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/flicker-go/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("test")

	if p.PipelineKey() != "test" {
		t.Errorf("key %q, want %q", p.PipelineKey(), "test")
	}
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Error("depth test and write should default to enabled")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Error("cull mode should default to none")
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList {
		t.Error("topology should default to triangle list")
	}
	if p.FrontFace() != wgpu.FrontFaceCCW {
		t.Error("front face should default to counter-clockwise")
	}
	if p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Error("write mask should default to all channels")
	}
	if p.Pipeline() != nil {
		t.Error("compiled pipeline should be nil before registration")
	}
}

func TestBuilderOptions(t *testing.T) {
	vert := shader.NewShader("v", shader.ShaderTypeVertex, "code")
	frag := shader.NewShader("f", shader.ShaderTypeFragment, "code")
	layout := wgpu.VertexBufferLayout{ArrayStride: 12}

	p := NewPipeline("test",
		WithVertexShader(vert),
		WithFragmentShader(frag),
		WithVertexLayouts(layout),
		WithFrontFace(wgpu.FrontFaceCW),
		WithCullMode(wgpu.CullModeBack),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
	)

	if p.Shader(shader.ShaderTypeVertex) != vert {
		t.Error("vertex shader not applied")
	}
	if p.Shader(shader.ShaderTypeFragment) != frag {
		t.Error("fragment shader not applied")
	}
	if len(p.VertexLayouts()) != 1 || p.VertexLayouts()[0].ArrayStride != 12 {
		t.Error("vertex layouts not applied")
	}
	if p.FrontFace() != wgpu.FrontFaceCW {
		t.Error("front face not applied")
	}
	if p.CullMode() != wgpu.CullModeBack {
		t.Error("cull mode not applied")
	}
	if p.DepthTestEnabled() || p.DepthWriteEnabled() {
		t.Error("depth toggles not applied")
	}
}
