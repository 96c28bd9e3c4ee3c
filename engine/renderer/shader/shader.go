package shader

import (
	_ "embed"
)

// ShaderType identifies which pipeline stage a shader targets.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing in render pipelines.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used for fragment processing in pair with a vertex shader.
	ShaderTypeFragment
)

// TriangleVertexSource is the embedded WGSL vertex stage for the flicker triangle.
// It consumes two tightly packed vertex buffers (position at location 0, color at
// location 1) and emits a clip-space position plus the per-vertex color.
//
//go:embed assets/flicker_vert.wgsl
var TriangleVertexSource string

// TriangleFragmentSource is the embedded WGSL fragment stage for the flicker triangle.
// It outputs the interpolated vertex color unmodified with alpha 1.
//
//go:embed assets/flicker_frag.wgsl
var TriangleFragmentSource string

// shader is the implementation of the Shader interface.
// It holds the persistent shader data required for pipeline creation.
type shader struct {
	key        string
	source     string
	shaderType ShaderType
	entryPoint string
}

// Shader defines the interface for a WGSL shader stage. The source is an opaque
// text blob handed to the device's shader-compilation entry point; compile errors
// surface through the wgpu runtime's own diagnostics.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used for labeling GPU objects.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL shader source code.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// EntryPoint returns the entry point name for this shader.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// ShaderType returns the type of the shader (vertex or fragment).
	//
	// Returns:
	//   - ShaderType: ShaderTypeVertex or ShaderTypeFragment
	ShaderType() ShaderType
}

var _ Shader = &shader{}

// NewShader creates a Shader from WGSL source text. The entry point defaults to
// "vs_main" for vertex shaders and "fs_main" for fragment shaders.
//
// Parameters:
//   - key: the unique identifier for this shader
//   - shaderType: the pipeline stage this shader targets
//   - source: the WGSL source code
//
// Returns:
//   - Shader: the new shader value
func NewShader(key string, shaderType ShaderType, source string) Shader {
	entryPoint := "vs_main"
	if shaderType == ShaderTypeFragment {
		entryPoint = "fs_main"
	}
	return &shader{
		key:        key,
		source:     source,
		shaderType: shaderType,
		entryPoint: entryPoint,
	}
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}
