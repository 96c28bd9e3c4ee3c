package shader

import (
	"strings"
	"testing"
)

func TestEmbeddedTriangleSources(t *testing.T) {
	if !strings.Contains(TriangleVertexSource, "fn vs_main") {
		t.Error("vertex source missing vs_main entry point")
	}
	if !strings.Contains(TriangleVertexSource, "@location(0)") || !strings.Contains(TriangleVertexSource, "@location(1)") {
		t.Error("vertex source should consume attributes at locations 0 and 1")
	}
	if !strings.Contains(TriangleFragmentSource, "fn fs_main") {
		t.Error("fragment source missing fs_main entry point")
	}
	if !strings.Contains(TriangleFragmentSource, "1.0") {
		t.Error("fragment source should emit opaque alpha")
	}
}

func TestNewShaderDefaultEntryPoints(t *testing.T) {
	vert := NewShader("v", ShaderTypeVertex, "code")
	if vert.EntryPoint() != "vs_main" {
		t.Errorf("vertex entry point %q, want vs_main", vert.EntryPoint())
	}
	if vert.ShaderType() != ShaderTypeVertex {
		t.Error("shader type not preserved")
	}
	if vert.Key() != "v" || vert.Source() != "code" {
		t.Error("key or source not preserved")
	}

	frag := NewShader("f", ShaderTypeFragment, "code")
	if frag.EntryPoint() != "fs_main" {
		t.Errorf("fragment entry point %q, want fs_main", frag.EntryPoint())
	}
}
