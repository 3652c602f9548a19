package shader

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestPreProcessorExpandsOnce(t *testing.T) {
	pp := NewPreProcessor()
	pp.Register("a", "fn a() {}")
	out, err := pp.Process("//@morph:include a\n  //@morph:include a\nfn main() {}")
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if strings.Count(out, "fn a() {}") != 1 {
		t.Errorf("snippet injected %d times, want 1", strings.Count(out, "fn a() {}"))
	}
	if got := pp.Includes(); len(got) != 1 || got[0] != "a" {
		t.Errorf("Includes() = %v, want [a]", got)
	}
}

func TestPreProcessorErrors(t *testing.T) {
	pp := NewPreProcessor()
	if _, err := pp.Process("//@morph:include nope"); err == nil {
		t.Error("unknown include accepted")
	}
	if _, err := pp.Process("//@morph:include"); err == nil {
		t.Error("empty include accepted")
	}
}

func TestParticleShaderReflection(t *testing.T) {
	vs := NewShader("foliage_vs", ShaderTypeVertex, particle.FoliageShaderSource,
		WithVertexLayouts(particle.ParticleVertexLayouts()...),
		WithUniformSize(1, 32))
	fs := NewShader("foliage_fs", ShaderTypeFragment, particle.FoliageShaderSource)

	if vs.EntryPoint() != "vs_main" || fs.EntryPoint() != "fs_main" {
		t.Errorf("entry points = %q/%q", vs.EntryPoint(), fs.EntryPoint())
	}
	if len(vs.VertexLayouts()) != 5 || fs.VertexLayouts() != nil {
		t.Errorf("vertex layouts = %d/%d", len(vs.VertexLayouts()), len(fs.VertexLayouts()))
	}
	if strings.Contains(vs.Source(), includeDirective) {
		t.Error("include directive survived pre-processing")
	}
	if !strings.Contains(vs.Source(), "fn morph_position") {
		t.Error("blend snippet missing from processed source")
	}

	groups := vs.BindGroupLayoutDescriptors()
	if len(groups) != 2 {
		t.Fatalf("reflected %d groups, want 2", len(groups))
	}
	entry := groups[1].Entries[0]
	if entry.Buffer.Type != wgpu.BufferBindingTypeUniform || entry.Buffer.MinBindingSize != 32 {
		t.Errorf("group 1 entry = %+v", entry)
	}
}

func TestSnowShaderReflection(t *testing.T) {
	vs := NewShader("snow_vs", ShaderTypeVertex, particle.SnowShaderSource)
	if strings.Contains(vs.Source(), "ParticleUniforms") {
		t.Error("snow program pulled in particle uniforms")
	}
	if len(vs.BindGroupLayoutDescriptors()) != 2 {
		t.Errorf("reflected %d groups, want 2", len(vs.BindGroupLayoutDescriptors()))
	}
}

func TestNewShaderPanicsWithoutEntryPoint(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewShader("empty", ShaderTypeVertex, "fn helper() {}")
}
