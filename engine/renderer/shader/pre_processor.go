// pre_processor.go implements the WGSL include pre-processor. A line of the form
//
//	//@morph:include <name>
//
// is replaced by the registered source for name. Each name is injected at most once
// per program, so shared snippets may be listed by several includes safely.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-morph/engine/camera"
	"github.com/Carmen-Shannon/oxy-morph/engine/light"
	"github.com/Carmen-Shannon/oxy-morph/engine/particle"
)

const includeDirective = "//@morph:include"

// PreProcessor expands include directives in WGSL source.
type PreProcessor interface {
	// Register adds or replaces the source injected for name.
	Register(name, source string)

	// Process returns source with every include directive expanded.
	//
	// Parameters:
	//   - source: raw WGSL
	//
	// Returns:
	//   - string: the expanded WGSL
	//   - error: when a directive is malformed or names an unknown snippet
	Process(source string) (string, error)

	// Includes returns the names expanded by the most recent Process call, in order.
	Includes() []string
}

type preProcessor struct {
	registry map[string]string
	included []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the engine's shared snippets
// registered: camera_uniform, light_uniform, particle_uniforms, morph_blend,
// billboard and snow_motion.
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		registry: map[string]string{
			"camera_uniform":    camera.GPUCameraUniformSource,
			"light_uniform":     light.GPULightUniformSource,
			"particle_uniforms": particle.GPUParticleUniformsSource,
			"morph_blend":       particle.MorphBlendSource,
			"billboard":         particle.BillboardSource,
			"snow_motion":       particle.GPUSnowUniformsSource,
		},
	}
}

func (p *preProcessor) Register(name, source string) {
	p.registry[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	p.included = p.included[:0]
	seen := make(map[string]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), includeDirective)
		if !ok {
			out = append(out, line)
			continue
		}

		fields := strings.Fields(rest)
		if len(fields) != 1 {
			return "", fmt.Errorf("line %d: %s takes exactly one name", i+1, includeDirective)
		}
		name := fields[0]
		snippet, ok := p.registry[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		p.included = append(p.included, name)
		out = append(out, snippet)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []string {
	return p.included
}
