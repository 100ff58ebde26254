package shader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Carmen-Shannon/flycam/engine/camera"
	"github.com/Carmen-Shannon/flycam/engine/entity"
	"github.com/Carmen-Shannon/flycam/engine/light"
	"github.com/Carmen-Shannon/flycam/engine/model"
)

// includeRegex matches a whole-line include directive such as "@include(camera)".
var includeRegex = regexp.MustCompile(`^\s*@include\(\s*(\w+)\s*\)\s*;?\s*$`)

// DefaultIncludes maps include names to the WGSL struct sources embedded next to the Go types
// they mirror. Shaders pull them in with @include(name) so the GPU and CPU layouts cannot drift.
func DefaultIncludes() map[string]string {
	return map[string]string{
		"camera":   camera.GPUCameraUniformSource,
		"light":    light.GPUPointLightSource,
		"vertex":   model.GPUVertexSource,
		"instance": entity.GPUInstanceDataSource,
	}
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	includes map[string]string
}

// PreProcessor expands include directives in WGSL source before it is reflected and compiled.
type PreProcessor interface {
	// Process replaces every @include(name) line with the registered source for name.
	// Each name is expanded at most once per call; repeats are dropped.
	//
	// Parameters:
	//   - source: the raw WGSL source
	//
	// Returns:
	//   - string: the expanded source
	//   - error: an error naming the line of an unknown include
	Process(source string) (string, error)

	// Register adds or replaces an include.
	//
	// Parameters:
	//   - name: the include name used inside @include(...)
	//   - source: the WGSL text substituted for it
	Register(name, source string)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor preloaded with DefaultIncludes.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{includes: DefaultIncludes()}
}

func (p *preProcessor) Register(name, source string) {
	p.includes[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for i, line := range lines {
		m := includeRegex.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		name := m[1]
		src, ok := p.includes[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, strings.TrimRight(src, "\n"))
	}
	return strings.Join(out, "\n"), nil
}
