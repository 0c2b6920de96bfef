package yaml

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaGenerator reflects a JSON schema from a Go value. Field comments of
// the listed packages become schema descriptions.
type SchemaGenerator struct {
	v        any
	module   string
	packages []string
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. packages are paths
// relative to the module root, which must be the working directory when
// [SchemaGenerator.Generate] runs.
func NewSchemaGenerator(v any, module string, packages ...string) *SchemaGenerator {
	return &SchemaGenerator{
		v:        v,
		module:   module,
		packages: packages,
	}
}

// Generate returns the indented schema followed by a newline.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}

	for _, pkg := range g.packages {
		err := r.AddGoComments(g.module, pkg)
		if err != nil {
			return nil, fmt.Errorf("add go comments for %s: %w", pkg, err)
		}
	}

	jss := r.Reflect(g.v)

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
