package component

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aidrax/promptrec/pkg/rule"
)

// Component names one software sub-project of the bundle.
type Component string

// General is the catch-all component for paths no rule claims.
const General Component = "general"

var (
	ErrEmptyName     = errors.New("component name is empty")
	ErrDuplicateName = errors.New("duplicate component name")
	ErrReservedName  = errors.New("component name is reserved")
)

// Definition describes one specific (non catch-all) component.
type Definition struct {
	// Name is the component identifier used in reports.
	Name string `json:"name" jsonschema:"title=Name,required"`
	// Match is a CEL expression selecting the paths owned by this component.
	Match string `json:"match" jsonschema:"title=Match Expression,required"`
	// Detect lists relative locations under the target root that indicate the
	// component is installed. One segment may be the wildcard `*`.
	Detect []string `json:"detect,omitempty" jsonschema:"title=Detection Candidates" yaml:"detect,omitempty"`
}

// Registry is an immutable, ordered set of components.
type Registry struct {
	candidates map[Component][]string
	components []Component
	rules      []*rule.Rule
}

// NewRegistry compiles defs into a [Registry]. The order of defs is the
// classification priority and the reporting order.
func NewRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		candidates: make(map[Component][]string, len(defs)),
		components: make([]Component, 0, len(defs)+1),
		rules:      make([]*rule.Rule, 0, len(defs)),
	}

	for i, def := range defs {
		name := Component(def.Name)

		switch {
		case name == "":
			return nil, fmt.Errorf("components[%d]: %w", i, ErrEmptyName)
		case name == General:
			return nil, fmt.Errorf("components[%d]: %q: %w", i, name, ErrReservedName)
		case slices.Contains(r.components, name):
			return nil, fmt.Errorf("components[%d]: %q: %w", i, name, ErrDuplicateName)
		}

		rl, err := rule.New(def.Name, def.Match)
		if err != nil {
			return nil, fmt.Errorf("components[%d]: %w", i, err)
		}

		r.components = append(r.components, name)
		r.rules = append(r.rules, rl)
		r.candidates[name] = slices.Clone(def.Detect)
	}

	r.components = append(r.components, General)

	return r, nil
}

// MustNewRegistry creates a [Registry] and panics on error.
func MustNewRegistry(defs []Definition) *Registry {
	r, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}

	return r
}

// Classify returns the component that owns p. It is total: every path gets
// exactly one component.
func (r *Registry) Classify(p string) Component {
	for _, rl := range r.rules {
		if rl.MatchPath(p) {
			return Component(rl.Component)
		}
	}

	return General
}

// Components returns all components in declaration order, ending with [General].
func (r *Registry) Components() []Component {
	return slices.Clone(r.components)
}

// Specific returns all components except [General], in declaration order.
func (r *Registry) Specific() []Component {
	return slices.Clone(r.components[:len(r.components)-1])
}

// Candidates returns the detection candidates for c.
func (r *Registry) Candidates(c Component) []string {
	return slices.Clone(r.candidates[c])
}
