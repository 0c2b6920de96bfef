package recommend

import (
	"fmt"
	"log/slog"

	"github.com/aidrax/promptrec/pkg/category"
	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/detect"
	"github.com/aidrax/promptrec/pkg/manifest"
	"github.com/aidrax/promptrec/pkg/profile"
)

// Engine decides which manifest paths should be installed.
type Engine struct {
	registry *component.Registry
	source   SourceChecker
	presence detect.Presence
	policy   profile.Policy
}

// New creates an [Engine]. presence must have been computed for registry.
func New(
	registry *component.Registry,
	presence detect.Presence,
	policy profile.Policy,
	source SourceChecker,
) *Engine {
	return &Engine{
		registry: registry,
		source:   source,
		presence: presence,
		policy:   policy,
	}
}

// Decide classifies a validated, existing relative path.
func (e *Engine) Decide(p string) Decision {
	d := Decision{
		Path:      p,
		Component: e.registry.Classify(p),
		Flags:     category.Categorize(p),
	}

	switch {
	case d.Flags.TestArtifact:
		d.Disposition = NotNeeded
		d.Install = e.policy.InstallNotNeeded()

	case d.Flags.SystemCritical:
		d.Disposition = SystemCritical
		d.Install = e.policy.InstallCritical()

	default:
		present := e.presence.Has(d.Component)
		componentOK := d.Component == component.General || present

		d.Unmatched = d.Component != component.General && !present
		d.Install = e.policy.ShouldInstall(componentOK, d.Flags.PromptContent)

		switch {
		case d.Install:
			d.Disposition = Recommended
		case d.Unmatched:
			d.Disposition = OptionalUnmatched
		default:
			d.Disposition = Excluded
		}
	}

	return d
}

// Run processes entries in order and aggregates the decisions. It only
// returns an error when the source could not be checked.
func (e *Engine) Run(entries []manifest.Entry) (*Report, error) {
	rep := newReport(e.registry, e.presence, e.policy)

	for _, entry := range entries {
		d, err := e.decideEntry(entry)
		if err != nil {
			return nil, err
		}

		slog.Debug("decision",
			slog.Int("line", d.Line),
			slog.String("path", d.Path),
			slog.String("component", string(d.Component)),
			slog.String("disposition", string(d.Disposition)),
			slog.Bool("install", d.Install),
			slog.Bool("unmatched", d.Unmatched),
		)

		rep.add(d)
	}

	return rep, nil
}

func (e *Engine) decideEntry(entry manifest.Entry) (Decision, error) {
	rel, err := manifest.Validate(entry.Raw)
	if err != nil {
		return Decision{Path: entry.Raw, Line: entry.Line, Disposition: Invalid}, nil
	}

	ok, err := e.source.Exists(rel)
	if err != nil {
		return Decision{}, fmt.Errorf("line %d: %q: %w", entry.Line, rel, err)
	}
	if !ok {
		return Decision{Path: rel, Line: entry.Line, Disposition: Missing}, nil
	}

	d := e.Decide(rel)
	d.Line = entry.Line

	return d, nil
}
