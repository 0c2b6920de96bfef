package detect

import (
	"fmt"
	"log/slog"
	"maps"

	"github.com/aidrax/promptrec/pkg/component"
)

// Presence records, per component, whether it was found under the target
// root. The zero value reports every specific component as absent.
type Presence struct {
	found map[component.Component]bool
}

// NewPresence creates a [Presence] from explicit values. [component.General]
// is always present regardless of the input.
func NewPresence(found map[component.Component]bool) Presence {
	m := maps.Clone(found)
	if m == nil {
		m = map[component.Component]bool{}
	}

	m[component.General] = true

	return Presence{found: m}
}

// Has reports whether c was detected.
func (p Presence) Has(c component.Component) bool {
	if c == component.General {
		return true
	}

	return p.found[c]
}

// Detected returns the detected components of reg in declaration order.
func (p Presence) Detected(reg *component.Registry) []component.Component {
	out := []component.Component{}
	for _, c := range reg.Components() {
		if p.Has(c) {
			out = append(out, c)
		}
	}

	return out
}

// Missing returns the undetected components of reg in declaration order.
func (p Presence) Missing(reg *component.Registry) []component.Component {
	out := []component.Component{}
	for _, c := range reg.Components() {
		if !p.Has(c) {
			out = append(out, c)
		}
	}

	return out
}

// Detect probes root for every specific component of reg. Candidates are
// checked in order and the first match settles the component.
func Detect(root string, reg *component.Registry) (Presence, error) {
	found := map[component.Component]bool{}

	for _, c := range reg.Specific() {
		logger := slog.With(slog.String("component", string(c)))

		for _, candidate := range reg.Candidates(c) {
			p, err := ParsePattern(candidate)
			if err != nil {
				return Presence{}, fmt.Errorf("component %q: %w", c, err)
			}

			matches, err := p.Match(root)
			if err != nil {
				return Presence{}, fmt.Errorf("component %q: candidate %q: %w", c, candidate, err)
			}

			if len(matches) > 0 {
				logger.Debug("component detected",
					slog.String("candidate", candidate),
					slog.String("match", matches[0]),
				)

				found[c] = true

				break
			}
		}

		if !found[c] {
			logger.Debug("component not detected")
		}
	}

	return NewPresence(found), nil
}
