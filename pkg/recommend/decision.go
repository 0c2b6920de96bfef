package recommend

import (
	"github.com/aidrax/promptrec/pkg/category"
	"github.com/aidrax/promptrec/pkg/component"
)

// Disposition is the final classification of one manifest path.
type Disposition string

const (
	Recommended       Disposition = "recommended"
	SystemCritical    Disposition = "system_critical"
	NotNeeded         Disposition = "not_needed"
	OptionalUnmatched Disposition = "optional_unmatched"
	Invalid           Disposition = "invalid"
	Missing           Disposition = "missing"
	// Excluded paths are dropped silently. This only happens under the safe
	// profile, for non-prompt paths of present or catch-all components.
	Excluded Disposition = "excluded"
)

// Decision is the outcome for a single manifest entry.
type Decision struct {
	Path        string              `json:"path"`
	Component   component.Component `json:"component,omitempty"`
	Disposition Disposition         `json:"disposition"`
	Flags       category.Flags      `json:"flags"`
	Line        int                 `json:"line"`
	// Install is true when the path is part of the install plan.
	Install bool `json:"install"`
	// Unmatched is true when the path belongs to a specific component that
	// is absent on the target. It may co-occur with Install.
	Unmatched bool `json:"unmatched"`
}
