package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Profile is a named install policy.
type Profile string

const (
	Safe Profile = "safe"
	Auto Profile = "auto"
	Full Profile = "full"

	// Default is used when no profile is selected.
	Default = Auto
)

var (
	ErrUnknownProfile = errors.New("unknown profile")

	// AllProfiles lists the profile names, from least to most aggressive.
	AllProfiles = []string{
		string(Safe),
		string(Auto),
		string(Full),
	}
)

// Parse returns the [Profile] named s. Matching is case-insensitive and an
// empty string selects [Default].
func Parse(s string) (Profile, error) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Default, nil
	case Safe, Auto, Full:
		return p, nil
	}

	return "", fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownProfile, s, strings.Join(AllProfiles, ", "))
}

func (p Profile) String() string {
	return string(p)
}

// Set implements [github.com/spf13/pflag.Value].
func (p *Profile) Set(s string) error {
	parsed, err := Parse(s)
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Type implements [github.com/spf13/pflag.Value].
func (p *Profile) Type() string {
	return "profile"
}

// Policy is a [Profile] plus the two install overrides.
type Policy struct {
	Profile          Profile
	IncludeCritical  bool
	IncludeNotNeeded bool
}

// InstallNotNeeded reports whether test artifacts go into the install plan.
func (p Policy) InstallNotNeeded() bool {
	return p.IncludeNotNeeded || p.Profile == Full
}

// InstallCritical reports whether system-critical files go into the install
// plan.
func (p Policy) InstallCritical() bool {
	return p.IncludeCritical || p.Profile == Full
}

// ShouldInstall decides for a path that is neither a test artifact nor
// system-critical. componentOK is true when the owning component is the
// catch-all or was detected on the target.
func (p Policy) ShouldInstall(componentOK, promptContent bool) bool {
	switch p.Profile {
	case Full:
		return true
	case Auto:
		return componentOK
	case Safe:
		return componentOK && promptContent
	}

	return false
}
