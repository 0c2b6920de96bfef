// Package profile defines the install policies that decide how aggressively
// manifest paths are recommended.
//
// Three profiles exist:
//   - safe: only prompt content of present (or general) components
//   - auto: everything of present (or general) components
//   - full: everything, including test artifacts and system-critical files
//
// A [Policy] pairs a profile with the two override flags that admit
// system-critical files and test artifacts into the install plan.
package profile
