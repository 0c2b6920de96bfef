// Package detect probes a target root for installed components.
//
// Each component lists candidate locations relative to the target root. A
// candidate may contain one wildcard segment (`*`), which stands for any
// single directory name at that position, e.g. `home/*/skills/code-agent`
// for "any user home directory". A component is present when at least one
// candidate resolves to an existing file or directory.
//
// Detection runs once, before classification, and its [Presence] result is
// read-only afterwards.
package detect
