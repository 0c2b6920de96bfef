// Package recommend combines path classification, content categories and
// environment presence into per-path install decisions.
//
// An [Engine] processes manifest entries strictly in order. Each entry is
// validated, checked for existence under the source root, and then decided
// using the active [profile.Policy]:
//
//  1. Test artifacts are "not needed" and only installed when the policy
//     admits them.
//  2. Otherwise, system-critical files are only installed when the policy
//     admits them.
//  3. Otherwise, the profile decides based on whether the owning component is
//     present (or is the catch-all) and whether the path is prompt content.
//     Paths of specific components that are absent on the target are also
//     listed as "optional unmatched".
//
// Decisions are aggregated into a [Report] of ordered, deduplicated buckets.
// Per-entry problems (invalid or missing paths) are bucketed, never returned
// as errors. Filesystem errors while checking existence abort the run.
package recommend
