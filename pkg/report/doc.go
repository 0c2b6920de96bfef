// Package report renders a [recommend.Report] to the output directory and
// to the terminal.
//
// Each bucket is written to its own newline-joined list file named after the
// bucket. The summary is written as fixed-width text and as JSON with sorted
// keys, and optionally as YAML.
package report
