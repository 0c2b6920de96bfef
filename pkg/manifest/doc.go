// Package manifest reads prompt package manifests and validates the relative
// paths they list.
//
// A manifest is plain text with one relative path per line. Blank lines and
// lines whose first non-space character is `#` are ignored. Every other line
// becomes an [Entry], which is then checked with [Validate] before any
// classification happens.
package manifest
