// Package expr provides CEL (Common Expression Language) functionality
// for evaluating classifier expressions against manifest paths.
//
// It creates CEL environments with custom functions for:
//   - Path operations (pathBase, pathDir, pathExt)
//   - Segment checks (hasSegment)
//
// CEL expressions have access to variables:
//   - `path` (string): The lower-cased, slash-separated relative path
//   - `name` (string): The lower-cased final path segment
package expr
