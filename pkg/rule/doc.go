// Package rule determines which component owns a manifest path, by using CEL
// (Common Expression Language) expressions.
//
// The expressions only have access to the path string, never to file content.
package rule
