// Package config loads the promptrec configuration.
//
// A configuration selects the default recommendation profile and override
// flags, and declares the component set used for classification and
// environment detection. Files are YAML, validated against an embedded JSON
// schema before they are decoded. When no file exists the embedded default
// configuration is used.
package config
