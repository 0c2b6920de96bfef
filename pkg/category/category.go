// Package category derives content signals from manifest paths.
//
// The three predicates are independent and only look at the path string.
// None of them makes an install decision.
package category

import (
	"path"
	"strings"
)

// Flags holds the content signals for one path.
type Flags struct {
	TestArtifact   bool `json:"testArtifact"`
	SystemCritical bool `json:"systemCritical"`
	PromptContent  bool `json:"promptContent"`
}

var (
	testArtifactSegments = []string{"/__tests__/"}
	testArtifactSuffixes = []string{".spec.ts", ".snap"}

	criticalExtensions = []string{".ts", ".js", ".py", ".sh"}
	criticalRoots      = []string{
		"roo-code/src/",
		"roo-code/webview-ui/src/components/",
	}

	promptSegments = []string{"/prompts/", "/templates/"}
	promptSuffixes = []string{"system_prompt.txt", "support-prompt.ts"}
	promptNamePart = "prompt"
)

// Categorize evaluates all predicates for p.
func Categorize(p string) Flags {
	return Flags{
		TestArtifact:   IsTestArtifact(p),
		SystemCritical: IsSystemCritical(p),
		PromptContent:  IsPromptContent(p),
	}
}

// IsTestArtifact reports whether p is a test suite or snapshot file.
func IsTestArtifact(p string) bool {
	lower := strings.ToLower(p)

	return containsAny(lower, testArtifactSegments) || hasAnySuffix(lower, testArtifactSuffixes)
}

// IsSystemCritical reports whether p is executable source, or lives under one
// of the extension's source trees.
func IsSystemCritical(p string) bool {
	lower := strings.ToLower(p)

	return hasAnySuffix(lower, criticalExtensions) || hasAnyPrefix(lower, criticalRoots)
}

// IsPromptContent reports whether p looks like prompt or template content.
func IsPromptContent(p string) bool {
	lower := strings.ToLower(p)

	switch {
	case containsAny(lower, promptSegments):
		return true
	case strings.Contains(path.Base(lower), promptNamePart):
		return true
	case hasAnySuffix(lower, promptSuffixes):
		return true
	}

	return false
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}

	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}
