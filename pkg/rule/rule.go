package rule

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/aidrax/promptrec/pkg/expr"
)

var (
	sharedEnv     *expr.Environment
	sharedEnvErr  error
	sharedEnvOnce sync.Once
)

func environment() (*expr.Environment, error) {
	sharedEnvOnce.Do(func() {
		sharedEnv, sharedEnvErr = expr.NewEnvironment()
	})

	return sharedEnv, sharedEnvErr
}

// Rule uses a CEL matcher to determine if a path belongs to its component.
//
// CEL expressions have access to variables:
//   - `path` (string): The lower-cased relative path
//   - `name` (string): The lower-cased final path segment
//
// CEL expressions must return a boolean value:
//   - path.startsWith("roo-code/") || path.contains("/roo-code/") - path is under a roo-code directory
//   - hasSegment(path, "prompts") - any segment is exactly "prompts"
//   - pathExt(path) in [".md", ".txt"] - documentation files
//   - false - rule doesn't match
//
// CEL path functions available:
//   - pathBase(string): Returns the last element of the path (filename)
//   - pathDir(string): Returns all but the last element of the path (directory)
//   - pathExt(string): Returns the file extension including the dot
//   - hasSegment(string, string): Reports whether a path segment equals the name
//   - underDir(string, string): Reports whether the path lies under the directory,
//     either at the start or after any slash
type Rule struct {
	matchProgram cel.Program // Compiled CEL program for matching paths.

	// Match is a CEL expression to match paths.
	Match string `json:"match" jsonschema:"title=Match Expression"`
	// Component is the name of the component assigned when this rule matches.
	Component string `json:"component" jsonschema:"title=Component Name"`
}

// New creates a new rule with the given component name and match expression.
func New(component, match string) (*Rule, error) {
	r := &Rule{
		Match:     match,
		Component: component,
	}
	if err := r.CompileMatch(); err != nil {
		return nil, fmt.Errorf("rule %q: %w", match, err)
	}

	return r, nil
}

// MustNew creates a new rule and panics if there's an error.
func MustNew(component, match string) *Rule {
	r, err := New(component, match)
	if err != nil {
		panic(err)
	}

	return r
}

// CompileMatch compiles the rule's match expression into a CEL program.
func (r *Rule) CompileMatch() error {
	if r.matchProgram != nil {
		return nil
	}

	env, err := environment()
	if err != nil {
		return fmt.Errorf("create CEL environment: %w", err)
	}

	program, err := env.Compile(r.Match)
	if err != nil {
		return fmt.Errorf("compile match expression: %w", err)
	}

	r.matchProgram = program

	return nil
}

// MatchPath evaluates the rule against a single relative path. Matching is
// case-insensitive.
func (r *Rule) MatchPath(p string) bool {
	if r.matchProgram == nil {
		panic(errors.New("rule missing a match expression"))
	}

	ok, err := expr.Eval(r.matchProgram, p)
	if err != nil {
		slog.Debug("rule evaluation failed",
			slog.String("component", r.Component),
			slog.String("path", p),
			slog.Any("error", err),
		)

		return false
	}

	return ok
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: %s", r.Component, r.Match)
}
