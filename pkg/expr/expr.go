package expr

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
)

const (
	// VarPath is the variable holding the lower-cased path.
	VarPath = "path"
	// VarName is the variable holding the lower-cased final path segment.
	VarName = "name"
)

// ErrNotBool is returned by [Eval] when a program yields a non-boolean.
var ErrNotBool = errors.New("expression did not return a bool")

// CEL environment creation and compilation are not documented as safe for
// concurrent use.
var celMutex sync.Mutex

// Environment is a [*cel.Env] preloaded with the path variables and helper
// functions. It is safe for concurrent use.
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment]. opts are applied after the
// path library.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	env, err := cel.NewEnv(append([]cel.EnvOption{cel.Lib(pathLib{})}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

// Compile compiles a CEL expression and returns a program. The expression
// must evaluate to a boolean.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("compile expression: must return bool, got %s", out)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Vars returns the activation for evaluating a program against p.
func Vars(p string) map[string]any {
	lower := strings.ToLower(p)

	return map[string]any{
		VarPath: lower,
		VarName: path.Base(lower),
	}
}

// Eval runs program against p.
func Eval(program cel.Program, p string) (bool, error) {
	out, _, err := program.Eval(Vars(p))
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", p, err)
	}

	b, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q: %w: %T", p, ErrNotBool, out.Value())
	}

	return b, nil
}
