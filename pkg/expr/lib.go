package expr

import (
	"path"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/ext"
)

// pathLib registers the manifest path variables and helper functions.
type pathLib struct{}

func (pathLib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Strings(),
		ext.Lists(),

		cel.Variable(VarPath, cel.StringType),
		cel.Variable(VarName, cel.StringType),

		// pathBase(path) == "system_prompt.txt"
		unaryString("pathBase", cel.StringType, func(s string) ref.Val {
			return types.String(path.Base(s))
		}),
		// pathDir(path).endsWith("/prompts")
		unaryString("pathDir", cel.StringType, func(s string) ref.Val {
			return types.String(path.Dir(s))
		}),
		// pathExt(path) in [".md", ".txt"]
		unaryString("pathExt", cel.StringType, func(s string) ref.Val {
			return types.String(path.Ext(s))
		}),

		// hasSegment(path, "prompts")
		binaryString("hasSegment", func(p, segment string) bool {
			for s := range strings.SplitSeq(p, "/") {
				if s == segment {
					return true
				}
			}

			return false
		}),

		// underDir(path, "skills/code-agent") holds when the directory is the
		// leading part of the path or appears after any slash.
		binaryString("underDir", func(p, dir string) bool {
			dir = strings.Trim(dir, "/") + "/"

			return strings.HasPrefix(p, dir) || strings.Contains(p, "/"+dir)
		}),
	}
}

func (pathLib) ProgramOptions() []cel.ProgramOption {
	return nil
}

func unaryString(name string, result *cel.Type, fn func(string) ref.Val) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(overloadID(name), []*cel.Type{cel.StringType}, result,
			cel.UnaryBinding(func(v ref.Val) ref.Val {
				s, ok := v.(types.String)
				if !ok {
					return types.NewErr("%s: invalid string value", name)
				}

				return fn(string(s))
			}),
		),
	)
}

func binaryString(name string, fn func(a, b string) bool) cel.EnvOption {
	return cel.Function(name,
		cel.Overload(overloadID(name), []*cel.Type{cel.StringType, cel.StringType}, cel.BoolType,
			cel.BinaryBinding(func(a, b ref.Val) ref.Val {
				as, ok := a.(types.String)
				if !ok {
					return types.NewErr("%s: invalid path value", name)
				}

				bs, ok := b.(types.String)
				if !ok {
					return types.NewErr("%s: invalid argument value", name)
				}

				return types.Bool(fn(string(as), string(bs)))
			}),
		),
	)
}

// overloadID turns "hasSegment" into "has_segment".
func overloadID(name string) string {
	var b strings.Builder

	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}

			r += 'a' - 'A'
		}

		b.WriteRune(r)
	}

	return b.String()
}
