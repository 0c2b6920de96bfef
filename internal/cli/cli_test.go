package cli_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidrax/promptrec/internal/cli"
	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/recommend"
)

type fixture struct {
	manifest string
	source   string
	target   string
	output   string
	config   string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	root := t.TempDir()
	f := fixture{
		manifest: filepath.Join(root, "MANIFEST.txt"),
		source:   filepath.Join(root, "src"),
		target:   filepath.Join(root, "target"),
		output:   filepath.Join(root, "out", "reports"),
		config:   filepath.Join(root, "config.yaml"),
	}

	writeFile(t, f.manifest, strings.Join([]string{
		"# bundle manifest",
		"roo-code/src/a.ts",
		"skills/code-agent/prompts/p.txt",
		"",
		"random/notes.txt",
		"../evil",
		"missing/file.txt",
		"docs/__tests__/x.md",
		"random/notes.txt",
	}, "\n")+"\n")

	for _, p := range []string{
		"roo-code/src/a.ts",
		"skills/code-agent/prompts/p.txt",
		"random/notes.txt",
		"docs/__tests__/x.md",
	} {
		writeFile(t, filepath.Join(f.source, p), "x")
	}

	require.NoError(t, os.MkdirAll(filepath.Join(f.target, "home", "alice", "Roo-Code"), 0o755))
	writeFile(t, f.config, string(config.DefaultYAML()))

	return f
}

func (f fixture) args(extra ...string) []string {
	return append([]string{
		"recommend",
		"--manifest", f.manifest,
		"--source-dir", f.source,
		"--target-home", f.target,
		"--output-dir", f.output,
		"--config", f.config,
		"--log-level", "error",
	}, extra...)
}

func (f fixture) read(t *testing.T, name string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(f.output, name))
	require.NoError(t, err)

	return string(b)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func TestRecommend(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	out, err := execute(t, f.args()...)
	require.NoError(t, err)

	assert.Equal(t, f.read(t, "summary.txt"), out)
	assert.Contains(t, out, "Profile:              auto\n")
	assert.Contains(t, out, "Total in manifest:    7\n")
	assert.Contains(t, out, "Detected components:  roo_code, general\n")

	assert.Equal(t, "random/notes.txt\n", f.read(t, "recommended.txt"))
	assert.Equal(t, "roo-code/src/a.ts\n", f.read(t, "system_critical.txt"))
	assert.Equal(t, "docs/__tests__/x.md\n", f.read(t, "not_needed.txt"))
	assert.Equal(t, "skills/code-agent/prompts/p.txt\n", f.read(t, "optional_unmatched.txt"))
	assert.Equal(t, "random/notes.txt\n", f.read(t, "install_list.txt"))
	assert.Equal(t, "../evil\n", f.read(t, "invalid_entries.txt"))
	assert.Equal(t, "missing/file.txt\n", f.read(t, "missing_files.txt"))
	assert.Contains(t, f.read(t, "analysis.json"), `"total_in_manifest": 7`)

	_, err = os.Stat(filepath.Join(f.output, "analysis.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecommend_Overrides(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		config      string
		args        []string
		wantInstall string
	}{
		"full profile flag": {
			args:        []string{"--profile", "full"},
			wantInstall: "roo-code/src/a.ts\nskills/code-agent/prompts/p.txt\nrandom/notes.txt\ndocs/__tests__/x.md\n",
		},
		"safe profile flag": {
			args:        []string{"--profile", "SAFE"},
			wantInstall: "",
		},
		"include flags": {
			args:        []string{"--include-critical", "--include-not-needed"},
			wantInstall: "roo-code/src/a.ts\nrandom/notes.txt\ndocs/__tests__/x.md\n",
		},
		"config seeds profile": {
			config:      "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nprofile: full\n",
			wantInstall: "roo-code/src/a.ts\nskills/code-agent/prompts/p.txt\nrandom/notes.txt\ndocs/__tests__/x.md\n",
		},
		"flag wins over config": {
			config:      "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nprofile: full\nincludeCritical: true\n",
			args:        []string{"--profile", "auto", "--include-critical=false"},
			wantInstall: "random/notes.txt\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			if tc.config != "" {
				writeFile(t, f.config, tc.config)
			}

			_, err := execute(t, f.args(tc.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tc.wantInstall, f.read(t, "install_list.txt"))
		})
	}
}

func TestRecommend_YAMLFormat(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := execute(t, f.args("--format", "yaml")...)
	require.NoError(t, err)
	assert.Contains(t, f.read(t, "analysis.yaml"), "profile: auto\n")
}

func TestRecommend_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate  func(t *testing.T, f *fixture) []string
		wantErr string
		wantIs  error
	}{
		"missing manifest": {
			mutate: func(t *testing.T, f *fixture) []string {
				t.Helper()
				f.manifest = filepath.Join(t.TempDir(), "nope.txt")

				return nil
			},
			wantErr: "manifest not found",
			wantIs:  recommend.ErrPrecondition,
		},
		"missing target": {
			mutate: func(t *testing.T, f *fixture) []string {
				t.Helper()
				f.target = filepath.Join(t.TempDir(), "nope")

				return nil
			},
			wantErr: "target home not found",
			wantIs:  recommend.ErrPrecondition,
		},
		"unknown profile": {
			mutate: func(*testing.T, *fixture) []string {
				return []string{"--profile", "yolo"}
			},
			wantErr: "unknown profile",
		},
		"unknown format": {
			mutate: func(*testing.T, *fixture) []string {
				return []string{"--format", "xml"}
			},
			wantErr: "unknown format",
		},
		"invalid config": {
			mutate: func(t *testing.T, f *fixture) []string {
				t.Helper()
				writeFile(t, f.config, "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nprofile: yolo\n")

				return nil
			},
			wantErr: "profile",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			extra := tc.mutate(t, &f)

			_, err := execute(t, f.args(extra...)...)
			require.ErrorContains(t, err, tc.wantErr)

			if tc.wantIs != nil {
				require.ErrorIs(t, err, tc.wantIs)
			}
		})
	}
}

func TestRecommend_RequiredFlags(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "recommend", "--manifest", "x")
	require.ErrorContains(t, err, "required flag(s)")
}

func TestDetect(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	out, err := execute(t, "detect", "--target-home", f.target, "--config", f.config, "--log-level", "error")
	require.NoError(t, err)

	row := func(label, value string) string {
		return fmt.Sprintf("%-26s%s\n", label, value)
	}

	assert.Contains(t, out, row("roo_code", "detected"))
	assert.Contains(t, out, row("skill_code_agent", "missing"))
	assert.Contains(t, out, row("general", "detected"))
	assert.Contains(t, out, row("Detected components:", "roo_code, general"))
}

func TestDetect_MissingTarget(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := execute(t, "detect", "--target-home", filepath.Join(f.target, "nope"), "--log-level", "error")

	var inErr *recommend.InputError
	require.ErrorAs(t, err, &inErr)
	assert.Equal(t, recommend.InputTargetDir, inErr.Input)

	var buf bytes.Buffer

	cli.ErrorHandler(&buf, fang.Styles{}, err)
	assert.Contains(t, buf.String(), "--target-home")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	out, err := execute(t, "classify", "--config", f.config, "--log-level", "error",
		"Roo-Code/src/A.ts", "../evil", "templates/base_prompt.md")
	require.NoError(t, err)

	assert.Contains(t, out, "- path: Roo-Code/src/A.ts\n")
	assert.Contains(t, out, "component: roo_code\n")
	assert.Contains(t, out, "systemCritical: true\n")
	assert.Contains(t, out, "- path: ../evil\n")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "component: general\n")
	assert.Contains(t, out, "promptContent: true\n")
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "promptrec", "config.yaml")

	out, err := execute(t, "config", "--write", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+path+"\n", out)

	out, err = execute(t, "config", "--write", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "kept existing")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultYAML(), got)

	out, err = execute(t, "config", "--config", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "kind: Configuration\n")
	assert.Contains(t, out, "name: enterprise_prompts\n")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "promptrec "))
}
