package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidrax/promptrec/api"
	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/profile"
	"github.com/aidrax/promptrec/pkg/yaml"
)

func TestDefault_MatchesBuiltins(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	if diff := cmp.Diff(component.DefaultDefinitions(), cfg.Components); diff != "" {
		t.Errorf("embedded components differ from built-in definitions (-want +got):\n%s", diff)
	}

	assert.Equal(t, cfg, config.New())

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, profile.Policy{Profile: profile.Auto}, policy)
}

func TestLoadBytes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		check   func(t *testing.T, cfg *config.Config)
		input   string
		wantErr string
	}{
		"minimal uses defaults": {
			input: "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()
				assert.Equal(t, "auto", cfg.Profile)
				assert.Len(t, cfg.Components, len(component.DefaultDefinitions()))
			},
		},
		"overrides": {
			input: `apiVersion: promptrec.aidrax.dev/v1beta1
kind: Configuration
profile: safe
includeCritical: true
components:
  - name: docs
    match: path.startsWith("docs/")
    detect: [docs, "home/*/docs"]
`,
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				policy, err := cfg.Policy()
				require.NoError(t, err)
				assert.Equal(t, profile.Policy{Profile: profile.Safe, IncludeCritical: true}, policy)

				reg, err := cfg.Registry()
				require.NoError(t, err)
				assert.Equal(t, []component.Component{"docs", component.General}, reg.Components())
				assert.Equal(t, component.Component("docs"), reg.Classify("Docs/readme.md"))
			},
		},
		"empty component list keeps only general": {
			input: "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\ncomponents: []\n",
			check: func(t *testing.T, cfg *config.Config) {
				t.Helper()

				reg, err := cfg.Registry()
				require.NoError(t, err)
				assert.Equal(t, []component.Component{component.General}, reg.Components())
			},
		},
		"wrong kind": {
			input:   "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Policy\n",
			wantErr: "kind",
		},
		"unknown profile": {
			input:   "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nprofile: yolo\n",
			wantErr: "profile",
		},
		"unknown field": {
			input:   "apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\ntheme: dark\n",
			wantErr: "theme",
		},
		"duplicate component": {
			input: `apiVersion: promptrec.aidrax.dev/v1beta1
kind: Configuration
components:
  - {name: a, match: "true"}
  - {name: a, match: "false"}
`,
			wantErr: "duplicate component name",
		},
		"reserved component": {
			input: `apiVersion: promptrec.aidrax.dev/v1beta1
kind: Configuration
components:
  - {name: general, match: "true"}
`,
			wantErr: "reserved",
		},
		"bad match expression": {
			input: `apiVersion: promptrec.aidrax.dev/v1beta1
kind: Configuration
components:
  - {name: a, match: "path.startsWith("}
`,
			wantErr: "compile match expression",
		},
		"bad detect pattern": {
			input: `apiVersion: promptrec.aidrax.dev/v1beta1
kind: Configuration
components:
  - {name: a, match: "true", detect: ["foo*/bar"]}
`,
			wantErr: "detect",
		},
		"invalid yaml": {
			input:   "apiVersion: [\n",
			wantErr: "apiVersion",
		},
		"empty file": {
			input:   "\n  \n",
			wantErr: "empty document",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.LoadBytes([]byte(tc.input))
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestLoadBytes_ErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := config.LoadBytes([]byte("apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nincludeCritical: maybe\n"))

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	require.NotNil(t, yamlErr.Path)
	assert.Equal(t, "$.includeCritical", yamlErr.Path.String())
	assert.Contains(t, err.Error(), "[3:1]")
}

//nolint:paralleltest // Sets environment variables.
func TestLoad(t *testing.T) {
	t.Run("no file uses embedded default", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
	})

	t.Run("file at default location", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)

		path := filepath.Join(xdg, "promptrec", "config.yaml")
		require.Equal(t, path, config.GetPath())
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("apiVersion: promptrec.aidrax.dev/v1beta1\nkind: Configuration\nprofile: full\n"), 0o600))

		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, "full", cfg.Profile)
	})

	t.Run("explicit missing path", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "config file not found")
	})
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "promptrec", "config.yaml")

	res, err := config.WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, api.Created, res.Action)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultYAML(), got)

	res, err = config.WriteDefault(path, false)
	require.NoError(t, err)
	assert.Equal(t, api.Kept, res.Action)

	schema, err := os.ReadFile(filepath.Join(filepath.Dir(path), config.SchemaFile))
	require.NoError(t, err)
	assert.Equal(t, config.Schema(), schema)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	b, err := config.New().MarshalYAML()
	require.NoError(t, err)

	cfg, err := config.LoadBytes(b)
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)
	assert.Contains(t, string(b), "apiVersion: promptrec.aidrax.dev/v1beta1\n")
}
