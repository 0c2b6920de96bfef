package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/aidrax/promptrec/pkg/yaml"
)

func mustPath(t *testing.T, s string) *goccyyaml.Path {
	t.Helper()

	p, err := goccyyaml.PathString(s)
	require.NoError(t, err)

	return p
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	source := []byte("profile: auto\nincludeCritical: maybe\n")

	tcs := map[string]struct {
		err      *yaml.Error
		want     string
		contains []string
	}{
		"nil error": {
			err:  &yaml.Error{},
			want: "",
		},
		"without position": {
			err:  yaml.NewError(errors.New("value is required")),
			want: "value is required",
		},
		"path without source": {
			err:  yaml.NewError(errors.New("value is required"), yaml.WithPath(mustPath(t, "$.components[0].name"))),
			want: "error at $.components[0].name: value is required",
		},
		"path with source": {
			err: yaml.NewError(errors.New("expected boolean"),
				yaml.WithPath(mustPath(t, "$.includeCritical")),
				yaml.WithSource(source),
			),
			contains: []string{"[2:1] expected boolean:", "includeCritical: maybe"},
		},
		"path missing from source": {
			err: yaml.NewError(errors.New("bad"),
				yaml.WithPath(mustPath(t, "$.nope")),
				yaml.WithSource(source),
			),
			want: "error at $.nope: bad",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.err.Error()
			if tc.contains == nil {
				assert.Equal(t, tc.want, got)

				return
			}

			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestErrorWrapper_Wrap(t *testing.T) {
	t.Parallel()

	src := []byte("profile: [\n")
	ew := yaml.NewErrorWrapper(yaml.WithSource(src))

	var v any
	err := yaml.NewDecoder(strings.NewReader(string(src))).Decode(&v)
	require.Error(t, err)

	wrapped := ew.Wrap(err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, wrapped, &yamlErr)
	assert.Equal(t, src, yamlErr.Source)
	assert.NotNil(t, yamlErr.Token)

	plain := errors.New("plain")
	require.ErrorIs(t, ew.Wrap(plain), plain)
	require.NoError(t, ew.Wrap(nil))
}

func TestEncoder(t *testing.T) {
	t.Parallel()

	b, err := yaml.Marshal(map[string]any{"detect": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "detect:\n  - a\n  - b\n", string(b))
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	type doc struct {
		Profile string `json:"profile"`
	}

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("profile: safe\n"), &d))
	assert.Equal(t, "safe", d.Profile)

	require.ErrorIs(t, yaml.Unmarshal([]byte(" \n\t\n"), &d), yaml.ErrEmptyDocument)

	err := yaml.Unmarshal([]byte("profile: safe\nextra: 1\n"), &d, yaml.Strict())

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.Contains(t, err.Error(), "extra")
}

func TestError_Position(t *testing.T) {
	t.Parallel()

	source := []byte("profile: auto\ncomponents:\n  - name: a\n    match: 1\n")

	line, col, ok := yaml.NewError(errors.New("bad"),
		yaml.WithPath(mustPath(t, "$.components[0].match")),
		yaml.WithSource(source),
	).Position()
	require.True(t, ok)
	assert.Equal(t, 4, line)
	assert.Equal(t, 5, col)

	_, _, ok = yaml.NewError(errors.New("bad"), yaml.WithPath(mustPath(t, "$.profile"))).Position()
	assert.False(t, ok)
}
