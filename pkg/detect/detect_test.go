package detect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/detect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	reg := component.Default()

	tcs := map[string]struct {
		setup        func(t *testing.T, root string)
		wantDetected []component.Component
	}{
		"empty target": {
			setup:        func(*testing.T, string) {},
			wantDetected: []component.Component{component.General},
		},
		"code agent under a user home": {
			setup: func(t *testing.T, root string) {
				t.Helper()
				mkdirs(t, root, "home/alice/skills/code-agent")
			},
			wantDetected: []component.Component{component.SkillCodeAgent, component.General},
		},
		"several components": {
			setup: func(t *testing.T, root string) {
				t.Helper()
				mkdirs(t, root,
					"data2/projects/Roo-Code",
					"home/bob/Dokumente/aidrax_prompt_und_agenten",
					"aidrax-enterprise/prompts",
				)
			},
			wantDetected: []component.Component{
				component.RooCode,
				component.PromptAgentWorkspace,
				component.EnterprisePrompts,
				component.General,
			},
		},
		"file counts as present": {
			setup: func(t *testing.T, root string) {
				t.Helper()
				touch(t, root, "Downloads/aidrax-agent/standards")
			},
			wantDetected: []component.Component{component.AgentStandards, component.General},
		},
		"lowercase directory does not match": {
			setup: func(t *testing.T, root string) {
				t.Helper()
				mkdirs(t, root, "home/alice/roo-code-other")
			},
			wantDetected: []component.Component{component.General},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			tc.setup(t, root)

			presence, err := detect.Detect(root, reg)
			require.NoError(t, err)

			assert.Equal(t, tc.wantDetected, presence.Detected(reg))

			for _, c := range reg.Components() {
				assert.NotEqual(t, presence.Has(c), containsComponent(presence.Missing(reg), c))
			}
		})
	}
}

func TestDetect_WildcardOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "home/alice/skills/code-agent")

	presence, err := detect.Detect(root, component.Default())
	require.NoError(t, err)

	assert.True(t, presence.Has(component.SkillCodeAgent))
	assert.False(t, presence.Has(component.SkillIPConfigManager))
	assert.True(t, presence.Has(component.General))
}

func TestDetect_InvalidCandidate(t *testing.T) {
	t.Parallel()

	reg := component.MustNewRegistry([]component.Definition{
		{Name: "bad", Match: "false", Detect: []string{"a/*/b/*"}},
	})

	_, err := detect.Detect(t.TempDir(), reg)
	require.ErrorIs(t, err, detect.ErrMultipleWildcards)
}

func TestPresence(t *testing.T) {
	t.Parallel()

	reg := component.Default()

	var zero detect.Presence
	assert.True(t, zero.Has(component.General))
	assert.False(t, zero.Has(component.RooCode))

	p := detect.NewPresence(map[component.Component]bool{
		component.EnterprisePrompts: true,
		component.General:           false,
	})
	assert.True(t, p.Has(component.General))
	assert.Equal(t,
		[]component.Component{component.EnterprisePrompts, component.General},
		p.Detected(reg),
	)
	assert.Equal(t, []component.Component{
		component.RooCode,
		component.SkillCodeAgent,
		component.SkillIPConfigManager,
		component.PromptAgentWorkspace,
		component.AgentStandards,
	}, p.Missing(reg))
}

func containsComponent(list []component.Component, c component.Component) bool {
	for _, x := range list {
		if x == c {
			return true
		}
	}

	return false
}
