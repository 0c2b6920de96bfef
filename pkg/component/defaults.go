package component

// Built-in components, in classification priority order.
const (
	RooCode              Component = "roo_code"
	SkillCodeAgent       Component = "skill_code_agent"
	SkillIPConfigManager Component = "skill_ip_config_manager"
	PromptAgentWorkspace Component = "prompt_agent_workspace"
	AgentStandards       Component = "aidrax_agent_standards"
	EnterprisePrompts    Component = "enterprise_prompts"
)

// DefaultDefinitions returns the built-in component definitions.
func DefaultDefinitions() []Definition {
	return []Definition{
		{
			Name:  string(RooCode),
			Match: `path.startsWith("roo-code/") || path.contains("/roo-code/")`,
			Detect: []string{
				"Roo-Code",
				"home/*/Roo-Code",
				"projects/Roo-Code",
				"data2/projects/Roo-Code",
			},
		},
		{
			Name: string(SkillCodeAgent),
			Match: `path.startsWith("skills/code-agent/") || ` +
				`path.contains("/skills/code-agent/") || ` +
				`path.contains("/aidrax-core-skills/skills/code-agent/")`,
			Detect: []string{
				"skills/code-agent",
				"home/*/skills/code-agent",
				"Downloads/aidrax-core-skills/skills/code-agent",
				"home/*/Downloads/aidrax-core-skills/skills/code-agent",
				"data2/projects/aidrax-core-skills/skills/code-agent",
			},
		},
		{
			Name: string(SkillIPConfigManager),
			Match: `path.startsWith("skills/ip-config-manager/") || ` +
				`path.contains("/skills/ip-config-manager/") || ` +
				`path.contains("/aidrax-core-skills/skills/ip-config-manager/")`,
			Detect: []string{
				"skills/ip-config-manager",
				"home/*/skills/ip-config-manager",
				"Downloads/aidrax-core-skills/skills/ip-config-manager",
				"home/*/Downloads/aidrax-core-skills/skills/ip-config-manager",
				"data2/projects/aidrax-core-skills/skills/ip-config-manager",
			},
		},
		{
			Name:  string(PromptAgentWorkspace),
			Match: `path.contains("aidrax_prompt_und_agenten/")`,
			Detect: []string{
				"Dokumente/aidrax_prompt_und_agenten",
				"home/*/Dokumente/aidrax_prompt_und_agenten",
			},
		},
		{
			Name: string(AgentStandards),
			Match: `path.contains("/aidrax-agent/standards/") || ` +
				`path.startsWith("downloads/aidrax-agent/standards/")`,
			Detect: []string{
				"aidrax-agent/standards",
				"Downloads/aidrax-agent/standards",
				"home/*/Downloads/aidrax-agent/standards",
				"data2/projects/aidrax-agent/standards",
			},
		},
		{
			Name: string(EnterprisePrompts),
			Match: `path.contains("/aidrax-enterprise/prompts/") || ` +
				`path.startsWith("aidrax-enterprise/prompts/")`,
			Detect: []string{
				"aidrax-enterprise/prompts",
				"home/*/aidrax-enterprise/prompts",
				"data2/projects/aidrax-enterprise/prompts",
			},
		},
	}
}

// Default returns a [Registry] built from [DefaultDefinitions].
func Default() *Registry {
	return MustNewRegistry(DefaultDefinitions())
}
