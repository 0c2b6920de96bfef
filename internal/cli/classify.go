package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aidrax/promptrec/pkg/category"
	"github.com/aidrax/promptrec/pkg/component"
	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/manifest"
	"github.com/aidrax/promptrec/pkg/yaml"
)

type ClassifyArgs struct {
	*RootArgs

	ConfigPath string
}

func NewClassifyArgs(rootArgs *RootArgs) *ClassifyArgs {
	return &ClassifyArgs{RootArgs: rootArgs}
}

func (ca *ClassifyArgs) AddFlags(cmd *cobra.Command) {
	addConfigFlag(cmd, &ca.ConfigPath)
}

func NewClassifyCmd(ca *ClassifyArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "classify PATH...",
		Short:   "Show the component and content category of manifest paths",
		Example: `  promptrec classify roo-code/src/a.ts skills/code-agent/prompts/p.txt ../evil`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd.OutOrStdout(), ca, args)
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// Classification is the classify output for one path.
type Classification struct {
	Path      string              `json:"path"`
	Component component.Component `json:"component,omitempty"`
	Error     string              `json:"error,omitempty"`
	Flags     *category.Flags     `json:"flags,omitempty"`
}

// Classify validates and classifies each path in order.
func Classify(reg *component.Registry, paths []string) []Classification {
	out := make([]Classification, 0, len(paths))

	for _, raw := range paths {
		p, err := manifest.Validate(raw)
		if err != nil {
			out = append(out, Classification{Path: raw, Error: err.Error()})

			continue
		}

		flags := category.Categorize(p)
		out = append(out, Classification{
			Path:      p,
			Component: reg.Classify(p),
			Flags:     &flags,
		})
	}

	return out
}

func runClassify(w io.Writer, ca *ClassifyArgs, paths []string) error {
	cfg, err := config.Load(ca.ConfigPath)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	enc := yaml.NewEncoder(w)

	err = enc.Encode(Classify(reg, paths))
	if err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode classification: %w", err)
	}

	return nil
}
