package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/detect"
	"github.com/aidrax/promptrec/pkg/recommend"
)

type DetectArgs struct {
	*RootArgs

	TargetHome string
	ConfigPath string
}

func NewDetectArgs(rootArgs *RootArgs) *DetectArgs {
	return &DetectArgs{RootArgs: rootArgs}
}

func (da *DetectArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&da.TargetHome, "target-home", "", "Root of the target system to probe for components")
	addConfigFlag(cmd, &da.ConfigPath)

	must(cmd.MarkFlagRequired("target-home"))
	must(cmd.MarkFlagDirname("target-home"))
}

func NewDetectCmd(da *DetectArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Show which components are present under the target root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDetect(cmd.OutOrStdout(), da)
		},
	}
	da.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runDetect(w io.Writer, da *DetectArgs) error {
	err := recommend.RequireDir(recommend.InputTargetDir, da.TargetHome)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	cfg, err := config.Load(da.ConfigPath)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	presence, err := detect.Detect(da.TargetHome, reg)
	if err != nil {
		return fmt.Errorf("detect components: %w", err)
	}

	for _, c := range reg.Components() {
		state := "missing"
		if presence.Has(c) {
			state = "detected"
		}

		mustN(fmt.Fprintf(w, "%-26s%s\n", c, state))
	}

	mustN(fmt.Fprintf(w, "\n%-26s%s\n", "Detected components:", joinNames(presence.Detected(reg))))
	mustN(fmt.Fprintf(w, "%-26s%s\n", "Missing components:", joinNames(presence.Missing(reg))))

	return nil
}
