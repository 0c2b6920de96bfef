package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidrax/promptrec/api"
	"github.com/aidrax/promptrec/pkg/config"
)

type ConfigArgs struct {
	*RootArgs

	ConfigPath string
	Write      bool
	Force      bool
}

func NewConfigArgs(rootArgs *RootArgs) *ConfigArgs {
	return &ConfigArgs{RootArgs: rootArgs}
}

func (ca *ConfigArgs) AddFlags(cmd *cobra.Command) {
	addConfigFlag(cmd, &ca.ConfigPath)
	cmd.Flags().BoolVar(&ca.Write, "write", false, "Write the default configuration and JSON schema, then exit")
	cmd.Flags().BoolVar(&ca.Force, "force", false, "With --write, back up and replace an existing configuration")
}

func NewConfigCmd(ca *ConfigArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the active configuration, or write the default one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, ca)
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runConfig(cmd *cobra.Command, ca *ConfigArgs) error {
	path := ca.ConfigPath
	if path == "" {
		path = config.GetPath()
	}

	if ca.Write {
		res, err := config.WriteDefault(path, ca.Force)
		if err != nil {
			return err //nolint:wrapcheck // Already descriptive.
		}

		out := cmd.OutOrStdout()

		switch res.Action {
		case api.Created:
			mustN(fmt.Fprintf(out, "wrote %s\n", res.Path))
		case api.Replaced:
			mustN(fmt.Fprintf(out, "wrote %s (previous file saved as %s)\n", res.Path, res.Backup))
		case api.Kept:
			mustN(fmt.Fprintf(out, "kept existing %s (use --force to replace it)\n", res.Path))
		}

		return nil
	}

	if ca.Force {
		slog.Warn("--force has no effect without --write")
	}

	cfg, err := config.Load(ca.ConfigPath)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	b, err := cfg.MarshalYAML()
	if err != nil {
		return err
	}

	mustN(fmt.Fprint(cmd.OutOrStdout(), string(b)))

	return nil
}
