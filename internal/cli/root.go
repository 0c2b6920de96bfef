package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aidrax/promptrec/pkg/log"
)

const (
	cmdName = "promptrec"
	cmdDesc = `Recommend which files of a prompt package to install on a target system.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           recommendExamples,
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging(args),
	}

	args.AddFlags(cmd)

	cmd.AddCommand(
		NewRecommendCmd(NewRecommendArgs(args)),
		NewDetectCmd(NewDetectArgs(args)),
		NewClassifyCmd(NewClassifyArgs(args)),
		NewConfigCmd(NewConfigArgs(args)),
		NewVersionCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)
		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		return nil
	}
}

// addConfigFlag registers the shared --config flag.
func addConfigFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVar(p, "config", "",
		"Path to the promptrec configuration file (default is the user config directory)")

	must(cmd.MarkFlagFilename("config", "yaml", "yml"))
}
