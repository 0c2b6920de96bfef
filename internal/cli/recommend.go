package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aidrax/promptrec/pkg/config"
	"github.com/aidrax/promptrec/pkg/detect"
	"github.com/aidrax/promptrec/pkg/log"
	"github.com/aidrax/promptrec/pkg/manifest"
	"github.com/aidrax/promptrec/pkg/profile"
	"github.com/aidrax/promptrec/pkg/recommend"
	"github.com/aidrax/promptrec/pkg/report"
)

const recommendExamples = `  # Recommend files using the default (auto) profile:
  promptrec recommend --manifest bundle/MANIFEST.txt --source-dir bundle \
    --target-home / --output-dir out

  # Only install prompt content of detected components:
  promptrec recommend --profile safe ...

  # Install everything, and also write analysis.yaml:
  promptrec recommend --profile full --format yaml ...

  # Flags can also be set through the environment:
  PROMPTREC_PROFILE=safe PROMPTREC_INCLUDE_CRITICAL=true promptrec recommend ...`

type RecommendArgs struct {
	*RootArgs

	Manifest         string
	SourceDir        string
	TargetHome       string
	OutputDir        string
	ConfigPath       string
	Format           string
	Profile          profile.Profile
	IncludeCritical  bool
	IncludeNotNeeded bool
}

func NewRecommendArgs(rootArgs *RootArgs) *RecommendArgs {
	return &RecommendArgs{
		RootArgs: rootArgs,
		Profile:  profile.Default,
	}
}

func (ra *RecommendArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.Manifest, "manifest", "", "Manifest file listing package-relative paths")
	cmd.Flags().StringVar(&ra.SourceDir, "source-dir", "", "Root of the package contents")
	cmd.Flags().StringVar(&ra.TargetHome, "target-home", "", "Root of the target system to probe for components")
	cmd.Flags().StringVar(&ra.OutputDir, "output-dir", "", "Directory to write reports into")
	cmd.Flags().Var(&ra.Profile, "profile",
		fmt.Sprintf("Recommendation profile, one of: %s", profile.AllProfiles))
	cmd.Flags().BoolVar(&ra.IncludeCritical, "include-critical", false,
		"Add system-critical files to the install plan")
	cmd.Flags().BoolVar(&ra.IncludeNotNeeded, "include-not-needed", false,
		"Add test artifacts to the install plan")
	cmd.Flags().StringVar(&ra.Format, "format", string(report.FormatText),
		fmt.Sprintf("Analysis format, one of: %s", report.AllFormats))
	addConfigFlag(cmd, &ra.ConfigPath)

	for _, name := range []string{"manifest", "source-dir", "target-home", "output-dir"} {
		must(cmd.MarkFlagRequired(name))
	}

	must(cmd.MarkFlagFilename("manifest"))
	must(cmd.MarkFlagDirname("source-dir"))
	must(cmd.MarkFlagDirname("target-home"))
	must(cmd.MarkFlagDirname("output-dir"))
	must(cmd.RegisterFlagCompletionFunc("profile",
		cobra.FixedCompletions(profile.AllProfiles, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(report.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
}

func NewRecommendCmd(ra *RecommendArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recommend",
		Short:   "Classify a manifest and write install recommendations",
		Example: recommendExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRecommend(cmd, ra)
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// policy merges the configured policy with flags that were set explicitly.
func (ra *RecommendArgs) policy(cmd *cobra.Command, cfg *config.Config) (profile.Policy, error) {
	p, err := cfg.Policy()
	if err != nil {
		return profile.Policy{}, err //nolint:wrapcheck // Already wrapped.
	}

	flags := cmd.Flags()
	if flags.Changed("profile") {
		p.Profile = ra.Profile
	}
	if flags.Changed("include-critical") {
		p.IncludeCritical = ra.IncludeCritical
	}
	if flags.Changed("include-not-needed") {
		p.IncludeNotNeeded = ra.IncludeNotNeeded
	}

	return p, nil
}

func runRecommend(cmd *cobra.Command, ra *RecommendArgs) error {
	logger := log.WithContext(cmd.Context())

	format, err := report.ParseFormat(ra.Format)
	if err != nil {
		return err //nolint:wrapcheck // Usage error.
	}

	err = recommend.CheckInputs(recommend.Inputs{
		Manifest:  ra.Manifest,
		SourceDir: ra.SourceDir,
		TargetDir: ra.TargetHome,
	})
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	cfg, err := config.Load(ra.ConfigPath)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	policy, err := ra.policy(cmd, cfg)
	if err != nil {
		return err
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	presence, err := detect.Detect(ra.TargetHome, reg)
	if err != nil {
		return fmt.Errorf("detect components: %w", err)
	}

	entries, err := manifest.ReadFile(ra.Manifest)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	logger.Debug("run recommendation",
		slog.String("profile", policy.Profile.String()),
		slog.Bool("include_critical", policy.IncludeCritical),
		slog.Bool("include_not_needed", policy.IncludeNotNeeded),
		slog.Int("entries", len(entries)),
	)

	eng := recommend.New(reg, presence, policy, recommend.DirSource{Root: ra.SourceDir})

	rep, err := eng.Run(entries)
	if err != nil {
		return fmt.Errorf("recommend: %w", err)
	}

	written, err := report.NewWriter(ra.OutputDir, report.WithFormat(format)).Write(rep)
	if err != nil {
		return fmt.Errorf("write reports: %w", err)
	}

	logger.Info("reports written",
		slog.String("dir", ra.OutputDir),
		slog.Int("files", len(written)),
	)

	return printSummary(cmd.OutOrStdout(), rep.Summary())
}

// printSummary writes the styled summary when w is a terminal, and the plain
// summary.txt text otherwise.
func printSummary(w io.Writer, sum recommend.Summary) error {
	out := report.SummaryText(sum)
	if isTerminal(w) {
		out = report.Styled(sum, report.DefaultStyles())
	}

	_, err := io.WriteString(w, out)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: File descriptors fit in int.
}

// joinNames renders a list for single-line output.
func joinNames[T ~string](names []T) string {
	if len(names) == 0 {
		return "(none)"
	}

	parts := make([]string, 0, len(names))
	for _, n := range names {
		parts = append(parts, string(n))
	}

	return strings.Join(parts, ", ")
}
