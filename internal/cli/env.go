package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars binds environment variables to the flags of cmd.
// Environment variable names are generated as PROMPTREC_<FLAG_NAME> where the
// flag name is converted to uppercase and dashes are replaced with
// underscores:
//   - Flag "log-level" becomes "PROMPTREC_LOG_LEVEL"
//   - Flag "include-critical" becomes "PROMPTREC_INCLUDE_CRITICAL"
//
// Arguments take precedence over environment variables, which take precedence
// over configuration file values and defaults. The environment variable name
// is appended to the flag usage so it shows up in help output.
func bindEnvVars(cmd *cobra.Command) {
	cmd.Flags().VisitAll(bindFlagToEnv)
	cmd.PersistentFlags().VisitAll(bindFlagToEnv)
}

// bindFlagToEnv binds a single flag to its corresponding environment variable.
// A value taken from the environment marks the flag as changed, so it wins
// over configuration file values.
func bindFlagToEnv(flag *pflag.Flag) {
	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := flag.Value.Set(envValue)
	if err != nil {
		// Keep the default value.
		slog.Error("failed to set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)

		return
	}

	flag.Changed = true
}

// flagToEnvName converts a flag name to its corresponding environment variable name.
// Example: "log-level" -> "PROMPTREC_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	envName := strings.ReplaceAll(flagName, "-", "_")
	return strings.ToUpper(cmdName + "_" + envName)
}
