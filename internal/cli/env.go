package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bindEnvVars binds MULTITERM_<FLAG_NAME> environment variables to the flags
// of cmd. Arguments take precedence over environment variables, which take
// precedence over defaults.
func bindEnvVars(cmd *cobra.Command) {
	cmd.Flags().VisitAll(bindFlagToEnv)
	cmd.PersistentFlags().VisitAll(bindFlagToEnv)
}

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
	if err := flag.Value.Set(envValue); err != nil {
		slog.Error("set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.Any("err", err),
		)
	}
}

// flagToEnvName converts "log-level" to "MULTITERM_LOG_LEVEL".
func flagToEnvName(flagName string) string {
	return strings.ToUpper(cmdName + "_" + strings.ReplaceAll(flagName, "-", "_"))
}
