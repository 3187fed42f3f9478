// Package cli builds the multiterm command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/multiterm/internal/app"
	"github.com/five82/multiterm/internal/config"
	"github.com/five82/multiterm/internal/logging"
	"github.com/five82/multiterm/internal/prefs"
)

const (
	cmdName     = "multiterm"
	cmdDesc     = `A desktop of typewriter terminals in your terminal.`
	cmdExamples = `
  # Open the desktop.
  multiterm

  # Open the ASCII typer with two lines.
  multiterm typer "Hello" "World"

  # Print a colored banner without the UI.
  multiterm typer --print --text '#ef4444' --text-end '#eab308' "Ship it"

  # Export a script as YAML.
  multiterm scripts export epic > epic.yaml
`
)

// ErrNotTerminal reports that the interactive pages need a terminal.
var ErrNotTerminal = errors.New("stdin and stdout must be a terminal")

// RootArgs are the flags every command shares.
type RootArgs struct {
	ConfigPath string
	PrefsPath  string
	LogLevel   string
	LogFormat  string
}

// AddFlags registers the shared flags on cmd.
func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", config.DefaultPath(), "Config file path")
	cmd.PersistentFlags().
		StringVar(&ra.PrefsPath, "prefs", prefs.DefaultPath(), "Preferences file path")
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", logging.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "logfmt", fmt.Sprintf("Log format, one of: %s", logging.AllFormats))

	must(cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(logging.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	))
	must(cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(logging.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	))
}

// Options converts the flags into application options.
func (ra *RootArgs) Options() app.Options {
	return app.Options{
		ConfigPath: ra.ConfigPath,
		PrefsPath:  ra.PrefsPath,
		LogLevel:   ra.LogLevel,
		LogFormat:  ra.LogFormat,
	}
}

// NewRootCmd returns the multiterm command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	args := &RootArgs{}

	cmd := &cobra.Command{
		Use:          cmdName,
		Short:        cmdDesc,
		Example:      cmdExamples,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return ErrNotTerminal
			}
			return app.Run(cmd.Context(), args.Options())
		},
	}

	args.AddFlags(cmd)
	cmd.AddCommand(
		NewTyperCmd(args),
		NewScriptsCmd(args),
		NewCustomCmd(args),
		NewLogsCmd(args),
	)

	bindEnvVars(cmd)

	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// withEnv runs fn against freshly set up services and releases them after.
func withEnv(args *RootArgs, fn func(*app.Env) error) error {
	env, err := app.Setup(args.Options())
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	return fn(env)
}
