package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/multiterm/internal/config"
	"github.com/five82/multiterm/internal/logging"
)

const defaultLogLines = 50

// NewLogsCmd returns the command that prints the end of the log file.
func NewLogsCmd(root *RootArgs) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the most recent log records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(root.ConfigPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.LogFile == "" {
				return nil
			}
			records, err := logging.Tail(cfg.LogFile, lines)
			if err != nil {
				return err
			}
			for _, r := range records {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", defaultLogLines, "Number of records to print")

	return cmd
}
