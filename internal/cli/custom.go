package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/five82/multiterm/internal/app"
	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/script"
)

// NewCustomCmd returns the custom content command group.
func NewCustomCmd(root *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "custom",
		Aliases: []string{"content"},
		Short:   "Manage custom terminal content",
	}

	var name string
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create custom content from a YAML script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read script: %w", err)
			}
			s, err := script.Parse(data)
			if err != nil {
				return err
			}
			if name != "" {
				s.Name = name
			}
			return withEnv(root, func(env *app.Env) error {
				c, err := env.Custom.Create(s.Name, s.Lines)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), c.ID)
				return err
			})
		},
	}
	importCmd.Flags().StringVar(&name, "name", "", "Name for the content (defaults to the script name)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List custom content",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(root, func(env *app.Env) error {
					if err := env.Store.LastError(); err != nil {
						fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s is unreadable: %v\n", env.Store.Path(), err)
					}
					return listCustom(cmd.OutOrStdout(), env.Custom.Options(), time.Now())
				})
			},
		},
		&cobra.Command{
			Use:   "show ID|NAME",
			Short: "Print custom content in the editor format",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(root, func(env *app.Env) error {
					c, err := findContent(env.Custom, args[0])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), custom.ToEditor(c.Lines))
					return err
				})
			},
		},
		&cobra.Command{
			Use:     "rm ID|NAME",
			Aliases: []string{"delete"},
			Short:   "Delete custom content",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(root, func(env *app.Env) error {
					c, err := findContent(env.Custom, args[0])
					if err != nil {
						return err
					}
					if err := env.Custom.Delete(c.ID); err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s)\n", c.Name, c.ID)
					return err
				})
			},
		},
		importCmd,
	)

	return cmd
}

func listCustom(w io.Writer, opts []custom.Option, now time.Time) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "LINES", "CREATED")
	for _, o := range opts {
		t.Row(o.ID, o.Name, strconv.Itoa(o.LineCount), humanize.RelTime(o.CreatedAt, now, "ago", "from now"))
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// findContent matches query against ids, then names, then fuzzy names.
func findContent(store *custom.Store, query string) (custom.Content, error) {
	if c, ok := store.Get(query); ok {
		return c, nil
	}

	contents := store.List()
	names := make([]string, len(contents))
	for i, c := range contents {
		if c.Name == query {
			return c, nil
		}
		names[i] = c.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return custom.Content{}, fmt.Errorf("%w: %q", custom.ErrNotFound, query)
	}
	return contents[matches[0].Index], nil
}
