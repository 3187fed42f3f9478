package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/five82/multiterm/internal/app"
	"github.com/five82/multiterm/internal/custom"
	"github.com/five82/multiterm/internal/script"
)

// ErrUnknownScript reports a query that matches no script.
var ErrUnknownScript = errors.New("unknown script")

// NewScriptsCmd returns the scripts command group.
func NewScriptsCmd(root *RootArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Inspect the scripts terminals type out",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List built-in and custom scripts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(root, func(env *app.Env) error {
					return listScripts(cmd.OutOrStdout(), env.Scripts, env.Custom)
				})
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print a script in the editor format",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(root, func(env *app.Env) error {
					s, err := findScript(env.Scripts, env.Custom, args[0])
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(cmd.OutOrStdout(), custom.ToEditor(s.Lines))
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "export NAME",
			Short: "Print a script as YAML",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withEnv(root, func(env *app.Env) error {
					s, err := findScript(env.Scripts, env.Custom, args[0])
					if err != nil {
						return err
					}
					out, err := script.Encode(s)
					if err != nil {
						return err
					}
					_, err = cmd.OutOrStdout().Write(out)
					return err
				})
			},
		},
	)

	return cmd
}

func listScripts(w io.Writer, reg *script.Registry, store *custom.Store) error {
	names := make(map[string]string)
	for _, o := range store.Options() {
		names[o.ID] = o.Name
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "KIND", "LINES")
	for _, id := range reg.Names() {
		s, _ := reg.Get(id)
		name, kind := id, "builtin"
		if !reg.IsBuiltin(id) {
			kind = "custom"
			if n, ok := names[id]; ok {
				name = n
			}
		}
		t.Row(name, kind, strconv.Itoa(len(s.Lines)))
	}

	_, err := fmt.Fprintln(w, t.String())
	return err
}

// findScript resolves query against built-in names, custom names and custom
// ids. Exact matches win; otherwise the best fuzzy match is used.
func findScript(reg *script.Registry, store *custom.Store, query string) (script.Script, error) {
	if s, ok := reg.Get(query); ok {
		return s, nil
	}

	var (
		targets []string
		ids     []string
	)
	for _, name := range reg.Builtins() {
		targets = append(targets, name)
		ids = append(ids, name)
	}
	for _, o := range store.Options() {
		targets = append(targets, o.Name)
		ids = append(ids, o.ID)
	}

	for i, target := range targets {
		if target == query {
			return lookup(reg, ids[i], query)
		}
	}

	matches := fuzzy.Find(query, targets)
	if len(matches) == 0 {
		return script.Script{}, fmt.Errorf("%w: %q", ErrUnknownScript, query)
	}
	return lookup(reg, ids[matches[0].Index], query)
}

func lookup(reg *script.Registry, id, query string) (script.Script, error) {
	s, ok := reg.Get(id)
	if !ok {
		return script.Script{}, fmt.Errorf("%w: %q", ErrUnknownScript, query)
	}
	return s, nil
}
