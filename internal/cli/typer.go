package cli

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/five82/multiterm/internal/app"
	"github.com/five82/multiterm/internal/asciiart"
)

// ErrNoText reports a non-interactive typer run without any text.
var ErrNoText = errors.New("no text to render")

// TyperArgs are the flags of the typer command.
type TyperArgs struct {
	root *RootArgs

	Print         bool
	Plain         bool
	Text          string
	TextEnd       string
	Background    string
	BackgroundEnd string
}

// AddFlags registers the typer flags on cmd.
func (ta *TyperArgs) AddFlags(cmd *cobra.Command) {
	def := asciiart.DefaultStyle()

	cmd.Flags().BoolVarP(&ta.Print, "print", "p", false, "Print the banner instead of opening the typer")
	cmd.Flags().BoolVar(&ta.Plain, "plain", false, "Print without colors (with --print)")
	cmd.Flags().StringVar(&ta.Text, "text", def.Text.Start, "Text color (with --print)")
	cmd.Flags().StringVar(&ta.TextEnd, "text-end", "", "Text gradient end color (with --print)")
	cmd.Flags().StringVar(&ta.Background, "background", def.Background.Start, "Background color (with --print)")
	cmd.Flags().StringVar(&ta.BackgroundEnd, "background-end", "", "Background gradient end color (with --print)")
}

// Style builds the print style from the color flags. A gradient is enabled
// by giving its end color.
func (ta *TyperArgs) Style() (asciiart.Style, error) {
	style := asciiart.Style{
		Text:       fill(ta.Text, ta.TextEnd),
		Background: fill(ta.Background, ta.BackgroundEnd),
	}
	if err := style.Validate(); err != nil {
		return asciiart.Style{}, fmt.Errorf("%w: %w", errInvalidArgument, err)
	}
	return style, nil
}

func fill(start, end string) asciiart.Fill {
	if end == "" {
		return asciiart.Solid(start)
	}
	return asciiart.Fill{Start: start, End: end, Gradient: true}
}

// NewTyperCmd returns the typer command.
func NewTyperCmd(root *RootArgs) *cobra.Command {
	args := &TyperArgs{root: root}

	cmd := &cobra.Command{
		Use:   "typer [TEXT...]",
		Short: "Render text as colored block letters",
		Long: `Open the ASCII typer. Each argument becomes one line of block letters.
With --print the banner is written to stdout instead.`,
		RunE: func(cmd *cobra.Command, lines []string) error {
			if args.Print {
				return args.print(cmd, lines)
			}
			if !isTerminal() {
				return ErrNotTerminal
			}
			return app.RunTyper(cmd.Context(), root.Options(), lines)
		},
	}

	args.AddFlags(cmd)

	return cmd
}

func (ta *TyperArgs) print(cmd *cobra.Command, lines []string) error {
	if len(lines) == 0 {
		return ErrNoText
	}
	rows := asciiart.RenderLines(lines)

	if ta.Plain {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), asciiart.Plain(rows))
		return err
	}

	style, err := ta.Style()
	if err != nil {
		return err
	}
	profile := termenv.EnvColorProfile()
	_, err = fmt.Fprintln(cmd.OutOrStdout(), asciiart.Colorize(rows, style, profile))
	return err
}
