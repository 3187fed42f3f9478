package screenshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
)

// ErrNoClipboard reports that no image-capable clipboard tool was found.
var ErrNoClipboard = errors.New("no image clipboard available")

// Clipboard accepts PNG image data.
type Clipboard interface {
	WriteImage(ctx context.Context, png []byte) error
}

// CommandClipboard pipes PNG data into the first available clipboard tool.
type CommandClipboard struct {
	candidates [][]string
	lookPath   func(string) (string, error)
}

// DefaultCommands are tried in order when no custom command is configured.
var DefaultCommands = [][]string{
	{"wl-copy", "--type", "image/png"},
	{"xclip", "-selection", "clipboard", "-t", "image/png", "-i"},
	{"pbcopy"},
}

// NewCommandClipboard builds a clipboard from a shell-style command line.
// An empty command selects DefaultCommands.
func NewCommandClipboard(command string) (*CommandClipboard, error) {
	cb := &CommandClipboard{lookPath: exec.LookPath}
	if strings.TrimSpace(command) == "" {
		cb.candidates = DefaultCommands
		return cb, nil
	}
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse clipboard command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("clipboard command %q is empty", command)
	}
	cb.candidates = [][]string{args}
	return cb, nil
}

// WriteImage implements Clipboard.
func (c *CommandClipboard) WriteImage(ctx context.Context, png []byte) error {
	for _, argv := range c.candidates {
		path, err := c.lookPath(argv[0])
		if err != nil {
			continue
		}
		cmd := exec.CommandContext(ctx, path, argv[1:]...)
		cmd.Stdin = bytes.NewReader(png)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg != "" {
				return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
			}
			return fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil
	}
	return ErrNoClipboard
}
