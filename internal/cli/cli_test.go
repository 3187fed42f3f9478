package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/multiterm/internal/asciiart"
	"github.com/five82/multiterm/internal/cli"
)

// execute runs the root command in a sandbox home and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeIn(t, t.TempDir(), args...)
	return out, err
}

// executeIn runs the root command with dir as home and returns stdout and
// stderr.
func executeIn(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", dir)
	cfg := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		`storage_path = "` + filepath.Join(dir, "storage.json") + `"`,
		`log_file = "` + filepath.Join(dir, "multiterm.log") + `"`,
		`screenshot_dir = "` + filepath.Join(dir, "shots") + `"`,
	}, "\n")
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfg, "--prefs", filepath.Join(dir, "prefs.toml")}, args...))

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestBindEnvVars(t *testing.T) {
	tcs := map[string]struct {
		envVars       map[string]string
		args          []string
		wantLogLevel  string
		wantLogFormat string
	}{
		"environment variables are bound": {
			envVars:       map[string]string{"MULTITERM_LOG_LEVEL": "debug", "MULTITERM_LOG_FORMAT": "json"},
			wantLogLevel:  "debug",
			wantLogFormat: "json",
		},
		"args take precedence": {
			envVars:       map[string]string{"MULTITERM_LOG_LEVEL": "debug"},
			args:          []string{"--log-level", "error"},
			wantLogLevel:  "error",
			wantLogFormat: "logfmt",
		},
		"defaults": {
			wantLogLevel:  "info",
			wantLogFormat: "logfmt",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			for key, val := range tc.envVars {
				t.Setenv(key, val)
			}

			cmd := cli.NewRootCmd()
			require.NoError(t, cmd.ParseFlags(tc.args))

			level, err := cmd.Flags().GetString("log-level")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogLevel, level)

			format, err := cmd.Flags().GetString("log-format")
			require.NoError(t, err)
			assert.Equal(t, tc.wantLogFormat, format)
		})
	}
}

func TestFlagUsageNamesEnvVar(t *testing.T) {
	cmd := cli.NewRootCmd()
	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Usage, "$MULTITERM_CONFIG")
}

func TestTyperPrintPlain(t *testing.T) {
	out, err := execute(t, "typer", "--print", "--plain", "Hi", "Go")
	require.NoError(t, err)

	want := asciiart.Plain(asciiart.RenderLines([]string{"Hi", "Go"})) + "\n"
	assert.Equal(t, want, out)
}

func TestTyperPrintColored(t *testing.T) {
	out, err := execute(t, "typer", "--print", "--text", "#ef4444", "--text-end", "#eab308", "Hi")
	require.NoError(t, err)

	rows := asciiart.RenderLines([]string{"Hi"})
	assert.Len(t, strings.Split(strings.TrimSuffix(out, "\n"), "\n"), len(rows))
}

func TestTyperPrintErrors(t *testing.T) {
	_, err := execute(t, "typer", "--print")
	require.ErrorIs(t, err, cli.ErrNoText)

	_, err = execute(t, "typer", "--print", "--text", "green", "Hi")
	require.ErrorContains(t, err, "invalid argument")
}

func TestScriptsList(t *testing.T) {
	out, err := execute(t, "scripts", "list")
	require.NoError(t, err)

	for _, name := range []string{"development", "build", "error", "conversation", "troubleshooting", "epic"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Default Custom Terminal")
	assert.Contains(t, out, "custom")
}

func TestScriptsExportFuzzy(t *testing.T) {
	out, err := execute(t, "scripts", "export", "epi")
	require.NoError(t, err)
	assert.Contains(t, out, "name: epic")
	assert.Contains(t, out, "lines:")
}

func TestScriptsShowUnknown(t *testing.T) {
	_, err := execute(t, "scripts", "show", "zzzz")
	require.ErrorIs(t, err, cli.ErrUnknownScript)
}

func TestCustomCommands(t *testing.T) {
	out, err := execute(t, "custom", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Default Custom Terminal")

	out, err = execute(t, "custom", "show", "Default")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))

	out, err = execute(t, "custom", "rm", "Default Custom Terminal")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted Default Custom Terminal")
}

func TestCustomListWarnsOnUnreadableStorage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storage.json"), []byte("{broken"), 0o644))

	out, errOut, err := executeIn(t, dir, "custom", "list")
	require.NoError(t, err)
	assert.Contains(t, errOut, "storage.json is unreadable")
	assert.Contains(t, errOut, "parse store")
	assert.Contains(t, out, "Default Custom Terminal")
}

func TestCustomImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	doc := "name: demo\nlines:\n  - text: hello\n  - text: world\n    colorRole: success\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "custom", "import", "--name", "Demo", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "custom-"), out)
}

func TestLogsMissingFile(t *testing.T) {
	out, err := execute(t, "logs", "-n", "5")
	require.NoError(t, err)
	assert.Empty(t, out)
}
