package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/flow/internal/config"
	"github.com/mrz1836/flow/internal/constants"
	flowerrors "github.com/mrz1836/flow/internal/errors"
)

func TestNewConfigCmd(t *testing.T) {
	t.Parallel()

	cmd := newConfigCmd()

	assert.Equal(t, "config", cmd.Use)
	assert.Contains(t, cmd.Short, "settings")

	// Verify all subcommands are registered
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, expected := range []string{"show", "get", "set", "path"} {
		assert.True(t, names[expected], "config command should register %q", expected)
	}
}

func TestAddConfigCommand_AddsToRoot(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "flow"}
	initialCmdCount := len(root.Commands())

	AddConfigCommand(root)

	assert.Len(t, root.Commands(), initialCmdCount+1, "should add one command")
}

func TestRunConfigShow_TextFormat(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, OutputText)
	require.NoError(t, err)

	output := buf.String()

	// Table headers and every settings key with its default
	assert.Contains(t, output, "SETTING")
	assert.Contains(t, output, "VALUE")
	assert.Contains(t, output, "development_folder")
	assert.Contains(t, output, "~/Development")
	assert.Contains(t, output, "preferred_editor")
	assert.Contains(t, output, "cursor")

	// Settings file location footer
	assert.Contains(t, output, "Settings file:")
	assert.Contains(t, output, filepath.Join(tmpDir, constants.SettingsFileName))
}

func TestRunConfigShow_JSONFormat(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, OutputJSON)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"development_folder"`)
	assert.Contains(t, output, `"~/Development"`)
	assert.Contains(t, output, `"preferred_editor"`)
	assert.Contains(t, output, `"cursor"`)
}

func TestRunConfigShow_YAMLFormat(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigShow(context.Background(), &buf, OutputYAML)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "development_folder:")
	assert.Contains(t, output, "Development")
	assert.Contains(t, output, "preferred_editor: cursor")
}

func TestRunConfigShow_CreatesSettingsFileOnFirstUse(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	settingsPath := filepath.Join(tmpDir, constants.SettingsFileName)

	// File does not exist before the first command
	_, err := os.Stat(settingsPath)
	require.True(t, os.IsNotExist(err))

	var buf bytes.Buffer
	err = runConfigShow(context.Background(), &buf, OutputText)
	require.NoError(t, err)

	// First use writes the defaults
	data, err := os.ReadFile(settingsPath) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), `"development_folder"`)
	assert.Contains(t, string(data), `"preferred_editor"`)
}

func TestRunConfigShow_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	var buf bytes.Buffer
	err := runConfigShow(ctx, &buf, OutputText)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestRunConfigGet(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "development folder default",
			key:      constants.SettingsKeyDevelopmentFolder,
			expected: "~/Development\n",
		},
		{
			name:     "preferred editor default",
			key:      constants.SettingsKeyPreferredEditor,
			expected: "cursor\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runConfigGet(context.Background(), &buf, tc.key)
			require.NoError(t, err)

			// Bare value with trailing newline, nothing else, so the
			// output is usable in command substitution
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

func TestRunConfigGet_UnknownKey(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigGet(context.Background(), &buf, "no_such_key")
	require.Error(t, err)
	assert.ErrorIs(t, err, flowerrors.ErrUnknownSettingsKey)
	assert.Contains(t, err.Error(), `"no_such_key"`)
}

func TestRunConfigGet_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	var buf bytes.Buffer
	err := runConfigGet(ctx, &buf, constants.SettingsKeyPreferredEditor)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestRunConfigSet(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigSet(context.Background(), &buf, OutputText, constants.SettingsKeyPreferredEditor, "code")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "preferred_editor set to code")

	// The change is persisted to the settings file
	data, err := os.ReadFile(filepath.Join(tmpDir, constants.SettingsFileName)) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), `"preferred_editor": "code"`)

	// And visible to a subsequent load
	settings, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "code", settings.PreferredEditor)
}

func TestRunConfigSet_JSONFormat(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigSet(context.Background(), &buf, OutputJSON, constants.SettingsKeyPreferredEditor, "vim")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"type":"success"`)
	assert.Contains(t, output, "preferred_editor set to vim")
}

func TestRunConfigSet_PreservesOtherKeys(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	ctx := context.Background()

	var buf bytes.Buffer
	err := runConfigSet(ctx, &buf, OutputText, constants.SettingsKeyDevelopmentFolder, "~/Code")
	require.NoError(t, err)
	err = runConfigSet(ctx, &buf, OutputText, constants.SettingsKeyPreferredEditor, "zed")
	require.NoError(t, err)

	// The second update must not clobber the first
	settings, err := config.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "~/Code", settings.DevelopmentFolder)
	assert.Equal(t, "zed", settings.PreferredEditor)
}

func TestRunConfigSet_UnknownKey(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigSet(context.Background(), &buf, OutputText, "no_such_key", "value")
	require.Error(t, err)
	assert.ErrorIs(t, err, flowerrors.ErrUnknownSettingsKey)
}

func TestRunConfigSet_EmptyValue(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigSet(context.Background(), &buf, OutputText, constants.SettingsKeyPreferredEditor, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, flowerrors.ErrEmptyValue)
}

func TestRunConfigSet_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	var buf bytes.Buffer
	err := runConfigSet(ctx, &buf, OutputText, constants.SettingsKeyPreferredEditor, "code")
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}

func TestRunConfigPath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvFlowHome, tmpDir)

	var buf bytes.Buffer
	err := runConfigPath(context.Background(), &buf)
	require.NoError(t, err)

	expected := filepath.Join(tmpDir, constants.SettingsFileName) + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestRunConfigPath_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	var buf bytes.Buffer
	err := runConfigPath(ctx, &buf)
	require.Error(t, err)
	assert.Equal(t, context.Canceled, err)
}
