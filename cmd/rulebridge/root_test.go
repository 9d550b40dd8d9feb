package main

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"generate", "rules", "analyze", "report", "serve", "version"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, cmd.Name())
		})
	}
}

func TestLoadAppConfig(t *testing.T) {
	resetConfig(t)
	defaultLogger := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(defaultLogger)
		configPath, verbose, quiet = "", false, false
	})

	dir := t.TempDir()
	configPath = writeTestFile(t, dir, "rulebridge.yaml", "store:\n  path: "+filepath.Join(dir, "x.db")+"\n")
	verbose = true

	cmd, _ := newTestCmd()
	require.NoError(t, loadAppConfig(cmd, nil))

	assert.Equal(t, filepath.Join(dir, "x.db"), appConfig.Store.Path)
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
}

func TestLoadAppConfig_Invalid(t *testing.T) {
	resetConfig(t)
	t.Cleanup(func() { configPath = "" })

	configPath = writeTestFile(t, t.TempDir(), "rulebridge.yaml", "analysis:\n  workers: 0\n")

	cmd, _ := newTestCmd()
	err := loadAppConfig(cmd, nil)

	assert.ErrorContains(t, err, "invalid configuration")
	assert.Equal(t, 4, appConfig.Analysis.Workers, "config must not change on error")
}
