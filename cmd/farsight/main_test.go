package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	assert.Equal(t, "farsight", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("base-dir"))
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"merge", "explore", "features", "regress", "cluster", "report", "serve"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	base := t.TempDir()
	data := t.TempDir()

	origData, origBase := dataDir, baseDir
	t.Cleanup(func() { dataDir, baseDir = origData, origBase })
	dataDir, baseDir = data, base

	cfg, paths, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, data, cfg.Paths.DataDir)
	assert.Equal(t, data, paths.DataDir)
	assert.Equal(t, base, paths.BaseDir)
	assert.DirExists(t, paths.ReportsDir)
}
