package cmd

import (
	"log/slog"
	"testing"

	"github.com/huangsam/devscope/internal/contract"
	"github.com/huangsam/devscope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(previous)
		cfg = &contract.Config{}
		input = &contract.ConfigRawInput{}
	})
	cfg = &contract.Config{}
	input = &contract.ConfigRawInput{}
	initConfig()
}

func TestSharedSetup_Defaults(t *testing.T) {
	t.Setenv("DEVSCOPE_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")
	resetGlobals(t)

	require.NoError(t, sharedSetup(rootCtx, rootCmd, nil))
	assert.Equal(t, schema.DefaultHandle, cfg.Handle)
	assert.Equal(t, schema.DefaultTopLanguages, cfg.TopN)
	assert.Equal(t, schema.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, contract.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.SortUpdated, cfg.Sort)
	assert.Equal(t, contract.DefaultListenAddr, cfg.ListenAddr)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "devscope/"+version, cfg.UserAgent)
}

func TestSharedSetup_ArgsAndEnv(t *testing.T) {
	t.Setenv("DEVSCOPE_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "ghp_fallback")
	t.Setenv("DEVSCOPE_TOP", "7")
	t.Setenv("DEVSCOPE_SORT", "stars")
	resetGlobals(t)

	require.NoError(t, sharedSetup(rootCtx, rootCmd, []string{" @torvalds "}))
	assert.Equal(t, "torvalds", cfg.Handle)
	assert.Equal(t, 7, cfg.TopN)
	assert.Equal(t, schema.SortStars, cfg.Sort)
	assert.Equal(t, "ghp_fallback", cfg.Token)
}

func TestSharedSetup_InvalidInput(t *testing.T) {
	t.Setenv("DEVSCOPE_TOP", "99")
	resetGlobals(t)

	err := sharedSetup(rootCtx, rootCmd, nil)
	require.Error(t, err)
	assert.Equal(t, "top must be between 1 and 50 (received 99)", err.Error())
}
