package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/lineator/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "lineator version "))
}

func TestLineateCommand_WritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "inc.tm")
	out := filepath.Join(dir, "inc-flat.tm")
	require.NoError(t, os.WriteFile(in, []byte("Name: Inc\nStartState: q0\nAcceptStates: qf\nq0,1\nqf,0,>\n"), 0644))

	rootCmd.SetArgs([]string{"lineate", "--max-states", "10", in, "-o", out})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, 10, app.Config.Limits.MaxStates)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DeterminedStates: q0-#,q0-1\n")
}

func TestApplyFlags_OnlyChangedFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	flags := cmd.Flags()
	flags.String("log-level", "", "")
	flags.Bool("log-json", false, "")
	flags.Int("max-tapes", 0, "")
	flags.Int("max-states", 0, "")
	flags.StringSlice("comment-prefix", nil, "")
	require.NoError(t, flags.Parse([]string{"--log-level", "debug", "--max-tapes", "3", "--comment-prefix", ";"}))

	cfg := config.Default()
	cfg.Log.JSON = true
	cfg.Limits.MaxStates = 99
	require.NoError(t, applyFlags(cmd, &cfg))

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Limits.MaxTapes)
	assert.Equal(t, []string{";"}, cfg.CommentPrefixes)
	assert.True(t, cfg.Log.JSON, "unset flags keep the configured value")
	assert.Equal(t, 99, cfg.Limits.MaxStates)
}

func TestSetupApp_RejectsBadLogLevel(t *testing.T) {
	rootCmd.SetArgs([]string{"validate", "--log-level", "loud", "missing.tm"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}
