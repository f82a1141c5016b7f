package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/ctk/internal/config"
)

// =============================================================================
// COMMAND TREE
// =============================================================================

func TestCommandTree_ResolvesProxiedPaths(t *testing.T) {
	root := newRootCmd()

	paths := [][]string{
		{"git", "status"},
		{"git", "log"},
		{"docker", "ps"},
		{"docker", "compose", "logs"},
		{"kubectl", "get"},
		{"pytest"},
		{"read"},
		{"proxy"},
		{"gain"},
		{"discover"},
		{"config", "set"},
		{"version"},
	}
	for _, path := range paths {
		cmd, _, err := root.Find(path)
		require.NoErrorf(t, err, "resolving %v", path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestCommandTree_ProxiedLeavesPassFlagsThrough(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"git", "status"}, {"docker", "ps"}, {"pytest"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err)
		assert.Truef(t, cmd.DisableFlagParsing, "%v must forward flags to the child", path)
	}
}

func TestVersionFlag(t *testing.T) {
	for _, arg := range []string{"--version", "-v"} {
		buf := new(bytes.Buffer)
		root := newRootCmd()
		root.SetOut(buf)
		root.SetArgs([]string{arg})

		require.NoError(t, root.Execute())
		assert.Equal(t, "ctk, version "+version+"\n", buf.String())
	}
}

func TestUseColor_ExplicitModes(t *testing.T) {
	assert.True(t, useColor("always"))
	assert.False(t, useColor("never"))
}

// =============================================================================
// CONFIG SUBCOMMANDS
// =============================================================================

func TestConfigSet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	oldFlag := flagConfig
	t.Cleanup(func() { flagConfig = oldFlag })

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "config", "set", "display.max_lines", "42"})
	require.NoError(t, root.Execute())

	tree, err := config.LoadTree(path)
	require.NoError(t, err)
	v, ok := config.GetValue(tree, "display.max_lines")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestConfigSet_RejectsInvalidValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	oldFlag := flagConfig
	t.Cleanup(func() { flagConfig = oldFlag })

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "config", "set", "display.color", "sometimes"})
	require.Error(t, root.Execute())

	// Nothing may be written on a refused set; a missing file loads as
	// an empty tree.
	tree, err := config.LoadTree(path)
	require.NoError(t, err)
	_, ok := config.GetValue(tree, "display.color")
	assert.False(t, ok)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	oldFlag := flagConfig
	t.Cleanup(func() { flagConfig = oldFlag })

	root := newRootCmd()
	root.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, root.Execute())

	tree, err := config.LoadTree(path)
	require.NoError(t, err)
	v, ok := config.GetValue(tree, "version")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	// Second init must not clobber the file.
	root = newRootCmd()
	root.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, root.Execute())
}
