package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_SetGetRoundTrip(t *testing.T) {
	tree := map[string]any{}

	SetValue(tree, "display.max_lines", 40)
	v, ok := GetValue(tree, "display.max_lines")
	require.True(t, ok)
	assert.Equal(t, 40, v)

	_, ok = GetValue(tree, "display.color")
	assert.False(t, ok)

	v, ok = GetValue(tree, "display")
	require.True(t, ok)
	assert.IsType(t, map[string]any{}, v)
}

func TestTree_SetReplacesScalarWithMap(t *testing.T) {
	tree := map[string]any{"display": "oops"}

	SetValue(tree, "display.color", "never")
	v, ok := GetValue(tree, "display.color")
	require.True(t, ok)
	assert.Equal(t, "never", v)
}

func TestTree_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctk", "config.yaml")

	tree := map[string]any{}
	SetValue(tree, "display.color", "never")
	SetValue(tree, "filter.dedup_min_length", 20)
	require.NoError(t, SaveTree(path, tree))

	loaded, err := LoadTree(path)
	require.NoError(t, err)

	v, ok := GetValue(loaded, "display.color")
	require.True(t, ok)
	assert.Equal(t, "never", v)

	v, ok = GetValue(loaded, "filter.dedup_min_length")
	require.True(t, ok)
	assert.Equal(t, 20, v)
}

func TestLoadTree_MissingFile(t *testing.T) {
	tree, err := LoadTree(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, 42, ParseScalar("42"))
	assert.Equal(t, 1, ParseScalar("1"))
	assert.Equal(t, 0.9, ParseScalar("0.9"))
	assert.Equal(t, true, ParseScalar("true"))
	assert.Equal(t, false, ParseScalar("false"))
	assert.Equal(t, "hello", ParseScalar("hello"))
}
