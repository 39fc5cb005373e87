package checker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mbcrawfo/corelang-tyck/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions_MatchesStatedDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "Full", opts.Stdlib)
	assert.False(t, opts.DenyAny)
	assert.Equal(t, 2, opts.LevenshteinThreshold)
}

func TestOptions_StdlibResolvesMinimalAndFull(t *testing.T) {
	assert.Equal(t, types.StdlibFull, Options{Stdlib: "Full"}.stdlib())
	assert.Equal(t, types.StdlibMinimal, Options{Stdlib: "Minimal"}.stdlib())
	assert.Equal(t, types.StdlibFull, Options{Stdlib: "bogus"}.stdlib())
	assert.Equal(t, types.StdlibFull, Options{}.stdlib())
}

func TestLoadOptions_OverlaysPartialYamlOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("denyAny: true\n"), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.True(t, opts.DenyAny)
	assert.Equal(t, "Full", opts.Stdlib)
	assert.Equal(t, 2, opts.LevenshteinThreshold)
}

func TestLoadOptions_FullOverrideIsRespected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "stdlib: Minimal\ndenyAny: true\nlevenshteinThreshold: 0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, "Minimal", opts.Stdlib)
	assert.True(t, opts.DenyAny)
	assert.Equal(t, 0, opts.LevenshteinThreshold)
}

func TestLoadOptions_MissingFileIsError(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
}
