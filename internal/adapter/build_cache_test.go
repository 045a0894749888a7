package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "solflat.dev/pkg/solflat/internal/model"
)

func TestLocalBuildCache_Key(t *testing.T) {
	cache := NewLocalBuildCache(NewLocalSourceFSAdapter(), m.Path(t.TempDir()))

	base := cache.Key("contract A {}", "solc", true)

	assert.Len(t, base, 64)
	assert.Equal(t, base, cache.Key("contract A {}", "solc", true))
	assert.NotEqual(t, base, cache.Key("contract B {}", "solc", true))
	assert.NotEqual(t, base, cache.Key("contract A {}", "solc-0.8", true))
	assert.NotEqual(t, base, cache.Key("contract A {}", "solc", false))
}

func TestLocalBuildCache_GetMiss(t *testing.T) {
	cache := NewLocalBuildCache(NewLocalSourceFSAdapter(), m.Path(t.TempDir()))

	units, ok, err := cache.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, units)
}

func TestLocalBuildCache_PutGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache := NewLocalBuildCache(NewLocalSourceFSAdapter(), m.Path(dir))

	key := cache.Key("contract Token {}", "solc", true)
	require.NoError(t, cache.Put(key, sampleUnits()))

	units, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleUnits(), units)

	_, err = os.Stat(filepath.Join(dir, key+".yaml"))
	require.NoError(t, err)
}

func TestLocalBuildCache_CorruptEntryIsAMiss(t *testing.T) {
	dir := t.TempDir()
	cache := NewLocalBuildCache(NewLocalSourceFSAdapter(), m.Path(dir))

	writeTestFile(t, filepath.Join(dir, "bad.yaml"), "name: [unterminated\n")

	units, ok, err := cache.Get("bad")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, units)
}
