package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, "1.0", cfg.Version)
	require.Equal(t, filepath.Join(root, "primitives", "v1"), cfg.PrimitivesDir())
	require.Equal(t, filepath.Join(root, "providers"), cfg.ProvidersDir())
}

func TestLoadOverridesOnlyNamedPaths(t *testing.T) {
	root := t.TempDir()
	doc := "version: \"1.0\"\npaths:\n  primitives: custom/primitives\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, Filename), []byte(doc), 0o644))

	cfg, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "custom", "primitives"), cfg.PrimitivesDir())
	require.Equal(t, filepath.Join(root, "specs", "v1"), cfg.SpecsDir())
}

func TestLoadRejectsUnrecognizedKeys(t *testing.T) {
	root := t.TempDir()
	doc := "version: \"1.0\"\nbogus_key: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, Filename), []byte(doc), 0o644))

	_, err := Load(root)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrValidation)
}

func TestSaveRoundTrips(t *testing.T) {
	root := t.TempDir()
	cfg := Default(root)
	cfg.Paths.Providers = "vendor/providers"
	require.NoError(t, cfg.Save())

	reloaded, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "vendor", "providers"), reloaded.ProvidersDir())
}

func TestFindRootWalksUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, Filename), []byte("version: \"1.0\"\n"), 0o644))
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, ok := FindRoot(nested)
	require.True(t, ok)
	require.Equal(t, root, found)
}

func TestFindRootNotFound(t *testing.T) {
	_, ok := FindRoot(t.TempDir())
	require.False(t, ok)
}
