package importgraph_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph"
	"importgraph.dev/importgraph/scan"
)

func TestBuildTrivialTwoModuleChain(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"__init__.py": "",
		"a.py":        "from . import b\n",
		"b.py":        "",
	}
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	resolver := scan.ResolverFunc(func(r string) (string, error) {
		if r != "pkg" {
			return "", os.ErrNotExist
		}
		return dir, nil
	})

	noCache := ""
	gr, warnings, err := importgraph.Build(context.Background(), []string{"pkg"}, resolver, importgraph.Options{CacheDir: &noCache})
	require.NoError(t, err)
	require.Empty(t, warnings)

	chain, err := gr.FindShortestChain("pkg.a", "pkg.b", false)
	require.NoError(t, err)
	require.Equal(t, []string{"pkg.a", "pkg.b"}, chain)
}

func TestBuildDefaultsCacheDirWhenUnset(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "__init__.py"), nil, 0o644))
	resolver := scan.ResolverFunc(func(r string) (string, error) {
		if r != "pkg" {
			return "", os.ErrNotExist
		}
		return dir, nil
	})

	_, _, err = importgraph.Build(context.Background(), []string{"pkg"}, resolver, importgraph.Options{})
	require.NoError(t, err)

	entries, err := os.ReadDir(importgraph.DefaultCacheDir)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}
