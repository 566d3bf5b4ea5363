package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/scan"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return dir
}

func resolverFor(root, dir string) scan.Resolver {
	return scan.ResolverFunc(func(r string) (string, error) {
		if r != root {
			return "", os.ErrNotExist
		}
		return dir, nil
	})
}

func TestScanTrivialPackage(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"__init__.py": "",
		"a.py":        "from . import b\n",
		"b.py":        "",
	})
	mods, err := scan.Scan([]string{"pkg"}, resolverFor("pkg", dir))
	require.NoError(t, err)

	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	require.ElementsMatch(t, []string{"pkg", "pkg.a", "pkg.b"}, names)
}

func TestScanSkipsExtraDotFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"__init__.py":   "",
		"weird.v2.py":   "",
		"notpython.txt": "",
	})
	mods, err := scan.Scan([]string{"pkg"}, resolverFor("pkg", dir))
	require.NoError(t, err)
	require.Len(t, mods, 1)
	require.Equal(t, "pkg", mods[0].Name)
	require.NotEmpty(t, mods[0].Warnings)
}

func TestScanNamespacePackageFails(t *testing.T) {
	dir := t.TempDir() // empty directory, no __init__, no source, no subdirs
	_, err := scan.Scan([]string{"pkg"}, resolverFor("pkg", dir))
	var target *scan.NamespacePackageEncounteredError
	require.ErrorAs(t, err, &target)
}

func TestScanInvalidRootName(t *testing.T) {
	_, err := scan.Scan([]string{""}, resolverFor("pkg", t.TempDir()))
	var target *scan.InvalidRootNameError
	require.ErrorAs(t, err, &target)
}

func TestScanFollowsSymlinkedSubpackage(t *testing.T) {
	real := writeTree(t, map[string]string{
		"__init__.py": "",
		"c.py":        "",
	})
	dir := writeTree(t, map[string]string{
		"__init__.py": "",
		"a.py":        "",
	})
	require.NoError(t, os.Symlink(real, filepath.Join(dir, "sub")))

	mods, err := scan.Scan([]string{"pkg"}, resolverFor("pkg", dir))
	require.NoError(t, err)

	names := make([]string, len(mods))
	for i, m := range mods {
		names[i] = m.Name
	}
	require.ElementsMatch(t, []string{"pkg", "pkg.a", "pkg.sub", "pkg.sub.c"}, names)
}
