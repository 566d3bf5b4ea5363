package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/extract"
)

type fakeInventory map[string]bool

func (f fakeInventory) HasModule(dotted string) bool { return f[dotted] }

func TestBareImport(t *testing.T) {
	edges, err := extract.File("a.py", "pkg.a", []byte("import pkg.b\n"), nil)
	require.NoError(t, err)
	require.Equal(t, []extract.Edge{{Importer: "pkg.a", Imported: "pkg.b", LineNumber: 1, LineContents: "import pkg.b"}}, edges)
}

func TestRelativeImportDepth2(t *testing.T) {
	inv := fakeInventory{"pkg.z.q": true}
	edges, err := extract.File("y.py", "pkg.x.y", []byte("from ..z import q\n"), inv)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "pkg.z.q", edges[0].Imported)
}

func TestBareRelativeImport(t *testing.T) {
	inv := fakeInventory{"pkg.b": true}
	edges, err := extract.File("a.py", "pkg.a", []byte("from . import b\n"), inv)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "pkg.b", edges[0].Imported)
}

func TestFromImportNonSubmoduleFallsBackToPackage(t *testing.T) {
	inv := fakeInventory{} // "pkg.Thing" is not a module, so target is "pkg"
	edges, err := extract.File("a.py", "pkg.a", []byte("from pkg import Thing\n"), inv)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "pkg", edges[0].Imported)
}

func TestWildcardImport(t *testing.T) {
	edges, err := extract.File("a.py", "pkg.a", []byte("from pkg import *\n"), nil)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.Equal(t, "pkg", edges[0].Imported)
	require.True(t, edges[0].IsWildcard)
}

func TestTypeCheckingFlag(t *testing.T) {
	src := "if TYPE_CHECKING:\n    from pkg import b\n"
	inv := fakeInventory{"pkg.b": true}
	edges, err := extract.File("a.py", "pkg.a", []byte(src), inv)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	require.True(t, edges[0].IsTypeChecking)
}

func TestRelativeImportDepthExceedsImporterIsSyntaxError(t *testing.T) {
	_, err := extract.File("a.py", "pkg.a", []byte("from ... import b\n"), nil)
	var synErr *extract.SyntaxError
	require.ErrorAs(t, err, &synErr)
	require.Equal(t, "a.py", synErr.Path)
}
