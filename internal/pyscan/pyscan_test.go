package pyscan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/internal/pyscan"
)

func TestScanBareImport(t *testing.T) {
	stmts := pyscan.Scan("import pkg.a.b\n")
	require.Len(t, stmts, 1)
	require.Equal(t, pyscan.Import, stmts[0].Kind)
	require.Equal(t, "pkg.a.b", stmts[0].Module)
	require.Equal(t, 1, stmts[0].Line)
}

func TestScanFromImportMultipleNames(t *testing.T) {
	stmts := pyscan.Scan("from pkg import a, b as bee\n")
	require.Len(t, stmts, 1)
	require.Equal(t, pyscan.FromImport, stmts[0].Kind)
	require.Equal(t, "pkg", stmts[0].Module)
	require.Len(t, stmts[0].Names, 2)
	require.Equal(t, "a", stmts[0].Names[0].Dotted)
	require.Equal(t, "b", stmts[0].Names[1].Dotted)
}

func TestScanRelativeImport(t *testing.T) {
	stmts := pyscan.Scan("from ..z import q\n")
	require.Len(t, stmts, 1)
	require.Equal(t, 2, stmts[0].RelativeDots)
	require.Equal(t, "z", stmts[0].Module)
}

func TestScanBareRelativeImport(t *testing.T) {
	stmts := pyscan.Scan("from . import b\n")
	require.Len(t, stmts, 1)
	require.Equal(t, 1, stmts[0].RelativeDots)
	require.Equal(t, "", stmts[0].Module)
	require.Equal(t, "b", stmts[0].Names[0].Dotted)
}

func TestScanWildcardImport(t *testing.T) {
	stmts := pyscan.Scan("from pkg import *\n")
	require.True(t, stmts[0].Names[0].Wildcard)
}

func TestScanTypeCheckingGuard(t *testing.T) {
	src := "if TYPE_CHECKING:\n    from pkg import b\nimport pkg.c\n"
	stmts := pyscan.Scan(src)
	require.Len(t, stmts, 2)
	require.True(t, stmts[0].TypeChecking)
	require.False(t, stmts[1].TypeChecking)
}

func TestScanQualifiedTypeCheckingGuard(t *testing.T) {
	src := "if typing.TYPE_CHECKING:\n    import pkg.b\n"
	stmts := pyscan.Scan(src)
	require.True(t, stmts[0].TypeChecking)
}

func TestScanMultilineFromImport(t *testing.T) {
	src := "from pkg import (\n    a,\n    b,\n)\n"
	stmts := pyscan.Scan(src)
	require.Len(t, stmts, 1)
	require.Len(t, stmts[0].Names, 2)
}
