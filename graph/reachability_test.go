package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/graph"
)

func buildChain(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.New()
	g.AddImport("pkg.a", "pkg.b", nil)
	g.AddImport("pkg.b", "pkg.c", nil)
	g.AddImport("pkg.c", "pkg.a", nil) // cycle
	return g
}

func TestFindShortestChainTrivial(t *testing.T) {
	g := graph.New()
	g.AddImport("pkg.a", "pkg.b", nil)
	chain, err := g.FindShortestChain("pkg.a", "pkg.b", false)
	require.NoError(t, err)
	require.Equal(t, []string{"pkg.a", "pkg.b"}, chain)
}

func TestFindShortestChainUnreachable(t *testing.T) {
	g := graph.New()
	require.NoError(t, g.AddModule(graph.Module{Name: "pkg.a"}))
	require.NoError(t, g.AddModule(graph.Module{Name: "pkg.b"}))
	chain, err := g.FindShortestChain("pkg.a", "pkg.b", false)
	require.NoError(t, err)
	require.Nil(t, chain)
}

func TestFindShortestChainIsShortest(t *testing.T) {
	g := graph.New()
	g.AddImport("a", "x", nil)
	g.AddImport("x", "z", nil)
	g.AddImport("a", "z", nil) // direct shortcut
	chain, err := g.FindShortestChain("a", "z", false)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "z"}, chain)
}

func TestChainExistsCycleSafe(t *testing.T) {
	g := buildChain(t)
	ok, err := g.ChainExists("pkg.a", "pkg.c", false)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpstreamExcludesStartAsPackage(t *testing.T) {
	g := graph.New()
	g.AddImport("pkg.a", "lib.x", nil)
	require.NoError(t, g.AddModule(graph.Module{Name: "pkg"}))
	up, err := g.FindUpstreamModules("pkg", true)
	require.NoError(t, err)
	require.Contains(t, up, "lib.x")
	require.NotContains(t, up, "pkg")
	require.NotContains(t, up, "pkg.a")
}

func TestFindShortestChainsSuppressesSuperChains(t *testing.T) {
	g := graph.New()
	g.AddImport("pkg.lo.a", "pkg.hi.x", nil)
	g.AddImport("pkg.lo.b", "pkg.lo.a", nil)
	g.AddImport("pkg.lo.b", "pkg.hi.x", nil)
	require.NoError(t, g.AddModule(graph.Module{Name: "pkg.lo"}))
	require.NoError(t, g.AddModule(graph.Module{Name: "pkg.hi"}))

	chains, err := g.FindShortestChains("pkg.lo", "pkg.hi")
	require.NoError(t, err)
	for _, c := range chains {
		require.LessOrEqual(t, len(c), 2)
	}
}

func TestFindUpstreamModulesNotPresent(t *testing.T) {
	g := graph.New()
	_, err := g.FindUpstreamModules("missing", false)
	var target *graph.ModuleNotPresentError
	require.ErrorAs(t, err, &target)
}
