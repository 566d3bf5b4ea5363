package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/graph"
)

func TestExpressionMatchesSingleWildcard(t *testing.T) {
	g := graph.New()
	for _, m := range []string{"pkg.models.user", "pkg.models.order", "pkg.views.home"} {
		require.NoError(t, g.AddModule(graph.Module{Name: m}))
	}
	matches, err := g.ExpressionMatches("pkg.models.*")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pkg.models.user", "pkg.models.order"}, matches)
}

func TestExpressionMatchesDoubleWildcard(t *testing.T) {
	g := graph.New()
	for _, m := range []string{"pkg.a.b.c", "pkg.a.c", "pkg.a"} {
		require.NoError(t, g.AddModule(graph.Module{Name: m}))
	}
	matches, err := g.ExpressionMatches("pkg.**.c")
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"pkg.a.b.c", "pkg.a.c"}, matches)
}

func TestExpressionMatchesInvalid(t *testing.T) {
	g := graph.New()
	_, err := g.ExpressionMatches("pkg.foo*")
	var target *graph.InvalidExpressionError
	require.ErrorAs(t, err, &target)
}
