package report_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"importgraph.dev/importgraph/layers"
	"importgraph.dev/importgraph/report"
)

func TestMarkdownNoViolations(t *testing.T) {
	require.Equal(t, "No layer violations found.\n", report.Markdown(nil))
}

func TestMarkdownListsRoutes(t *testing.T) {
	deps := []layers.PackageDependency{{
		Importer: "pkg.lo",
		Imported: "pkg.hi",
		Routes: []layers.Route{
			{Heads: []string{"pkg.lo.x"}, Tails: []string{"pkg.hi.y"}},
		},
	}}
	md := report.Markdown(deps)
	require.Contains(t, md, "pkg.lo imports pkg.hi")
	require.Contains(t, md, "pkg.lo.x")
	require.Contains(t, md, "pkg.hi.y")
}

func TestHTMLRendersHeading(t *testing.T) {
	deps := []layers.PackageDependency{{Importer: "pkg.lo", Imported: "pkg.hi"}}
	html, err := report.HTML(deps)
	require.NoError(t, err)
	require.True(t, strings.Contains(html, "<h1>") || strings.Contains(html, "<h2>"))
}
