// Package report renders the layer analyser's findings as Markdown
// and, via goldmark, as HTML, for impgraph check -html.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"importgraph.dev/importgraph/layers"
)

// Markdown renders deps as a Markdown document: one section per
// violated package pair, one bullet per Route. An empty deps renders
// a single "no violations" line.
func Markdown(deps []layers.PackageDependency) string {
	var sb strings.Builder
	if len(deps) == 0 {
		sb.WriteString("No layer violations found.\n")
		return sb.String()
	}

	sorted := append([]layers.PackageDependency(nil), deps...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Importer != sorted[j].Importer {
			return sorted[i].Importer < sorted[j].Importer
		}
		return sorted[i].Imported < sorted[j].Imported
	})

	fmt.Fprintf(&sb, "# Layer violations (%d)\n\n", len(sorted))
	for _, dep := range sorted {
		fmt.Fprintf(&sb, "## %s imports %s\n\n", dep.Importer, dep.Imported)
		for _, route := range dep.Routes {
			writeRoute(&sb, route)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeRoute(sb *strings.Builder, route layers.Route) {
	heads := strings.Join(sortedCopy(route.Heads), ", ")
	tails := strings.Join(sortedCopy(route.Tails), ", ")
	if len(route.Middle) == 0 {
		fmt.Fprintf(sb, "- %s &rarr; %s (direct import)\n", heads, tails)
		return
	}
	fmt.Fprintf(sb, "- %s &rarr; %s &rarr; %s\n", heads, strings.Join(route.Middle, " &rarr; "), tails)
}

func sortedCopy(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// HTML renders deps to a self-contained HTML fragment by converting
// the Markdown report through goldmark.
func HTML(deps []layers.PackageDependency) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(deps)), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
