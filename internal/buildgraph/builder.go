// Package buildgraph orchestrates the scan -> cache-check -> parallel
// extract -> graph-assembly pipeline described in spec.md §4.7 and
// §5.1. It is internal because its only contract-visible surface is
// the top-level importgraph.Build function.
package buildgraph

import (
	"context"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"

	"importgraph.dev/importgraph/cache"
	"importgraph.dev/importgraph/extract"
	"importgraph.dev/importgraph/graph"
	"importgraph.dev/importgraph/internal/fsmeta"
	"importgraph.dev/importgraph/internal/pyscan"
	"importgraph.dev/importgraph/scan"
)

// readFile is a seam for tests that want to stub out the filesystem.
var readFile = os.ReadFile

// Options mirrors spec.md §6's construction options.
type Options struct {
	IncludeExternalPackages    bool
	ExcludeTypeCheckingImports bool
	CacheDir                   string
}

// Result is everything one Build call produces: the assembled graph
// plus the recoverable warnings accumulated along the way (decode
// failures, filename anomalies), per spec.md §7.
type Result struct {
	Graph    *graph.Graph
	Warnings []string
}

type moduleSet map[string]bool

func (m moduleSet) HasModule(name string) bool { return m[name] }

// Build runs the full pipeline for the given roots.
func Build(ctx context.Context, roots []string, resolver scan.Resolver, opts Options) (*Result, error) {
	scanned, err := scan.Scan(roots, resolver)
	if err != nil {
		return nil, xerrors.Errorf("scan: %w", err)
	}

	inv := make(moduleSet, len(scanned))
	for _, m := range scanned {
		inv[m.Name] = true
	}

	cfg := cache.Configuration{
		Roots:                      roots,
		IncludeExternalPackages:    opts.IncludeExternalPackages,
		ExcludeTypeCheckingImports: opts.ExcludeTypeCheckingImports,
	}
	store := cache.Load(opts.CacheDir, cfg)

	res := &Result{}
	edgesByPath := make(map[string][]extract.Edge, len(scanned))
	newStore := make(cache.Store, len(scanned))
	var toExtract []scan.Module
	var mu warningSink
	mu.res = res

	for _, m := range scanned {
		ns, statErr := fsmeta.ModTimeNanos(m.Path)
		if statErr != nil {
			mu.add("stat " + m.Path + ": " + statErr.Error())
			continue
		}
		if entry, ok := store.Fresh(m.Path, ns); ok {
			edgesByPath[m.Path] = cachedToEdges(entry.Imports)
			newStore[m.Path] = entry
			continue
		}
		toExtract = append(toExtract, m)
	}

	g, egCtx := errgroup.WithContext(ctx)
	type extracted struct {
		path  string
		ns    int64
		edges []extract.Edge
	}
	results := make([]extracted, len(toExtract))
	for i, m := range toExtract {
		i, m := i, m
		g.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			ns, statErr := fsmeta.ModTimeNanos(m.Path)
			if statErr != nil {
				mu.add("stat " + m.Path + ": " + statErr.Error())
				return nil
			}
			edges, warn, extractErr := extractOne(m, inv)
			if extractErr != nil {
				return extractErr
			}
			if warn != "" {
				mu.add(warn)
				return nil
			}
			results[i] = extracted{path: m.Path, ns: ns, edges: edges}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.path == "" {
			continue // skipped (decode warning)
		}
		edgesByPath[r.path] = r.edges
		newStore[r.path] = cache.Entry{ModTimeNanos: r.ns, Imports: edgesToCached(r.edges)}
	}

	if err := cache.Save(opts.CacheDir, cfg, newStore); err != nil {
		mu.add("writing cache: " + err.Error())
	}

	gr := graph.New()
	for _, m := range scanned {
		if err := gr.AddModule(graph.Module{Name: m.Name}); err != nil {
			return nil, err
		}
		mu.add(m.Warnings...)
	}

	for _, m := range scanned {
		for _, e := range edgesByPath[m.Path] {
			if e.IsTypeChecking && opts.ExcludeTypeCheckingImports {
				continue
			}
			if err := addResolvedEdge(gr, inv, roots, opts.IncludeExternalPackages, e); err != nil {
				return nil, err
			}
		}
	}

	res.Graph = gr
	return res, nil
}

// warningSink collects warnings onto a Result from possibly-concurrent
// extraction goroutines.
type warningSink struct {
	mu  sync.Mutex
	res *Result
}

func (w *warningSink) add(msgs ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, m := range msgs {
		if m != "" {
			w.res.Warnings = append(w.res.Warnings, m)
		}
	}
}

func extractOne(m scan.Module, inv moduleSet) (edges []extract.Edge, warning string, err error) {
	data, readErr := readFile(m.Path)
	if readErr != nil {
		return nil, "", xerrors.Errorf("reading %s: %w", m.Path, readErr)
	}
	decoded, decodeErr := pyscan.Decode(m.Path, data)
	if decodeErr != nil {
		return nil, "skipping " + m.Path + ": " + decodeErr.Error(), nil
	}
	edges, err = extract.File(m.Path, m.Name, decoded, inv)
	if err != nil {
		return nil, "", err
	}
	return edges, "", nil
}

func cachedToEdges(imports []cache.Import) []extract.Edge {
	out := make([]extract.Edge, len(imports))
	for i, imp := range imports {
		out[i] = extract.Edge{
			Importer:       imp.Importer,
			Imported:       imp.Imported,
			LineNumber:     imp.LineNumber,
			LineContents:   imp.LineContents,
			IsTypeChecking: imp.IsTypeChecking,
		}
	}
	return out
}

func edgesToCached(edges []extract.Edge) []cache.Import {
	out := make([]cache.Import, len(edges))
	for i, e := range edges {
		out[i] = cache.Import{
			Importer:       e.Importer,
			Imported:       e.Imported,
			LineNumber:     e.LineNumber,
			LineContents:   e.LineContents,
			IsTypeChecking: e.IsTypeChecking,
		}
	}
	return out
}

// addResolvedEdge resolves e's target against the internal roots and
// adds it to gr: internal targets are added as plain edges; external
// targets are dropped unless includeExternal is set, in which case
// they are squashed to their shallowest non-colliding ancestor prefix
// per spec.md §4.5 point 4.
func addResolvedEdge(gr *graph.Graph, inv moduleSet, roots []string, includeExternal bool, e extract.Edge) error {
	if isInternal(e.Imported, roots) {
		gr.AddImport(e.Importer, e.Imported, detailFor(e))
		return nil
	}
	if !includeExternal {
		return nil
	}
	squashedName := squashedAncestor(e.Imported, inv)
	if err := gr.AddModule(graph.Module{Name: squashedName, IsSquashed: true}); err != nil {
		var mismatch *graph.SquashedModuleDiffersError
		if !xerrors.As(err, &mismatch) {
			return err
		}
	}
	gr.AddImport(e.Importer, squashedName, detailFor(e))
	return nil
}

func detailFor(e extract.Edge) *graph.ImportDetail {
	return &graph.ImportDetail{LineNumber: e.LineNumber, LineContents: e.LineContents}
}

func isInternal(name string, roots []string) bool {
	head, _, _ := strings.Cut(name, ".")
	for _, r := range roots {
		if head == r {
			return true
		}
	}
	return false
}

// squashedAncestor finds the shortest dotted prefix of name that does
// not collide with an already-known internal module name.
func squashedAncestor(name string, inv moduleSet) string {
	segments := strings.Split(name, ".")
	for i := 1; i <= len(segments); i++ {
		candidate := strings.Join(segments[:i], ".")
		if !inv[candidate] {
			return candidate
		}
	}
	return name
}

