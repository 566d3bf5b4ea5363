package importgraph

import (
	"context"

	"importgraph.dev/importgraph/graph"
	"importgraph.dev/importgraph/internal/buildgraph"
	"importgraph.dev/importgraph/scan"
)

// Build scans every named root through resolver, extracts their
// import statements (consulting and refreshing the cache named by
// opts.CacheDir), and assembles the resulting graph. Warnings
// accumulated along the way (decoding failures, filename anomalies)
// are non-fatal and returned alongside the graph; anything that would
// leave the graph silently incomplete is returned as an error
// instead, per spec.md §7.
func Build(ctx context.Context, roots []string, resolver scan.Resolver, opts Options) (*graph.Graph, []string, error) {
	cacheDir := DefaultCacheDir
	if opts.CacheDir != nil {
		cacheDir = *opts.CacheDir
	}
	res, err := buildgraph.Build(ctx, roots, resolver, buildgraph.Options{
		IncludeExternalPackages:    opts.IncludeExternalPackages,
		ExcludeTypeCheckingImports: opts.ExcludeTypeCheckingImports,
		CacheDir:                   cacheDir,
	})
	if err != nil {
		return nil, nil, err
	}
	return res.Graph, res.Warnings, nil
}
