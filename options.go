package importgraph

// DefaultCacheDir is the cache directory used when Options.CacheDir
// is nil, per spec.md §6: the cache is on by default.
const DefaultCacheDir = ".grimp_cache"

// Options mirrors spec.md §6's construction options.
type Options struct {
	// IncludeExternalPackages controls whether imports that resolve
	// outside the scanned roots are kept (squashed to their
	// shallowest non-colliding ancestor) or dropped entirely.
	IncludeExternalPackages bool

	// ExcludeTypeCheckingImports drops imports made only inside a
	// TYPE_CHECKING guard.
	ExcludeTypeCheckingImports bool

	// CacheDir is where the per-configuration import cache is read
	// from and written to. nil selects the default, DefaultCacheDir;
	// a pointer to "" disables the cache entirely. A plain string
	// field could not distinguish "unset" from "explicitly disabled",
	// and spec.md §6 requires the cache to default to on.
	CacheDir *string
}
