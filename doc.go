// Package importgraph builds and queries a directed graph of import
// relationships between modules of a statically scanned package tree.
//
// A caller builds a graph with Build, passing the root package names
// and a Resolver that locates each root's on-disk directory (the
// ambient package resolution of the host environment is intentionally
// outside this module's scope). The returned *graph.Graph supports
// the membership, reachability, and module-expression queries
// described by the graph package; the layers package runs the
// layered-architecture check against it.
package importgraph
