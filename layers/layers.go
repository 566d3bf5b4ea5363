// Package layers implements the layered-architecture analyser of
// spec.md §4.8: given an ordered stack of layers, optionally
// multiplied out across a set of containers, it reports every
// illegal dependency of a lower layer on a higher one as a
// PackageDependency, with the discovered chains grouped into Routes.
package layers

// Layer is one element of a layer stack: a set of sibling module
// name tails, plus whether those siblings are mutually independent
// (in which case they are also checked against each other).
type Layer struct {
	Tails       []string
	Independent bool
}

// Route is a compact representation of a family of chains that share
// the same interior: they fan in from Heads, pass through the same
// Middle sequence, and fan out to Tails. Middle is empty for a direct
// import.
type Route struct {
	Heads  []string
	Middle []string
	Tails  []string
}

// PackageDependency describes every discovered route by which
// Importer (the lower layer module) reaches Imported (the higher
// layer module) — an illegal dependency under the layer stack.
type PackageDependency struct {
	Importer string
	Imported string
	Routes   []Route
}

// NoSuchContainerError is returned when a supplied container name is
// not a module in the graph.
type NoSuchContainerError struct {
	Container string
}

func (e *NoSuchContainerError) Error() string {
	return "no such container: " + e.Container
}
