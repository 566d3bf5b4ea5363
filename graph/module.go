package graph

import (
	"importgraph.dev/importgraph/interner"
)

// ModuleID is a handle for a module within one Graph instance. IDs
// are not portable across Graph values.
type ModuleID = interner.ID

// Module describes one node of the import graph: a dotted module
// name plus whether it stands in for itself and all its descendants.
type Module struct {
	Name       string
	IsSquashed bool
}

// ImportDetail records where one import edge came from in source: the
// 1-based line number and the literal source line text.
type ImportDetail struct {
	LineNumber   int
	LineContents string
}
