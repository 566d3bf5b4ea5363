package importgraph

import (
	"importgraph.dev/importgraph/extract"
	"importgraph.dev/importgraph/graph"
	"importgraph.dev/importgraph/layers"
	"importgraph.dev/importgraph/scan"
)

// The boundary error types named in spec.md §6 are defined in the
// graph, scan, extract and layers packages, since that is where they
// originate; they are re-exported here so callers of the top-level
// Build entry point never need to import those packages directly
// just to do an errors.As check.
type (
	// ModuleNotPresent is returned when an operation names a module
	// that does not exist in the graph.
	ModuleNotPresent = graph.ModuleNotPresentError
	// ModuleIsSquashed is returned when a hierarchy query targets a
	// squashed module, which by definition has no children.
	ModuleIsSquashed = graph.ModuleIsSquashedError
	// ModulesHaveSharedDescendants is returned by
	// direct_import_exists(as_packages=true) when the two package
	// subtrees overlap.
	ModulesHaveSharedDescendants = graph.SharedDescendantsError
	// InvalidModuleExpression is returned when a module-expression
	// string contains a malformed wildcard segment.
	InvalidModuleExpression = graph.InvalidExpressionError
	// NoSuchContainer is returned by the layer analyser when a
	// supplied container is not a module in the graph.
	NoSuchContainer = layers.NoSuchContainerError
	// NamespacePackageEncountered is returned when a scanned root is a
	// pure namespace package: its directory has no __init__, no source
	// files and no subdirectories.
	NamespacePackageEncountered = scan.NamespacePackageEncounteredError
	// SourceSyntaxError reports an import statement in a source file
	// that cannot be resolved (a relative import reaching above the
	// importer's top-level package); it fails the whole build rather
	// than being recovered as a warning.
	SourceSyntaxError = extract.SyntaxError
)
