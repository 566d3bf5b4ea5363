// Package extract turns one source file into the list of import
// edges it makes, per spec.md §4.5. It consumes the statement list
// produced by internal/pyscan (standing in for a real language
// parser) and resolves relative imports, from-import submodule
// membership, and TYPE_CHECKING tagging.
package extract

import (
	"strings"

	"golang.org/x/xerrors"

	"importgraph.dev/importgraph/internal/pyscan"
)

// Inventory answers whether a dotted name is a known internal
// module, which the extractor needs to disambiguate
// "from X import A" (A could be a submodule X.A, or an attribute of
// X, in which case the edge targets X itself).
type Inventory interface {
	HasModule(dotted string) bool
}

// SyntaxError wraps the failure to resolve an import statement (a
// relative import deeper than the importer's dotted name) and fails
// the whole build, per spec.md §7 ("per-file parse errors: fatal by
// default").
type SyntaxError struct {
	Path string
	Err  error
}

func (e *SyntaxError) Error() string {
	return "syntax error in " + e.Path + ": " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Edge is one resolved import edge, with the line metadata and
// TYPE_CHECKING tag spec.md §4.5 asks for.
type Edge struct {
	Importer       string
	Imported       string
	LineNumber     int
	LineContents   string
	IsTypeChecking bool
	// IsWildcard marks edges produced by "from X import *", which
	// carry no name-level detail.
	IsWildcard bool
}

// File extracts every import edge made by the module named
// importerName, whose decoded source is src. inv is used to
// disambiguate from-import submodule membership.
func File(path, importerName string, src []byte, inv Inventory) ([]Edge, error) {
	stmts := pyscan.Scan(string(src))
	var edges []Edge
	for _, stmt := range stmts {
		switch stmt.Kind {
		case pyscan.Import:
			edges = append(edges, Edge{
				Importer:       importerName,
				Imported:       stmt.Module,
				LineNumber:     stmt.Line,
				LineContents:   stmt.LineText,
				IsTypeChecking: stmt.TypeChecking,
			})
		case pyscan.FromImport:
			base, err := resolveBase(importerName, stmt.RelativeDots, stmt.Module)
			if err != nil {
				return nil, &SyntaxError{Path: path, Err: err}
			}
			edges = append(edges, fromImportEdges(importerName, base, stmt, inv)...)
		}
	}
	return edges, nil
}

// resolveBase resolves the "from [dots][module] import ..." prefix to
// an absolute dotted module name, per spec.md §4.5: a relative import
// at depth k strips k trailing segments from the importer's own
// dotted name before prepending the (possibly empty) module part.
func resolveBase(importer string, dots int, module string) (string, error) {
	if dots == 0 {
		return module, nil
	}
	segments := strings.Split(importer, ".")
	if dots > len(segments) {
		return "", xerrors.Errorf("relative import depth %d exceeds importer %q depth", dots, importer)
	}
	base := strings.Join(segments[:len(segments)-dots], ".")
	switch {
	case module == "":
		return base, nil
	case base == "":
		return module, nil
	default:
		return base + "." + module, nil
	}
}

func fromImportEdges(importer, base string, stmt pyscan.Statement, inv Inventory) []Edge {
	if len(stmt.Names) == 1 && stmt.Names[0].Wildcard {
		if base == "" {
			return nil
		}
		return []Edge{{
			Importer:       importer,
			Imported:       base,
			LineNumber:     stmt.Line,
			LineContents:   stmt.LineText,
			IsTypeChecking: stmt.TypeChecking,
			IsWildcard:     true,
		}}
	}

	var edges []Edge
	emitted := make(map[string]bool)
	for _, name := range stmt.Names {
		candidate := name.Dotted
		if base != "" {
			candidate = base + "." + name.Dotted
		}
		target := base
		if inv != nil && inv.HasModule(candidate) {
			target = candidate
		}
		if target == "" || emitted[target] {
			continue
		}
		emitted[target] = true
		edges = append(edges, Edge{
			Importer:       importer,
			Imported:       target,
			LineNumber:     stmt.Line,
			LineContents:   stmt.LineText,
			IsTypeChecking: stmt.TypeChecking,
		})
	}
	return edges
}
