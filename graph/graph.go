// Package graph implements the in-memory directed import multigraph:
// interned module identifiers, forward/reverse adjacency, per-edge
// import detail metadata, the derived module hierarchy, and the
// reachability query API described in spec.md §4.3.
package graph

import (
	"fmt"
	"sort"

	"importgraph.dev/importgraph/interner"
	"importgraph.dev/importgraph/moduletree"
)

type edgeKey struct {
	importer, imported interner.ID
}

// Graph is an in-memory directed multigraph over interned module
// names. The zero value is not usable; construct one with New.
//
// Graph is not safe for concurrent use: all mutation and query
// methods assume exclusive access, per spec.md §5's concurrency
// model. Callers that build a graph from parallel extraction must
// funnel results through a single goroutine before calling any
// mutator.
type Graph struct {
	in *interner.Interner

	squashed map[interner.ID]bool // presence in this map means "exists"
	tree     *moduletree.Tree

	forward map[interner.ID]*orderedSet
	reverse map[interner.ID]*orderedSet

	details map[edgeKey][]ImportDetail
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		in:       interner.New(),
		squashed: make(map[interner.ID]bool),
		tree:     moduletree.New(),
		forward:  make(map[interner.ID]*orderedSet),
		reverse:  make(map[interner.ID]*orderedSet),
		details:  make(map[edgeKey][]ImportDetail),
	}
}

func (g *Graph) exists(id interner.ID) bool {
	_, ok := g.squashed[id]
	return ok
}

// AddModule inserts m, idempotently. If a module of the same name
// already exists with a different IsSquashed value, it returns a
// *SquashedModuleDiffersError and leaves the graph unchanged.
func (g *Graph) AddModule(m Module) error {
	id := g.in.Intern(m.Name)
	if existing, ok := g.squashed[id]; ok {
		if existing != m.IsSquashed {
			return &SquashedModuleDiffersError{Module: m.Name}
		}
		return nil
	}
	g.squashed[id] = m.IsSquashed
	g.tree.Add(m.Name)
	if g.forward[id] == nil {
		g.forward[id] = newOrderedSet()
	}
	if g.reverse[id] == nil {
		g.reverse[id] = newOrderedSet()
	}
	return nil
}

// RemoveModule deletes m and every edge incident to it, along with
// their details. It is a no-op if m is absent.
func (g *Graph) RemoveModule(name string) {
	id, ok := g.in.Lookup(name)
	if !ok || !g.exists(id) {
		return
	}
	for _, other := range g.forward[id].order {
		g.reverse[other].remove(id)
		delete(g.details, edgeKey{id, other})
	}
	for _, other := range g.reverse[id].order {
		g.forward[other].remove(id)
		delete(g.details, edgeKey{other, id})
	}
	delete(g.forward, id)
	delete(g.reverse, id)
	delete(g.squashed, id)
	g.tree.Remove(name)
}

// AddImport records a directed import edge importer -> imported,
// auto-adding both endpoints as non-squashed modules if they are
// missing. If detail is non-nil it is appended to the edge's detail
// list; the edge itself is added at most once regardless of how many
// times AddImport is called for the same pair.
func (g *Graph) AddImport(importer, imported string, detail *ImportDetail) {
	i := g.internExisting(importer)
	j := g.internExisting(imported)
	g.forward[i].add(j)
	g.reverse[j].add(i)
	if detail != nil {
		key := edgeKey{i, j}
		g.details[key] = append(g.details[key], *detail)
	}
}

// internExisting interns name and ensures it is present as a
// (non-squashed, unless already known otherwise) module.
func (g *Graph) internExisting(name string) interner.ID {
	id := g.in.Intern(name)
	if !g.exists(id) {
		g.squashed[id] = false
		g.tree.Add(name)
	}
	if g.forward[id] == nil {
		g.forward[id] = newOrderedSet()
	}
	if g.reverse[id] == nil {
		g.reverse[id] = newOrderedSet()
	}
	return id
}

// RemoveImport deletes the importer -> imported edge and all of its
// details. It is a no-op if the edge is absent.
func (g *Graph) RemoveImport(importer, imported string) {
	i, ok1 := g.in.Lookup(importer)
	j, ok2 := g.in.Lookup(imported)
	if !ok1 || !ok2 || !g.exists(i) || !g.exists(j) {
		return
	}
	g.forward[i].remove(j)
	g.reverse[j].remove(i)
	delete(g.details, edgeKey{i, j})
}

// CountImports returns the number of distinct importer->imported
// edges (not the number of ImportDetail records).
func (g *Graph) CountImports() int {
	n := 0
	for _, set := range g.forward {
		n += set.len()
	}
	return n
}

// GetImportDetails returns the detail list stored for the
// importer->imported edge, or nil if there is none.
func (g *Graph) GetImportDetails(importer, imported string) []ImportDetail {
	i, ok1 := g.in.Lookup(importer)
	j, ok2 := g.in.Lookup(imported)
	if !ok1 || !ok2 {
		return nil
	}
	return g.details[edgeKey{i, j}]
}

// FindModulesDirectlyImportedBy returns forward[m] as dotted names.
func (g *Graph) FindModulesDirectlyImportedBy(m string) []string {
	id, ok := g.in.Lookup(m)
	if !ok {
		return nil
	}
	return g.namesOf(g.forward[id])
}

// FindModulesThatDirectlyImport returns reverse[m] as dotted names.
func (g *Graph) FindModulesThatDirectlyImport(m string) []string {
	id, ok := g.in.Lookup(m)
	if !ok {
		return nil
	}
	return g.namesOf(g.reverse[id])
}

func (g *Graph) namesOf(set *orderedSet) []string {
	if set == nil {
		return nil
	}
	out := make([]string, 0, set.len())
	for _, id := range set.order {
		out = append(out, g.in.Resolve(id))
	}
	return out
}

// Modules returns every module currently in the graph. Order is
// unspecified; callers that need determinism should sort.
func (g *Graph) Modules() []Module {
	out := make([]Module, 0, len(g.squashed))
	for id, squashed := range g.squashed {
		out = append(out, Module{Name: g.in.Resolve(id), IsSquashed: squashed})
	}
	return out
}

// IsSquashed reports whether m exists and is squashed.
func (g *Graph) IsSquashed(m string) bool {
	id, ok := g.in.Lookup(m)
	return ok && g.squashed[id]
}

// Exists reports whether m is currently a module in the graph.
func (g *Graph) Exists(m string) bool {
	id, ok := g.in.Lookup(m)
	return ok && g.exists(id)
}

// FindChildren returns the modules in the graph whose name is exactly
// "m.tail" for one additional segment. Fails with
// *ModuleIsSquashedError if m is squashed.
func (g *Graph) FindChildren(m string) ([]string, error) {
	if err := g.requireNotSquashed(m); err != nil {
		return nil, err
	}
	return g.tree.Children(m), nil
}

// FindDescendants returns every module in the graph strictly under
// "m." by dotted-name prefix. Fails with *ModuleIsSquashedError if m
// is squashed.
func (g *Graph) FindDescendants(m string) ([]string, error) {
	if err := g.requireNotSquashed(m); err != nil {
		return nil, err
	}
	return g.tree.Descendants(m), nil
}

func (g *Graph) requireNotSquashed(m string) error {
	id, ok := g.in.Lookup(m)
	if ok && g.squashed[id] {
		return &ModuleIsSquashedError{Module: m}
	}
	return nil
}

// SquashModule reassigns every edge incident to a descendant of m to
// m itself, discards all details on those reassigned descendant
// edges (they are not meaningful once collapsed to a single node),
// and removes the descendants, leaving m marked squashed.
func (g *Graph) SquashModule(m string) error {
	descendants, err := g.FindDescendants(m)
	if err != nil {
		return err
	}
	mid := g.internExisting(m)
	for _, d := range descendants {
		did, ok := g.in.Lookup(d)
		if !ok || !g.exists(did) {
			continue
		}
		for _, other := range append([]interner.ID(nil), g.forward[did].order...) {
			if other == mid || isDescendantID(g, other, m) {
				continue
			}
			g.forward[mid].add(other)
			g.reverse[other].add(mid)
		}
		for _, other := range append([]interner.ID(nil), g.reverse[did].order...) {
			if other == mid || isDescendantID(g, other, m) {
				continue
			}
			g.reverse[mid].add(other)
			g.forward[other].add(mid)
		}
		g.RemoveModule(d)
	}
	g.squashed[mid] = true
	return nil
}

func isDescendantID(g *Graph, id interner.ID, ancestor string) bool {
	name := g.in.Resolve(id)
	return len(name) > len(ancestor) && name[:len(ancestor)] == ancestor && name[len(ancestor)] == '.'
}

// DirectImportExists reports whether an edge exists from importer to
// imported. When asPackages is true it scans the descendant sets of
// both sides (a package "imports" another if any internal module of
// one directly imports any internal module of the other), and fails
// with *SharedDescendantsError if the two subtrees overlap.
func (g *Graph) DirectImportExists(importer, imported string, asPackages bool) (bool, error) {
	if !asPackages {
		i, ok1 := g.in.Lookup(importer)
		j, ok2 := g.in.Lookup(imported)
		if !ok1 || !ok2 || !g.exists(i) {
			return false, nil
		}
		return g.forward[i].has(j), nil
	}

	importerSet, err := g.packageSet(importer)
	if err != nil {
		return false, err
	}
	importedSet, err := g.packageSet(imported)
	if err != nil {
		return false, err
	}
	for name := range importerSet {
		if importedSet[name] {
			return false, &SharedDescendantsError{Importer: importer, Imported: imported}
		}
	}
	for name := range importerSet {
		id, ok := g.in.Lookup(name)
		if !ok || !g.exists(id) {
			continue
		}
		for _, j := range g.forward[id].order {
			if importedSet[g.in.Resolve(j)] {
				return true, nil
			}
		}
	}
	return false, nil
}

// packageSet returns m plus all of its descendants as a name set. If
// m is squashed it has no descendants, so the set is just {m}.
func (g *Graph) packageSet(m string) (map[string]bool, error) {
	set := map[string]bool{m: true}
	if g.IsSquashed(m) {
		return set, nil
	}
	desc, err := g.FindDescendants(m)
	if err != nil {
		return nil, err
	}
	for _, d := range desc {
		set[d] = true
	}
	return set, nil
}

// DebugString returns a deterministic multi-line dump of every module
// and edge in the graph, sorted by name. It is intended for tests and
// for the `impgraph dump` CLI command, not for machine parsing.
func (g *Graph) DebugString() string {
	mods := g.Modules()
	names := make([]string, len(mods))
	squashedOf := make(map[string]bool, len(mods))
	for i, m := range mods {
		names[i] = m.Name
		squashedOf[m.Name] = m.IsSquashed
	}
	sort.Strings(names)

	var sb []byte
	for _, n := range names {
		tag := ""
		if squashedOf[n] {
			tag = " (squashed)"
		}
		sb = append(sb, []byte(fmt.Sprintf("module %s%s\n", n, tag))...)
		for _, imported := range sortedStrings(g.FindModulesDirectlyImportedBy(n)) {
			sb = append(sb, []byte(fmt.Sprintf("  -> %s\n", imported))...)
		}
	}
	return string(sb)
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}
