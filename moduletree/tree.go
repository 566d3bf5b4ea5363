// Package moduletree maintains the hierarchical namespace implied by
// dotted module names.
//
// The tree is derived, not authoritative: adding "a.b.c" does not
// implicitly create nodes for "a" or "a.b". Hierarchy queries
// (children, descendants) only ever return names that some caller
// has explicitly added. Internally the tree indexes names by their
// dot-separated segments in a trie so that Children and Descendants
// are proportional to the size of the result, not the size of the
// whole tree, which matters once a graph reaches 10^5+ modules.
package moduletree

import "strings"

type node struct {
	present  bool // a module with this exact dotted name was Add'ed
	children map[string]*node
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Tree indexes a set of dotted module names by their segments.
type Tree struct {
	root *node
}

// New returns an empty Tree.
func New() *Tree {
	return &Tree{root: newNode()}
}

func segments(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, ".")
}

// Add inserts name into the tree. It is idempotent.
func (t *Tree) Add(name string) {
	n := t.root
	for _, seg := range segments(name) {
		child, ok := n.children[seg]
		if !ok {
			child = newNode()
			n.children[seg] = child
		}
		n = child
	}
	n.present = true
}

// Remove deletes name from the tree. It does not recurse into
// descendants: removing "a.b" leaves "a.b.c" present, per the graph's
// remove_module contract of not cascading into descendants.
func (t *Tree) Remove(name string) {
	n := t.find(name)
	if n != nil {
		n.present = false
	}
}

func (t *Tree) find(name string) *node {
	n := t.root
	for _, seg := range segments(name) {
		child, ok := n.children[seg]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

// Children returns the present names exactly one segment below name
// (i.e. "m.tail" for a single additional segment "tail").
func (t *Tree) Children(name string) []string {
	n := t.find(name)
	if n == nil {
		return nil
	}
	var out []string
	for seg, child := range n.children {
		if child.present {
			out = append(out, name+"."+seg)
		}
	}
	return out
}

// Descendants returns every present name strictly under name by
// dotted-name prefix (i.e. every node with "name." as a literal
// prefix of its dotted name).
func (t *Tree) Descendants(name string) []string {
	n := t.find(name)
	if n == nil {
		return nil
	}
	var out []string
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		for seg, child := range n.children {
			full := prefix + "." + seg
			if child.present {
				out = append(out, full)
			}
			walk(full, child)
		}
	}
	walk(name, n)
	return out
}

// Has reports whether name was Add'ed and not subsequently Removed.
func (t *Tree) Has(name string) bool {
	n := t.find(name)
	return n != nil && n.present
}
