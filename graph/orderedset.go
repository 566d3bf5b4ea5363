package graph

import "importgraph.dev/importgraph/interner"

// orderedSet is an insertion-ordered set of module IDs. Adjacency
// sets in the graph use it so that BFS traversals (shortest chain,
// chain exists) visit candidates in a stable, deterministic order —
// required by spec.md §4.3's tie-breaking rule, even though the
// contract does not promise any particular chain is "the" answer.
type orderedSet struct {
	order []interner.ID
	index map[interner.ID]int
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[interner.ID]int)}
}

// add inserts id if absent. Returns true if it was newly added.
func (s *orderedSet) add(id interner.ID) bool {
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.order)
	s.order = append(s.order, id)
	return true
}

func (s *orderedSet) has(id interner.ID) bool {
	_, ok := s.index[id]
	return ok
}

// remove deletes id, shifting later entries to keep order dense. This
// is O(n) in the set size; import graphs have modest fan-out per
// module in practice so this is acceptable and keeps iteration order
// simple to reason about.
func (s *orderedSet) remove(id interner.ID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.order = append(s.order[:i], s.order[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.order); j++ {
		s.index[s.order[j]] = j
	}
	return true
}

func (s *orderedSet) len() int {
	return len(s.order)
}
