package graph

import (
	"sort"

	"importgraph.dev/importgraph/interner"
)

// FindUpstreamModules returns the closure of forward edges reachable
// from m. When asPackage is true the closure starts from m plus its
// descendants and the starting set is excluded from the result.
func (g *Graph) FindUpstreamModules(m string, asPackage bool) ([]string, error) {
	return g.closure(m, asPackage, g.forward)
}

// FindDownstreamModules returns the closure of reverse edges
// reachable from m. When asPackage is true the closure starts from m
// plus its descendants and the starting set is excluded from the
// result.
func (g *Graph) FindDownstreamModules(m string, asPackage bool) ([]string, error) {
	return g.closure(m, asPackage, g.reverse)
}

func (g *Graph) closure(m string, asPackage bool, adjacency map[interner.ID]*orderedSet) ([]string, error) {
	starts, err := g.startSet(m, asPackage)
	if err != nil {
		return nil, err
	}
	visited := make(map[interner.ID]bool)
	var queue []interner.ID
	for _, id := range starts {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		set := adjacency[id]
		if set == nil {
			continue
		}
		for _, next := range set.order {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	startSet := make(map[interner.ID]bool, len(starts))
	for _, id := range starts {
		startSet[id] = true
	}

	var out []string
	for id := range visited {
		if asPackage && startSet[id] {
			continue
		}
		out = append(out, g.in.Resolve(id))
	}
	return out, nil
}

// startSet resolves m (and, if asPackage, its descendants) to IDs.
func (g *Graph) startSet(m string, asPackage bool) ([]interner.ID, error) {
	id, ok := g.in.Lookup(m)
	if !ok || !g.exists(id) {
		return nil, &ModuleNotPresentError{Module: m}
	}
	if !asPackage {
		return []interner.ID{id}, nil
	}
	names, err := g.packageSet(m)
	if err != nil {
		return nil, err
	}
	ids := make([]interner.ID, 0, len(names))
	for name := range names {
		if nid, ok := g.in.Lookup(name); ok {
			ids = append(ids, nid)
		}
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids, nil
}

func (g *Graph) targetSet(m string, asPackages bool) (map[interner.ID]bool, error) {
	ids, err := g.startSet(m, asPackages)
	if err != nil {
		return nil, err
	}
	set := make(map[interner.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// bfsStep is one node of the BFS predecessor tree used to reconstruct
// a shortest chain once a target is hit.
type bfsStep struct {
	id   interner.ID
	prev *bfsStep
}

func (g *Graph) pathFromStep(s *bfsStep) []string {
	var ids []interner.ID
	for n := s; n != nil; n = n.prev {
		ids = append(ids, n.id)
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = g.in.Resolve(id)
	}
	return out
}

// FindShortestChain runs a breadth-first search from i (or its
// descendant set, if asPackages) on forward edges, stopping at the
// first node belonging to the target set (j, or its descendants). It
// returns the path as an ordered slice of dotted names, or nil if j
// is unreachable from i. Ties among equal-length chains are broken by
// the adjacency sets' insertion order, which is deterministic for a
// given build but not part of the contract.
func (g *Graph) FindShortestChain(i, j string, asPackages bool) ([]string, error) {
	starts, err := g.startSet(i, asPackages)
	if err != nil {
		return nil, err
	}
	targets, err := g.targetSet(j, asPackages)
	if err != nil {
		return nil, err
	}

	visited := make(map[interner.ID]bool)
	var queue []*bfsStep
	for _, id := range starts {
		if targets[id] {
			return g.pathFromStep(&bfsStep{id: id}), nil
		}
		if !visited[id] {
			visited[id] = true
			queue = append(queue, &bfsStep{id: id})
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		set := g.forward[cur.id]
		if set == nil {
			continue
		}
		for _, next := range set.order {
			if visited[next] {
				continue
			}
			visited[next] = true
			s := &bfsStep{id: next, prev: cur}
			if targets[next] {
				return g.pathFromStep(s), nil
			}
			queue = append(queue, s)
		}
	}
	return nil, nil
}

// FindShortestChains returns, for every (head, tail) pair with head in
// i (or i's descendants) and tail in j (or j's descendants), one
// shortest chain between them — but suppresses any chain that
// (comparing full chains, head and tail included) strictly contains
// another returned chain as a contiguous sub-sequence, so that
// i.a -> j.b -> j.c is not reported alongside i.a -> j.b.
func (g *Graph) FindShortestChains(i, j string) ([][]string, error) {
	heads, err := g.startSet(i, true)
	if err != nil {
		return nil, err
	}
	tails, err := g.targetSet(j, true)
	if err != nil {
		return nil, err
	}

	var chains [][]string
	for _, head := range heads {
		if tails[head] {
			chains = append(chains, []string{g.in.Resolve(head)})
			continue
		}
		for tail := range tails {
			if chain := g.bfsFromSingle(head, map[interner.ID]bool{tail: true}); chain != nil {
				chains = append(chains, chain)
			}
		}
	}

	return filterSuperChains(chains), nil
}

// bfsFromSingle runs BFS on forward edges from a single start ID to
// the given target set, returning the path or nil.
func (g *Graph) bfsFromSingle(start interner.ID, targets map[interner.ID]bool) []string {
	visited := map[interner.ID]bool{start: true}
	queue := []*bfsStep{{id: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		set := g.forward[cur.id]
		if set == nil {
			continue
		}
		for _, next := range set.order {
			if visited[next] {
				continue
			}
			visited[next] = true
			s := &bfsStep{id: next, prev: cur}
			if targets[next] {
				return g.pathFromStep(s)
			}
			queue = append(queue, s)
		}
	}
	return nil
}

// filterSuperChains drops any chain that strictly contains another
// chain in the slice as a contiguous sub-sequence, keeping the
// shorter (contained) one.
func filterSuperChains(chains [][]string) [][]string {
	var out [][]string
	for idx, c := range chains {
		suppressed := false
		for other, o := range chains {
			if other == idx || len(o) >= len(c) {
				continue
			}
			if containsSubsequence(c, o) {
				suppressed = true
				break
			}
		}
		if !suppressed {
			out = append(out, c)
		}
	}
	return out
}

func containsSubsequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for k, v := range needle {
			if haystack[start+k] != v {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// ChainExists reports whether j is reachable from i using
// bidirectional breadth-first search: one frontier expands forward
// from i, another expands backward from j, and the search stops as
// soon as the frontiers meet.
func (g *Graph) ChainExists(i, j string, asPackages bool) (bool, error) {
	starts, err := g.startSet(i, asPackages)
	if err != nil {
		return false, err
	}
	targets, err := g.startSet(j, asPackages)
	if err != nil {
		return false, err
	}

	fwdVisited := idSet(starts)
	bwdVisited := idSet(targets)
	for id := range fwdVisited {
		if bwdVisited[id] {
			return true, nil
		}
	}

	fwdFrontier := append([]interner.ID(nil), starts...)
	bwdFrontier := append([]interner.ID(nil), targets...)

	for len(fwdFrontier) > 0 && len(bwdFrontier) > 0 {
		var next []interner.ID
		for _, id := range fwdFrontier {
			set := g.forward[id]
			if set == nil {
				continue
			}
			for _, n := range set.order {
				if fwdVisited[n] {
					continue
				}
				fwdVisited[n] = true
				if bwdVisited[n] {
					return true, nil
				}
				next = append(next, n)
			}
		}
		fwdFrontier = next

		var next2 []interner.ID
		for _, id := range bwdFrontier {
			set := g.reverse[id]
			if set == nil {
				continue
			}
			for _, n := range set.order {
				if bwdVisited[n] {
					continue
				}
				bwdVisited[n] = true
				if fwdVisited[n] {
					return true, nil
				}
				next2 = append(next2, n)
			}
		}
		bwdFrontier = next2
	}
	return false, nil
}

func idSet(ids []interner.ID) map[interner.ID]bool {
	set := make(map[interner.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
