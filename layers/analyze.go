package layers

import (
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"importgraph.dev/importgraph/graph"
)

// pairCheck is one ordered (higher, lower) module pair to evaluate,
// derived either from two distinct layers in the stack or from two
// independent siblings within the same layer.
type pairCheck struct {
	higher string
	lower  string
}

// edgeKey identifies one forward edge by endpoint names, used to mark
// edges as removed from the working copy during the BFS/removal loop
// without mutating the real graph.
type edgeKey struct{ from, to string }

// Analyze runs the layer stack (highest-to-lowest) against gr. When
// containers is non-empty the effective layer list is the Cartesian
// product of containers × layers (spec.md §4.8): each container is
// checked as its own independent layer stack, since "higher" and
// "lower" have no shared meaning across unrelated containers. When
// containers is empty, the stack's tails are used as module names
// directly.
//
// Distinct layer pairs run concurrently; within one pair the
// BFS/edge-removal loop that separates a violation into disjoint
// Routes is sequential.
func Analyze(gr *graph.Graph, stack []Layer, containers []string) ([]PackageDependency, error) {
	for _, c := range containers {
		if !gr.Exists(c) {
			return nil, &NoSuchContainerError{Container: c}
		}
	}

	groups := containerGroups(containers)
	var checks []pairCheck
	for _, prefix := range groups {
		checks = append(checks, pairsForStack(prefixLayers(stack, prefix))...)
	}

	results := make([]*PackageDependency, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		i, c := i, c
		g.Go(func() error {
			dep := analyzePair(gr, c.higher, c.lower)
			results[i] = dep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []PackageDependency
	for _, dep := range results {
		if dep != nil {
			out = append(out, *dep)
		}
	}
	return out, nil
}

// containerGroups returns the prefixes to check independently: the
// supplied containers, or a single empty prefix if none were given.
func containerGroups(containers []string) []string {
	if len(containers) == 0 {
		return []string{""}
	}
	return append([]string(nil), containers...)
}

// prefixLayers qualifies every tail in stack with prefix (C.t), or
// leaves tails bare when prefix is empty.
func prefixLayers(stack []Layer, prefix string) []Layer {
	out := make([]Layer, len(stack))
	for i, l := range stack {
		tails := make([]string, len(l.Tails))
		for j, t := range l.Tails {
			if prefix == "" {
				tails[j] = t
			} else {
				tails[j] = prefix + "." + t
			}
		}
		out[i] = Layer{Tails: tails, Independent: l.Independent}
	}
	return out
}

// pairsForStack enumerates every (higher, lower) module pair implied
// by one already-prefixed layer stack: every earlier-layer tail
// against every later-layer tail, plus both directions between
// independent siblings within the same layer.
func pairsForStack(stack []Layer) []pairCheck {
	var checks []pairCheck
	for i := range stack {
		for j := i + 1; j < len(stack); j++ {
			for _, higher := range stack[i].Tails {
				for _, lower := range stack[j].Tails {
					checks = append(checks, pairCheck{higher: higher, lower: lower})
				}
			}
		}
	}
	for _, l := range stack {
		if !l.Independent {
			continue
		}
		for i := range l.Tails {
			for j := range l.Tails {
				if i == j {
					continue
				}
				checks = append(checks, pairCheck{higher: l.Tails[i], lower: l.Tails[j]})
			}
		}
	}
	return checks
}

// analyzePair runs the BFS/edge-removal loop for one (higher, lower)
// pair and returns the resulting PackageDependency, or nil if no
// chain exists or either module is missing from the graph (missing
// layer modules are silently ignored per spec.md §4.8).
func analyzePair(gr *graph.Graph, higher, lower string) *PackageDependency {
	highSet, ok := descendantsInclusive(gr, higher)
	if !ok {
		return nil
	}
	lowSet, ok := descendantsInclusive(gr, lower)
	if !ok {
		return nil
	}

	removed := make(map[edgeKey]bool)

	var chains [][]string
	for {
		chain := bfsExcluding(gr, lowSet, highSet, removed)
		if chain == nil {
			break
		}
		chains = append(chains, chain)
		for k := 0; k+1 < len(chain); k++ {
			removed[edgeKey{chain[k], chain[k+1]}] = true
		}
	}
	if len(chains) == 0 {
		return nil
	}

	return &PackageDependency{
		Importer: lower,
		Imported: higher,
		Routes:   groupIntoRoutes(chains),
	}
}

// descendantsInclusive returns m plus its descendants (or just m, if
// m is squashed), or ok=false if m is not present in the graph.
func descendantsInclusive(gr *graph.Graph, m string) (map[string]bool, bool) {
	if !gr.Exists(m) {
		return nil, false
	}
	set := map[string]bool{m: true}
	if gr.IsSquashed(m) {
		return set, true
	}
	desc, err := gr.FindDescendants(m)
	if err != nil {
		return nil, false
	}
	for _, d := range desc {
		set[d] = true
	}
	return set, true
}

// bfsExcluding runs a breadth-first search over gr's forward edges
// from any module in from to any module in to, ignoring edges present
// in removed. It returns the shortest chain found, or nil.
func bfsExcluding(gr *graph.Graph, from, to map[string]bool, removed map[edgeKey]bool) []string {
	type step struct {
		name string
		prev *step
	}
	visited := make(map[string]bool)
	var queue []*step
	for name := range from {
		if to[name] {
			return []string{name}
		}
		if !visited[name] {
			visited[name] = true
			queue = append(queue, &step{name: name})
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range sortedStrings(gr.FindModulesDirectlyImportedBy(cur.name)) {
			if removed[edgeKey{cur.name, next}] {
				continue
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			s := &step{name: next, prev: cur}
			if to[next] {
				var path []string
				for n := s; n != nil; n = n.prev {
					path = append([]string{n.name}, path...)
				}
				return path
			}
			queue = append(queue, s)
		}
	}
	return nil
}

func sortedStrings(in []string) []string {
	out := append([]string(nil), in...)
	sort.Strings(out)
	return out
}

// groupIntoRoutes groups chains that share the same interior (every
// module strictly between the head and the tail) into a single
// Route, collecting the set of heads that fan in and tails that fan
// out to that shared middle.
func groupIntoRoutes(chains [][]string) []Route {
	type group struct {
		route Route
		heads map[string]bool
		tails map[string]bool
	}
	groupsByKey := make(map[string]*group)
	var order []string

	for _, chain := range chains {
		head := chain[0]
		tail := chain[len(chain)-1]
		middle := append([]string(nil), chain[1:len(chain)-1]...)
		key := strings.Join(middle, "\x00")

		g, ok := groupsByKey[key]
		if !ok {
			g = &group{route: Route{Middle: middle}, heads: map[string]bool{}, tails: map[string]bool{}}
			groupsByKey[key] = g
			order = append(order, key)
		}
		if !g.heads[head] {
			g.heads[head] = true
			g.route.Heads = append(g.route.Heads, head)
		}
		if !g.tails[tail] {
			g.tails[tail] = true
			g.route.Tails = append(g.route.Tails, tail)
		}
	}

	routes := make([]Route, 0, len(order))
	for _, key := range order {
		routes = append(routes, groupsByKey[key].route)
	}
	return routes
}
