package graph

import "strings"

// ExpressionMatches returns every module in the graph whose dotted
// name matches expr. Tokens are separated by ".": a literal segment
// must match exactly, "*" matches exactly one segment, and "**"
// matches one or more segments. Any other wildcard embedded in a
// segment (e.g. "foo*") is invalid and returns
// *InvalidExpressionError.
func (g *Graph) ExpressionMatches(expr string) ([]string, error) {
	pattern := strings.Split(expr, ".")
	for _, seg := range pattern {
		if seg == "*" || seg == "**" {
			continue
		}
		if strings.ContainsAny(seg, "*") {
			return nil, &InvalidExpressionError{Expression: expr}
		}
	}

	var out []string
	for id := range g.squashed {
		name := g.in.Resolve(id)
		if matchSegments(pattern, strings.Split(name, ".")) {
			out = append(out, name)
		}
	}
	return out, nil
}

// matchSegments matches a wildcard pattern against a dotted name's
// segments. "**" may consume one or more segments, so the match
// proceeds by trying every possible consumption length at that point
// (the pattern never contains more than a handful of "**" tokens in
// practice, so the naive backtracking search is adequate).
func matchSegments(pattern, name []string) bool {
	if len(pattern) == 0 {
		return len(name) == 0
	}
	head, rest := pattern[0], pattern[1:]

	switch head {
	case "**":
		if len(name) == 0 {
			return false
		}
		for consume := 1; consume <= len(name); consume++ {
			if matchSegments(rest, name[consume:]) {
				return true
			}
		}
		return false
	case "*":
		if len(name) == 0 {
			return false
		}
		return matchSegments(rest, name[1:])
	default:
		if len(name) == 0 || name[0] != head {
			return false
		}
		return matchSegments(rest, name[1:])
	}
}
