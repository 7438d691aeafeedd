package resolver

import (
	"strings"

	"github.com/json-to-c4/c4gen/internal/model"
)

// Resolve finds the element whose identifier equals id by descending the
// containment tree one segment at a time, starting at roots.
// It returns false when any segment along the way has no match; it never panics
// on a missing level. Siblings sharing a segment resolve to the first one.
func Resolve(roots []*model.Element, id string) (*model.Element, bool) {
	if id == "" {
		return nil, false
	}
	nodes := roots
	prefix := ""
	for {
		rest := id
		if prefix != "" {
			if !strings.HasPrefix(id, prefix+".") {
				return nil, false
			}
			rest = id[len(prefix)+1:]
		}
		segment, _, _ := strings.Cut(rest, ".")
		candidate := segment
		if prefix != "" {
			candidate = prefix + "." + segment
		}

		match, ok := find(nodes, candidate)
		if !ok {
			return nil, false
		}
		if candidate == id {
			return match, true
		}
		nodes = match.Children
		prefix = candidate
	}
}

func find(nodes []*model.Element, id string) (*model.Element, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

// Walk visits every element depth-first in document order. Returning false
// from fn stops the walk.
func Walk(roots []*model.Element, fn func(e *model.Element) bool) {
	walk(roots, fn)
}

func walk(nodes []*model.Element, fn func(e *model.Element) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !walk(n.Children, fn) {
			return false
		}
	}
	return true
}
