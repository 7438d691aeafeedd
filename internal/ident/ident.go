// Package ident derives hierarchical element identifiers from element names.
//
// An identifier is the sanitized element name, prefixed by the parent's
// identifier and a dot when the element is nested:
//
//	Shop            -> "Shop"
//	Shop / Cart API -> "Shop.CartAPI"
package ident

import (
	"regexp"
	"strings"

	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/model"
)

// stripped matches one run of characters that never appear in an identifier segment.
// Whitespace includes \v and every Unicode space separator (NBSP, EM SPACE, ...).
var stripped = regexp.MustCompile(`[\s\v\p{Z}.,!?/\\:;*$%#"'&()=]+`)

// identifierGrammar is the syntax every relation endpoint must satisfy.
var identifierGrammar = regexp.MustCompile(`^[a-zA-Z0-9]+(\.[a-zA-Z0-9]+)*$`)

// Sanitizer turns an element name into an identifier segment.
type Sanitizer func(name string) string

// Sanitize removes every run of stripped characters from name.
func Sanitize(name string) string {
	return stripped.ReplaceAllString(name, "")
}

// SanitizeFirstRun removes only the first run of stripped characters, so
// "My Cart API" becomes "MyCart API". Kept for documents whose links were
// written against identifiers produced that way.
func SanitizeFirstRun(name string) string {
	loc := stripped.FindStringIndex(name)
	if loc == nil {
		return name
	}
	return name[:loc[0]] + name[loc[1]:]
}

// Valid reports whether id matches the identifier grammar: one or more
// alphanumeric segments joined by single dots.
func Valid(id string) bool {
	return identifierGrammar.MatchString(id)
}

// Join appends a segment to a parent identifier.
func Join(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// LastSegment returns the part of id after the final dot.
func LastSegment(id string) string {
	if i := strings.LastIndex(id, "."); i >= 0 {
		return id[i+1:]
	}
	return id
}

// Assign builds identified elements for nodes and all their descendants.
// Caller-supplied node IDs are ignored; the input is not modified.
// Node types are expected to be validated already; an unknown literal
// falls back to the zero Type.
func Assign(nodes []diagram.Node, prefix string, sanitize Sanitizer) []*model.Element {
	if sanitize == nil {
		sanitize = Sanitize
	}
	out := make([]*model.Element, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		id := Join(prefix, sanitize(n.Name))
		typ, _ := model.ParseType(n.Type)
		out = append(out, &model.Element{
			ID:          id,
			Name:        n.Name,
			Type:        typ,
			Description: n.Description,
			Technology:  n.Technology,
			Deployment:  n.Deployment,
			Children:    Assign(n.Nodes, id, sanitize),
		})
	}
	return out
}
