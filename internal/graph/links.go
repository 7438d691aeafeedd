package graph

import (
	"fmt"

	"github.com/json-to-c4/c4gen/internal/ident"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/json-to-c4/c4gen/internal/resolver"
)

// validateLinks checks each relation's from, then to, in input order and
// returns the first violation.
func validateLinks(roots []*model.Element, relations []model.Relation) error {
	for i, r := range relations {
		for _, end := range []struct {
			field string
			id    string
		}{
			{"from", r.From},
			{"to", r.To},
		} {
			field := fmt.Sprintf("links[%d].%s", i, end.field)
			if !ident.Valid(end.id) {
				return &InvalidIdentifierError{Field: field, Identifier: end.id}
			}
			if _, ok := resolver.Resolve(roots, end.id); !ok {
				return &DanglingReferenceError{Field: field, Identifier: end.id}
			}
		}
	}
	return nil
}
