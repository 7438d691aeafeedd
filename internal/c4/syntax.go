package c4

import (
	"fmt"

	"github.com/json-to-c4/c4gen/internal/ident"
	"github.com/json-to-c4/c4gen/internal/model"
)

// Header is the first line of every emitted document.
const Header = "C4Context"

// Undefined is written in place of an absent optional value.
const Undefined = "undefined"

// Optional returns the value behind p, or Undefined when p is nil.
func Optional(p *string) string {
	if p == nil {
		return Undefined
	}
	return *p
}

// DisplayName is the element name, or the last identifier segment when the name is empty.
func DisplayName(e *model.Element) string {
	if e.Name != "" {
		return e.Name
	}
	return ident.LastSegment(e.ID)
}

// TechnologyLabel combines technology and deployment into "technology/deployment",
// falling back to whichever one is present, or "".
func TechnologyLabel(technology, deployment *string) string {
	tech, dep := model.Str(technology), model.Str(deployment)
	switch {
	case tech != "" && dep != "":
		return tech + "/" + dep
	case dep != "":
		return dep
	default:
		return tech
	}
}

// ContainerLine renders Container<suffix>(id, "name", "technology", "description").
func ContainerLine(suffix, id, name, technology, description string) string {
	return fmt.Sprintf(`Container%s(%s, "%s", "%s", "%s")`, suffix, id, name, technology, description)
}

// SystemLine renders System(id, "name", "description").
func SystemLine(id, name, description string) string {
	return fmt.Sprintf(`System(%s, "%s", "%s")`, id, name, description)
}

// RelLine renders Rel(from,to,"description","technology").
func RelLine(r model.Relation) string {
	return fmt.Sprintf(`Rel(%s,%s,"%s","%s")`, r.From, r.To, Optional(r.Description), Optional(r.Technology))
}
