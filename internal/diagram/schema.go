package diagram

// Diagram is the root structure of an architecture description (JSON or YAML).
type Diagram struct {
	Nodes []Node `json:"nodes" yaml:"nodes" validate:"required,dive"`
	Links []Link `json:"links,omitempty" yaml:"links,omitempty" validate:"omitempty,dive"`
}

// Node is a single element of the containment tree as supplied by the caller.
// ID is accepted for compatibility but always replaced by the computed identifier.
// Name is not checked here: a name without identifier characters, empty
// included, is rejected when identifiers are assigned.
type Node struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string  `json:"name" yaml:"name"`
	Type        string  `json:"type" yaml:"type" validate:"required,elementtype"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Technology  *string `json:"technology,omitempty" yaml:"technology,omitempty"`
	Deployment  *string `json:"deployment,omitempty" yaml:"deployment,omitempty"`
	Nodes       []Node  `json:"nodes,omitempty" yaml:"nodes,omitempty" validate:"omitempty,dive"`
}

// Link is a relation between two nodes, referenced by computed identifier.
// Endpoint syntax, empty included, is checked by the link validator.
type Link struct {
	From        string  `json:"from" yaml:"from"`
	To          string  `json:"to" yaml:"to"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Technology  *string `json:"technology,omitempty" yaml:"technology,omitempty"`
}
