package c4

import (
	"strings"
)

// Builder collects element and relation lines for one C4 document.
type Builder struct {
	elements  []string
	relations []string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddElement appends an element line.
func (b *Builder) AddElement(line string) {
	if line == "" {
		return
	}
	b.elements = append(b.elements, line)
}

// AddRelation appends a relation line.
func (b *Builder) AddRelation(line string) {
	if line == "" {
		return
	}
	b.relations = append(b.relations, line)
}

// Build returns the header followed by element lines and relation lines, newline-joined.
func (b *Builder) Build() string {
	lines := make([]string, 0, 1+len(b.elements)+len(b.relations))
	lines = append(lines, Header)
	lines = append(lines, b.elements...)
	lines = append(lines, b.relations...)
	return strings.Join(lines, "\n")
}
