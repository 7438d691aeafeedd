// Package hclexport writes an identified architecture graph as HCL.
//
// Every element becomes a nested element "<id>" block and every relation a
// relation block whose endpoints are element.<id> references.
package hclexport

import (
	"bytes"

	"github.com/json-to-c4/c4gen/internal/graph"
)

// Export renders g as a single HCL document.
func Export(g *graph.Graph) []byte {
	b := NewBuilder()
	for _, root := range g.Roots() {
		b.AddBlock(BlockToBytes(elementBlock(root)))
	}
	for _, r := range g.Relations() {
		b.AddBlock(BlockToBytes(relationBlock(r)))
	}
	return b.Build()
}

// Builder collects formatted top-level blocks.
type Builder struct {
	blocks [][]byte
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddBlock appends a formatted block; empty input is ignored.
func (b *Builder) AddBlock(block []byte) {
	if len(block) == 0 {
		return
	}
	b.blocks = append(b.blocks, block)
}

// Build joins the blocks separated by blank lines.
func (b *Builder) Build() []byte {
	var buf bytes.Buffer
	for i, blk := range b.blocks {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.Write(blk)
	}
	return buf.Bytes()
}
