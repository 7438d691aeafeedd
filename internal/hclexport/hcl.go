package hclexport

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ElementBlock creates an element "<id>" { } block; body can be filled by the caller.
func ElementBlock(id string) *hclwrite.Block {
	return hclwrite.NewBlock("element", []string{id})
}

// SetAttributeStr sets a string attribute on a block body.
func SetAttributeStr(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

// SetAttributeOptional sets a string attribute when p is present.
func SetAttributeOptional(body *hclwrite.Body, name string, p *string) {
	if p != nil {
		body.SetAttributeValue(name, cty.StringVal(*p))
	}
}

// BlockToBytes formats a block and returns its bytes (with newline).
func BlockToBytes(block *hclwrite.Block) []byte {
	f := hclwrite.NewEmptyFile()
	f.Body().AppendBlock(block)
	return f.Bytes()
}

// refTraversal builds hcl.Traversal for element.<id> (e.g. element.Shop.CartAPI).
func refTraversal(id string) hcl.Traversal {
	t := hcl.Traversal{hcl.TraverseRoot{Name: "element"}}
	for _, seg := range strings.Split(id, ".") {
		t = append(t, hcl.TraverseAttr{Name: seg})
	}
	return t
}

func elementBlock(e *model.Element) *hclwrite.Block {
	block := ElementBlock(e.ID)
	body := block.Body()
	SetAttributeStr(body, "name", e.Name)
	SetAttributeStr(body, "type", e.Type.String())
	SetAttributeOptional(body, "description", e.Description)
	SetAttributeOptional(body, "technology", e.Technology)
	SetAttributeOptional(body, "deployment", e.Deployment)
	for _, c := range e.Children {
		body.AppendNewline()
		body.AppendBlock(elementBlock(c))
	}
	return block
}

func relationBlock(r model.Relation) *hclwrite.Block {
	block := hclwrite.NewBlock("relation", nil)
	body := block.Body()
	body.SetAttributeTraversal("from", refTraversal(r.From))
	body.SetAttributeTraversal("to", refTraversal(r.To))
	SetAttributeOptional(body, "description", r.Description)
	SetAttributeOptional(body, "technology", r.Technology)
	return block
}
