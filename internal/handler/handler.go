// Package handler provides the C4 renderers for every element type.
// Importing it registers them with registry.Default.
package handler

import (
	"github.com/json-to-c4/c4gen/internal/model"
	"github.com/json-to-c4/c4gen/internal/registry"
)

func init() {
	for _, t := range model.Types {
		if suffix, ok := t.ContainerSuffix(); ok {
			registry.Default.Register(&containerHandler{typ: t, suffix: suffix})
		} else {
			registry.Default.Register(&systemHandler{typ: t})
		}
	}
}
