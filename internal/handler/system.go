package handler

import (
	"github.com/json-to-c4/c4gen/internal/c4"
	"github.com/json-to-c4/c4gen/internal/model"
)

// systemHandler renders organisational elements (organisations down to services).
type systemHandler struct {
	typ model.Type
}

func (h *systemHandler) ElementType() model.Type { return h.typ }

func (h *systemHandler) Render(e *model.Element) string {
	return c4.SystemLine(e.ID, c4.DisplayName(e), c4.Optional(e.Description))
}
