package handler

import (
	"github.com/json-to-c4/c4gen/internal/c4"
	"github.com/json-to-c4/c4gen/internal/model"
)

// containerHandler renders applications, databases and queues, which carry
// technology and deployment detail.
type containerHandler struct {
	typ    model.Type
	suffix string
}

func (h *containerHandler) ElementType() model.Type { return h.typ }

func (h *containerHandler) Render(e *model.Element) string {
	return c4.ContainerLine(
		h.suffix,
		e.ID,
		c4.DisplayName(e),
		c4.TechnologyLabel(e.Technology, e.Deployment),
		c4.Optional(e.Description),
	)
}
