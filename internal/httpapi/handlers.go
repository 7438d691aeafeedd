package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/result"
)

// DiagramRequest is the body of POST /v1/diagrams.
type DiagramRequest struct {
	Architecture    json.RawMessage `json:"architecture" binding:"required"`
	Focal           string          `json:"focal" binding:"required"`
	IncludeElements bool            `json:"include_elements,omitempty"`
}

// ErrorResponse is returned when the request itself is malformed.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// Handlers serves the diagram API. Every request builds its own graph;
// nothing is shared between requests except configuration.
type Handlers struct {
	log          *slog.Logger
	opts         graph.Options
	metrics      *Metrics
	maxBodyBytes int64
}

// NewHandlers creates Handlers building graphs with opts.
func NewHandlers(log *slog.Logger, opts graph.Options, metrics *Metrics, maxBodyBytes int64) *Handlers {
	return &Handlers{log: log, opts: opts, metrics: metrics, maxBodyBytes: maxBodyBytes}
}

// HandleDiagram renders the diagram of one focal element.
// The diagram is returned as text/plain unless the client asks for JSON.
func (h *Handlers) HandleDiagram(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	var req DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.record("diagrams", "client_error", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	opts := h.opts
	opts.IncludeElements = opts.IncludeElements || req.IncludeElements

	g, err := h.build(c, req.Architecture, diagram.FormatJSON, opts)
	if err == nil {
		var text string
		text, err = g.DiagramContext(c.Request.Context(), req.Focal)
		if err == nil {
			h.metrics.record("diagrams", "success", time.Since(start).Seconds())
			if wantsJSON(c) {
				c.JSON(http.StatusOK, result.DiagramResult{Success: true, Focal: req.Focal, Diagram: text})
				return
			}
			c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
			return
		}
	}

	h.fail(c, "diagrams", start, err)
	c.JSON(result.StatusCode(err), result.DiagramResult{
		Focal:  req.Focal,
		Errors: []result.Error{result.FromError(err)},
	})
}

// HandleValidate builds the posted document and lists its identifiers.
// The body is the architecture itself, JSON or YAML by Content-Type.
func (h *Handlers) HandleValidate(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.metrics.record("validate", "client_error", time.Since(start).Seconds())
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: "invalid_request"})
		return
	}

	g, err := h.build(c, data, formatFromContentType(c.ContentType()), h.opts)
	if err != nil {
		h.fail(c, "validate", start, err)
		c.JSON(result.StatusCode(err), result.ValidateResult{Errors: []result.Error{result.FromError(err)}})
		return
	}
	h.metrics.record("validate", "success", time.Since(start).Seconds())
	c.JSON(http.StatusOK, result.ValidateResult{
		Success:   true,
		Elements:  result.Elements(g),
		Relations: len(g.Relations()),
	})
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handlers) build(c *gin.Context, data []byte, format diagram.Format, opts graph.Options) (*graph.Graph, error) {
	d, err := diagram.Decode(data, format)
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(c.Request.Context(), d, opts)
	if err != nil {
		return nil, err
	}
	h.metrics.GraphElements.Observe(float64(g.Len()))
	return g, nil
}

func (h *Handlers) fail(c *gin.Context, endpoint string, start time.Time, err error) {
	status := "error"
	if result.IsClientError(err) {
		status = "client_error"
	}
	h.metrics.record(endpoint, status, time.Since(start).Seconds())

	attrs := []any{"endpoint", endpoint, "request_id", c.GetString(requestIDKey), "error", err}
	if status == "error" {
		h.log.Error("request failed", attrs...)
		return
	}
	h.log.Info("request rejected", attrs...)
}

func wantsJSON(c *gin.Context) bool {
	return c.Query("format") == "json" || strings.Contains(c.GetHeader("Accept"), "application/json")
}

func formatFromContentType(ct string) diagram.Format {
	switch ct {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return diagram.FormatYAML
	default:
		return diagram.FormatJSON
	}
}
