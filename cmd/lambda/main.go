package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/logger"
	"github.com/json-to-c4/c4gen/internal/result"
)

// LambdaEvent is the invocation payload (e.g. from API Gateway).
type LambdaEvent struct {
	Body            string `json:"body"` // architecture JSON or YAML (raw or base64 if isBase64)
	IsBase64        bool   `json:"isBase64,omitempty"`
	Format          string `json:"format,omitempty"` // "json" (default) or "yaml"
	Focal           string `json:"focal"`
	IncludeElements *bool  `json:"includeElements,omitempty"`
}

// LambdaResponse is returned to the client (API Gateway).
type LambdaResponse struct {
	StatusCode int `json:"statusCode"`
	result.DiagramResult
}

// APIGatewayResponse is the shape expected by API Gateway proxy integration (body = JSON string).
type APIGatewayResponse struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       string            `json:"body"`
}

func handler(ctx context.Context, event LambdaEvent) (APIGatewayResponse, error) {
	out := LambdaResponse{StatusCode: http.StatusOK}
	out.Focal = event.Focal

	if event.Focal == "" {
		out.StatusCode = http.StatusBadRequest
		out.Errors = []result.Error{{Type: "invalid_input", Message: "focal is required"}}
		return wrap(out), nil
	}

	body := event.Body
	if event.IsBase64 {
		dec, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			out.StatusCode = http.StatusBadRequest
			out.Errors = []result.Error{{Type: "invalid_input", Message: "invalid base64 body: " + err.Error()}}
			return wrap(out), nil
		}
		body = string(dec)
	}

	format := diagram.FormatJSON
	if event.Format == "yaml" {
		format = diagram.FormatYAML
	}

	opts := graph.DefaultOptions()
	if event.IncludeElements != nil {
		opts.IncludeElements = *event.IncludeElements
	}
	text, err := render(ctx, []byte(body), format, event.Focal, opts)
	if err != nil {
		out.StatusCode = result.StatusCode(err)
		out.Errors = []result.Error{result.FromError(err)}
		if !result.IsClientError(err) {
			logger.Default.Error("diagram failed", "focal", event.Focal, "error", err)
		}
		return wrap(out), nil
	}

	out.Success = true
	out.Diagram = text
	return wrap(out), nil
}

func render(ctx context.Context, data []byte, format diagram.Format, focal string, opts graph.Options) (string, error) {
	d, err := diagram.Decode(data, format)
	if err != nil {
		return "", err
	}
	g, err := graph.Build(ctx, d, opts)
	if err != nil {
		return "", err
	}
	return g.DiagramContext(ctx, focal)
}

func wrap(out LambdaResponse) APIGatewayResponse {
	bodyBytes, _ := json.Marshal(out)
	return APIGatewayResponse{
		StatusCode: out.StatusCode,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(bodyBytes),
	}
}

func main() {
	lambda.Start(handler)
}
