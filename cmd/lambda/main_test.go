package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/json-to-c4/c4gen/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arch = `{
  "nodes": [
    {"name": "Billing", "type": "domain", "nodes": [
      {"name": "Invoices", "type": "application", "technology": "Java"}
    ]}
  ],
  "links": [{"from": "Billing", "to": "Billing.Invoices", "description": "owns"}]
}`

func decode(t *testing.T, resp APIGatewayResponse) LambdaResponse {
	t.Helper()
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	var out LambdaResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &out))
	assert.Equal(t, resp.StatusCode, out.StatusCode)
	return out
}

func TestHandler(t *testing.T) {
	include := true
	tests := []struct {
		name        string
		event       LambdaEvent
		wantStatus  int
		wantDiagram string
		wantErrType string
	}{
		{
			name:        "relations only",
			event:       LambdaEvent{Body: arch, Focal: "Billing"},
			wantStatus:  http.StatusOK,
			wantDiagram: "C4Context\nRel(Billing,Billing.Invoices,\"owns\",\"undefined\")",
		},
		{
			name:       "base64 with elements",
			event:      LambdaEvent{Body: base64.StdEncoding.EncodeToString([]byte(arch)), IsBase64: true, Focal: "Billing.Invoices", IncludeElements: &include},
			wantStatus: http.StatusOK,
			wantDiagram: "C4Context\n" +
				"Container(Billing.Invoices, \"Invoices\", \"Java\", \"undefined\")\n" +
				"System(Billing, \"Billing\", \"undefined\")\n" +
				"Rel(Billing,Billing.Invoices,\"owns\",\"undefined\")",
		},
		{
			name:        "yaml",
			event:       LambdaEvent{Body: "nodes:\n  - name: Ops\n    type: team\n", Format: "yaml", Focal: "Ops"},
			wantStatus:  http.StatusOK,
			wantDiagram: "C4Context",
		},
		{
			name:        "missing focal",
			event:       LambdaEvent{Body: arch},
			wantStatus:  http.StatusBadRequest,
			wantErrType: "invalid_input",
		},
		{
			name:        "bad base64",
			event:       LambdaEvent{Body: "%%%", IsBase64: true, Focal: "Billing"},
			wantStatus:  http.StatusBadRequest,
			wantErrType: "invalid_input",
		},
		{
			name:        "malformed json",
			event:       LambdaEvent{Body: "{", Focal: "Billing"},
			wantStatus:  http.StatusBadRequest,
			wantErrType: result.TypeParse,
		},
		{
			name:        "unknown focal",
			event:       LambdaEvent{Body: arch, Focal: "Billing.Payments"},
			wantStatus:  http.StatusNotFound,
			wantErrType: result.TypeElementNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := handler(context.Background(), tt.event)
			require.NoError(t, err)
			require.Equal(t, tt.wantStatus, resp.StatusCode, resp.Body)

			out := decode(t, resp)
			if tt.wantErrType == "" {
				assert.True(t, out.Success)
				assert.Equal(t, tt.wantDiagram, out.Diagram)
				return
			}
			assert.False(t, out.Success)
			require.Len(t, out.Errors, 1)
			assert.Equal(t, tt.wantErrType, out.Errors[0].Type)
		})
	}
}
