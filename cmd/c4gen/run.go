package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/json-to-c4/c4gen/internal/diagram"
	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/hclexport"
	"github.com/json-to-c4/c4gen/internal/httpapi"
	"github.com/json-to-c4/c4gen/internal/neo4jexport"
	"github.com/json-to-c4/c4gen/internal/result"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

type neo4jFlags struct {
	uri      string
	username string
	password string
	database string
}

// readInput reads path, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func (a *app) inputFormat(path string) diagram.Format {
	switch a.format {
	case "yaml", "yml":
		return diagram.FormatYAML
	case "json":
		return diagram.FormatJSON
	}
	return diagram.FormatFromPath(path)
}

func (a *app) loadGraph(cmd *cobra.Command, path string, opts graph.Options) (*graph.Graph, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	d, err := diagram.Decode(data, a.inputFormat(path))
	if err != nil {
		return nil, err
	}
	g, err := graph.Build(cmd.Context(), d, opts)
	if err != nil {
		return nil, err
	}
	a.log.Debug("graph built", "file", path, "elements", g.Len(), "relations", len(g.Relations()))
	return g, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) runDiagram(cmd *cobra.Command, path, focal string, opts graph.Options, jsonOut bool) error {
	out := cmd.OutOrStdout()
	text, err := a.renderDiagram(cmd, path, focal, opts)
	if !jsonOut {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, text)
		return err
	}

	res := result.DiagramResult{Success: err == nil, Focal: focal, Diagram: text}
	if err != nil {
		res.Errors = []result.Error{result.FromError(err)}
	}
	if werr := writeJSON(out, res); werr != nil {
		return werr
	}
	if err != nil {
		return errReported
	}
	return nil
}

func (a *app) renderDiagram(cmd *cobra.Command, path, focal string, opts graph.Options) (string, error) {
	g, err := a.loadGraph(cmd, path, opts)
	if err != nil {
		return "", err
	}
	return g.DiagramContext(cmd.Context(), focal)
}

func (a *app) runValidate(cmd *cobra.Command, path string, opts graph.Options, jsonOut bool) error {
	out := cmd.OutOrStdout()
	g, err := a.loadGraph(cmd, path, opts)
	if !jsonOut {
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "ok: %d elements, %d relations\n", g.Len(), len(g.Relations()))
		return err
	}

	res := result.ValidateResult{Success: err == nil}
	if err != nil {
		res.Errors = []result.Error{result.FromError(err)}
	} else {
		res.Elements = result.Elements(g)
		res.Relations = len(g.Relations())
	}
	if werr := writeJSON(out, res); werr != nil {
		return werr
	}
	if err != nil {
		return errReported
	}
	return nil
}

func (a *app) runIDs(cmd *cobra.Command, path string, opts graph.Options) error {
	g, err := a.loadGraph(cmd, path, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, e := range g.Elements() {
		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", e.ID, e.Type, e.Name); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) runExportHCL(cmd *cobra.Command, path, output string, opts graph.Options) error {
	g, err := a.loadGraph(cmd, path, opts)
	if err != nil {
		return err
	}
	content := hclexport.Export(g)
	if output == "" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}
	if err := os.WriteFile(output, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	a.log.Info("wrote", "path", output)
	return nil
}

func (a *app) runExportNeo4j(cmd *cobra.Command, path string, flags neo4jFlags, opts graph.Options) error {
	g, err := a.loadGraph(cmd, path, opts)
	if err != nil {
		return err
	}

	cfg := a.cfg.Neo4j
	uri, database := cfg.GetURI(), cfg.GetDatabase()
	var username, password string
	if cfg != nil {
		username, password = cfg.Username, cfg.Password
	}
	if flags.uri != "" {
		uri = flags.uri
	}
	if flags.database != "" {
		database = flags.database
	}
	if flags.username != "" {
		username = flags.username
	}
	if flags.password != "" {
		password = flags.password
	}

	ctx := cmd.Context()
	exec, err := neo4jexport.NewNeo4jExecutor(uri, username, password, database)
	if err != nil {
		return err
	}
	defer exec.Close(ctx)
	if err := exec.Verify(ctx); err != nil {
		return fmt.Errorf("connect to %s: %w", uri, err)
	}

	stats, err := neo4jexport.NewExporter(exec).Export(ctx, g)
	if err != nil {
		return err
	}
	a.log.Info("exported", "uri", uri, "database", database,
		"elements", stats.Elements, "contains", stats.Contains, "relations", stats.Relations)
	return nil
}

func (a *app) runServe(cmd *cobra.Command, addr string, opts graph.Options) error {
	if addr == "" {
		addr = a.cfg.Server.GetAddr()
	}
	gin.SetMode(gin.ReleaseMode)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h := httpapi.NewHandlers(a.log, opts, httpapi.NewMetrics(reg), a.cfg.Server.GetMaxBodyBytes())
	return httpapi.Serve(cmd.Context(), a.log, addr, httpapi.NewRouter(a.log, h, reg))
}
