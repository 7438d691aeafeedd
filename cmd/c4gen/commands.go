package main

import (
	"errors"
	"log/slog"

	"github.com/json-to-c4/c4gen/internal/config"
	"github.com/json-to-c4/c4gen/internal/graph"
	"github.com/json-to-c4/c4gen/internal/logger"
	"github.com/spf13/cobra"
)

// errReported means the failure was already written to stdout as JSON.
var errReported = errors.New("failure already reported")

type app struct {
	configPath string
	logLevel   string
	format     string

	cfg *config.Config
	log *slog.Logger
}

type graphFlags struct {
	legacySanitize  bool
	allowDuplicates bool
	includeElements bool
}

func registerGraphFlags(cmd *cobra.Command, withElements bool) *graphFlags {
	p := &graphFlags{}
	cmd.Flags().BoolVar(&p.legacySanitize, "legacy-sanitize", false, "Strip only the first run of punctuation from names")
	cmd.Flags().BoolVar(&p.allowDuplicates, "allow-duplicates", false, "Accept sibling elements with the same identifier (first match wins)")
	if withElements {
		cmd.Flags().BoolVar(&p.includeElements, "include-elements", false, "Emit element lines before the relations")
	}
	return p
}

// options merges the flags over the config file; flags can only switch behaviour on.
func (f *graphFlags) options(cfg *config.Config) graph.Options {
	opts := cfg.Graph.Options()
	opts.LegacySanitize = opts.LegacySanitize || f.legacySanitize
	opts.AllowDuplicateIDs = opts.AllowDuplicateIDs || f.allowDuplicates
	opts.IncludeElements = opts.IncludeElements || f.includeElements
	return opts
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "c4gen",
		Short: "Derive identifiers and C4 diagrams from an architecture description",
		Long: `c4gen reads a JSON or YAML description of an organisation's architecture,
assigns every element a hierarchical identifier, validates the relations
between elements and renders C4 diagrams focused on a single element.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "Path to the c4gen config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.format, "format", "", "Input format (json, yaml); default from the file extension")

	root.AddCommand(
		a.diagramCmd(),
		a.validateCmd(),
		a.idsCmd(),
		a.exportCmd(),
		a.serveCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if cmd.Flags().Changed("config") {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.LoadOptional(a.configPath)
	}
	if err != nil {
		return err
	}
	level := a.logLevel
	if level == "" {
		level = a.cfg.GetLogLevel()
	}
	a.log = logger.New(level)
	return nil
}

func (a *app) diagramCmd() *cobra.Command {
	var (
		file    string
		focal   string
		jsonOut bool
		watch   bool
	)
	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Render the C4 diagram of one focal element",
		Example: `  c4gen diagram -f architecture.yaml --focal Shop.CartAPI
  c4gen diagram -f architecture.json --focal Shop --include-elements --watch`,
		Args: cobra.NoArgs,
	}
	gf := registerGraphFlags(cmd, true)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Architecture file (- for stdin)")
	cmd.Flags().StringVar(&focal, "focal", "", "Identifier of the focal element")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write the result as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-render whenever the file changes")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("focal")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		render := func() error {
			return a.runDiagram(cmd, file, focal, gf.options(a.cfg), jsonOut)
		}
		if !watch {
			return render()
		}
		if file == "-" {
			return errors.New("--watch needs a file, not stdin")
		}
		if err := render(); err != nil && !errors.Is(err, errReported) {
			a.log.Warn("render failed", "file", file, "error", err)
		}
		return watchFile(cmd.Context(), a.log, file, func() {
			if err := render(); err != nil && !errors.Is(err, errReported) {
				a.log.Warn("render failed", "file", file, "error", err)
			}
		})
	}
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var (
		file    string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an architecture file and report its size",
		Args:  cobra.NoArgs,
	}
	gf := registerGraphFlags(cmd, false)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Architecture file (- for stdin)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Write the result as JSON")
	_ = cmd.MarkFlagRequired("file")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runValidate(cmd, file, gf.options(a.cfg), jsonOut)
	}
	return cmd
}

func (a *app) idsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "List every element identifier with its type and name",
		Args:  cobra.NoArgs,
	}
	gf := registerGraphFlags(cmd, false)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Architecture file (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runIDs(cmd, file, gf.options(a.cfg))
	}
	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the identified architecture to another format",
	}

	var (
		hclFile string
		output  string
	)
	hclCmd := &cobra.Command{
		Use:   "hcl",
		Short: "Write the identified architecture as HCL",
		Args:  cobra.NoArgs,
	}
	hclFlags := registerGraphFlags(hclCmd, false)
	hclCmd.Flags().StringVarP(&hclFile, "file", "f", "", "Architecture file (- for stdin)")
	hclCmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	_ = hclCmd.MarkFlagRequired("file")
	hclCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runExportHCL(cmd, hclFile, output, hclFlags.options(a.cfg))
	}

	var (
		neoFile string
		neo     neo4jFlags
	)
	neoCmd := &cobra.Command{
		Use:   "neo4j",
		Short: "Write the identified architecture into a Neo4j database",
		Args:  cobra.NoArgs,
	}
	neoGraphFlags := registerGraphFlags(neoCmd, false)
	neoCmd.Flags().StringVarP(&neoFile, "file", "f", "", "Architecture file (- for stdin)")
	neoCmd.Flags().StringVar(&neo.uri, "uri", "", "Neo4j URI (default from config or neo4j://localhost:7687)")
	neoCmd.Flags().StringVar(&neo.username, "username", "", "Neo4j user")
	neoCmd.Flags().StringVar(&neo.password, "password", "", "Neo4j password")
	neoCmd.Flags().StringVar(&neo.database, "database", "", "Neo4j database (default neo4j)")
	_ = neoCmd.MarkFlagRequired("file")
	neoCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runExportNeo4j(cmd, neoFile, neo, neoGraphFlags.options(a.cfg))
	}

	cmd.AddCommand(hclCmd, neoCmd)
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the diagram API over HTTP",
		Args:  cobra.NoArgs,
	}
	gf := registerGraphFlags(cmd, true)
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config or :8080)")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return a.runServe(cmd, addr, gf.options(a.cfg))
	}
	return cmd
}
