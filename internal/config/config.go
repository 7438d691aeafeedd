// Package config loads the optional c4gen.yaml configuration file.
package config

import (
	"fmt"
	"os"

	"github.com/json-to-c4/c4gen/internal/graph"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file looked up when no --config flag is given.
const DefaultPath = "c4gen.yaml"

// Config is the c4gen.yaml file.
type Config struct {
	LogLevel string        `yaml:"log_level,omitempty"`
	Graph    GraphConfig   `yaml:"graph,omitempty"`
	Server   *ServerConfig `yaml:"server,omitempty"`
	Neo4j    *Neo4jConfig  `yaml:"neo4j,omitempty"`
}

// GraphConfig mirrors graph.Options.
type GraphConfig struct {
	LegacySanitize    bool `yaml:"legacy_sanitize,omitempty"`
	AllowDuplicateIDs bool `yaml:"allow_duplicate_ids,omitempty"`
	IncludeElements   bool `yaml:"include_elements,omitempty"`
}

// ServerConfig configures `c4gen serve`.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string `yaml:"addr,omitempty"`
	// MaxBodyBytes limits request documents. Default: 1 MiB
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
}

// Neo4jConfig configures `c4gen export neo4j`.
type Neo4jConfig struct {
	URI      string `yaml:"uri,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// Options converts the graph section into graph.Options.
func (g GraphConfig) Options() graph.Options {
	opts := graph.DefaultOptions()
	opts.LegacySanitize = g.LegacySanitize
	opts.AllowDuplicateIDs = g.AllowDuplicateIDs
	opts.IncludeElements = g.IncludeElements
	return opts
}

// GetLogLevel returns the configured log level or "info".
func (c *Config) GetLogLevel() string {
	if c == nil || c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}

// GetAddr returns the listen address or the default value.
func (s *ServerConfig) GetAddr() string {
	if s == nil || s.Addr == "" {
		return ":8080"
	}
	return s.Addr
}

// GetMaxBodyBytes returns the request size limit or the default value.
func (s *ServerConfig) GetMaxBodyBytes() int64 {
	if s == nil || s.MaxBodyBytes <= 0 {
		return 1 << 20
	}
	return s.MaxBodyBytes
}

// GetURI returns the Neo4j URI or the default local bolt address.
func (n *Neo4jConfig) GetURI() string {
	if n == nil || n.URI == "" {
		return "neo4j://localhost:7687"
	}
	return n.URI
}

// GetDatabase returns the Neo4j database name or "neo4j".
func (n *Neo4jConfig) GetDatabase() string {
	if n == nil || n.Database == "" {
		return "neo4j"
	}
	return n.Database
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// LoadOptional loads path if it exists and returns an empty Config otherwise.
func LoadOptional(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return Load(path)
}
