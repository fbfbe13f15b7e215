package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"cookie4/internal/util"
)

// File mirrors the HCL config file; every block is optional
type File struct {
	Server  *ServerBlock  `hcl:"server,block"`
	Board   *BoardBlock   `hcl:"board,block"`
	Log     *LogBlock     `hcl:"log,block"`
	Metrics *MetricsBlock `hcl:"metrics,block"`
}

type ServerBlock struct {
	Address         string `hcl:"address,optional"`
	ShutdownTimeout string `hcl:"shutdown_timeout,optional"`
}

type BoardBlock struct {
	Seed *int64 `hcl:"seed,optional"`
}

type LogBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type MetricsBlock struct {
	Enabled   *bool  `hcl:"enabled,optional"`
	Namespace string `hcl:"namespace,optional"`
}

// Config is the resolved server configuration
type Config struct {
	Address          string
	ShutdownTimeout  time.Duration
	Seed             uint64
	LogLevel         string
	LogFormat        string
	MetricsEnabled   bool
	MetricsNamespace string
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		Address:          ":8000",
		ShutdownTimeout:  5 * time.Second,
		Seed:             util.DefaultSeed,
		LogLevel:         "info",
		LogFormat:        "text",
		MetricsEnabled:   true,
		MetricsNamespace: "cookie4",
	}
}

// Load reads the HCL file at path, returning defaults when it does not exist
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source and fills in defaults for anything unset
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if f.Server != nil {
		if f.Server.Address != "" {
			cfg.Address = f.Server.Address
		}
		if f.Server.ShutdownTimeout != "" {
			d, err := time.ParseDuration(f.Server.ShutdownTimeout)
			if err != nil {
				return Config{}, fmt.Errorf("server.shutdown_timeout: %w", err)
			}
			cfg.ShutdownTimeout = d
		}
	}
	if f.Board != nil && f.Board.Seed != nil {
		if *f.Board.Seed < 0 {
			return Config{}, fmt.Errorf("board.seed: must not be negative, got %d", *f.Board.Seed)
		}
		cfg.Seed = uint64(*f.Board.Seed)
	}
	if f.Log != nil {
		if f.Log.Level != "" {
			cfg.LogLevel = f.Log.Level
		}
		if f.Log.Format != "" {
			cfg.LogFormat = f.Log.Format
		}
	}
	if f.Metrics != nil {
		if f.Metrics.Enabled != nil {
			cfg.MetricsEnabled = *f.Metrics.Enabled
		}
		if f.Metrics.Namespace != "" {
			cfg.MetricsNamespace = f.Metrics.Namespace
		}
	}
	return cfg, cfg.Validate()
}

// Validate checks values the decoder cannot
func (c Config) Validate() error {
	if c.Address == "" {
		return errors.New("server address is empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if _, err := c.Formatter(); err != nil {
		return err
	}
	return nil
}

// Formatter maps the configured log format to a charm formatter
func (c Config) Formatter() (log.Formatter, error) {
	switch c.LogFormat {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	}
	return log.TextFormatter, fmt.Errorf("unknown log format %q", c.LogFormat)
}
