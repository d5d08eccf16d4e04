package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	SourceFile   = "file"
	SourceSerial = "serial"
	SourceGPSD   = "gpsd"

	FormatText = "text"
	FormatJSON = "json"
)

type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
}

type InputConfig struct {
	// Source selects where lines come from: "file", "serial" or "gpsd".
	Source string   `yaml:"source"`
	Paths  []string `yaml:"paths"`

	// Device may be empty to auto-detect.
	Device   string `yaml:"device"`
	Baud     int    `yaml:"baud"`
	GPSDAddr string `yaml:"gpsd_addr"`

	// MaxLines stops reading after this many non-blank lines. Live sources
	// never end on their own, so serial and gpsd require it.
	MaxLines int `yaml:"max_lines"`
}

type OutputConfig struct {
	Format  string `yaml:"format"`
	UTM     bool   `yaml:"utm"`
	Summary *bool  `yaml:"summary"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default is the configuration used when no file is given.
func Default() Config {
	cfg, _ := Parse(nil)
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(b)
}

// Parse decodes YAML config bytes, applies defaults and validates the result.
func Parse(b []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.applyDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) applyDefaults() error {
	in := &cfg.Input
	in.Source = strings.ToLower(strings.TrimSpace(in.Source))
	if in.Source == "" {
		in.Source = SourceFile
	}
	switch in.Source {
	case SourceFile:
		if len(in.Paths) == 0 {
			in.Paths = []string{"-"}
		}
		for _, p := range in.Paths {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("input.paths must not contain empty entries")
			}
		}
	case SourceSerial, SourceGPSD:
		if in.MaxLines <= 0 {
			return fmt.Errorf("input.max_lines must be > 0 when input.source is '%s'", in.Source)
		}
	default:
		return fmt.Errorf("input.source must be one of file, serial, gpsd (got %q)", in.Source)
	}
	if in.Baud == 0 {
		in.Baud = 4800
	}
	if in.Baud < 0 {
		return fmt.Errorf("input.baud must be > 0")
	}
	if in.GPSDAddr == "" {
		in.GPSDAddr = "127.0.0.1:2947"
	}
	if in.MaxLines < 0 {
		return fmt.Errorf("input.max_lines must be >= 0")
	}

	out := &cfg.Output
	out.Format = strings.ToLower(strings.TrimSpace(out.Format))
	if out.Format == "" {
		out.Format = FormatText
	}
	if out.Format != FormatText && out.Format != FormatJSON {
		return fmt.Errorf("output.format must be 'text' or 'json' (got %q)", out.Format)
	}
	if out.Summary == nil {
		v := true
		out.Summary = &v
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error (got %q)", cfg.Log.Level)
	}
	return nil
}

// Validate re-applies defaults and checks cfg after command-line overrides.
func (cfg *Config) Validate() error {
	return cfg.applyDefaults()
}

// ShowSummary reports whether the route summary should be printed.
func (o OutputConfig) ShowSummary() bool {
	return o.Summary == nil || *o.Summary
}
