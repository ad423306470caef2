package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yndnr/securetoken-go/pkg/securetoken"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Encodings accepted for token output.
var Encodings = []string{"base64", "hex"}

// OutputFormats accepted by --output.
var OutputFormats = []string{"table", "json", "yaml"}

// Config is the tokgen configuration.
type Config struct {
	Token   TokenConfig   `koanf:"token" yaml:"token" json:"token"`
	Issue   IssueConfig   `koanf:"issue" yaml:"issue" json:"issue"`
	Log     LogConfig     `koanf:"log" yaml:"log" json:"log"`
	Output  string        `koanf:"output" yaml:"output" json:"output"`
	Metrics MetricsConfig `koanf:"metrics" yaml:"metrics" json:"metrics"`
}

// TokenConfig selects the generated token shape.
type TokenConfig struct {
	Size     int    `koanf:"size" yaml:"size" json:"size"`
	Encoding string `koanf:"encoding" yaml:"encoding" json:"encoding"`
}

// IssueConfig controls batch issuance.
type IssueConfig struct {
	Count int `koanf:"count" yaml:"count" json:"count"`
	// Rate is tokens per second; zero disables limiting.
	Rate  float64 `koanf:"rate" yaml:"rate" json:"rate"`
	Burst int     `koanf:"burst" yaml:"burst" json:"burst"`
	// Limit caps the number of tokens in one batch.
	Limit int `koanf:"limit" yaml:"limit" json:"limit"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" json:"level"`
	Format string `koanf:"format" yaml:"format" json:"format"`
}

// MetricsConfig configures the Prometheus textfile export.
type MetricsConfig struct {
	File string `koanf:"file" yaml:"file" json:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Token: TokenConfig{
			Size:     securetoken.DefaultSize,
			Encoding: "base64",
		},
		Issue: IssueConfig{
			Count: 1,
			Burst: 1,
			Limit: 10000,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Output: "table",
	}
}

// defaultMap mirrors Default for the loader's lowest layer.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"token.size":     d.Token.Size,
		"token.encoding": d.Token.Encoding,
		"issue.count":    d.Issue.Count,
		"issue.rate":     d.Issue.Rate,
		"issue.burst":    d.Issue.Burst,
		"issue.limit":    d.Issue.Limit,
		"log.level":      d.Log.Level,
		"log.format":     d.Log.Format,
		"output":         d.Output,
		"metrics.file":   d.Metrics.File,
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if !slices.Contains(securetoken.Sizes, c.Token.Size) {
		return fmt.Errorf("%w: token.size %d (want one of %v)", ErrInvalid, c.Token.Size, securetoken.Sizes)
	}
	if !slices.Contains(Encodings, c.Token.Encoding) {
		return fmt.Errorf("%w: token.encoding %q (want one of %v)", ErrInvalid, c.Token.Encoding, Encodings)
	}
	if c.Issue.Limit < 1 {
		return fmt.Errorf("%w: issue.limit must be positive", ErrInvalid)
	}
	if c.Issue.Count < 1 || c.Issue.Count > c.Issue.Limit {
		return fmt.Errorf("%w: issue.count %d (want 1..%d)", ErrInvalid, c.Issue.Count, c.Issue.Limit)
	}
	if c.Issue.Rate < 0 {
		return fmt.Errorf("%w: issue.rate must not be negative", ErrInvalid)
	}
	if c.Issue.Rate > 0 && c.Issue.Burst < 1 {
		return fmt.Errorf("%w: issue.burst must be positive when rate is set", ErrInvalid)
	}
	if !slices.Contains(OutputFormats, c.Output) {
		return fmt.Errorf("%w: output %q (want one of %v)", ErrInvalid, c.Output, OutputFormats)
	}
	return nil
}
