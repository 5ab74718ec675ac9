package config

import (
	"fmt"
	"io"
	"maps"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/ganglion/engine"
	"github.com/hupe1980/ganglion/logging"
)

// Duration is a time.Duration that unmarshals from either a Go duration
// string ("250ms", "1s") or an integer number of milliseconds.
type Duration struct {
	time.Duration
	set bool
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", node.Line)
	}

	if ms, err := strconv.ParseInt(node.Value, 10, 64); err == nil {
		d.Duration = time.Duration(ms) * time.Millisecond
		d.set = true
		return nil
	}

	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid duration %q: %w", node.Line, node.Value, err)
	}
	d.Duration = parsed
	d.set = true

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

// IsSet reports whether the value was present in the document.
func (d Duration) IsSet() bool { return d.set }

// History configures the default history store.
type History struct {
	Capacity int `yaml:"capacity"`
}

// Logging configures the structured logger.
type Logging struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"addSource"`
}

// File is the decoded form of a configuration document.
type File struct {
	CallSlowAsyncActionAfter Duration       `yaml:"callSlowAsyncActionAfter"`
	Context                  map[string]any `yaml:"context"`
	History                  History        `yaml:"history"`
	Logging                  Logging        `yaml:"logging"`
}

// Validate checks values that YAML decoding alone cannot reject.
func (f *File) Validate() error {
	if f.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must not be negative, got %d", f.History.Capacity)
	}
	if _, err := logging.ParseLevel(f.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch f.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", f.Logging.Format)
	}
	return nil
}

// Logger builds the structured logger described by the logging section,
// writing to out.
func (f *File) Logger(out io.Writer) *logging.StructuredLogger {
	cfg := logging.DefaultLoggerConfig()
	cfg.Level, _ = logging.ParseLevel(f.Logging.Level)
	if f.Logging.Format != "" {
		cfg.Format = f.Logging.Format
	}
	cfg.AddSource = f.Logging.AddSource
	if out != nil {
		cfg.Output = out
	}
	return logging.NewLogger(cfg)
}

// Apply layers the file's settings onto o. Keys absent from the document
// leave the corresponding option untouched.
func (f *File) Apply(o *engine.Options) {
	if f.CallSlowAsyncActionAfter.IsSet() {
		o.Config.CallSlowAsyncActionAfter = f.CallSlowAsyncActionAfter.Duration
	}
	if len(f.Context) > 0 {
		merged := maps.Clone(o.Config.Context)
		if merged == nil {
			merged = make(map[string]any, len(f.Context))
		}
		maps.Copy(merged, f.Context)
		o.Config.Context = merged
	}
	if f.History.Capacity > 0 {
		o.Config.HistoryCapacity = f.History.Capacity
	}
}
