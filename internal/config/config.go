package config

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/vango-dev/ember/internal/errors"
)

const (
	// TOMLFileName is the preferred configuration file name.
	TOMLFileName = "ember.toml"

	// JSONFileName is the alternative configuration file name.
	JSONFileName = "ember.json"

	// DefaultPreviewAddr is the default preview server address.
	DefaultPreviewAddr = "localhost:7070"

	// DefaultMetricsNamespace prefixes every exported metric.
	DefaultMetricsNamespace = "ember"

	// DefaultTracerName is the instrumentation scope of emitted spans.
	DefaultTracerName = "github.com/vango-dev/ember"

	// DefaultLogLevel is the default slog level.
	DefaultLogLevel = "info"

	// DefaultDemo is the demo rendered when none is named.
	DefaultDemo = "todo"

	// DefaultContentType is the content type of exported snapshots.
	DefaultContentType = "text/html; charset=utf-8"
)

// Config is the complete ember configuration.
type Config struct {
	// Name is the project name, used as the preview page title fallback.
	Name string `json:"name,omitempty" toml:"name"`

	// Demo names the app rendered by the CLI.
	Demo string `json:"demo,omitempty" toml:"demo"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty" toml:"log_level"`

	Preview PreviewConfig `json:"preview" toml:"preview"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics"`
	Tracing TracingConfig `json:"tracing" toml:"tracing"`
	Export  ExportConfig  `json:"export" toml:"export"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig configures the live preview server.
type PreviewConfig struct {
	// Addr is the listen address in host:port form.
	Addr string `json:"addr,omitempty" toml:"addr"`

	// Title is the HTML page title.
	Title string `json:"title,omitempty" toml:"title"`
}

// MetricsConfig configures Prometheus instrumentation.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled,omitempty" toml:"enabled"`
	Namespace string `json:"namespace,omitempty" toml:"namespace"`
}

// TracingConfig configures OpenTelemetry spans.
type TracingConfig struct {
	Enabled    bool   `json:"enabled,omitempty" toml:"enabled"`
	TracerName string `json:"tracer,omitempty" toml:"tracer"`
}

// ExportConfig configures where rendered snapshots are written.
type ExportConfig struct {
	// Target is a file path, file://path or s3://bucket/key. Empty means
	// standard output.
	Target string `json:"target,omitempty" toml:"target"`

	// Region is the AWS region for s3 targets.
	Region string `json:"region,omitempty" toml:"region"`

	// ContentType is stored with uploaded snapshots.
	ContentType string `json:"contentType,omitempty" toml:"content_type"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Demo:     DefaultDemo,
		LogLevel: DefaultLogLevel,
		Preview: PreviewConfig{
			Addr: DefaultPreviewAddr,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: DefaultMetricsNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		Export: ExportConfig{
			ContentType: DefaultContentType,
		},
	}
}

// Load reads the configuration in dir. ember.toml is preferred over
// ember.json; when neither exists the defaults are returned.
func Load(dir string) (*Config, error) {
	for _, name := range []string{TOMLFileName, JSONFileName} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format follows the file
// extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E022").
			WithDetail("Could not read " + path + ".").
			Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = decodeTOML(path, data, cfg)
	default:
		err = decodeJSON(path, data, cfg)
	}
	if err != nil {
		return nil, err
	}

	cfg.configPath = path
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		ee := errors.New("E020").
			WithDetail("Failed to parse " + filepath.Base(path) + ".").
			WithSuggestion("Check that the file is valid TOML").
			Wrap(err)
		var perr toml.ParseError
		if stderrors.As(err, &perr) {
			ee.WithLocation(path, perr.Position.Line, 0)
		}
		return ee
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New("E021").
			WithDetail("Unknown keys in " + filepath.Base(path) + ": " + strings.Join(keys, ", ") + ".").
			WithSuggestion("Remove the keys or check their spelling")
	}
	return nil
}

func decodeJSON(path string, data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		ee := errors.New("E020").
			WithDetail("Failed to parse " + filepath.Base(path) + ".").
			WithSuggestion("Check that the file is valid JSON").
			Wrap(err)
		var serr *json.SyntaxError
		if stderrors.As(err, &serr) {
			line, col := position(data, serr.Offset)
			ee.WithLocation(path, line, col)
		}
		return ee
	}
	return nil
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	line, col = 1, 1
	for i := int64(0); i < offset && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

// SaveTo writes the configuration as TOML or JSON depending on the
// extension of path.
func (c *Config) SaveTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("E022").Wrap(err)
	}
	defer f.Close()

	if err := c.Encode(f, strings.ToLower(filepath.Ext(path)) == ".toml"); err != nil {
		return errors.New("E022").Wrap(err)
	}
	c.configPath = path
	return nil
}

// Encode writes the configuration to w as TOML when asTOML is set,
// otherwise as indented JSON.
func (c *Config) Encode(w io.Writer, asTOML bool) error {
	if asTOML {
		return toml.NewEncoder(w).Encode(c)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Demo == "" {
		c.Demo = DefaultDemo
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = DefaultPreviewAddr
	}
	if c.Preview.Title == "" {
		c.Preview.Title = c.Name
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultMetricsNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
	if c.Export.ContentType == "" {
		c.Export.ContentType = DefaultContentType
	}
}

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return invalid("log level", err.Error(), "Use one of debug, info, warn, error")
	}
	if _, _, err := net.SplitHostPort(c.Preview.Addr); err != nil {
		return invalid("preview.addr", err.Error(), "Use host:port, e.g. localhost:7070")
	}
	if !metricName.MatchString(c.Metrics.Namespace) {
		return invalid("metrics.namespace", fmt.Sprintf("%q is not a valid metric name prefix", c.Metrics.Namespace),
			"Use letters, digits and underscores")
	}
	if c.Export.Target != "" {
		if _, err := ParseTarget(c.Export.Target); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, detail, suggestion string) *errors.EmberError {
	return errors.New("E021").
		WithDetail("Invalid " + field + ": " + detail + ".").
		WithSuggestion(suggestion)
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown level %q", name)
	}
	return level, nil
}

// Logger builds a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Target is a parsed export destination.
type Target struct {
	// Scheme is "file", "s3" or "" for standard output.
	Scheme string
	Path   string
	Bucket string
	Key    string
}

// ParseTarget parses an export target: "-" or "" for standard output, a
// file path, file://path or s3://bucket/key.
func ParseTarget(s string) (Target, error) {
	switch {
	case s == "" || s == "-":
		return Target{}, nil
	case strings.HasPrefix(s, "s3://"):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(s, "s3://"), "/")
		if !ok || bucket == "" || key == "" {
			return Target{}, errors.New("E040").
				WithDetail(fmt.Sprintf("%q must name both a bucket and a key.", s)).
				WithSuggestion("Use s3://bucket/path/to/snapshot.html")
		}
		return Target{Scheme: "s3", Bucket: bucket, Key: key}, nil
	case strings.HasPrefix(s, "file://"):
		path := strings.TrimPrefix(s, "file://")
		if path == "" {
			return Target{}, errors.New("E040").WithDetail("file:// target has no path.")
		}
		return Target{Scheme: "file", Path: path}, nil
	case strings.Contains(s, "://"):
		return Target{}, errors.New("E040").
			WithDetail(fmt.Sprintf("Unsupported scheme in %q.", s))
	}
	return Target{Scheme: "file", Path: s}, nil
}
