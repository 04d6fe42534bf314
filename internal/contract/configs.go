package contract

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/devscope/schema"
)

// Default values for configuration.
const (
	DefaultTimeout    = 30 * time.Second
	MaxTimeout        = 5 * time.Minute
	DefaultPrecision  = 1
	MaxPrecision      = 2
	MaxTopLanguages   = 50
	DefaultWorkers    = 0 // One goroutine per project
	MaxWorkers        = 256
	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "warn"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for devscope.
// This struct is the "final, validated" config.
type Config struct {
	Handle        string // Normalized handle from args or DefaultHandle
	DefaultHandle string

	BaseURL   string
	Token     string // Please use env var as this is plaintext
	Timeout   time.Duration
	UserAgent string

	TopN    int
	Workers int // 0 means one goroutine per project

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	Detail     bool
	Sort       schema.ProjectSort

	ListenAddr     string
	MetricsEnabled bool

	LogLevel  slog.Level
	LogFormat schema.LogFormat

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	HandleStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Token         string `mapstructure:"token"`
	BaseURL       string `mapstructure:"base-url"`
	Timeout       string `mapstructure:"timeout"`
	Top           int    `mapstructure:"top"`
	Workers       int    `mapstructure:"workers"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Precision     int    `mapstructure:"precision"`
	Width         int    `mapstructure:"width"`
	Detail        bool   `mapstructure:"detail"`
	Sort          string `mapstructure:"sort"`
	DefaultHandle string `mapstructure:"default-handle"`
	LogLevel      string `mapstructure:"log-level"`
	LogFormat     string `mapstructure:"log-format"`
	Color         string `mapstructure:"color"`
	Emoji         string `mapstructure:"emoji"`

	// --- Fields from serveCmd.Flags() ---
	Listen  string `mapstructure:"listen"`
	Metrics bool   `mapstructure:"metrics"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// CloneForHandle returns a copy of the Config targeting another handle.
func (c *Config) CloneForHandle(handle string) *Config {
	clone := c.Clone()
	clone.Handle = schema.NormalizeHandle(handle)
	return clone
}

// ExploreRequest builds the pipeline request for the configured handle.
func (c *Config) ExploreRequest() schema.ExploreRequest {
	return schema.ExploreRequest{
		Handle:  c.Handle,
		TopN:    c.TopN,
		Workers: c.Workers,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	if err := processUpstream(cfg, input); err != nil {
		return err
	}
	if err := processLogging(cfg, input); err != nil {
		return err
	}
	processHandle(cfg, input)
	return nil
}

// validateSimpleInputs checks the numeric ranges and boolean strings.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	if input.Top < 1 || input.Top > MaxTopLanguages {
		return fmt.Errorf("top must be between 1 and %d (received %d)", MaxTopLanguages, input.Top)
	}
	cfg.TopN = input.Top

	if input.Workers < 0 || input.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d (received %d)", MaxWorkers, input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width
	cfg.Detail = input.Detail

	if input.Color == "" {
		cfg.UseColors = true
	} else {
		useColors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid color value: %w", err)
		}
		cfg.UseColors = useColors
	}

	if input.Emoji == "" {
		cfg.UseEmojis = true
	} else {
		useEmojis, err := ParseBoolString(input.Emoji)
		if err != nil {
			return fmt.Errorf("invalid emoji value: %w", err)
		}
		cfg.UseEmojis = useEmojis
	}

	cfg.ListenAddr = strings.TrimSpace(input.Listen)
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	cfg.MetricsEnabled = input.Metrics
	return nil
}

// processOutput validates the output format and destination.
func processOutput(cfg *Config, input *ConfigRawInput) error {
	output := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format %q (expected text, csv, json, parquet or html)", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = strings.TrimSpace(input.OutputFile)

	if _, ok := schema.FileOutputModes[output]; ok && cfg.OutputFile == "" {
		return fmt.Errorf("%s output requires --output-file", output)
	}

	sortOrder := schema.ProjectSort(strings.ToLower(strings.TrimSpace(input.Sort)))
	if sortOrder == "" {
		sortOrder = schema.SortUpdated
	}
	if _, ok := schema.ValidProjectSorts[sortOrder]; !ok {
		return fmt.Errorf("invalid sort %q (expected updated or stars)", input.Sort)
	}
	cfg.Sort = sortOrder
	return nil
}

// processUpstream validates the API location, credentials and timeout.
func processUpstream(cfg *Config, input *ConfigRawInput) error {
	baseURL := strings.TrimSpace(input.BaseURL)
	if baseURL == "" {
		baseURL = schema.DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base-url %q: %w", baseURL, err)
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("base-url must be an absolute http or https URL (received %q)", baseURL)
	}
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	cfg.Token = strings.TrimSpace(input.Token)

	timeout := DefaultTimeout
	if s := strings.TrimSpace(input.Timeout); s != "" {
		timeout, err = time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
	}
	if timeout <= 0 || timeout > MaxTimeout {
		return fmt.Errorf("timeout must be greater than 0 and cannot exceed %v (received %v)", MaxTimeout, timeout)
	}
	cfg.Timeout = timeout
	return nil
}

// processLogging parses the log level and format.
func processLogging(cfg *Config, input *ConfigRawInput) error {
	levelStr := strings.TrimSpace(input.LogLevel)
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		return fmt.Errorf("invalid log-level %q (expected debug, info, warn or error)", input.LogLevel)
	}
	cfg.LogLevel = level

	format := schema.LogFormat(strings.ToLower(strings.TrimSpace(input.LogFormat)))
	if format == "" {
		format = schema.TextLog
	}
	if _, ok := schema.ValidLogFormats[format]; !ok {
		return fmt.Errorf("invalid log-format %q (expected text or json)", input.LogFormat)
	}
	cfg.LogFormat = format
	return nil
}

// processHandle resolves the handle from the positional argument or the default.
func processHandle(cfg *Config, input *ConfigRawInput) {
	cfg.DefaultHandle = schema.NormalizeHandle(input.DefaultHandle)
	cfg.Handle = schema.NormalizeHandle(input.HandleStr)
	if cfg.Handle == "" {
		cfg.Handle = cfg.DefaultHandle
	}
}
