package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pokedeck/internal/engine"
	"github.com/rshade/pokedeck/internal/logging"
	"github.com/rshade/pokedeck/internal/pokeapi"
)

// configFileName is the name of the config file inside the config directory.
const configFileName = "config.yaml"

// Environment variables that override file values.
const (
	EnvHome         = "POKEDECK_HOME"
	EnvAPIBaseURL   = "POKEDECK_API_BASE_URL"
	EnvAPITimeout   = "POKEDECK_API_TIMEOUT"
	EnvBatchSize    = "POKEDECK_BATCH_SIZE"
	EnvMaxID        = "POKEDECK_MAX_ID"
	EnvOutputFormat = "POKEDECK_OUTPUT_FORMAT"
	EnvLogLevel     = "POKEDECK_LOG_LEVEL"
	EnvLogFormat    = "POKEDECK_LOG_FORMAT"
	EnvLogFile      = "POKEDECK_LOG_FILE"
)

// Validation errors.
var (
	ErrInvalidBatchSize    = errors.New("deck.batch_size must be at least 1")
	ErrInvalidMaxID        = errors.New("deck.max_id must be at least deck.batch_size")
	ErrInvalidOutputFormat = errors.New("output.default_format must be table, json or ndjson")
	ErrNegativeTimeout     = errors.New("api.timeout cannot be negative")
	ErrUnknownKey          = errors.New("unknown configuration key")
)

// Config is the full pokedeck configuration.
type Config struct {
	API     APIConfig     `yaml:"api"     json:"api"`
	Deck    DeckConfig    `yaml:"deck"    json:"deck"`
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig points the client at PokéAPI.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"   json:"base_url"`
	Timeout   time.Duration `yaml:"timeout"    json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// DeckConfig holds the batch policy.
type DeckConfig struct {
	BatchSize     int      `yaml:"batch_size"     json:"batch_size"`
	MaxID         int      `yaml:"max_id"         json:"max_id"`
	ExcludedTypes []string `yaml:"excluded_types" json:"excluded_types"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	logFile := ""
	if dir, err := GetConfigDir(); err == nil {
		logFile = filepath.Join(dir, "logs", "pokedeck.log")
	}

	return &Config{
		API: APIConfig{
			BaseURL:   pokeapi.DefaultBaseURL,
			UserAgent: "pokedeck",
		},
		Deck: DeckConfig{
			BatchSize:     engine.DefaultBatchSize,
			MaxID:         engine.DefaultMaxID,
			ExcludedTypes: engine.DefaultExcludedCategories(),
		},
		Output: OutputConfig{
			DefaultFormat: string(engine.OutputTable),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatJSON,
			File:   logFile,
		},
	}
}

// New builds the configuration from defaults, the config file (when it
// exists), and environment overrides. A broken config file is reported on
// stderr and ignored.
func New() *Config {
	cfg := Default()

	if path, err := GetConfigPath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := cfg.LoadFile(path); loadErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: ignoring config file: %v\n", loadErr)
				cfg = Default()
			}
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// LoadFile unmarshals a YAML file on top of the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv applies POKEDECK_* overrides. Unparseable numeric or duration
// values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvAPIBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvAPITimeout); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v, ok := lookupEnv(EnvBatchSize); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Deck.BatchSize = n
		}
	}
	if v, ok := lookupEnv(EnvMaxID); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Deck.MaxID = n
		}
	}
	if v, ok := lookupEnv(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		c.Logging.File = v
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrNegativeTimeout, c.API.Timeout))
	}
	if c.Deck.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, c.Deck.BatchSize))
	} else if c.Deck.MaxID < c.Deck.BatchSize {
		errs = append(errs, fmt.Errorf("%w: max_id %d, batch_size %d",
			ErrInvalidMaxID, c.Deck.MaxID, c.Deck.BatchSize))
	}
	if !engine.IsValidOutputFormat(engine.OutputFormat(c.Output.DefaultFormat)) {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	if err := logging.ValidateLevel(c.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if err := logging.ValidateFormat(c.Logging.Format); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// EngineOptions converts the deck section into engine options.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		BatchSize:          c.Deck.BatchSize,
		MaxID:              c.Deck.MaxID,
		ExcludedCategories: c.Deck.ExcludedTypes,
	}
}

// ClientOptions converts the api section into client options.
func (c *Config) ClientOptions() []pokeapi.Option {
	return []pokeapi.Option{
		pokeapi.WithTimeout(c.API.Timeout),
		pokeapi.WithUserAgent(c.API.UserAgent),
	}
}

// Get returns the value at a dotted key such as "api.base_url".
func (c *Config) Get(key string) (string, error) {
	values, err := c.flatten()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return v, nil
}

// Set assigns a value at a dotted key. The value is resolved the way YAML
// would resolve it, so "10s", "7" and "[unknown, shadow]" all work.
func (c *Config) Set(key, value string) error {
	section, field, ok := strings.Cut(key, ".")
	if !ok || !knownTopLevelKeys[section] {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if _, err := c.Get(key); err != nil {
		return err
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	if strings.HasPrefix(strings.TrimSpace(value), "[") {
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(value), &doc); err != nil {
			return fmt.Errorf("parsing value for %s: %w", key, err)
		}
		if len(doc.Content) > 0 {
			valueNode = doc.Content[0]
		}
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: section},
		{Kind: yaml.MappingNode, Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: field},
			valueNode,
		}},
	}}
	if err := root.Decode(c); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Keys returns every dotted key with its rendered value.
func (c *Config) Keys() (map[string]string, error) {
	return c.flatten()
}

func (c *Config) flatten() (map[string]string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, err
	}
	var tree map[string]map[string]any
	if err = yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}

	out := make(map[string]string)
	for section, fields := range tree {
		for field, v := range fields {
			out[section+"."+field] = renderValue(v)
		}
	}
	return out, nil
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = fmt.Sprint(p)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(t)
	}
}
