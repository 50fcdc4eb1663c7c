package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formfill/pkg/generate"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "formfill.yaml"

// Config is the root configuration document.
type Config struct {
	Form        FormConfig        `yaml:"form"`
	Entries     EntriesConfig     `yaml:"entries"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Generator   GeneratorConfig   `yaml:"generator"`
	HTTP        HTTPConfig        `yaml:"http"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// FormConfig identifies the form and its endpoints.
type FormConfig struct {
	// ID is the Forms API identifier (the /forms/d/<id>/edit segment).
	ID string `yaml:"id"`
	// Source optionally points at a saved description (file path or URL);
	// when empty the description is fetched through the Forms API.
	Source string `yaml:"source"`
	// ResponseURL is the formResponse endpoint submissions are posted to.
	ResponseURL string `yaml:"response_url"`
	// ViewURL is the public viewform URL, used for pre-fill links.
	ViewURL string `yaml:"view_url"`
}

// EntriesConfig locates the persisted entry map.
type EntriesConfig struct {
	// Path is a JSON/YAML file or a sqlite://<path> reference.
	Path string `yaml:"path"`
}

// CredentialsConfig points at an OAuth token obtained out of band.
type CredentialsConfig struct {
	TokenFile    string `yaml:"token_file"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
}

// GeneratorConfig tunes answer generation.
type GeneratorConfig struct {
	// Seed pins the random source; nil means a fresh seed per run.
	Seed        *uint64             `yaml:"seed"`
	TextPool    []string            `yaml:"text_pool"`
	TextRules   []generate.TextRule `yaml:"text_rules"`
	SkipMarkers []string            `yaml:"skip_markers"`
}

// HTTPConfig configures outbound requests.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Credentials: CredentialsConfig{TokenFile: "token.json"},
		Generator: GeneratorConfig{
			TextRules: []generate.TextRule{
				{Contains: "country", Values: []string{"Romania", "Germany", "Austria"}},
			},
			SkipMarkers: []string{"(optional)", "email"},
		},
		HTTP:    HTTPConfig{Timeout: 30 * time.Second},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// (with environment overrides) otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		cfg.ApplyEnv(os.LookupEnv)
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// ApplyEnv overrides fields from FORMFILL_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
			*dst = strings.TrimSpace(value)
		}
	}
	set("FORMFILL_FORM_ID", &c.Form.ID)
	set("FORMFILL_SOURCE", &c.Form.Source)
	set("FORMFILL_RESPONSE_URL", &c.Form.ResponseURL)
	set("FORMFILL_VIEW_URL", &c.Form.ViewURL)
	set("FORMFILL_ENTRIES", &c.Entries.Path)
	set("FORMFILL_TOKEN_FILE", &c.Credentials.TokenFile)
	set("FORMFILL_CLIENT_ID", &c.Credentials.ClientID)
	set("FORMFILL_CLIENT_SECRET", &c.Credentials.ClientSecret)
	set("FORMFILL_LOG_LEVEL", &c.Logging.Level)
	set("FORMFILL_LOG_FORMAT", &c.Logging.Format)
}

// Validate checks option values that have a closed set of choices.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown logging level %q", c.Logging.Level)
	}
	if c.HTTP.Timeout < 0 {
		return fmt.Errorf("config: http timeout must not be negative")
	}
	for i, rule := range c.Generator.TextRules {
		if strings.TrimSpace(rule.Contains) == "" || len(rule.Values) == 0 {
			return fmt.Errorf("config: text rule %d needs both contains and values", i)
		}
	}
	return nil
}

// EntriesPath returns the configured entry store reference, defaulting to
// data/entries_<form id>.json.
func (c *Config) EntriesPath() string {
	if path := strings.TrimSpace(c.Entries.Path); path != "" {
		return path
	}
	name := "entries.json"
	if id := strings.TrimSpace(c.Form.ID); id != "" {
		name = "entries_" + id + ".json"
	}
	return filepath.Join("data", name)
}
