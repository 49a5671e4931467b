package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formrelay/pkg/forms"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMRELAY_"

// Duplicate handling modes.
const (
	DuplicatesShare  = "share"
	DuplicatesReject = "reject"
)

// Config holds all formrelay configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Locale   string         `yaml:"locale"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Design   FormConfig     `yaml:"design"`
	Register FormConfig     `yaml:"register"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Template TemplateConfig `yaml:"templates"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Listen       string `yaml:"listen"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// WebhookConfig configures the outbound client shared by both forms.
type WebhookConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
	// Duplicates is "share" (identical in-flight submissions get the same
	// result) or "reject" (they fail with 409).
	Duplicates string `yaml:"duplicates"`
}

// FormConfig overrides the per-form upstream and redirect.
type FormConfig struct {
	Endpoint        string `yaml:"endpoint"`
	RedirectURL     string `yaml:"redirect_url"`
	RedirectDelayMS int    `yaml:"redirect_delay_ms"`
}

// LoggingConfig mirrors the logrus setup in internal/logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text, json
	Mode   string `yaml:"mode"`   // stdout, file
	File   string `yaml:"file"`

	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// MetricsConfig toggles the /metrics route.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// TemplateConfig points at on-disk overrides for templates and catalogs.
type TemplateConfig struct {
	Dir        string `yaml:"dir"`
	LocalesDir string `yaml:"locales_dir"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:       ":8080",
			ReadTimeout:  "10s",
			WriteTimeout: "30s",
		},
		Locale: "zh-TW",
		Webhook: WebhookConfig{
			Timeout:    "15s",
			UserAgent:  "formrelay",
			Duplicates: DuplicatesShare,
		},
		Design: FormConfig{
			Endpoint: forms.DesignEndpoint,
		},
		Register: FormConfig{
			Endpoint:        forms.RegistrationEndpoint,
			RedirectURL:     forms.RegistrationRedirect,
			RedirectDelayMS: int(forms.RegistrationRedirectDelay / time.Millisecond),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Mode:       "stdout",
			File:       "formrelay.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Load reads configuration from a YAML file. A missing file, or an empty
// path, yields the defaults. Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	setString("LISTEN", &c.Server.Listen)
	setString("LOCALE", &c.Locale)
	setString("WEBHOOK_TIMEOUT", &c.Webhook.Timeout)
	setString("DUPLICATES", &c.Webhook.Duplicates)
	setString("DESIGN_ENDPOINT", &c.Design.Endpoint)
	setString("REGISTER_ENDPOINT", &c.Register.Endpoint)
	setString("REGISTER_REDIRECT_URL", &c.Register.RedirectURL)
	setString("LOG_LEVEL", &c.Logging.Level)
	setString("LOG_FORMAT", &c.Logging.Format)
	setString("LOG_MODE", &c.Logging.Mode)
	setString("LOG_FILE", &c.Logging.File)
	setString("TEMPLATES_DIR", &c.Template.Dir)
	setString("LOCALES_DIR", &c.Template.LocalesDir)

	if v := os.Getenv(EnvPrefix + "REGISTER_REDIRECT_DELAY_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sREGISTER_REDIRECT_DELAY_MS: %w", EnvPrefix, err)
		}
		c.Register.RedirectDelayMS = ms
	}
	if v := os.Getenv(EnvPrefix + "METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sMETRICS_ENABLED: %w", EnvPrefix, err)
		}
		c.Metrics.Enabled = enabled
	}
	return nil
}

// Validate checks values that cannot be defaulted at use time.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Webhook.Duplicates) {
	case "", DuplicatesShare, DuplicatesReject:
	default:
		return fmt.Errorf("config: invalid webhook.duplicates %q (valid: %s, %s)", c.Webhook.Duplicates, DuplicatesShare, DuplicatesReject)
	}
	if c.Register.RedirectDelayMS < 0 {
		return fmt.Errorf("config: register.redirect_delay_ms must not be negative")
	}
	for name, value := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
		"webhook.timeout":      c.Webhook.Timeout,
	} {
		if value == "" {
			continue
		}
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

// RejectDuplicates reports whether identical in-flight submissions fail.
func (c *Config) RejectDuplicates() bool {
	return strings.EqualFold(c.Webhook.Duplicates, DuplicatesReject)
}

// WebhookTimeout returns the outbound client timeout.
func (c *Config) WebhookTimeout() time.Duration {
	return durationOr(c.Webhook.Timeout, 15*time.Second)
}

// ReadTimeout returns the server read timeout.
func (c *Config) ReadTimeout() time.Duration {
	return durationOr(c.Server.ReadTimeout, 10*time.Second)
}

// WriteTimeout returns the server write timeout.
func (c *Config) WriteTimeout() time.Duration {
	return durationOr(c.Server.WriteTimeout, 30*time.Second)
}

// RedirectDelay returns the registration redirect delay.
func (f FormConfig) RedirectDelay() time.Duration {
	return time.Duration(f.RedirectDelayMS) * time.Millisecond
}

func durationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
