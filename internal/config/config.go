package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "MAXGEAR_"

// Duration is a time.Duration that reads and writes as "5s" in TOML and env
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version"`
	Catalog    CatalogSettings `toml:"catalog" envPrefix:"CATALOG_"`
	UISettings UISettings      `toml:"ui" envPrefix:"UI_"`
	Log        LogSettings     `toml:"log" envPrefix:"LOG_"`
	Metrics    MetricsSettings `toml:"metrics" envPrefix:"METRICS_"`
}

// CatalogSettings describes the remote catalog search service
type CatalogSettings struct {
	BaseURL    string   `toml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	Timeout    Duration `toml:"timeout" env:"TIMEOUT" validate:"gte=0"`
	MaxRetries int      `toml:"max_retries" env:"MAX_RETRIES" validate:"gte=0,lte=10"`
	RateLimit  float64  `toml:"rate_limit" env:"RATE_LIMIT" validate:"gte=0"` // requests per second, 0 disables
	Offline    bool     `toml:"offline" env:"OFFLINE"`                        // use the built-in demo catalog
}

// UISettings represents UI-related configuration
type UISettings struct {
	StartScreen string `toml:"start_screen" env:"START_SCREEN" validate:"omitempty,oneof=home catalog"`
	AltScreen   bool   `toml:"alt_screen" env:"ALT_SCREEN"`
}

// LogSettings controls the log file
type LogSettings struct {
	File   string `toml:"file" env:"FILE"`
	Level  string `toml:"level" env:"LEVEL" validate:"omitempty,oneof=debug info warn error"`
	Format string `toml:"format" env:"FORMAT" validate:"omitempty,oneof=text json"`
}

// MetricsSettings controls the optional Prometheus listener
type MetricsSettings struct {
	Addr string `toml:"addr" env:"ADDR" validate:"omitempty,hostname_port"`
}

// ErrNoCatalog is returned when neither a catalog URL nor offline mode is configured
var ErrNoCatalog = errors.New("catalog.base_url is required unless catalog.offline is set")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and cross-field rules
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if !c.Catalog.Offline && c.Catalog.BaseURL == "" {
		return ErrNoCatalog
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	EnsureFile() (bool, error)
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	environ  map[string]string // nil reads the process environment
}

// DefaultPath returns $XDG_CONFIG_HOME/maxgear/config.toml or its platform equivalent
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "maxgear", "config.toml")
}

// NewConfigService creates a config service reading from path ("" means DefaultPath)
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{
		filePath: path,
	}
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the config file (defaults when missing) and applies environment
// overrides. Callers validate after applying flags.
func (cs *configService) Load() (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(cs.filePath); err == nil {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := cs.applyEnv(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cs *configService) applyEnv(cfg *Config) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: cs.environ}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// Save saves the configuration to the service path
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// EnsureFile writes the default configuration when no file exists yet and
// reports whether it did. Environment and flag overrides are never written.
func (cs *configService) EnsureFile() (bool, error) {
	if _, err := os.Stat(cs.filePath); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err := cs.Save(DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

// LoadFromPath loads configuration from a specific path. Missing keys keep
// their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Catalog: CatalogSettings{
			BaseURL:    "http://127.0.0.1:8000",
			Timeout:    Duration(10 * time.Second),
			MaxRetries: 1,
			RateLimit:  5,
		},
		UISettings: UISettings{
			StartScreen: "home",
			AltScreen:   true,
		},
		Log: LogSettings{
			File:   "maxgear.log",
			Level:  "info",
			Format: "text",
		},
	}
}
