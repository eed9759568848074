package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
)

// Config is the root configuration for ttc, stored in ~/.ttc/config.json.
// The file may contain // and /* */ comments and trailing commas.
type Config struct {
	API APIConfig `mapstructure:"api"`
	Log LogConfig `mapstructure:"log"`
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	// URL is the backend base URL.
	URL string `mapstructure:"url"`
	// Key is the default API key, used until one is stored with ttc login.
	Key string `mapstructure:"key"`
	// RequestTimeout bounds each request. Zero disables the timeout.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

const (
	// DefaultURL is the backend address used when none is configured.
	DefaultURL = "http://localhost:8000"
	// DefaultLogLevel keeps structured logs quiet; notifications carry the
	// user-facing outcome.
	DefaultLogLevel = "warn"
	// EnvPrefix prefixes every environment override, e.g. TTC_API_URL.
	EnvPrefix = "TTC"
	// EnvFile is read from the working directory when present.
	EnvFile = ".env"
)

// configTemplate is the annotated config written on first run.
const configTemplate = `// ttc configuration – ~/.ttc/config.json
//
// All settings are optional. Every key can be overridden from the
// environment (or a .env file in the working directory):
//   TTC_API_URL, TTC_API_KEY, TTC_API_REQUEST_TIMEOUT, TTC_LOG_LEVEL
{
  "api": {
    // Base URL of the time-tracking backend.
    "url": "http://localhost:8000",

    // Default API key. Leave empty and run "ttc login" instead; a key saved
    // by ttc login always wins over this value.
    "key": "",

    // Per-request timeout, e.g. "30s". "0s" waits indefinitely.
    "request_timeout": "0s",
  },

  "log": {
    // debug, info, warn or error. Logs go to stderr.
    "level": "warn",
  },
}
`

// FilePath returns the path to ~/.ttc/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttc", "config.json"), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultURL)
	v.SetDefault("api.key", "")
	v.SetDefault("api.request_timeout", time.Duration(0))
	v.SetDefault("log.level", DefaultLogLevel)
}

func bindEnvs(v *viper.Viper) {
	for _, k := range []string{"api.url", "api.key", "api.request_timeout", "log.level"} {
		_ = v.BindEnv(k)
	}
}

// loadEnvFile copies variables from path into the process environment
// without overriding ones that are already set.
func loadEnvFile(path string) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		return
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
}

// Load reads ~/.ttc/config.json, creating it with annotated defaults on first
// run, then applies environment overrides.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return LoadFile("")
	}
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
			return LoadFile("")
		}
	}
	return LoadFile(path)
}

// LoadFile reads the config at path (skipped when empty) and applies
// environment overrides.
func LoadFile(path string) (Config, error) {
	loadEnvFile(EnvFile)

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	bindEnvs(v)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err == nil {
			if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("config: api.url must not be empty")
	}
	if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		return fmt.Errorf("config: api.url %q must start with http:// or https://", c.API.URL)
	}
	if c.API.RequestTimeout < 0 {
		return fmt.Errorf("config: api.request_timeout must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
