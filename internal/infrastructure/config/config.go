package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"adsbuilder/internal/domain/build"
)

// EnvPrefix prefixes every environment override, e.g. ADSBUILDER_PORT.
// Nested keys use a double underscore: ADSBUILDER_LIMITS__CALL.
const EnvPrefix = "ADSBUILDER_"

type Config struct {
	Port           string       `koanf:"port"`
	StoragePath    string       `koanf:"storage_path"`
	DatabasePath   string       `koanf:"database_path"`
	MaxUploadSize  int64        `koanf:"max_upload_size"`
	TokenExpiry    int          `koanf:"token_expiry_hours"`
	FrontendURL    string       `koanf:"frontend_url"`
	AllowedOrigins []string     `koanf:"allowed_origins"`
	LogLevel       string       `koanf:"log_level"`
	LogFormat      string       `koanf:"log_format"`
	Limits         build.Limits `koanf:"limits"`
}

func defaults() map[string]interface{} {
	limits := build.DefaultLimits()
	return map[string]interface{}{
		"port":                  "8005",
		"storage_path":          "./storage",
		"database_path":         "./data/adsbuilder.db",
		"max_upload_size":       10 << 20, // 10MB
		"token_expiry_hours":    24,
		"frontend_url":          "http://localhost:5173",
		"allowed_origins":       []string{"*"},
		"log_level":             "info",
		"log_format":            "json",
		"limits.call":           limits.Call,
		"limits.sitelink":       limits.Sitelink,
		"limits.callout":        limits.Callout,
		"limits.snippet":        limits.Snippet,
		"limits.promotion":      limits.Promotion,
		"limits.snippet_values": limits.SnippetValues,
	}
}

// Load builds the configuration. Precedence (highest to lowest):
// flags > environment > config file > defaults. A .env file in the working
// directory is loaded into the environment first if present. flags may be nil;
// only flags the user set are applied.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Ignore error: .env is optional
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// --log-level -> log_level
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// envKey maps ADSBUILDER_LIMITS__SNIPPET_VALUES to limits.snippet_values
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
