package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey stores the logger in the command context.
type loggerKey struct{}

// configKey stores the loaded config in the command context.
type configKey struct{}

var configFileUsed string

// envKeys maps PG_* environment variables onto config keys. PSQL_PATH is
// handled separately because it carries no PG_ prefix.
var envKeys = map[string]string{
	"host":     "host",
	"port":     "port",
	"user":     "user",
	"password": "password",
	"database": "database",
}

// findConfigFile returns the config file to use.
// Priority: explicit path > pgpick.yaml > pgpick.yml in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"pgpick.yaml", "pgpick.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load builds the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"psql_path": DefaultPsqlPath,
		"output":    DefaultOutput,
		"verbose":   false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file, when present.
	if path := findConfigFile(cfgFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
		configFileUsed = path
	}

	// 3. Environment: PG_HOST -> host, PG_PASSWORD -> password, etc.
	if err := k.Load(env.Provider("PG_", ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, "PG_"))
		if mapped, ok := envKeys[key]; ok {
			return mapped
		}
		return "" // unrelated PG* variables (PGDATA and friends) are skipped
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}
	if path := os.Getenv("PSQL_PATH"); path != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{
			"psql_path": path,
		}, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load PSQL_PATH: %w", err)
		}
	}

	// 4. Flags that were explicitly set win over everything.
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
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

// GetConfigFileUsed returns the path of the config file loaded last, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key the CLI uses to store the logger,
// letting the commands package fetch it without an import cycle.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context, falling back to
// a discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ConfigKey returns the context key the CLI uses to store the config.
func ConfigKey() interface{} {
	return configKey{}
}

// FromContext retrieves the config from the command context, falling back to
// defaults so help-style commands work without configuration.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{PsqlPath: DefaultPsqlPath, Output: DefaultOutput}
}
