package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of recognized environment variables, e.g.
	// SEARCHD_LOG__LEVEL maps to log.level.
	EnvPrefix = "SEARCHD_"

	// Delimiter separates nested configuration keys.
	Delimiter = "."
)

// Load builds the configuration from defaults, an optional file, the
// environment, and finally explicit overrides, in that precedence order.
func Load(configPath string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(Delimiter)

	// Defaults are loaded as flat keys so that later sources merge per
	// field instead of replacing whole sections.
	defaults := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"log.level":          defaults.Log.Level,
		"log.format":         defaults.Log.Format,
		"engine.shard_count": defaults.Engine.ShardCount,
		"engine.page_size":   defaults.Engine.PageSize,
		"engine.parallel":    defaults.Engine.Parallel,
		"engine.metrics":     defaults.Engine.Metrics,
		"corpus.path":        defaults.Corpus.Path,
		"corpus.stop_words":  defaults.Corpus.StopWords,
	}, Delimiter), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		parser, err := parserFor(configPath)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), parser); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Double underscore separates nesting levels so that keys like
	// engine.shard_count stay addressable: SEARCHD_ENGINE__SHARD_COUNT.
	if err := k.Load(env.Provider(EnvPrefix, Delimiter, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", Delimiter)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, Delimiter), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
}
