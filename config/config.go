// Package config loads and validates the driver configuration.
package config

// Config is the full driver configuration.
type Config struct {
	// Log is the logging configuration.
	Log LogConfig `koanf:"log" validate:"required"`

	// Engine tunes the search engine.
	Engine EngineConfig `koanf:"engine" validate:"required"`

	// Corpus selects what gets indexed at startup.
	Corpus CorpusConfig `koanf:"corpus"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the minimum level to emit.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is the output encoding.
	Format string `koanf:"format" validate:"oneof=console json"`
}

// EngineConfig tunes the search engine and result presentation.
type EngineConfig struct {
	// ShardCount is the shard count of the parallel relevance accumulator.
	ShardCount int `koanf:"shard_count" validate:"min=1"`

	// PageSize is the number of results shown per page.
	PageSize int `koanf:"page_size" validate:"min=1"`

	// Parallel switches queries to the parallel execution policy.
	Parallel bool `koanf:"parallel"`

	// Metrics enables Prometheus collectors on the engine.
	Metrics bool `koanf:"metrics"`
}

// CorpusConfig selects the startup corpus.
type CorpusConfig struct {
	// Path is a corpus file to index; empty selects the built-in demo
	// corpus. A .gz path is decompressed transparently.
	Path string `koanf:"path"`

	// StopWords is the whitespace-separated stop-word list.
	StopWords string `koanf:"stop_words"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Engine: EngineConfig{
			ShardCount: 12,
			PageSize:   5,
			Parallel:   false,
			Metrics:    true,
		},
		Corpus: CorpusConfig{
			StopWords: "and with",
		},
	}
}
