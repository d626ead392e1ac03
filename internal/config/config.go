package config

// Config represents the complete rlm configuration.
// It can be loaded from .rlm/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Limits LimitsConfig `yaml:"limits" mapstructure:"limits"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
}

// PathsConfig defines which files a scan visits and which it skips.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
}

// LimitsConfig bounds extraction work.
type LimitsConfig struct {
	MaxFileSize int `yaml:"max_file_size" mapstructure:"max_file_size"` // bytes; 0 disables the limit
}

// StoreConfig locates the scan database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite file; default .rlm/index.db
}

// CacheConfig sizes the in-memory extraction cache.
type CacheConfig struct {
	Capacity int `yaml:"capacity" mapstructure:"capacity"` // cached extraction results; 0 disables the cache
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.go",
				"**/*.java",
				"**/*.rs",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.pyc",
			},
		},
		Limits: LimitsConfig{
			MaxFileSize: 2 * 1024 * 1024,
		},
		Store: StoreConfig{
			Path: ".rlm/index.db",
		},
		Cache: CacheConfig{
			Capacity: 1024,
		},
	}
}
