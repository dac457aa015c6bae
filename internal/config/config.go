// Package config loads scraper settings from YAML and the environment.
// Source priority: explicit path passed to Load, then CONFIG_PATH, then
// ./local.yaml, then environment variables alone.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	HTTP    HTTPConfig    `yaml:"http"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ScraperConfig tunes pagination and fan-out.
type ScraperConfig struct {
	BaseURL  string `yaml:"base_url"  env:"CHIRP_BASE_URL"  env-default:"https://twitter.com"`
	Retries  int    `yaml:"retries"   env:"CHIRP_RETRIES"   env-default:"10"`
	PoolSize int    `yaml:"pool_size" env:"CHIRP_POOL_SIZE" env-default:"20"`
}

// HTTPConfig tunes the page fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"       env:"CHIRP_HTTP_TIMEOUT" env-default:"30s"`
	MaxRedirects int           `yaml:"max_redirects" env:"CHIRP_MAX_REDIRECTS" env-default:"10"`
	UseCookieJar bool          `yaml:"cookie_jar"    env:"CHIRP_COOKIE_JAR" env-default:"true"`
	Fingerprint  string        `yaml:"fingerprint"   env:"CHIRP_FINGERPRINT" env-default:"chrome"`
	// Custom User-Agent list; the built-in pool is used when empty.
	// Via ENV, comma-separated.
	UserAgents []string `yaml:"user_agents" env:"CHIRP_USER_AGENTS" env-separator:","`
	// Requests per second across all workers; 0 disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"CHIRP_RPS" env-default:"0"`
	Jitter            float64 `yaml:"jitter"              env:"CHIRP_JITTER" env-default:"0.3"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"CHIRP_METRICS" env-default:"false"`
	Port    int  `yaml:"port"    env:"CHIRP_METRICS_PORT" env-default:"9190"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Load reads the configuration, preferring an explicit path, then
// CONFIG_PATH, then ./local.yaml, falling back to environment variables.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		if _, err := os.Stat("local.yaml"); err == nil {
			path = "local.yaml"
		}
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}
