package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	TargetsFile     string        // newline-delimited target list
	TargetsRequired bool          // fatal exit when the list is missing
	ResultsFile     string        // persisted observation history
	ArchiveFile     string        // expired observations land here
	DocsDir         string        // rendered charts + status page
	LogDir          string
	RetentionDays   int
	BucketWidth     time.Duration
	Timezone        string // reference zone for all timestamps
	ProbeMode       string // http, ping or dns
	ProbeTimeout    time.Duration
	PingCount       int
	RetryAttempts   int
	RetryBackoff    time.Duration
	Concurrency     int
	Addr            string   // statusd bind address
	APIKeys         []string // statusd access keys; empty = open
}

func defaults() Config {
	return Config{
		TargetsFile:   "monitoring_targets.txt",
		ResultsFile:   "docs/data/results.json",
		ArchiveFile:   "docs/data/archive.json",
		DocsDir:       "docs",
		LogDir:        "logs",
		RetentionDays: 30,
		BucketWidth:   time.Hour,
		Timezone:      "UTC",
		ProbeMode:     "http",
		ProbeTimeout:  10 * time.Second,
		PingCount:     3,
		RetryAttempts: 1,
		RetryBackoff:  300 * time.Millisecond,
		Concurrency:   4,
		Addr:          "127.0.0.1:8080",
	}
}

// Load builds the configuration in three layers: built-in defaults, an
// optional YAML file named by CONFIG_FILE, then environment overrides.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

// FromEnv is Load without the file layer; handy in tests.
func FromEnv() Config {
	cfg := defaults()
	applyEnv(&cfg)
	return cfg
}

// fileConfig is the YAML overlay. Durations are strings in Go duration
// syntax ("6h", "300ms"); nil pointers leave the default untouched.
type fileConfig struct {
	TargetsFile     *string  `yaml:"targets_file"`
	TargetsRequired *bool    `yaml:"targets_required"`
	ResultsFile     *string  `yaml:"results_file"`
	ArchiveFile     *string  `yaml:"archive_file"`
	DocsDir         *string  `yaml:"docs_dir"`
	LogDir          *string  `yaml:"log_dir"`
	RetentionDays   *int     `yaml:"retention_days"`
	BucketWidth     *string  `yaml:"bucket_width"`
	Timezone        *string  `yaml:"timezone"`
	ProbeMode       *string  `yaml:"probe_mode"`
	ProbeTimeout    *string  `yaml:"probe_timeout"`
	PingCount       *int     `yaml:"ping_count"`
	RetryAttempts   *int     `yaml:"retry_attempts"`
	RetryBackoff    *string  `yaml:"retry_backoff"`
	Concurrency     *int     `yaml:"concurrency"`
	Addr            *string  `yaml:"addr"`
	APIKeys         []string `yaml:"api_keys"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.TargetsFile, fc.TargetsFile)
	setString(&cfg.ResultsFile, fc.ResultsFile)
	setString(&cfg.ArchiveFile, fc.ArchiveFile)
	setString(&cfg.DocsDir, fc.DocsDir)
	setString(&cfg.LogDir, fc.LogDir)
	setString(&cfg.Timezone, fc.Timezone)
	setString(&cfg.ProbeMode, fc.ProbeMode)
	setString(&cfg.Addr, fc.Addr)
	setInt(&cfg.RetentionDays, fc.RetentionDays)
	setInt(&cfg.PingCount, fc.PingCount)
	setInt(&cfg.RetryAttempts, fc.RetryAttempts)
	setInt(&cfg.Concurrency, fc.Concurrency)
	if fc.TargetsRequired != nil {
		cfg.TargetsRequired = *fc.TargetsRequired
	}
	if len(fc.APIKeys) > 0 {
		cfg.APIKeys = fc.APIKeys
	}
	for _, d := range []struct {
		dst *time.Duration
		src *string
		key string
	}{
		{&cfg.BucketWidth, fc.BucketWidth, "bucket_width"},
		{&cfg.ProbeTimeout, fc.ProbeTimeout, "probe_timeout"},
		{&cfg.RetryBackoff, fc.RetryBackoff, "retry_backoff"},
	} {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return fmt.Errorf("config %s: %w", d.key, err)
		}
		*d.dst = v
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil && *src != "" {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil && *src > 0 {
		*dst = *src
	}
}

func applyEnv(cfg *Config) {
	cfg.TargetsFile = getEnv("TARGETS_FILE", cfg.TargetsFile)
	cfg.TargetsRequired = getEnvBool("TARGETS_REQUIRED", cfg.TargetsRequired)
	cfg.ResultsFile = getEnv("RESULTS_FILE", cfg.ResultsFile)
	cfg.ArchiveFile = getEnv("ARCHIVE_FILE", cfg.ArchiveFile)
	cfg.DocsDir = getEnv("DOCS_DIR", cfg.DocsDir)
	cfg.LogDir = getEnv("LOG_DIR", cfg.LogDir)
	cfg.RetentionDays = getEnvInt("RETENTION_DAYS", cfg.RetentionDays)
	cfg.BucketWidth = getEnvDuration("BUCKET_WIDTH", cfg.BucketWidth)
	cfg.Timezone = getEnv("TZ_NAME", cfg.Timezone)
	cfg.ProbeMode = getEnv("PROBE_MODE", cfg.ProbeMode)
	cfg.ProbeTimeout = getEnvDuration("PROBE_TIMEOUT", cfg.ProbeTimeout)
	cfg.PingCount = getEnvInt("PING_COUNT", cfg.PingCount)
	cfg.RetryAttempts = getEnvInt("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.RetryBackoff = getEnvDuration("RETRY_BACKOFF", cfg.RetryBackoff)
	cfg.Concurrency = getEnvInt("MAX_CONCURRENT_CHECKS", cfg.Concurrency)
	cfg.Addr = getEnv("ADDR", cfg.Addr)
	if v := os.Getenv("API_KEYS"); v != "" {
		cfg.APIKeys = splitList(v)
	}
}

// Retention returns the retention window as a duration.
func (c Config) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Location resolves the configured reference timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
