// Package config loads runtime settings from environment variables with
// sensible defaults, so the binary runs with zero configuration.
package config

import (
	"os"
	"strconv"
)

// Config holds all runtime settings
type Config struct {
	Server   ServerConfig
	Analysis AnalysisConfig
	Loader   LoaderConfig
	LogLevel string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	MaxUploadBytes int64
	CacheMaxBytes  int64
}

// AnalysisConfig holds the analysis tunables
type AnalysisConfig struct {
	PatternSampleSize  int
	MinHistogramBins   int
	MaxHistogramBins   int
	MaxTimelineBuckets int
	Workers            int
}

// LoaderConfig holds the column-kind inference thresholds
type LoaderConfig struct {
	NumericThreshold  float64
	DatetimeThreshold float64
}

// Load reads configuration from the environment
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			MaxUploadBytes: getEnvInt64OrDefault("MAX_UPLOAD_BYTES", 50<<20),
			CacheMaxBytes:  getEnvInt64OrDefault("CACHE_MAX_BYTES", 64<<20),
		},
		Analysis: AnalysisConfig{
			PatternSampleSize:  getEnvIntOrDefault("PATTERN_SAMPLE_SIZE", 500),
			MinHistogramBins:   getEnvIntOrDefault("MIN_HISTOGRAM_BINS", 10),
			MaxHistogramBins:   getEnvIntOrDefault("MAX_HISTOGRAM_BINS", 50),
			MaxTimelineBuckets: getEnvIntOrDefault("MAX_TIMELINE_BUCKETS", 50),
			Workers:            getEnvIntOrDefault("ANALYSIS_WORKERS", 0),
		},
		Loader: LoaderConfig{
			NumericThreshold:  getEnvFloatOrDefault("NUMERIC_THRESHOLD", 0.8),
			DatetimeThreshold: getEnvFloatOrDefault("DATETIME_THRESHOLD", 0.8),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
