package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"viralcast/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated)

	// Delivery configuration
	DeliveryTimeoutSeconds int      // Per-attempt timeout for adapter calls
	AutomationDriverURL    string   // Base URL of the browser automation driver
	AutomationPlatforms    []string // Platforms delivered via the automation driver instead of their official API

	// Account health configuration
	DegradedErrorThreshold int // Consecutive errors before an account is flagged

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelServiceName          string
	OTelExporterType         string // "console", "otlp", or "none"
	OTelOTLPEndpoint         string
	OTelExportIntervalMillis int

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// NATS
		NATSServers: getEnvWithDefault("NATS_SERVERS", "nats://nats:4222"),

		// Delivery
		DeliveryTimeoutSeconds: 120,
		AutomationDriverURL:    getEnvWithDefault("AUTOMATION_DRIVER_URL", "http://automation:4444"),

		// Account health
		DegradedErrorThreshold: 5,

		// Observability
		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "viralcast"),
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "otlp"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317"),
		OTelExportIntervalMillis: 60000,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if timeout := os.Getenv("DELIVERY_TIMEOUT_SECONDS"); timeout != "" {
		if parsed, err := strconv.Atoi(timeout); err == nil && parsed > 0 {
			config.DeliveryTimeoutSeconds = parsed
		}
	}
	if threshold := os.Getenv("DEGRADED_ERROR_THRESHOLD"); threshold != "" {
		if parsed, err := strconv.Atoi(threshold); err == nil && parsed > 0 {
			config.DegradedErrorThreshold = parsed
		}
	}
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.OTelExportIntervalMillis = parsed
		}
	}
	// Parse automation-backed platforms
	if platforms := os.Getenv("AUTOMATION_PLATFORMS"); platforms != "" {
		for _, p := range strings.Split(platforms, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				config.AutomationPlatforms = append(config.AutomationPlatforms, p)
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:            "test",
		DeliveryTimeoutSeconds: 5,
		DegradedErrorThreshold: 5,
		AutomationDriverURL:    "http://localhost:4444",
		OTelServiceName:        "viralcast-test",
		OTelExporterType:       "none",
	}
}
