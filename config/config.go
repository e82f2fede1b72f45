/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/booklending/datastore/ddb"
)

// Environment variables read by Load.
const (
	EnvTableName          = "TABLE_NAME"
	EnvRegion             = "AWS_REGION"
	EnvAccessKeyID        = "AWS_ACCESS_KEY_ID"
	EnvSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	EnvDynamoDBEndpoint   = "DYNAMODB_ENDPOINT"
	EnvAddr               = "APP_ADDR"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	EnvRateLimitRPS       = "RATE_LIMIT_RPS"
	EnvRateLimitBurst     = "RATE_LIMIT_BURST"
	EnvLogLevel           = "LOG_LEVEL"
	EnvTracingEnabled     = "TRACING_ENABLED"
)

// Defaults applied before the file and the environment.
const (
	DefaultRegion         = "us-east-1"
	DefaultAddr           = ":8080"
	DefaultRateLimitRPS   = 10.0
	DefaultRateLimitBurst = 20
	DefaultMaxBodyBytes   = 1 << 20
	DefaultLogLevel       = "info"
)

// ErrNoTableName is returned when no table name is configured anywhere.
var ErrNoTableName = errors.New("DynamoDB table name is not configured")

// Config is the runtime configuration of the book lending executables.
type Config struct {
	DynamoDB DynamoDBConfig `yaml:"dynamodb"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// DynamoDBConfig selects the table and the credentials used to reach it.
type DynamoDBConfig struct {
	TableName       string `yaml:"tableName"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"accessKeyId"`
	SecretAccessKey string `yaml:"secretAccessKey"`
	Endpoint        string `yaml:"endpoint"`
}

// HTTPConfig configures the HTTP server and its middleware.
type HTTPConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`
	RateLimitRPS       float64  `yaml:"rateLimitRps"`
	RateLimitBurst     int      `yaml:"rateLimitBurst"`
	MaxBodyBytes       int64    `yaml:"maxBodyBytes"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// TracingConfig turns on OTLP trace export. The exporter itself is configured by the
// standard OTEL_EXPORTER_OTLP_* variables.
type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"serviceName"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		DynamoDB: DynamoDBConfig{Region: DefaultRegion},
		HTTP: HTTPConfig{
			Addr:               DefaultAddr,
			CORSAllowedOrigins: []string{"*"},
			RateLimitRPS:       DefaultRateLimitRPS,
			RateLimitBurst:     DefaultRateLimitBurst,
			MaxBodyBytes:       DefaultMaxBodyBytes,
		},
		Log:     LogConfig{Level: DefaultLogLevel},
		Tracing: TracingConfig{ServiceName: "booklending"},
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped when path
// is empty), a .env file in the working directory if one exists, and finally the
// process environment. Later sources win.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// A missing .env is not an error; existing variables are not overridden.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	setString(EnvTableName, &c.DynamoDB.TableName)
	setString(EnvRegion, &c.DynamoDB.Region)
	setString(EnvAccessKeyID, &c.DynamoDB.AccessKeyID)
	setString(EnvSecretAccessKey, &c.DynamoDB.SecretAccessKey)
	setString(EnvDynamoDBEndpoint, &c.DynamoDB.Endpoint)
	setString(EnvAddr, &c.HTTP.Addr)
	setString(EnvLogLevel, &c.Log.Level)

	if v, ok := lookup(EnvCORSAllowedOrigins); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.HTTP.CORSAllowedOrigins = origins
	}
	if v, ok := lookup(EnvRateLimitRPS); ok && v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimitRPS, v, err)
		}
		c.HTTP.RateLimitRPS = rps
	}
	if v, ok := lookup(EnvRateLimitBurst); ok && v != "" {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvRateLimitBurst, v, err)
		}
		c.HTTP.RateLimitBurst = burst
	}
	if v, ok := lookup(EnvTracingEnabled); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTracingEnabled, v, err)
		}
		c.Tracing.Enabled = enabled
	}
	return nil
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.DynamoDB.TableName == "" {
		return ErrNoTableName
	}
	if (c.DynamoDB.AccessKeyID == "") != (c.DynamoDB.SecretAccessKey == "") {
		return errors.New("AWS access key id and secret access key must be set together")
	}
	if c.HTTP.RateLimitRPS < 0 || c.HTTP.RateLimitBurst < 0 {
		return errors.New("rate limit must not be negative")
	}
	return nil
}

// ClientConfig returns the DynamoDB client settings.
func (c Config) ClientConfig() ddb.ClientConfig {
	return ddb.ClientConfig{
		Region:          c.DynamoDB.Region,
		AccessKeyID:     c.DynamoDB.AccessKeyID,
		SecretAccessKey: c.DynamoDB.SecretAccessKey,
		Endpoint:        c.DynamoDB.Endpoint,
	}
}
