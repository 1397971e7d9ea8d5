// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/alignak-watch/config.yaml",
	"/etc/alignak-watch/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied.
func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:               "http://127.0.0.1:5000",
			Username:          "",
			Password:          "",
			Token:             "",
			RequestTimeout:    4 * time.Second,
			RequestsPerSecond: 20,
			PageSize:          50,
			PageWorkers:       4,
		},
		Poll: PollConfig{
			LiveSynthesis: 10 * time.Second,
			Host:          15 * time.Second,
			Service:       15 * time.Second,
			Daemon:        15 * time.Second,
			User:          30 * time.Second,
			History:       30 * time.Second,
			Notifications: 30 * time.Second,
			Realm:         30 * time.Second,
			Timeperiod:    30 * time.Second,
			FetchTimeout:  8 * time.Second,
			HistoryLimit:  200,
		},
		Actions: ActionsConfig{
			CheckInterval: 4 * time.Second,
			MaxAge:        30 * time.Minute,
			JournalPath:   "",
		},
		Reconnect: ReconnectConfig{
			Interval:           5 * time.Second,
			BreakerMaxFailures: 5,
			BreakerTimeout:     time.Minute,
		},
		Events: EventsConfig{
			Buffer:            64,
			NATSURL:           "",
			NATSSubjectPrefix: "alignak",
		},
		Server: ServerConfig{
			Host:              "127.0.0.1",
			Port:              8090,
			ShutdownTimeout:   10 * time.Second,
			CORSOrigins:       []string{},
			RateLimitRequests: 300,
			RateLimitWindow:   time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	// ALIGNAK_URL -> backend.url, POLL_HOST_INTERVAL -> poll.host
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
// YAML already yields slices; env vars always arrive as strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Backend
	"alignak_url":                 "backend.url",
	"alignak_username":            "backend.username",
	"alignak_password":            "backend.password",
	"alignak_token":               "backend.token",
	"alignak_request_timeout":     "backend.request_timeout",
	"alignak_requests_per_second": "backend.requests_per_second",
	"alignak_page_size":           "backend.page_size",
	"alignak_page_workers":        "backend.page_workers",

	// Poll intervals
	"poll_livesynthesis_interval": "poll.livesynthesis",
	"poll_host_interval":          "poll.host",
	"poll_service_interval":       "poll.service",
	"poll_daemon_interval":        "poll.alignakdaemon",
	"poll_user_interval":          "poll.user",
	"poll_history_interval":       "poll.history",
	"poll_notifications_interval": "poll.notifications",
	"poll_realm_interval":         "poll.realm",
	"poll_timeperiod_interval":    "poll.timeperiod",
	"poll_fetch_timeout":          "poll.fetch_timeout",
	"poll_history_limit":          "poll.history_limit",

	// Pending actions
	"actions_check_interval": "actions.check_interval",
	"actions_max_age":        "actions.max_age",
	"actions_journal_path":   "actions.journal_path",

	// Reconnection
	"reconnect_interval":             "reconnect.interval",
	"reconnect_breaker_max_failures": "reconnect.breaker_max_failures",
	"reconnect_breaker_timeout":      "reconnect.breaker_timeout",

	// Events
	"events_buffer":       "events.buffer",
	"nats_url":            "events.nats_url",
	"nats_subject_prefix": "events.nats_subject_prefix",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf paths.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
