// Alignak Watch - Monitoring Backend Synchronization Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/alignak-watch

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/alignak-watch/internal/models"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every optional setting
//  2. Config File: optional YAML file (CONFIG_PATH, ./config.yaml, /etc/alignak-watch/config.yaml)
//  3. Environment Variables: override any mapped setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Backend   BackendConfig   `koanf:"backend"`
	Poll      PollConfig      `koanf:"poll"`
	Actions   ActionsConfig   `koanf:"actions"`
	Reconnect ReconnectConfig `koanf:"reconnect"`
	Events    EventsConfig    `koanf:"events"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// BackendConfig holds the Alignak backend connection settings.
type BackendConfig struct {
	// URL is the backend root, e.g. http://alignak:5000
	URL string `koanf:"url" validate:"required,http_url"`

	// Username and Password authenticate through POST /login.
	Username string `koanf:"username" validate:"required_without=Token"`
	Password string `koanf:"password"`

	// Token is a long-lived backend token, used instead of Username/Password.
	Token string `koanf:"token"`

	// RequestTimeout bounds every single HTTP request.
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"gte=1s"`

	// RequestsPerSecond limits the request rate toward the backend. 0 disables limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second" validate:"gte=0"`

	// PageSize is the max_results used when following pagination.
	PageSize int `koanf:"page_size" validate:"gte=1,lte=1000"`

	// PageWorkers bounds concurrent page fetches in all-items mode.
	PageWorkers int `koanf:"page_workers" validate:"gte=1,lte=32"`
}

// Credentials returns the login identity. A token is passed as the
// username with an empty password.
func (b BackendConfig) Credentials() (username, password string) {
	if b.Token != "" {
		return b.Token, ""
	}
	return b.Username, b.Password
}

// PollConfig holds the per-resource poll intervals.
type PollConfig struct {
	LiveSynthesis time.Duration `koanf:"livesynthesis" validate:"gte=1s"`
	Host          time.Duration `koanf:"host" validate:"gte=1s"`
	Service       time.Duration `koanf:"service" validate:"gte=1s"`
	Daemon        time.Duration `koanf:"alignakdaemon" validate:"gte=1s"`
	User          time.Duration `koanf:"user" validate:"gte=1s"`
	History       time.Duration `koanf:"history" validate:"gte=1s"`
	Notifications time.Duration `koanf:"notifications" validate:"gte=1s"`
	Realm         time.Duration `koanf:"realm" validate:"gte=1s"`
	Timeperiod    time.Duration `koanf:"timeperiod" validate:"gte=1s"`

	// FetchTimeout bounds one fetch task, pagination included.
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"gte=1s"`

	// HistoryLimit caps history and notification entries kept in the snapshot.
	HistoryLimit int `koanf:"history_limit" validate:"gte=1,lte=5000"`
}

// Interval returns the poll interval configured for a resource type.
func (p PollConfig) Interval(rt models.ResourceType) time.Duration {
	switch rt {
	case models.ResourceLiveSynthesis:
		return p.LiveSynthesis
	case models.ResourceHost:
		return p.Host
	case models.ResourceService:
		return p.Service
	case models.ResourceDaemon:
		return p.Daemon
	case models.ResourceUser:
		return p.User
	case models.ResourceHistory:
		return p.History
	case models.ResourceNotifications:
		return p.Notifications
	case models.ResourceRealm:
		return p.Realm
	case models.ResourceTimeperiod:
		return p.Timeperiod
	default:
		return 0
	}
}

// ActionsConfig holds pending action tracker settings.
type ActionsConfig struct {
	// CheckInterval is how often pending actions are re-checked.
	CheckInterval time.Duration `koanf:"check_interval" validate:"gte=500ms"`

	// MaxAge expires actions never confirmed by the backend. 0 keeps them forever.
	MaxAge time.Duration `koanf:"max_age" validate:"gte=0"`

	// JournalPath is the BadgerDB directory persisting pending actions.
	// Empty disables the journal.
	JournalPath string `koanf:"journal_path"`
}

// ReconnectConfig holds the reconnection loop and its circuit breaker settings.
type ReconnectConfig struct {
	Interval time.Duration `koanf:"interval" validate:"gte=1s"`

	// BreakerMaxFailures consecutive login failures open the breaker.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures" validate:"gte=1"`

	// BreakerTimeout is how long the breaker stays open before a probe.
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gte=1s"`
}

// EventsConfig holds the in-process event bus settings.
type EventsConfig struct {
	// Buffer is the per-subscriber channel buffer.
	Buffer int64 `koanf:"buffer" validate:"gte=0"`

	// NATSURL mirrors bus events to NATS when set (requires the nats build tag).
	NATSURL string `koanf:"nats_url" validate:"omitempty,url"`

	// NATSSubjectPrefix prefixes mirrored subjects, e.g. alignak.synthesis.diff
	NATSSubjectPrefix string `koanf:"nats_subject_prefix"`
}

// ServerConfig holds the collaborator HTTP API settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gte=1s"`

	// CORSOrigins lists allowed browser origins. Empty allows none.
	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=1s"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level" validate:"oneof=trace debug info warn error"`

	// Format is json or console.
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, the optional config file and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
