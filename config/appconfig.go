// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) Lothar May

package config

import (
	"github.com/barkimedes/go-deepcopy"
)

type AppConfig struct {
	LightTheme bool `yaml:",omitempty"`
	// Invalid chart calls panic instead of being logged.
	DevMode           bool `yaml:",omitempty"`
	WindowConfig      WindowConfig
	ChartConfig       ChartConfig
	PersistenceConfig PersistenceConfig
	FeedConfig        FeedConfig
	// Address of the Prometheus endpoint, e.g. "localhost:9100". Empty disables it.
	MetricsAddr string `yaml:",omitempty"`
}

type PersistenceConfig struct {
	// local, sqlite, redis or memory
	Backend            string
	SqlitePath         string `yaml:",omitempty"`
	RedisAddr          string `yaml:",omitempty"`
	RedisPassword      string `yaml:",omitempty"`
	RedisDB            int    `yaml:",omitempty"`
	SaveTimeoutSeconds int    `yaml:",omitempty"`
}

type FeedConfig struct {
	// An empty url disables the live feed.
	WsUrl                    string `yaml:",omitempty"`
	ReconnectDelaySeconds    int    `yaml:",omitempty"`
	MaxReconnectDelaySeconds int    `yaml:",omitempty"`
}

const (
	BackendLocal  = "local"
	BackendSqlite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var defaultPersistenceConfig = PersistenceConfig{
	Backend:            BackendLocal,
	SqlitePath:         "annotations.db",
	RedisAddr:          "localhost:6379",
	SaveTimeoutSeconds: 5,
}

var defaultFeedConfig = FeedConfig{
	ReconnectDelaySeconds:    2,
	MaxReconnectDelaySeconds: 30,
}

func NewAppConfig() AppConfig {
	return AppConfig{
		WindowConfig:      NewWindowConfig(),
		ChartConfig:       NewChartConfig(),
		PersistenceConfig: defaultPersistenceConfig,
		FeedConfig:        defaultFeedConfig,
	}
}

func (a *AppConfig) deepCopy() AppConfig {
	c, err := deepcopy.Anything(a)
	if err != nil {
		panic(err)
	}
	return *c.(*AppConfig)
}

func (a *AppConfig) Sanitize() {
	a.WindowConfig.sanitize()
	a.ChartConfig.sanitize()
	switch a.PersistenceConfig.Backend {
	case BackendLocal, BackendSqlite, BackendRedis, BackendMemory:
	default:
		a.PersistenceConfig.Backend = defaultPersistenceConfig.Backend
	}
	if a.PersistenceConfig.SaveTimeoutSeconds <= 0 {
		a.PersistenceConfig.SaveTimeoutSeconds = defaultPersistenceConfig.SaveTimeoutSeconds
	}
	if a.FeedConfig.ReconnectDelaySeconds <= 0 {
		a.FeedConfig.ReconnectDelaySeconds = defaultFeedConfig.ReconnectDelaySeconds
	}
	if a.FeedConfig.MaxReconnectDelaySeconds < a.FeedConfig.ReconnectDelaySeconds {
		a.FeedConfig.MaxReconnectDelaySeconds = max(defaultFeedConfig.MaxReconnectDelaySeconds, a.FeedConfig.ReconnectDelaySeconds)
	}
	a.RestoreDefaults()
}

// We do not want to store certain default values in the configuration file,
// in order to avoid having to patch them.
func (a *AppConfig) RemoveDefaults() {
	p := &a.PersistenceConfig
	if p.SqlitePath == defaultPersistenceConfig.SqlitePath {
		p.SqlitePath = ""
	}
	if p.RedisAddr == defaultPersistenceConfig.RedisAddr {
		p.RedisAddr = ""
	}
}

// Restore certain default values which are not stored in the configuration file.
func (a *AppConfig) RestoreDefaults() {
	p := &a.PersistenceConfig
	if len(p.SqlitePath) == 0 {
		p.SqlitePath = defaultPersistenceConfig.SqlitePath
	}
	if len(p.RedisAddr) == 0 {
		p.RedisAddr = defaultPersistenceConfig.RedisAddr
	}
}
