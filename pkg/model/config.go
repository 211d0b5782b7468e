// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"log/slog"
	"time"
)

type ServerConfig struct {
	Nodename     string `yaml:"nodename"`
	Hostname     string `yaml:"hostname"`
	Port         int    `yaml:"port"`
	ErgoPort     int    `yaml:"ergoPort"`
	Secret       string `yaml:"secret"`
	ObserverPort int    `yaml:"observerPort"`
	TLSCert      string `yaml:"tlsCert"`
	TLSKey       string `yaml:"tlsKey"`
}

type LoggingConfig struct {
	FilePath        string     `yaml:"filePath"`
	FileLogLevel    slog.Level `yaml:"fileLogLevel"`
	ConsoleLogLevel slog.Level `yaml:"consoleLogLevel"`
}

// DirectoryConfig points the console at the identity provider's directory
// API, the collaborator that resolves source slugs to descriptors.
type DirectoryConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// OverviewConfig drives the admin overview collector.
type OverviewConfig struct {
	Enabled         bool          `yaml:"enabled"`
	Interval        time.Duration `yaml:"interval"`
	VersionCacheTTL time.Duration `yaml:"versionCacheTTL"`
}

type ConsoleConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Directory DirectoryConfig `yaml:"directory"`
	Overview  OverviewConfig  `yaml:"overview"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type APIConfig struct {
	URL  string `yaml:"url"`
	Port int    `yaml:"port"`
}

type CliConfig struct {
	API                   APIConfig `yaml:"api"`
	DisableUsageReporting bool      `yaml:"disableUsageReporting"`
}

type Config struct {
	Console ConsoleConfig `yaml:"console"`
	Cli     CliConfig     `yaml:"cli"`
}

// DefaultConfig returns the configuration used when no config file is
// present. The secret is intentionally empty here; the loader fills it with
// a random cookie so stray nodes cannot join unnoticed.
func DefaultConfig() *Config {
	return &Config{
		Console: ConsoleConfig{
			Server: ServerConfig{
				Nodename: "gatehouse",
				Hostname: "localhost",
				Port:     8444,
			},
			Directory: DirectoryConfig{
				URL:     "http://localhost:9000",
				Timeout: 15 * time.Second,
			},
			Overview: OverviewConfig{
				Enabled:         true,
				Interval:        5 * time.Minute,
				VersionCacheTTL: time.Hour,
			},
			Logging: LoggingConfig{
				FilePath:        "~/.local/state/gatehouse/log/console.log",
				FileLogLevel:    slog.LevelDebug,
				ConsoleLogLevel: slog.LevelInfo,
			},
		},
		Cli: CliConfig{
			API: APIConfig{
				URL:  "http://localhost",
				Port: 8444,
			},
		},
	}
}
