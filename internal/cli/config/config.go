// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/ksuid"
)

const (
	ConfigFileNamePrefix = "gatehouse.conf"
	ConfigDirectory      = ".config/gatehouse"
	DataDirectory        = ".local/state/gatehouse"
)

var Config = cliconfig{}

type cliconfig struct{}

func (cliconfig) ConfigDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, ConfigDirectory)
}

func (cliconfig) DataDirectory() string {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(homePath, DataDirectory)
}

func (cliconfig) EnsureConfigDirectory() error {
	configPath := Config.ConfigDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure gatehouse config directory")
	}

	return os.MkdirAll(configPath, 0700)
}

func (cliconfig) EnsureDataDirectory() error {
	dataPath := Config.DataDirectory()
	if dataPath == "" {
		return fmt.Errorf("failed to ensure gatehouse data directory")
	}

	return os.MkdirAll(dataPath, 0700)
}

func (cliconfig) EnsureId(id string) error {
	configPath := Config.DataDirectory()
	if configPath == "" {
		return fmt.Errorf("failed to ensure gatehouse directory")
	}

	idFile := filepath.Join(configPath, id)
	if _, err := os.Stat(idFile); os.IsNotExist(err) {
		err := os.WriteFile(idFile, []byte(ksuid.New().String()), 0600)
		if err != nil {
			return fmt.Errorf("failed to create ID file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check ID file: %w", err)
	}

	return nil
}

func (cliconfig) EnsureClientID() error {
	return Config.EnsureId("cli_client_id")
}

func (cliconfig) EnsureConsoleID() error {
	return Config.EnsureId("console_id")
}

func (cliconfig) readId(id string) (string, error) {
	configPath := Config.DataDirectory()
	if configPath == "" {
		return "", fmt.Errorf("failed to retrieve gatehouse directory")
	}

	data, err := os.ReadFile(filepath.Join(configPath, id))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

func (cliconfig) ClientID() (string, error) {
	return Config.readId("cli_client_id")
}

func (cliconfig) ConsoleID() (string, error) {
	return Config.readId("console_id")
}
