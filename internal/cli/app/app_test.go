// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build unit

package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

func TestLoadConfigDefaultsWhenNoFileExists(t *testing.T) {
	app := &App{Config: pkgmodel.DefaultConfig()}

	err := app.LoadConfig("", filepath.Join(t.TempDir(), "gatehouse.conf"))

	require.NoError(t, err)
	assert.Equal(t, pkgmodel.DefaultConfig(), app.Config)
}

func TestLoadConfigPartialFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gatehouse.conf.yaml")
	content := `
console:
  directory:
    url: https://directory.internal:9443
  overview:
    interval: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	app := &App{Config: pkgmodel.DefaultConfig()}
	err := app.LoadConfig("", filepath.Join(dir, "gatehouse.conf"))

	require.NoError(t, err)
	assert.Equal(t, "https://directory.internal:9443", app.Config.Console.Directory.URL)
	assert.Equal(t, 30*time.Second, app.Config.Console.Overview.Interval)
	// Untouched sections keep their defaults.
	assert.Equal(t, pkgmodel.DefaultConfig().Console.Server.Port, app.Config.Console.Server.Port)
	assert.Equal(t, pkgmodel.DefaultConfig().Cli.API.URL, app.Config.Cli.API.URL)
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	app := &App{Config: pkgmodel.DefaultConfig()}

	err := app.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), "")

	assert.Error(t, err)
}

func TestLoadConfigRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("console: [not a mapping"), 0600))

	app := &App{Config: pkgmodel.DefaultConfig()}
	err := app.LoadConfig(path, "")

	assert.Error(t, err)
}
