// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gatehouse-id/gatehouse"
	"github.com/gatehouse-id/gatehouse/internal/api"
	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/cli/config"
	"github.com/gatehouse-id/gatehouse/internal/cli/display"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	"github.com/gatehouse-id/gatehouse/internal/usage"
	"github.com/gatehouse-id/gatehouse/internal/util"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

// ErrSourceViewTimeout is returned when a source view does not leave the
// loading state within the polling deadline.
var ErrSourceViewTimeout = errors.New("timed out waiting for source resolution")

type App struct {
	Config *pkgmodel.Config

	Usage usage.Sender
}

func NewApp() *App {
	u, err := usage.NewPostHogSender()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(1)
	}

	app := &App{
		Config: pkgmodel.DefaultConfig(),
		Usage:  u,
	}

	err = config.Config.EnsureClientID()
	if err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(1)
	}

	return app
}

// LoadConfig fills the app config from a YAML file. An explicitly provided
// path must exist; otherwise the default locations are tried and a missing
// file just leaves the defaults in place.
func (a *App) LoadConfig(path string, configPathPrefix string) error {
	if path != "" {
		return a.loadConfigFile(util.ExpandHomePath(path))
	}

	for _, extension := range []string{".yaml", ".yml"} {
		candidate := util.ExpandHomePath(configPathPrefix + extension)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		return a.loadConfigFile(candidate)
	}

	return nil
}

func (a *App) loadConfigFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration from '%s': %w", path, err)
	}

	// Unmarshal over the defaults so a partial file only overrides what it
	// names.
	cfg := pkgmodel.DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("failed to load configuration from '%s': %w", path, err)
	}

	a.Config = cfg
	return nil
}

func (a *App) client() *api.Client {
	return api.NewClient(a.Config.Cli.API, nil)
}

// ViewSource opens a view session, points it at the given source slug and
// polls until the view has either resolved or the deadline passes. The view
// session is closed before returning.
func (a *App) ViewSource(slug string, timeout time.Duration) (*sourceview.View, error) {
	client := a.client()

	if compatible, _, err := a.runBeforeCommand(client); !compatible {
		return nil, err
	}

	viewID, err := client.OpenView()
	if err != nil {
		return nil, err
	}
	//nolint:errcheck
	defer client.CloseView(viewID)

	if err := client.ShowSource(viewID, slug); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	for {
		view, err := client.View(viewID)
		if err != nil {
			return nil, err
		}

		if view.State != sourceview.ViewStateLoading || view.Notice != "" {
			return view, nil
		}

		if time.Now().After(deadline) {
			return view, ErrSourceViewTimeout
		}

		time.Sleep(250 * time.Millisecond)
	}
}

func (a *App) Overview() (*overview.Snapshot, error) {
	client := a.client()

	if compatible, _, err := a.runBeforeCommand(client); !compatible {
		return nil, err
	}

	return client.Overview()
}

func (a *App) Stats() (*apimodel.Stats, error) {
	client := a.client()

	compatible, stats, err := a.runBeforeCommand(client)
	if !compatible {
		return nil, err
	}

	return stats, nil
}

func (a *App) runBeforeCommand(client *api.Client) (bool, *apimodel.Stats, error) {
	stats, err := client.Stats()
	if err != nil {
		if err == syscall.ECONNREFUSED {
			return false, nil, fmt.Errorf("console is not running; please start the console and try again\n\n%s %s", display.Gold("Getting started:"), display.DocRoot)
		}
		return false, nil, fmt.Errorf("error fetching stats from console: %v", err)
	}

	if stats.Version != gatehouse.Version {
		return false, nil, fmt.Errorf("incompatible console version: expected %s, got %s\n\n%s %s/%s", gatehouse.Version, stats.Version, display.Gold("Configuration documentation:"), display.DocRoot, "operations")
	}

	if a.Usage != nil && !a.Config.Cli.DisableUsageReporting {
		_ = a.Usage.SendStats(stats, !strings.HasSuffix(os.Args[0], "gatehouse"))
	}

	return true, stats, nil
}
