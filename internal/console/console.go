// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package console runs the actor node behind the admin console: one source
// view actor per open session, a fetcher doing the directory lookups, and
// the overview collector. The HTTP layer talks to it through ConsoleAPI.
package console

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ergo.services/application/observer"
	"ergo.services/ergo"
	"ergo.services/ergo/gen"
	"ergo.services/ergo/net/registrar"
	"github.com/segmentio/ksuid"

	"github.com/gatehouse-id/gatehouse"
	apimodel "github.com/gatehouse-id/gatehouse/internal/api/model"
	"github.com/gatehouse-id/gatehouse/internal/console/actornames"
	"github.com/gatehouse-id/gatehouse/internal/console/overview"
	"github.com/gatehouse-id/gatehouse/internal/console/renderers"
	"github.com/gatehouse-id/gatehouse/internal/console/sourceview"
	"github.com/gatehouse-id/gatehouse/internal/directory"
	"github.com/gatehouse-id/gatehouse/internal/logging"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

const (
	// actorCallTimeout is the maximum time we wait for the ConsoleBridge actor to respond
	actorCallTimeout = 30 * time.Second
)

// ErrViewNotFound marks operations against a view session that does not
// exist (never opened, or already closed).
var ErrViewNotFound = errors.New("view not found")

// ConsoleAPI is the surface the HTTP server and the CLI entrypoints consume.
type ConsoleAPI interface {
	OpenView() (string, error)
	ShowSource(viewID string, slug string) error
	View(viewID string) (*sourceview.View, error)
	CloseView(viewID string) error
	Overview() (*overview.Snapshot, error)
	Stats() (*apimodel.Stats, error)
}

type Console struct {
	nodeName  string
	options   gen.NodeOptions
	Node      gen.Node
	Directory *directory.Client
	Registry  *sourceview.Registry
	Cfg       *pkgmodel.Config
	ConsoleID string
}

func NewConsole(ctx context.Context, cfg *pkgmodel.Config, consoleID string) (*Console, error) {
	client := directory.NewClient(cfg.Console.Directory)
	return NewConsoleWithDirectory(ctx, cfg, client, consoleID)
}

func NewConsoleWithDirectory(ctx context.Context, cfg *pkgmodel.Config, client *directory.Client, consoleID string) (*Console, error) {
	console := &Console{
		Directory: client,
		Registry:  renderers.DefaultRegistry(client),
		Cfg:       cfg,
		ConsoleID: consoleID,
	}

	console.nodeName = fmt.Sprintf("%s@%s", cfg.Console.Server.Nodename, cfg.Console.Server.Hostname)

	apps := []gen.ApplicationBehavior{
		CreateApplication(),
	}

	if cfg.Console.Server.ObserverPort != 0 {
		apps = append(apps, observer.CreateApp(observer.Options{
			Port: uint16(cfg.Console.Server.ObserverPort),
		}))
	}

	console.options.Applications = apps

	console.options.Env = map[gen.Env]any{
		gen.Env("DirectoryClient"):  console.Directory,
		gen.Env("RendererRegistry"): console.Registry,
		gen.Env("Context"):          ctx,
		gen.Env("disable_metrics"):  true,
		gen.Env("ServerConfig"):     cfg.Console.Server,
		gen.Env("OverviewConfig"):   cfg.Console.Overview,
		gen.Env("LoggingConfig"):    cfg.Console.Logging,
		gen.Env("ConsoleID"):        consoleID,
	}

	console.options.Network.Mode = gen.NetworkModeEnabled

	// The environment holds non-serializable values (the directory client,
	// the renderer registry, the context), so it must not travel with
	// remote spawns.
	console.options.Security.ExposeEnvRemoteSpawn = false

	// Use the secret from config which defaults to a random value from the loader
	console.options.Network.Cookie = cfg.Console.Server.Secret

	// Configure Ergo listen address with custom port (enables parallel test execution)
	if cfg.Console.Server.ErgoPort != 0 {
		console.options.Network.Acceptors = []gen.AcceptorOptions{
			{
				Host:      cfg.Console.Server.Hostname,
				Port:      uint16(cfg.Console.Server.ErgoPort),
				Registrar: registrar.Create(registrar.Options{Port: uint16(cfg.Console.Server.ErgoPort)}),
			},
		}
	}

	console.options.Log.DefaultLogger.Disable = true
	console.options.Log.Level = gen.LogLevelDebug
	logger, err := logging.NewErgoLogger()
	if err != nil {
		slog.Error("Failed to create logger", "error", err)
		return nil, err
	}

	console.options.Log.Loggers = append(console.options.Log.Loggers, gen.Logger{Name: "ergo", Logger: logger})

	return console, nil
}

func (c *Console) Start() error {
	slog.Info("Starting actor node", "node", c.nodeName)

	node, err := ergo.StartNode(gen.Atom(c.nodeName), c.options)
	if err != nil {
		slog.Error("Failed to start node", "error", err)
		return err
	}
	c.Node = node

	return nil
}

func (c *Console) Stop(force bool) {
	slog.Info("Stopping node", "node", c.nodeName)
	if c.Node != nil {
		if force {
			c.Node.StopForce()
		} else {
			c.Node.Stop()
		}
	}

	slog.Info("Node stopped", "node", c.nodeName)
}

// OpenView opens a new view session and returns its ID.
func (c *Console) OpenView() (string, error) {
	viewID := ksuid.New().String()

	_, err := c.callActor(
		gen.ProcessID{Name: actornames.ViewSupervisor, Node: c.Node.Name()},
		EnsureSourceView{ViewID: viewID},
	)
	if err != nil {
		return "", fmt.Errorf("failed to open view: %w", err)
	}

	return viewID, nil
}

// ShowSource sets the slug a view session should present. It returns as
// soon as the view accepted the slug; the resolution itself is
// asynchronous.
func (c *Console) ShowSource(viewID string, slug string) error {
	err := c.Node.Send(
		gen.ProcessID{Name: actornames.SourceView(viewID), Node: c.Node.Name()},
		sourceview.ShowSource{Slug: slug},
	)
	if err != nil {
		return mapViewError(viewID, err)
	}

	return nil
}

// View returns what the session should display right now.
func (c *Console) View(viewID string) (*sourceview.View, error) {
	result, err := c.callActor(
		gen.ProcessID{Name: actornames.SourceView(viewID), Node: c.Node.Name()},
		sourceview.CurrentView{},
	)
	if err != nil {
		return nil, mapViewError(viewID, err)
	}

	view, ok := result.(sourceview.View)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T from view %s", result, viewID)
	}

	return &view, nil
}

// CloseView closes a view session.
func (c *Console) CloseView(viewID string) error {
	_, err := c.callActor(
		gen.ProcessID{Name: actornames.ViewSupervisor, Node: c.Node.Name()},
		CloseSourceView{ViewID: viewID},
	)
	if err != nil {
		return mapViewError(viewID, err)
	}

	return nil
}

// Overview returns the last collected admin overview snapshot.
func (c *Console) Overview() (*overview.Snapshot, error) {
	result, err := c.callActor(
		gen.ProcessID{Name: actornames.OverviewCollector, Node: c.Node.Name()},
		overview.CurrentSnapshot{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get overview snapshot: %w", err)
	}

	snapshot, ok := result.(overview.Snapshot)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T from overview collector", result)
	}

	return &snapshot, nil
}

func (c *Console) Stats() (*apimodel.Stats, error) {
	result, err := c.callActor(
		gen.ProcessID{Name: actornames.ViewSupervisor, Node: c.Node.Name()},
		OpenViewCount{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count open views: %w", err)
	}

	openViews, ok := result.(int)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T from view supervisor", result)
	}

	kinds := make([]string, 0, len(c.Registry.Kinds()))
	for _, kind := range c.Registry.Kinds() {
		kinds = append(kinds, string(kind))
	}

	return &apimodel.Stats{
		Version:   gatehouse.Version,
		ConsoleID: c.ConsoleID,
		OpenViews: openViews,
		Kinds:     kinds,
	}, nil
}

// callActor provides a synchronous call interface from the non-actor world
// to the actor world by using the ConsoleBridge actor.
func (c *Console) callActor(target gen.ProcessID, message any) (any, error) {
	successChan := make(chan any, 1)
	errorChan := make(chan error, 1)

	request := CallActorRequest{
		Target:      target,
		Message:     message,
		SuccessChan: successChan,
		ErrorChan:   errorChan,
	}

	err := c.Node.Send(
		gen.ProcessID{Name: actornames.ConsoleBridge, Node: c.Node.Name()},
		request,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to ConsoleBridge: %w", err)
	}

	select {
	case response := <-successChan:
		return response, nil
	case err := <-errorChan:
		return nil, err
	case <-time.After(actorCallTimeout):
		return nil, fmt.Errorf("timeout waiting for actor response")
	}
}

// mapViewError turns "no such process" into ErrViewNotFound so the HTTP
// layer can answer 404 instead of 500.
func mapViewError(viewID string, err error) error {
	if errors.Is(err, ErrViewNotFound) {
		return err
	}
	if errors.Is(err, gen.ErrProcessUnknown) {
		return fmt.Errorf("%w: %s", ErrViewNotFound, viewID)
	}
	return err
}
