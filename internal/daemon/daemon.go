// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package daemon runs the long-lived console process: the actor node plus
// the HTTP API in front of it, with PID-file based lifecycle management.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gatehouse-id/gatehouse/internal/api"
	"github.com/gatehouse-id/gatehouse/internal/console"
	"github.com/gatehouse-id/gatehouse/internal/imconc"
	"github.com/gatehouse-id/gatehouse/internal/logging"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

const (
	pidFile = "/tmp/gatehouse.pid"
)

type Daemon struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	cfg    *pkgmodel.Config
	id     string
}

func New(cfg *pkgmodel.Config, id string) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())
	return &Daemon{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		cfg:    cfg,
		id:     id,
	}
}

func (d *Daemon) Start() error {
	// Check if already running
	if _, err := os.Stat(pidFile); err == nil {
		return fmt.Errorf("console appears to be already running (PID file exists)")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	pid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", pid)), 0600); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}

	imwg := imconc.NewConcGroup()
	go func() {
		defer func() {
			d.cleanup()
			close(d.done)
		}()

		logging.SetupConsoleLogging(&d.cfg.Console.Logging)

		slog.Info("Starting console", "id", d.id)

		c, err := console.NewConsole(d.ctx, d.cfg, d.id)
		if err != nil {
			slog.Error("Failed to create console", "error", err)
			return
		}
		imwg.Add(c)

		if err := c.Start(); err != nil {
			slog.Error("Failed to start console", "error", err)
			return
		}

		slog.Info("Console started")

		apiServer := api.NewServer(d.ctx, c, &d.cfg.Console.Server, promhttp.Handler())
		imwg.Add(apiServer)
		imwg.Go(func() {
			apiServer.Start()
		})

		// Handle signals and shutdown
		go func() {
			select {
			case sig := <-sigChan:
				slog.Info("Received signal", "signal", sig)
				d.cancel()
			case <-d.ctx.Done():
				slog.Info("Context canceled")
			}
		}()
		<-d.ctx.Done()

		// Ensure the process doesn't hang indefinitely on shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		slog.Info("Stopping console")
		c.Stop(false)

		done := make(chan struct{})
		go func() {
			imwg.Wait()
			close(done)
		}()

		select {
		case <-done:
			slog.Info("Components stopped gracefully")
		case <-shutdownCtx.Done():
			slog.Warn("Shutdown timed out, forcing stop")
			imwg.Stop(true)
		}
	}()

	return nil
}

func (d *Daemon) Stop() error {
	pidBytes, err := os.ReadFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("console is not running (no PID file found)")
		}
		return fmt.Errorf("failed to read pid file: %w", err)
	}

	var pid int
	if _, err := fmt.Sscanf(string(pidBytes), "%d", &pid); err != nil {
		return fmt.Errorf("invalid pid file content: %w", err)
	}

	// Check if we are the process
	if pid == os.Getpid() {
		if d.cancel != nil {
			d.cancel()
		}
		<-d.done
		return nil
	}

	// We are not the process, try to stop it
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err.Error() == "os: process already finished" {
			d.cleanup()
			return fmt.Errorf("console is not running (stale PID file)")
		}
		return fmt.Errorf("failed to send signal to process: %w", err)
	}

	if waitForPidFileRemoval(10 * time.Second) {
		return nil
	}

	// If SIGTERM didn't work, try SIGKILL as a last resort
	slog.Warn("SIGTERM timeout, attempting SIGKILL")
	if err := process.Signal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to SIGKILL process: %w", err)
	}

	// Clean up the PID file since SIGKILL won't trigger normal cleanup
	d.cleanup()
	return nil
}

func (d *Daemon) Wait() {
	<-d.done
}

func (d *Daemon) cleanup() {
	slog.Info("Cleaning up")
	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		slog.Error("Failed to remove pid file", "error", err)
	}
}

func waitForPidFileRemoval(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(pidFile); os.IsNotExist(err) {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
