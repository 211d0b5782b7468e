// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/gatehouse-id/gatehouse/internal/util"
	pkgmodel "github.com/gatehouse-id/gatehouse/pkg/model"
)

const NoLoggingLevel = slog.Level(100) // A level higher than any standard level to disable logging

func SetupInitialLogging() {
	w := os.Stdout
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
		}),
	))

	redirectStdLog()
}

// SetupClientLogging routes all CLI-side logs into a rotated file so command
// output stays clean.
func SetupClientLogging(logFilePath string) {
	if err := util.EnsureFileFolderHierarchy(logFilePath); err != nil {
		slog.Error("Failed to create log folder hierarchy", "error", err)
		return
	}

	lumber := &lumberjack.Logger{
		Filename: logFilePath,
		Compress: true,
	}

	handler := &TeeHandler{
		fileHandler: tint.NewHandler(lumber, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC3339,
		}),
	}

	slog.SetDefault(slog.New(handler))

	redirectStdLog()
}

// SetupConsoleLogging configures logging for the long-running console
// process: a rotated file handler plus, unless disabled, a tinted console
// handler with its own level.
func SetupConsoleLogging(loggingConfig *pkgmodel.LoggingConfig) {
	if err := util.EnsureFileFolderHierarchy(loggingConfig.FilePath); err != nil {
		slog.Error("Failed to create log folder hierarchy", "error", err)
		return
	}

	lumber := &lumberjack.Logger{
		Filename: loggingConfig.FilePath,
		Compress: true,
	}

	handler := &TeeHandler{
		fileHandler: tint.NewHandler(lumber, &tint.Options{
			Level:      loggingConfig.FileLogLevel,
			TimeFormat: time.RFC3339,
		}),
	}

	if loggingConfig.ConsoleLogLevel != NoLoggingLevel {
		handler.consoleHandler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      loggingConfig.ConsoleLogLevel,
			TimeFormat: time.RFC3339,
		})
	}

	slog.SetDefault(slog.New(handler))

	redirectStdLog()
}

// redirectStdLog sends the standard library logger through slog, in case
// some deep dependency still uses it.
func redirectStdLog() {
	lw := &slogWriter{}
	log.Default().SetOutput(lw)
	log.SetOutput(lw)
}

// TeeHandler fans records out to a file handler and an optional console
// handler, each with its own level.
type TeeHandler struct {
	fileHandler    slog.Handler
	consoleHandler slog.Handler
}

func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.fileHandler.Enabled(ctx, level) {
		return true
	}
	return h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, level)
}

func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.fileHandler.Enabled(ctx, r.Level) {
		if err := h.fileHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if h.consoleHandler != nil && h.consoleHandler.Enabled(ctx, r.Level) {
		if err := h.consoleHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := &TeeHandler{
		fileHandler: h.fileHandler.WithAttrs(attrs),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithAttrs(attrs)
	}

	return newHandler
}

func (h *TeeHandler) WithGroup(name string) slog.Handler {
	newHandler := &TeeHandler{
		fileHandler: h.fileHandler.WithGroup(name),
	}

	if h.consoleHandler != nil {
		newHandler.consoleHandler = h.consoleHandler.WithGroup(name)
	}

	return newHandler
}
