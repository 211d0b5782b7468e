// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"log/slog"
	"strings"
)

// slogWriter maps standard-library log output onto slog levels by sniffing
// the conventional level prefix.
type slogWriter struct{}

func (w *slogWriter) Write(p []byte) (n int, err error) {
	line := string(p)

	switch {
	case strings.HasPrefix(line, "ERROR "):
		slog.Error(strings.TrimPrefix(line, "ERROR "))
	case strings.HasPrefix(line, "WARN "):
		slog.Warn(strings.TrimPrefix(line, "WARN "))
	case strings.HasPrefix(line, "INFO "):
		slog.Info(strings.TrimPrefix(line, "INFO "))
	default:
		slog.Debug(line)
	}

	return len(p), nil
}
