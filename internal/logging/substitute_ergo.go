// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"fmt"
	"log/slog"

	"ergo.services/ergo/gen"
	"github.com/fatih/color"
)

// ErgoLogger routes actor-runtime log messages into slog so the node shares
// the process-wide handlers.
type ErgoLogger struct{}

func NewErgoLogger() (gen.LoggerBehavior, error) {
	return &ErgoLogger{}, nil
}

func (l *ErgoLogger) Log(message gen.MessageLog) {
	attrs := l.sourceAttrs(message.Source)

	msg := fmt.Sprintf(message.Format, l.formatArgs(message.Args)...)

	// Append attributes to the message itself to keep colors intact
	for i := 0; i+1 < len(attrs); i += 2 {
		msg = fmt.Sprintf("%s [%v=%v]", msg, attrs[i], attrs[i+1])
	}

	switch message.Level {
	case gen.LogLevelTrace, gen.LogLevelDebug:
		slog.Debug(msg)
	case gen.LogLevelInfo:
		slog.Info(msg)
	case gen.LogLevelWarning:
		slog.Warn(msg)
	case gen.LogLevelError, gen.LogLevelPanic:
		slog.Error(msg)
	default:
		slog.Info(msg)
	}
}

func (l *ErgoLogger) sourceAttrs(source any) []any {
	var attrs []any

	switch src := source.(type) {
	case gen.MessageLogNode:
		attrs = append(attrs, "node", color.GreenString(src.Node.CRC32()))
	case gen.MessageLogNetwork:
		attrs = append(attrs,
			"node", color.GreenString(src.Node.CRC32()),
			"peer", color.GreenString(src.Peer.CRC32()))
	case gen.MessageLogProcess:
		attrs = append(attrs, "pid", color.BlueString("%s", src.PID))
		if src.Name != "" {
			attrs = append(attrs, "name", color.GreenString(src.Name.String()))
		}
		attrs = append(attrs, "behavior", color.GreenString(src.Behavior))
	case gen.MessageLogMeta:
		attrs = append(attrs, "meta", color.CyanString("%s", src.Meta), "behavior", src.Behavior)
	}

	return attrs
}

func (l *ErgoLogger) formatArgs(args []any) []any {
	formatted := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case gen.PID, gen.ProcessID:
			formatted[i] = color.BlueString("%s", v)
		case gen.Atom:
			formatted[i] = color.GreenString("%s", v)
		case gen.Ref, gen.Alias, gen.Event:
			formatted[i] = color.CyanString("%s", v)
		default:
			formatted[i] = v
		}
	}
	return formatted
}

func (l *ErgoLogger) Terminate() {}
