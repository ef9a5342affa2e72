package parser

import (
	"context"
	"log/slog"
)

// Logger receives structured diagnostics from the reader, the validator and
// the command history. Attributes are slog-style key/value pairs:
//
//	logger.Debug("unknown property kept as extension", "kind", "info", "property", "termsOfServce")
//
// Any slog-compatible logger fits behind it; [NewSlogAdapter] wraps a
// *slog.Logger directly.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything. Readers, validators and histories use it
// when no logger is configured.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter routes Logger calls to a *slog.Logger.
type SlogAdapter struct {
	logger *slog.Logger
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.log(slog.LevelDebug, msg, attrs) }
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.log(slog.LevelInfo, msg, attrs) }
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.log(slog.LevelWarn, msg, attrs) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.log(slog.LevelError, msg, attrs) }

// With returns an adapter whose records carry attrs.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

func (s *SlogAdapter) log(level slog.Level, msg string, attrs []any) {
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}
	s.logger.Log(ctx, level, msg, attrs...)
}
