package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"maxgear/internal/domain"
	"maxgear/internal/eventbus"
)

// New creates a structured logger writing to w
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", "maxgear"))
}

// ParseLevel maps a config level name to a slog level; unknown names mean info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenFile opens path for appending, creating parent directories. The
// terminal belongs to the UI, so logs never go to stdout.
func OpenFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// SubscribeEvents logs search lifecycle and screen events published on bus.
// It returns a function removing every subscription.
func SubscribeEvents(bus eventbus.EventBus, logger *slog.Logger) func() {
	handler := func(e eventbus.DomainEvent) { LogEvent(logger, e) }

	unsubs := []func(){
		bus.Subscribe(eventbus.EventSearchStarted, handler),
		bus.Subscribe(eventbus.EventSearchSucceeded, handler),
		bus.Subscribe(eventbus.EventSearchFailed, handler),
		bus.Subscribe(eventbus.EventSearchDiscarded, handler),
		bus.Subscribe(eventbus.EventScreenChanged, handler),
		bus.Subscribe(eventbus.EventCatalogHealth, handler),
		bus.Subscribe(eventbus.EventConfigLoaded, handler),
		bus.Subscribe(eventbus.EventConfigSaved, handler),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// LogEvent writes one log record for a domain event
func LogEvent(logger *slog.Logger, e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case domain.SearchStartedEvent:
		logger.Info("search started",
			slog.Uint64("seq", ev.Seq),
			slog.String("request_id", ev.RequestID),
			slog.String("query", ev.Query),
		)
	case domain.SearchSucceededEvent:
		logger.Info("search succeeded",
			slog.Uint64("seq", ev.Seq),
			slog.String("request_id", ev.RequestID),
			slog.String("query", ev.Query),
			slog.Int("count", ev.Count),
			slog.Duration("elapsed", ev.Elapsed),
		)
	case domain.SearchFailedEvent:
		logger.Warn("search failed",
			slog.Uint64("seq", ev.Seq),
			slog.String("request_id", ev.RequestID),
			slog.String("query", ev.Query),
			slog.String("message", ev.Message),
			slog.Any("error", ev.Err),
			slog.Duration("elapsed", ev.Elapsed),
		)
	case domain.SearchDiscardedEvent:
		logger.Debug("stale search result discarded",
			slog.Uint64("seq", ev.Seq),
			slog.Uint64("latest", ev.Latest),
			slog.String("request_id", ev.RequestID),
			slog.String("query", ev.Query),
		)
	case domain.ScreenChangedEvent:
		logger.Debug("screen changed", slog.String("from", ev.From), slog.String("to", ev.To))
	case domain.CatalogHealthEvent:
		if ev.Online {
			logger.Info("catalog service online")
		} else {
			logger.Warn("catalog service offline", slog.Any("error", ev.Err))
		}
	case domain.ConfigLoadedEvent:
		logger.Info("config loaded", slog.String("path", ev.Path))
	case domain.ConfigSavedEvent:
		logger.Info("config saved", slog.String("path", ev.Path))
	default:
		logger.Debug("event", slog.String("type", string(e.Type())))
	}
}
