package httpd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/indigo-web/mediatype/internal/metric"
)

type requestLogger struct {
	logger *zerolog.Logger
}

type requestLogEntry struct {
	logger *zerolog.Logger
	fields map[string]any
}

// newStructuredLogger returns a middleware logging every served request and counting it.
func newStructuredLogger(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return middleware.RequestLogger(&requestLogger{logger})
}

func (l *requestLogger) NewLogEntry(r *http.Request) middleware.LogEntry {
	fields := map[string]any{
		"remote_addr": r.RemoteAddr,
		"method":      r.Method,
		"uri":         r.RequestURI,
		"user_agent":  r.UserAgent(),
	}

	if id := middleware.GetReqID(r.Context()); len(id) > 0 {
		fields["request_id"] = id
	}

	return &requestLogEntry{logger: l.logger, fields: fields}
}

func (e *requestLogEntry) Write(status, bytes int, _ http.Header, elapsed time.Duration, _ any) {
	metric.HTTPRequestServed(status)

	var ev *zerolog.Event
	switch {
	case status >= http.StatusInternalServerError:
		ev = e.logger.Error()
	case status >= http.StatusBadRequest:
		ev = e.logger.Warn()
	default:
		ev = e.logger.Debug()
	}

	ev.Str("sender", logSender).
		Fields(e.fields).
		Int("resp_status", status).
		Int("resp_size", bytes).
		Dur("elapsed", elapsed).
		Send()
}

func (e *requestLogEntry) Panic(v any, stack []byte) {
	e.logger.Error().
		Str("sender", logSender).
		Fields(e.fields).
		Str("panic", fmt.Sprintf("%+v", v)).
		Str("stack", string(stack)).
		Send()
}
