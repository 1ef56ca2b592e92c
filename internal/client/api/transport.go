package api

import (
	"log/slog"
	"net/http"
	"time"
)

// loggingTransport логирует каждый HTTP запрос к API.
// Не логирует заголовки и тела (там токены).
type loggingTransport struct {
	next   http.RoundTripper
	logger *slog.Logger
}

// NewLoggingTransport wraps next (http.DefaultTransport when nil)
func NewLoggingTransport(next http.RoundTripper, logger *slog.Logger) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &loggingTransport{next: next, logger: logger}
}

// RoundTrip implements http.RoundTripper
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)
	if err != nil {
		t.logger.Log(req.Context(), slog.LevelWarn, "HTTP request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", req.Header.Get("X-Request-ID"),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	// Определяем уровень логирования на основе статуса
	logLevel := slog.LevelDebug
	if resp.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if resp.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}

	t.logger.Log(req.Context(), logLevel, "HTTP request",
		"method", req.Method,
		"path", req.URL.Path,
		"request_id", req.Header.Get("X-Request-ID"),
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	return resp, nil
}
