package observability

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// statusWriter wraps [http.ResponseWriter] to capture the status code.
type statusWriter struct {
	http.ResponseWriter

	statusCode int
	written    bool
}

// WriteHeader captures the status code before delegating to the wrapped writer.
func (sw *statusWriter) WriteHeader(code int) {
	if !sw.written {
		sw.statusCode = code
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(buf []byte) (int, error) {
	if !sw.written {
		sw.statusCode = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(buf)
}

// LoggingMiddleware logs one Info record per request with method, path,
// status and duration. Server errors are logged at Warn.
func LoggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, hr *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: rw, statusCode: http.StatusOK}
		next.ServeHTTP(sw, hr)

		level := slog.LevelInfo
		if sw.statusCode >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.LogAttrs(hr.Context(), level, "http request",
			slog.String("method", hr.Method),
			slog.String("path", hr.URL.Path),
			slog.Int("status", sw.statusCode),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

// HealthHandler returns an [http.Handler] for liveness checks at /healthz.
// It always returns HTTP 200 with {"status":"ok"}.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(rw).Encode(map[string]string{"status": "ok"})
	})
}
