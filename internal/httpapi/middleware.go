package httpapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

const maxLoggedBodyBytes = 2048

// statusRecorder captures the status code, the number of bytes written and,
// when maxLogBytes > 0, a prefix of the body for debug logging.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	maxLogBytes  int
	bytesWritten int
	logBody      bytes.Buffer
	truncated    bool
	wroteHeader  bool
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	if !r.wroteHeader {
		r.statusCode = statusCode
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(statusCode)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	r.wroteHeader = true
	written, err := r.ResponseWriter.Write(p)
	r.bytesWritten += written

	if remaining := r.maxLogBytes - r.logBody.Len(); remaining > 0 {
		chunk := p[:written]
		if len(chunk) > remaining {
			chunk = chunk[:remaining]
			r.truncated = true
		}
		r.logBody.Write(chunk)
	} else if r.maxLogBytes > 0 && written > 0 {
		r.truncated = true
	}
	return written, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// requestLogger writes one access log line per request. Response bodies are
// only captured when debug logging is enabled.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			debugEnabled := logger.Enabled(r.Context(), slog.LevelDebug)
			recorder := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			if debugEnabled {
				recorder.maxLogBytes = maxLoggedBodyBytes
			}

			started := time.Now()
			next.ServeHTTP(recorder, r)

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.statusCode,
				"bytes", recorder.bytesWritten,
				"duration_ms", time.Since(started).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			}
			if debugEnabled {
				attrs = append(attrs, "body", recorder.logBody.String(), "body_truncated", recorder.truncated)
				logger.DebugContext(r.Context(), "http request", attrs...)
				return
			}
			logger.InfoContext(r.Context(), "http request", attrs...)
		})
	}
}

// recoverer turns a handler panic into a 500 envelope.
func recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"request_id", middleware.GetReqID(r.Context()),
						"stack", string(debug.Stack()),
					)
					writeError(w, http.StatusInternalServerError, internalErrorMessage)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
