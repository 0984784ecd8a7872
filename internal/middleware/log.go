package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *loggingResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

const maxLoggedBody = 1024

func LogMiddleware(logger *zap.SugaredLogger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			var body []byte
			if r.Body != nil {
				// only the logged prefix is buffered, the handler still reads the whole stream
				body, _ = io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
			}

			lw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lw, r)

			logger.Infof("request_id=%s method=%s uri=%s status=%d duration=%s size=%d body=%s outputheaders=%v",
				RequestIDFromContext(r.Context()), r.Method, r.RequestURI, lw.status, time.Since(start), lw.size,
				loggedBody(r.URL.Path, body), loggedHeaders(lw.Header()))
		})
	}
}

var secretHeaders = []string{"Authorization", "Set-Cookie"}

// loggedHeaders masks credentials in a copy of the response headers.
func loggedHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, name := range secretHeaders {
		if out.Get(name) != "" {
			out.Set(name, "[redacted]")
		}
	}
	return out
}

// loggedBody hides credentials and truncates large payloads.
func loggedBody(path string, body []byte) string {
	if strings.HasSuffix(path, "/login") {
		return "[redacted]"
	}
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
