package devserver

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// maxLoggedBody caps how much of a request body ends up in the log.
const maxLoggedBody = 512

func loggingMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(requestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(requestIDHeader, id)

			// Log request
			body, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
			if len(body) > maxLoggedBody {
				body = body[:maxLoggedBody]
			}
			log.Debug("REQ",
				zap.String("id", id),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.ByteString("body", body))

			// Capture response
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			// Log response
			log.Info("RES",
				zap.String("id", id),
				zap.Int("status", wrapper.statusCode),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// csrfMiddleware rejects unsafe requests whose X-CSRFToken header does not
// match the csrftoken cookie handed out with the HTML pages.
func csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}
		cookie, err := r.Cookie(csrfCookieName)
		header := r.Header.Get(csrfHeader)
		if err != nil || cookie.Value == "" || header != cookie.Value {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "CSRF verification failed"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
