package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/cors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/boardgame-journal/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const uploadTokenHeader = "X-Upload-Token"

// uploadAuth guards the write routes. With neither a shared token nor a JWT
// secret configured the routes are open.
type uploadAuth struct {
	responder   Responder
	logger      zerolog.Logger
	uploadToken string
	jwtSecret   []byte
	// maxBody bounds the multipart form parsed to find the token field
	maxBody int64
}

func newUploadAuth(uploadToken, jwtSecret string, maxBody int64) uploadAuth {
	logger := log.With().Str("handlerName", "uploadAuth").Logger()
	return uploadAuth{
		responder:   NewResponder(logger),
		logger:      logger,
		uploadToken: uploadToken,
		jwtSecret:   []byte(jwtSecret),
		maxBody:     maxBody,
	}
}

func (m uploadAuth) open() bool {
	return m.uploadToken == "" && len(m.jwtSecret) == 0
}

func (m uploadAuth) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.open() {
			next.ServeHTTP(w, r)
			return
		}

		if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && len(m.jwtSecret) > 0 {
			subject, err := m.verifyJWT(strings.TrimSpace(bearer))
			if err != nil {
				m.logger.Warn().Err(err).Msg("Rejected upload JWT")
				m.responder.WriteError(w, errs.NewInvalidTokenError())
				return
			}
			next.ServeHTTP(w, r.WithContext(ctxWithUploader(r.Context(), subject)))
			return
		}

		if m.uploadToken == "" {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}

		provided := strings.TrimSpace(r.Header.Get(uploadTokenHeader))
		if provided == "" && strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			r.Body = http.MaxBytesReader(w, r.Body, m.maxBody)
			if err := r.ParseMultipartForm(m.maxBody); err != nil {
				m.responder.WriteError(w, formError(err, m.maxBody))
				return
			}
			provided = strings.TrimSpace(r.FormValue("token"))
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(m.uploadToken)) != 1 {
			m.responder.WriteError(w, errs.Unauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctxWithUploader(r.Context(), "token")))
	})
}

func (m uploadAuth) verifyJWT(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return m.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "admin", nil
	}
	return claims.Subject, nil
}

// formError maps a multipart parsing failure to an API error.
func formError(err error, maxBody int64) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) || strings.Contains(err.Error(), "request body too large") {
		return errs.NewMaxBodySizeExceededError(maxBody)
	}
	return errs.NewMalformedPayloadError("multipart", err)
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// CORSCheckMiddleware answers blocked preflight requests with a JSON error
// instead of a bare response without CORS headers
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && r.Method == http.MethodOptions && !originAllowed(allowedOrigins, origin) {
				responder := NewResponder(log.Logger)
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// corsMiddleware sets CORS headers for allowed origins and answers preflights
// Credentials are only allowed for an explicit origin list; browsers reject
// them alongside a wildcard.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowedOrigins, "*")
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", uploadTokenHeader},
		AllowCredentials: !wildcard,
		MaxAge:           300,
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
