package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/auth"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/errs"
	"github.com/AGBOOLA-JOEL/workcity-assessment-backend/models"
)

type authMiddleware struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenManager
	users     userStore
}

func newAuthMiddleware(tokens *auth.TokenManager, users userStore, development bool) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger, development),
		logger:    logger,
		tokens:    tokens,
		users:     users,
	}
}

// authenticate verifies the bearer token and checks that the user it names
// still exists. The claims and the user are attached to the context.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			m.responder.WriteError(w, errs.NewUnauthenticatedError())
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Debug().Err(err).Msg("Token verification failed")
			if errors.Is(err, auth.ErrExpiredToken) {
				m.responder.WriteError(w, errs.NewExpiredTokenError())
				return
			}
			m.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		user, err := m.users.FindByID(r.Context(), claims.GetUserID())
		if err != nil {
			m.logger.Error().Err(err).Msg("User lookup failed during authentication")
			m.responder.WriteError(w, errs.NewUnauthorizedError("Not authorized to access this route"))
			return
		}
		if user == nil {
			m.responder.WriteError(w, errs.NewUnauthorizedError("User not found"))
			return
		}

		ctx := ctxWithClaims(r.Context(), claims)
		ctx = ctxWithUser(ctx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken extracts the token from an `Authorization: Bearer <token>` header.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer") {
		return "", false
	}
	fields := strings.Fields(header)
	if len(fields) < 2 || fields[0] != "Bearer" {
		return "", false
	}
	return fields[1], true
}

// authorize builds a guard that admits users whose current role is one of
// roles. The role is read from storage on every request, never from the token.
func (m authMiddleware) authorize(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ctxGetClaims(r.Context())
			if claims == nil {
				m.responder.WriteError(w, errs.NewUnauthenticatedError())
				return
			}

			user, err := m.users.FindByID(r.Context(), claims.GetUserID())
			if err != nil {
				m.logger.Error().Err(err).Msg("Role authorization error")
				m.responder.WriteJSON(w, http.StatusInternalServerError, errorResponse{
					Success: false,
					Message: "Error checking user authorization",
				})
				return
			}
			if user == nil {
				m.responder.WriteError(w, errs.NewIdentityNotFoundError())
				return
			}

			if !slices.Contains(roles, user.Role) {
				m.responder.WriteError(w, errs.NewForbiddenRoleError(string(user.Role), r.Method, routePattern(r)))
				return
			}

			next.ServeHTTP(w, r.WithContext(ctxWithUser(r.Context(), user)))
		})
	}
}

func (m authMiddleware) adminOnly() func(http.Handler) http.Handler {
	return m.authorize(models.RoleAdmin)
}

func (m authMiddleware) userAndAdmin() func(http.Handler) http.Handler {
	return m.authorize(models.RoleUser, models.RoleAdmin)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func wrapStatusWriter(w http.ResponseWriter) *statusResponseWriter {
	if srw, ok := w.(*statusResponseWriter); ok {
		return srw
	}
	return &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}
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

// recoverPanics answers a panic through the fault path, unless the handler
// already started its response.
func recoverPanics(responder Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			srw := wrapStatusWriter(w)

			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					stack := debug.Stack()
					log.Error().
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("requestID", ctxGetRequestID(r.Context())).
						Interface("panic", rec).
						Str("stack", string(stack)).
						Msg("Recovered from panic")

					if !srw.wroteHeader {
						responder.WriteFault(srw, fmt.Errorf("%v", rec), stack)
					}
				}
			}()

			next.ServeHTTP(srw, r)
		})
	}
}

// requestID tags every request with an id, reusing a valid inbound
// X-Request-ID, and echoes it on the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(ctxWithRequestID(r.Context(), id)))
	})
}

// CORSCheckMiddleware rejects preflight requests from origins outside allowedOrigins
func CORSCheckMiddleware(allowedOrigins []string, responder Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" || r.Method != http.MethodOptions || originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			responder.WriteError(w, errs.NewCORSError(origin))
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// httpLogging logs every request with a level chosen by its status code.
// Development gets colored console output.
func httpLogging(development bool) func(http.Handler) http.Handler {
	logger := log.Logger
	if development {
		logger = zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		}).With().Timestamp().Logger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := wrapStatusWriter(w)

			next.ServeHTTP(srw, r)

			var logEvent *zerolog.Event
			switch {
			case srw.status >= 500:
				logEvent = logger.Error()
			case srw.status >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Str("requestID", ctxGetRequestID(r.Context())).
				Msg("HTTP Request")
		})
	}
}
