package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/auth/service"
	apperrors "skybook/pkg/errors"
	httputil "skybook/pkg/http"
	"skybook/pkg/logger"
)

const (
	AuthorizationHeader = "Authorization"
	AuthTokenHeader     = "x-auth-token"
)

type ctxKey string

const identityKey ctxKey = "identity"

type Authenticator interface {
	Authenticate(token string) (*service.Identity, error)
	Authorize(identity *service.Identity, requiredRole string) error
}

func ContextWithIdentity(ctx context.Context, id *service.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFromContext(ctx context.Context) (*service.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*service.Identity)
	return id, ok && id != nil
}

// TokenFromRequest prefers a bearer Authorization header and falls back to x-auth-token.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get(AuthorizationHeader); h != "" {
		scheme, token, ok := strings.Cut(strings.TrimSpace(h), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get(AuthTokenHeader))
}

func RequireAuth(auth Authenticator, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			id, err := auth.Authenticate(TokenFromRequest(r))
			if err != nil {
				log.WithRequest(r.Context()).Warn("Authentication failed",
					"path", r.URL.Path,
					"error", err,
				)
				writeError(w, log, "RequireAuth", err)
				return
			}
			next(w, r.WithContext(ContextWithIdentity(r.Context(), id)), ps)
		}
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(auth Authenticator, role string, log *logger.Logger) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			id, _ := IdentityFromContext(r.Context())
			if err := auth.Authorize(id, role); err != nil {
				attrs := []any{"path", r.URL.Path, "required_role", role, "error", err}
				if apperrors.HasCode(err, apperrors.CodeForbidden) {
					log.WithRequest(r.Context()).Warn("Authorization failed", attrs...)
				} else {
					// No identity in context: the route is missing RequireAuth.
					log.WithRequest(r.Context()).Error("Authorization without identity", attrs...)
				}
				writeError(w, log, "RequireRole", err)
				return
			}
			next(w, r, ps)
		}
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}
