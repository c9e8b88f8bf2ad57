package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	"skybook/internal/auth/service"
	apperrors "skybook/pkg/errors"
	"skybook/pkg/logger"
)

type stubAuthenticator struct {
	tokens map[string]*service.Identity
}

func (s *stubAuthenticator) Authenticate(token string) (*service.Identity, error) {
	if id, ok := s.tokens[token]; ok {
		return id, nil
	}
	return nil, apperrors.Unauthorized("Invalid or expired token")
}

func (s *stubAuthenticator) Authorize(id *service.Identity, role string) error {
	if id == nil {
		return apperrors.Unauthorized("Authentication required")
	}
	if id.Role != role {
		return apperrors.Forbidden("Requires " + role + " role")
	}
	return nil
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"bearer", map[string]string{"Authorization": "Bearer abc"}, "abc"},
		{"bearer lowercase scheme", map[string]string{"Authorization": "bearer  abc "}, "abc"},
		{"fallback header", map[string]string{"x-auth-token": "xyz"}, "xyz"},
		{"bearer wins", map[string]string{"Authorization": "Bearer abc", "x-auth-token": "xyz"}, "abc"},
		{"basic ignored", map[string]string{"Authorization": "Basic dXNlcjpwYXNz", "x-auth-token": "xyz"}, "xyz"},
		{"none", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireAuthAndRole(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]*service.Identity{
		"admin-token": {UserID: "1", Role: "admin"},
		"user-token":  {UserID: "2", Role: "user"},
	}}
	log := logger.Discard()

	var seen *service.Identity
	final := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}
	h := RequireAuth(auth, log)(RequireRole(auth, "admin", log)(final))

	tests := []struct {
		name   string
		token  string
		status int
	}{
		{"no token", "", http.StatusUnauthorized},
		{"bad token", "forged", http.StatusUnauthorized},
		{"wrong role", "user-token", http.StatusForbidden},
		{"admin", "admin-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodGet, "/api/protected/admin", nil)
			if tt.token != "" {
				r.Header.Set("x-auth-token", tt.token)
			}
			rec := httptest.NewRecorder()
			h(rec, r, nil)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && (seen == nil || seen.UserID != "1") {
				t.Errorf("identity not propagated: %+v", seen)
			}
			if tt.status != http.StatusOK && seen != nil {
				t.Error("handler must not run on rejection")
			}
		})
	}
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	auth := &stubAuthenticator{}
	h := RequireRole(auth, "admin", logger.Discard())(func(http.ResponseWriter, *http.Request, httprouter.Params) {
		t.Error("handler must not run")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestRequireRole_LogLevels(t *testing.T) {
	tests := []struct {
		name      string
		identity  *service.Identity
		wantLevel string
	}{
		{"wrong role", &service.Identity{UserID: "1", Role: "user"}, `"level":"WARN"`},
		{"missing identity", nil, `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Output: &buf, Level: logger.DEBUG})
			h := RequireRole(&stubAuthenticator{}, "admin", log)(func(http.ResponseWriter, *http.Request, httprouter.Params) {
				t.Error("handler must not run")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/protected/admin", nil)
			if tt.identity != nil {
				req = req.WithContext(ContextWithIdentity(req.Context(), tt.identity))
			}
			h(httptest.NewRecorder(), req, nil)

			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("log = %s, want %s", buf.String(), tt.wantLevel)
			}
		})
	}
}
