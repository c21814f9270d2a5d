package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/stockroom/stockroom/internal/shared"
)

func issueTestToken(t *testing.T, issuer *TokenIssuer, role string) string {
	t.Helper()
	token, _, err := issuer.Issue(&User{
		ID:       uuid.New(),
		Username: "dana",
		Email:    "dana@example.com",
		Role:     role,
	})
	require.NoError(t, err)
	return token
}

func TestAuthenticateSetsIdentity(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	mw := NewMiddleware(issuer)

	var got shared.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = shared.IdentityFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, issuer, shared.RoleStaff))
	rec := httptest.NewRecorder()
	mw.Authenticate(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "dana", got.Username)
	require.Equal(t, shared.RoleStaff, got.Role)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	mw := NewMiddleware(NewTokenIssuer("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsGarbageToken(t *testing.T) {
	mw := NewMiddleware(NewTokenIssuer("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	mw := NewMiddleware(issuer)

	handler := mw.Authenticate(mw.RequireRole(shared.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, issuer, shared.RoleStaff))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, issuer, shared.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
