package middleware_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/skirmish/pkg/auth"
	"github.com/shashiranjanraj/skirmish/pkg/middleware"
)

func authedHandler(t *testing.T, gotID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromCtx(r.Context())
		require.True(t, ok)
		*gotID = claims.UserID
		// Echo the body back so tests can verify it was restored.
		body, _ := io.ReadAll(r.Body)
		w.Write(body)
	})
}

func TestAuthenticate_BearerHeader(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	signed, err := tokens.Issue("user-1", "a@b.co", []string{"user"})
	require.NoError(t, err)

	var gotID string
	h := middleware.Authenticate(tokens)(authedHandler(t, &gotID))

	req := httptest.NewRequest(http.MethodGet, "/encounters", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotID)
}

func TestAuthenticate_TokenInBody(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	signed, err := tokens.Issue("user-2", "b@b.co", []string{"user"})
	require.NoError(t, err)

	var gotID string
	h := middleware.Authenticate(tokens)(authedHandler(t, &gotID))

	body := `{"token":"` + signed + `","name":"goblins"}`
	req := httptest.NewRequest(http.MethodPost, "/encounters", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-2", gotID)
	// The body must survive the peek so handlers can decode it.
	assert.JSONEq(t, body, rec.Body.String())
}

func TestAuthenticate_HeaderBeatsBody(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	headerTok, err := tokens.Issue("header-user", "h@b.co", []string{"user"})
	require.NoError(t, err)
	bodyTok, err := tokens.Issue("body-user", "b@b.co", []string{"user"})
	require.NoError(t, err)

	var gotID string
	h := middleware.Authenticate(tokens)(authedHandler(t, &gotID))

	req := httptest.NewRequest(http.MethodPost, "/encounters",
		strings.NewReader(`{"token":"`+bodyTok+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+headerTok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "header-user", gotID)
}

func TestAuthenticate_Failures(t *testing.T) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := middleware.Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler must not run")
	}))

	tests := []struct {
		name  string
		setup func(*http.Request)
	}{
		{"no token", func(*http.Request) {}},
		{"garbage token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }},
		{"wrong scheme", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/encounters", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], "Unauthorized")
		})
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	issuer := auth.NewTokens("test-secret", -time.Minute)
	signed, err := issuer.Issue("user-3", "c@b.co", []string{"user"})
	require.NoError(t, err)

	verifier := auth.NewTokens("test-secret", time.Hour)
	h := middleware.Authenticate(verifier)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/encounters", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
