package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwttoken "github.com/tanchhohang/airlines-api/internal/jwt_token"
	"github.com/tanchhohang/airlines-api/internal/user"
)

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens := jwttoken.NewJWTService("test-signing-key", "airlines-api", "airlines-api")
	svc, err := user.NewService(user.NewInMemory(), tokens, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	h := New(svc, slog.New(slog.DiscardHandler))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func post(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func validRegistration() map[string]string {
	return map[string]string{
		"username":     "sita",
		"password":     "gateway-pass",
		"user_id":      "agent007",
		"api_password": "s3cret",
		"agency_id":    "AG123",
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	router := newAuthRouter(t)

	rec := post(t, router, "/users", validRegistration())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Username string `json:"username"`
		AgencyID string `json:"agency_id"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "sita", created.Username)

	// The response body never carries the password hash or upstream secrets.
	assert.NotContains(t, rec.Body.String(), "s3cret")

	loginRec := post(t, router, "/auth/login", map[string]string{
		"username": "sita",
		"password": "gateway-pass",
	})
	require.Equal(t, http.StatusOK, loginRec.Code)

	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(loginRec.Body).Decode(&login))
	assert.NotEmpty(t, login.AccessToken)
	assert.Equal(t, "Bearer", login.TokenType)
}

func TestRegisterValidation(t *testing.T) {
	router := newAuthRouter(t)

	payload := validRegistration()
	payload["password"] = "short"
	rec := post(t, router, "/users", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Fields, "Password")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newAuthRouter(t)

	rec := post(t, router, "/users", validRegistration())
	require.Equal(t, http.StatusCreated, rec.Code)

	loginRec := post(t, router, "/auth/login", map[string]string{
		"username": "sita",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, loginRec.Code)
}
