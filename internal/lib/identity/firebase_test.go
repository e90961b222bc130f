package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token *auth.Token
	err   error
}

func (v *stubVerifier) VerifyIDToken(context.Context, string) (*auth.Token, error) {
	return v.token, v.err
}

func newTestFirebase(t *testing.T, handler http.HandlerFunc, verifier TokenVerifier) *Firebase {
	t.Helper()

	baseURL := "http://identity.invalid/v1"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL + "/v1/"
	}

	logger := zerolog.Nop()
	return NewFirebase(&config.FirebaseConfig{
		IdentityToolkitURL: baseURL,
		WebAPIKey:          "test-key",
	}, verifier, &logger)
}

func writeProviderError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": 400, "message": message},
	})
}

func TestSignIn_Success(t *testing.T) {
	var got passwordRequest
	fb := newTestFirebase(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(map[string]string{
			"idToken":      "id-token",
			"refreshToken": "refresh",
			"expiresIn":    "3600",
			"localId":      "uid-1",
			"email":        "admin@example.com",
		})
	}, nil)

	session, err := fb.SignIn(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", got.Email)
	assert.Equal(t, "secret123", got.Password)
	assert.True(t, got.ReturnSecureToken)

	assert.Equal(t, "id-token", session.Token)
	assert.Equal(t, "uid-1", session.UserID)
	assert.Equal(t, float64(3600), session.ExpiresIn.Seconds())
}

func TestProviderErrors(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{"EMAIL_EXISTS", ErrEmailExists},
		{"INVALID_EMAIL", ErrInvalidEmail},
		{"WEAK_PASSWORD : Password should be at least 6 characters", ErrWeakPassword},
		{"INVALID_LOGIN_CREDENTIALS", ErrInvalidCredentials},
		{"EMAIL_NOT_FOUND", ErrInvalidCredentials},
		{"USER_DISABLED", ErrInvalidCredentials},
		{"TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", ErrTooManyAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			fb := newTestFirebase(t, func(w http.ResponseWriter, r *http.Request) {
				writeProviderError(w, tt.message)
			}, nil)

			_, err := fb.SignUp(context.Background(), "a@example.com", "secret123")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProviderError_Unknown(t *testing.T) {
	fb := newTestFirebase(t, func(w http.ResponseWriter, r *http.Request) {
		writeProviderError(w, "CONFIGURATION_NOT_FOUND")
	}, nil)

	_, err := fb.SignIn(context.Background(), "a@example.com", "secret123")

	var upstream *errs.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, errs.ServiceIdentity, upstream.Service)
	assert.Contains(t, err.Error(), "CONFIGURATION_NOT_FOUND")
}

func TestVerifyToken(t *testing.T) {
	fb := newTestFirebase(t, nil, &stubVerifier{token: &auth.Token{
		UID:    "uid-1",
		Claims: map[string]any{"email": "admin@example.com"},
	}})

	id, err := fb.VerifyToken(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, &Identity{UserID: "uid-1", Email: "admin@example.com"}, id)
}

func TestVerifyToken_UnclassifiedFailureIsUpstream(t *testing.T) {
	fb := newTestFirebase(t, nil, &stubVerifier{err: errors.New("fetching public keys: timeout")})

	_, err := fb.VerifyToken(context.Background(), "token")

	var upstream *errs.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}
