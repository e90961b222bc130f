package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/deppfellow/wedding-backend/internal/config"
	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	"github.com/rs/zerolog"
)

// TokenVerifier checks Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// Firebase signs users up and in through the Identity Toolkit REST API and
// verifies their ID tokens with the Admin SDK.
type Firebase struct {
	client   heimdall.Doer
	baseURL  string
	apiKey   string
	verifier TokenVerifier
	logger   *zerolog.Logger
}

func NewFirebase(cfg *config.FirebaseConfig, verifier TokenVerifier, logger *zerolog.Logger) *Firebase {
	backoff := heimdall.NewConstantBackoff(200*time.Millisecond, 50*time.Millisecond)

	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(1),
	)

	return &Firebase{
		client:   client,
		baseURL:  strings.TrimSuffix(cfg.IdentityToolkitURL, "/"),
		apiKey:   cfg.WebAPIKey,
		verifier: verifier,
		logger:   logger,
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type passwordResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (f *Firebase) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return f.passwordCall(ctx, "accounts:signUp", email, password)
}

func (f *Firebase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return f.passwordCall(ctx, "accounts:signInWithPassword", email, password)
}

func (f *Firebase) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	verified, err := f.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsIDTokenInvalid(err) || auth.IsIDTokenExpired(err) || auth.IsIDTokenRevoked(err) || auth.IsUserDisabled(err) {
			return nil, ErrInvalidToken
		}
		return nil, errs.NewUpstreamError(errs.ServiceIdentity, err)
	}

	identity := &Identity{UserID: verified.UID}
	if email, ok := verified.Claims["email"].(string); ok {
		identity.Email = email
	}

	return identity, nil
}

func (f *Firebase) passwordCall(ctx context.Context, method, email, password string) (*Session, error) {
	body, err := json.Marshal(passwordRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", f.baseURL, method, url.QueryEscape(f.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceIdentity, fmt.Errorf("%s: %w", method, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceIdentity, fmt.Errorf("%s: read body: %w", method, err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, f.providerError(method, resp.StatusCode, respBody)
	}

	var out passwordResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, errs.NewUpstreamError(errs.ServiceIdentity, fmt.Errorf("%s: decode response: %w", method, err))
	}

	expiresIn, _ := strconv.Atoi(out.ExpiresIn)

	return &Session{
		Token:        out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    time.Duration(expiresIn) * time.Second,
		UserID:       out.LocalID,
		Email:        out.Email,
	}, nil
}

// providerError maps Identity Toolkit error codes. Messages look like
// "WEAK_PASSWORD : Password should be at least 6 characters".
func (f *Firebase) providerError(method string, status int, body []byte) error {
	var parsed errorResponse
	_ = json.Unmarshal(body, &parsed)

	code, _, _ := strings.Cut(parsed.Error.Message, " ")

	switch code {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "INVALID_EMAIL", "MISSING_EMAIL":
		return ErrInvalidEmail
	case "WEAK_PASSWORD", "MISSING_PASSWORD":
		return ErrWeakPassword
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return ErrInvalidCredentials
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	}

	f.logger.Warn().
		Str("method", method).
		Int("status", status).
		Str("provider_message", parsed.Error.Message).
		Msg("identity provider call failed")

	message := parsed.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}

	return errs.NewUpstreamError(errs.ServiceIdentity, fmt.Errorf("%s: %s", method, message))
}
