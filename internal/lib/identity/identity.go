// Package identity talks to the identity provider: account sign-up,
// password sign-in and bearer token verification.
package identity

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email is already in use")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	Token        string
	RefreshToken string
	ExpiresIn    time.Duration
	UserID       string
	Email        string
}

// Identity is the caller behind a verified token.
type Identity struct {
	UserID string
	Email  string
}

type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Session, error)
	// SignIn always checks the password.
	SignIn(ctx context.Context, email, password string) (*Session, error)
	VerifyToken(ctx context.Context, token string) (*Identity, error)
}
