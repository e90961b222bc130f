package service

import (
	"context"
	"errors"

	"github.com/deppfellow/wedding-backend/internal/errs"
	"github.com/deppfellow/wedding-backend/internal/lib/identity"
	"github.com/deppfellow/wedding-backend/internal/model"
)

// AuthService signs the admin up and in through the identity provider.
type AuthService struct {
	provider    identity.Provider
	allowSignup bool
}

func NewAuthService(provider identity.Provider, allowSignup bool) *AuthService {
	return &AuthService{provider: provider, allowSignup: allowSignup}
}

func (s *AuthService) SignUp(ctx context.Context, req *model.CredentialsRequest) (*model.TokenResponse, error) {
	if !s.allowSignup {
		return nil, errs.NewForbiddenError("Sign-up is disabled", true)
	}

	session, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, authError(err)
	}

	return &model.TokenResponse{Message: "User created successfully", Token: session.Token}, nil
}

// Login verifies the password and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, req *model.CredentialsRequest) (*model.TokenResponse, error) {
	session, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return nil, authError(err)
	}

	return &model.TokenResponse{Token: session.Token}, nil
}

func authError(err error) error {
	switch {
	case errors.Is(err, identity.ErrEmailExists):
		return errs.NewBadRequestError("Email is already in use.", true, nil, nil, nil)
	case errors.Is(err, identity.ErrInvalidEmail):
		return errs.NewBadRequestError("Invalid email format.", true, nil, nil, nil)
	case errors.Is(err, identity.ErrWeakPassword):
		return errs.NewBadRequestError("Password is too weak.", true, nil, nil, nil)
	case errors.Is(err, identity.ErrInvalidCredentials):
		return errs.NewUnauthorizedError("Invalid email or password", true)
	case errors.Is(err, identity.ErrTooManyAttempts):
		return errs.NewTooManyRequestsError("Too many attempts, try again later")
	default:
		return err
	}
}
