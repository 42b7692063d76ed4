package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/solarhub/solarhub-admin/internal/backend"
)

const loginPath = "/admin/login"

// API is the backend call used for authentication.
type API interface {
	PostAnonymous(ctx context.Context, path string, body, out any) error
}

// Service wraps authentication business rules.
type Service struct {
	api API
}

// NewService constructs a new Service.
func NewService(api API) *Service {
	return &Service{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Authenticate exchanges credentials for a backend bearer token.
func (s *Service) Authenticate(ctx context.Context, email, password string) (LoginResult, error) {
	var env backend.Envelope[LoginResult]
	err := s.api.PostAnonymous(ctx, loginPath, loginRequest{Email: email, Password: password}, &env)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusUnprocessableEntity) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("auth: login: %w", err)
	}
	if env.Data.Token == "" {
		return LoginResult{}, fmt.Errorf("auth: login: empty token in response")
	}
	if env.Data.Admin.Email == "" {
		env.Data.Admin.Email = email
	}
	return env.Data, nil
}
