package application

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/petit-bistro/service-reservation/internal/auth"
	"github.com/petit-bistro/service-reservation/internal/domain"
	clientDomain "github.com/petit-bistro/service-reservation/internal/domain/client"
)

const minPasswordLength = 8

// SignupRequest is the request DTO for registering a client account.
type SignupRequest struct {
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	PasswordRepeat string `json:"password_repeat" binding:"required"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
}

// LoginRequest is the request DTO for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenDTO carries an issued access token.
type TokenDTO struct {
	AccessToken string `json:"access_token"`
}

// AccountService implements client registration and session management.
// The reservation core does not depend on it; it only supplies the
// identity the auth middleware resolves per request.
type AccountService struct {
	clients clientDomain.Repository
	jwt     *auth.JWTManager
	logger  *zap.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(clients clientDomain.Repository, jwt *auth.JWTManager, logger *zap.Logger) *AccountService {
	return &AccountService{clients: clients, jwt: jwt, logger: logger}
}

// Signup registers a new client and returns an access token.
func (s *AccountService) Signup(ctx context.Context, req SignupRequest) (*TokenDTO, error) {
	if len(req.Password) < minPasswordLength || req.Password != req.PasswordRepeat {
		return nil, domain.NewValidationError("passwords do not match or are too short")
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := s.clients.FindByEmail(ctx, email); err == nil {
		return nil, domain.NewValidationError("the email is already registered")
	} else if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewStorageError("failed to hash password", err)
	}

	c, err := clientDomain.NewClient(email, string(hash), req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	c.Activate()

	if err := s.clients.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client registered", zap.Uint("client_id", c.ID()))
	return s.issueToken(c.Email())
}

// Login verifies credentials, marks the client active and returns a token.
func (s *AccountService) Login(ctx context.Context, req LoginRequest) (*TokenDTO, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	c, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash()), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.NewUnauthorizedError("the password is incorrect")
		}
		return nil, domain.NewStorageError("failed to verify password", err)
	}

	c.Activate()
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client logged in", zap.Uint("client_id", c.ID()))
	return s.issueToken(c.Email())
}

// Logout clears the client's active flag, invalidating identity resolution
// until the next login.
func (s *AccountService) Logout(ctx context.Context, email string) error {
	c, err := s.ResolveActive(ctx, email)
	if err != nil {
		return err
	}

	c.Deactivate()
	if err := s.clients.Update(ctx, c); err != nil {
		return err
	}
	s.logger.Info("client logged out", zap.Uint("client_id", c.ID()))
	return nil
}

// ResolveActive maps a verified token subject to a live client record. An
// unknown or inactive client cannot act on the reservation API.
func (s *AccountService) ResolveActive(ctx context.Context, email string) (*clientDomain.Client, error) {
	c, err := s.clients.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.NewUnauthorizedError("client is not registered")
		}
		return nil, err
	}
	if !c.IsActive() {
		return nil, domain.NewUnauthorizedError("client is logged out")
	}
	return c, nil
}

func (s *AccountService) issueToken(email string) (*TokenDTO, error) {
	token, err := s.jwt.Generate(email)
	if err != nil {
		return nil, domain.NewStorageError("failed to issue access token", err)
	}
	return &TokenDTO{AccessToken: token}, nil
}
