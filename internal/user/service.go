package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	jwttoken "github.com/tanchhohang/airlines-api/internal/jwt_token"
	"github.com/tanchhohang/airlines-api/internal/user/secrets"
	dErrors "github.com/tanchhohang/airlines-api/pkg/domain-errors"
)

// TokenTTL is the lifetime of issued access tokens.
const TokenTTL = 12 * time.Hour

// Service registers gateway accounts and issues access tokens.
type Service struct {
	store  Store
	tokens *jwttoken.JWTService
	logger *slog.Logger
}

func NewService(store Store, tokens *jwttoken.JWTService, logger *slog.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("user store is required")
	}
	if tokens == nil {
		return nil, errors.New("token service is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{store: store, tokens: tokens, logger: logger}, nil
}

// RegisterInput is the validated caller input for account creation.
type RegisterInput struct {
	Username            string
	Password            string
	UpstreamUserID      string
	UpstreamAPIPassword string
	AgencyID            string
}

// Register creates a gateway account with a hashed login password and the
// upstream credentials stored verbatim for envelope building.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	hash, err := secrets.Hash(in.Password)
	if err != nil {
		return User{}, err
	}
	created, err := s.store.Create(ctx, User{
		Username:            in.Username,
		PasswordHash:        hash,
		UpstreamUserID:      in.UpstreamUserID,
		UpstreamAPIPassword: in.UpstreamAPIPassword,
		AgencyID:            in.AgencyID,
	})
	if err != nil {
		return User{}, err
	}
	s.logger.InfoContext(ctx, "user registered", "username", created.Username, "agency_id", created.AgencyID)
	return created, nil
}

// LoginResult is the issued token and its expiry.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login verifies the gateway password and issues a token carrying the user's
// upstream credentials. Unknown usernames and wrong passwords are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeNotFound) {
			return LoginResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		return LoginResult{}, err
	}
	if err := secrets.Verify(password, u.PasswordHash); err != nil {
		return LoginResult{}, err
	}

	token, err := s.tokens.GenerateAccessToken(
		u.Username, u.UpstreamUserID, u.UpstreamAPIPassword, u.AgencyID, TokenTTL,
	)
	if err != nil {
		return LoginResult{}, dErrors.Wrap(dErrors.CodeInternal, "sign token", err)
	}
	return LoginResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(TokenTTL),
	}, nil
}
