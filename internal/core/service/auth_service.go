package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/engnet/backoffice-api/internal/core/domain"
	"github.com/engnet/backoffice-api/internal/core/ports"
)

// AuthService implements login, token authentication and logout.
type AuthService struct {
	users    ports.UserRepository
	issuer   ports.TokenIssuer
	verifier ports.TokenVerifier
	denylist ports.TokenDenylist
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService wires the auth flow. denylist may be nil, in which case
// logout is a no-op and tokens stay valid until they expire.
func NewAuthService(
	users ports.UserRepository,
	issuer ports.TokenIssuer,
	verifier ports.TokenVerifier,
	denylist ports.TokenDenylist,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		issuer:   issuer,
		verifier: verifier,
		denylist: denylist,
		logger:   logger,
		now:      time.Now,
	}
}

// Login checks the credentials and issues a token. Unknown email and wrong
// password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if user.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{AccessToken: token, User: user}, nil
}

// Authenticate verifies the token and rejects revoked ones. When the
// denylist cannot be reached the token is accepted and a warning logged.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Claims, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	if s.denylist == nil || claims.TokenID == "" {
		return claims, nil
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", claims.Subject).Msg("revocation check failed, accepting token")
		return claims, nil
	}
	if revoked {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, claims *domain.Claims) error {
	if s.denylist == nil || claims == nil || claims.TokenID == "" {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}

	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.logger.Info().Str("user_id", claims.Subject).Msg("token revoked")
	return nil
}
