package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/token-service/internal/auth"
	"github.com/spec-kit/token-service/internal/config"
	"github.com/spec-kit/token-service/internal/domain"
	"github.com/spec-kit/token-service/internal/observability"
	"github.com/spec-kit/token-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// IssuedToken is a signed access token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenService
	throttle   *LoginThrottle
	metrics    *observability.Metrics
	logger     *zap.Logger
	bcryptCost int
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Users    repository.UserRepository
	Tokens   *auth.TokenService
	Throttle *LoginThrottle
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.Users,
		tokens:     deps.Tokens,
		throttle:   deps.Throttle,
		metrics:    deps.Metrics,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account and issues its first token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, IssuedToken, error) {
	if !utf8.ValidString(name) {
		return nil, IssuedToken{}, auth.ErrInvalidIdentity
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, IssuedToken{}, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, IssuedToken{}, err
	}

	issued, err := s.issue(user)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, issued, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, IssuedToken, error) {
	key := repository.NormalizeEmail(email)

	allowed, err := s.throttle.Hit(ctx, key)
	if err != nil {
		s.logger.Warn("login throttle unavailable", zap.Error(err))
	}
	if !allowed {
		return nil, IssuedToken{}, ErrTooManyAttempts
	}

	user, err := s.users.GetByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, IssuedToken{}, ErrInvalidCredentials
		}
		return nil, IssuedToken{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, IssuedToken{}, ErrInvalidCredentials
	}

	if err := s.throttle.Reset(ctx, key); err != nil {
		s.logger.Warn("login throttle reset failed", zap.Error(err))
	}

	issued, err := s.issue(user)
	if err != nil {
		return nil, IssuedToken{}, err
	}
	return user, issued, nil
}

func (s *AuthService) issue(user *domain.User) (IssuedToken, error) {
	token, expiresAt, err := s.tokens.Issue(user.Identity())
	if err != nil {
		return IssuedToken{}, err
	}
	s.metrics.RecordTokenIssued()
	return IssuedToken{Token: token, ExpiresAt: expiresAt}, nil
}
