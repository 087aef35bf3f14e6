package auth

import (
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/token-service/internal/domain"
)

// DefaultTTL is the validity window of issued tokens.
const DefaultTTL = 7 * 24 * time.Hour

// TokenService issues and validates HS256 access tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
	parser *jwt.Parser
}

// Option customizes a TokenService.
type Option func(*TokenService)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// ErrInvalidIdentity is returned by Encode for identities that cannot be
// carried through JSON claims unchanged.
var ErrInvalidIdentity = errors.New("identity fields must be valid UTF-8")

// Claims describes the JWT payload. Only exp is used from the registered set.
// ID is a pointer so an absent claim is distinguishable from an empty one.
type Claims struct {
	ID   *string `json:"id"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// NewTokenService builds a service signing with the given secret.
func NewTokenService(secret string, ttl time.Duration, logger *zap.Logger, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	return s, nil
}

// TTL returns the validity window applied to new tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Encode signs a token for the identity.
func (s *TokenService) Encode(id domain.Identity) (string, error) {
	token, _, err := s.Issue(id)
	return token, err
}

// Issue signs a token for the identity and reports its expiry.
func (s *TokenService) Issue(id domain.Identity) (string, time.Time, error) {
	if !utf8.ValidString(id.ID) || !utf8.ValidString(id.Name) {
		return "", time.Time{}, ErrInvalidIdentity
	}

	subject := id.ID
	expiresAt := s.now().Add(s.ttl)
	claims := &Claims{
		ID:   &subject,
		Name: id.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		s.logger.Error("token signing failed", zap.Error(err))
		return "", time.Time{}, err
	}
	return signed, claims.ExpiresAt.Time, nil
}

// Decode verifies the token and returns the identity it carries. Failures are
// returned as *TokenError.
func (s *TokenService) Decode(token string) (domain.Identity, error) {
	identity, err := s.decode(token)
	if err != nil {
		kind, _ := KindOf(err)
		s.logger.Warn("token validation failed", zap.String("kind", string(kind)), zap.Error(err))
		return domain.Identity{}, err
	}
	return identity, nil
}

func (s *TokenService) decode(token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrMissingHeader
	}

	claims := &Claims{}
	parsed, err := s.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return domain.Identity{}, classify(err)
	}
	if !parsed.Valid {
		return domain.Identity{}, &TokenError{Kind: FailureMalformedToken, Err: errors.New("token not valid")}
	}
	if claims.ID == nil {
		return domain.Identity{}, &TokenError{Kind: FailureMalformedToken, Err: errors.New("id claim missing")}
	}
	return domain.Identity{ID: *claims.ID, Name: claims.Name}, nil
}

// DecodeRequest extracts the bearer token from r and decodes it.
func (s *TokenService) DecodeRequest(r *http.Request) (domain.Identity, error) {
	token, _ := TokenFromRequest(r)
	return s.Decode(token)
}

// Valid reports whether the token decodes successfully.
func (s *TokenService) Valid(token string) bool {
	_, err := s.Decode(token)
	return err == nil
}

// ID returns the id claim of a valid token.
func (s *TokenService) ID(token string) (string, bool) {
	identity, err := s.Decode(token)
	if err != nil {
		return "", false
	}
	return identity.ID, true
}

// Name returns the name claim of a valid token.
func (s *TokenService) Name(token string) (string, bool) {
	identity, err := s.Decode(token)
	if err != nil {
		return "", false
	}
	return identity.Name, true
}
