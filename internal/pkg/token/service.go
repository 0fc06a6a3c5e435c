package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"medhasmind/internal/domain/profile"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

const DefaultTTL = 30 * time.Minute

// Claims is the decoded payload a valid bearer token carries. The role is
// embedded at issuance time rather than re-fetched per request; a role
// change only takes effect once a new token is issued.
type Claims struct {
	UserID uuid.UUID    `json:"user_id"`
	Email  string       `json:"email"`
	Role   profile.Role `json:"role"`

	jwtlib.RegisteredClaims
}

type Service interface {
	Generate(claims Claims, ttl time.Duration) (string, error)
	Validate(tokenString string) (Claims, error)
	TTL() time.Duration
}

type HMACService struct {
	secret    []byte
	expiresIn time.Duration

	now func() time.Time
}

func NewHMACService(secret string, expiresIn time.Duration) *HMACService {
	if expiresIn <= 0 {
		expiresIn = DefaultTTL
	}
	return &HMACService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		now:       time.Now,
	}
}

func (s *HMACService) TTL() time.Duration {
	return s.expiresIn
}

func (s *HMACService) Generate(claims Claims, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	if claims.UserID == uuid.Nil || claims.Email == "" {
		return "", ErrTokenInvalid
	}
	if ttl <= 0 {
		ttl = s.expiresIn
	}

	now := s.now().UTC()
	claims.RegisteredClaims = jwtlib.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   claims.UserID.String(),
		IssuedAt:  jwtlib.NewNumericDate(now),
		ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

func (s *HMACService) Validate(tokenString string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(tokenString, &c, func(token *jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}

	if c.UserID == uuid.Nil || c.Email == "" {
		return Claims{}, ErrTokenInvalid
	}
	if c.ExpiresAt == nil || !s.now().UTC().Before(c.ExpiresAt.Time) {
		return Claims{}, ErrTokenExpired
	}

	return c, nil
}

var _ Service = (*HMACService)(nil)
