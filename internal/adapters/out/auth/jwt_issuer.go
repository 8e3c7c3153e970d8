package auth

import (
	"errors"
	"fmt"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
	"parcels/internal/core/ports"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// ErrInvalidToken wraps every verification failure.
var ErrInvalidToken = errors.New("invalid access token")

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// AccessTokenClaims is the payload of an access token. The subject is the user ID.
type AccessTokenClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTIssuer implements ports.TokenIssuer with HS256 tokens.
type JWTIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

// NewJWTIssuer validates cfg and returns an issuer. now may be nil.
func NewJWTIssuer(cfg JWTConfig, now func() time.Time) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return nil, fmt.Errorf("jwt issuer is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &JWTIssuer{cfg: cfg, now: now}, nil
}

// Issue signs a token for principal.
func (i *JWTIssuer) Issue(principal ports.Principal) (ports.AccessToken, error) {
	if err := principal.UserID.Validate(); err != nil {
		return ports.AccessToken{}, err
	}
	if err := principal.Role.Validate(); err != nil {
		return ports.AccessToken{}, err
	}

	now := i.now()
	expiresAt := now.Add(i.cfg.TTL)
	claims := AccessTokenClaims{
		Email: principal.Email,
		Role:  principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID.String(),
			Issuer:    i.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return ports.AccessToken{}, fmt.Errorf("signing jwt: %w", err)
	}

	return ports.AccessToken{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify checks signature, issuer and expiry and returns the principal.
func (i *JWTIssuer) Verify(token string) (ports.Principal, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			if t.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return []byte(i.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(i.cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return ports.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return ports.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return ports.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return ports.Principal{UserID: userID, Email: claims.Email, Role: role}, nil
}
