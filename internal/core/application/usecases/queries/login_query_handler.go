package queries

import (
	"context"
	"errors"
	"time"

	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"
)

// LoginQueryHandler checks credentials and issues a token. Attempts are counted
// per email before the password is checked.
type LoginQueryHandler struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	issuer  ports.TokenIssuer
	limiter ports.LoginAttemptLimiter
}

// NewLoginQueryHandler wires the credential check. Pass redis.NopLimiter to
// disable throttling.
func NewLoginQueryHandler(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	issuer ports.TokenIssuer,
	limiter ports.LoginAttemptLimiter,
) LoginQueryHandler {
	return LoginQueryHandler{
		users:   users,
		hasher:  hasher,
		issuer:  issuer,
		limiter: limiter,
	}
}

// Handle verifies the credentials and issues a token.
//
// Unknown emails and wrong passwords both return ErrInvalidCredentials, so the
// response does not reveal which accounts exist. A caller over the attempt limit
// gets ErrTooManyLoginAttempts before the password is looked at.
func (h LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (LoginResponse, error) {
	if err := query.Validate(); err != nil {
		return LoginResponse{}, err
	}

	key := "login:" + query.email
	allowed, err := h.limiter.Allow(ctx, key)
	if err != nil {
		return LoginResponse{}, err
	}
	if !allowed {
		return LoginResponse{}, ErrTooManyLoginAttempts
	}

	u, err := h.users.GetByEmail(ctx, query.email)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return LoginResponse{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResponse{}, err
	}

	if err = h.hasher.Compare(u.PasswordHash(), query.password); err != nil {
		return LoginResponse{}, ErrInvalidCredentials
	}

	token, err := h.issuer.Issue(ports.Principal{
		UserID: u.ID(),
		Email:  u.Email(),
		Role:   u.Role(),
	})
	if err != nil {
		return LoginResponse{}, err
	}

	if err = h.limiter.Reset(ctx, key); err != nil {
		return LoginResponse{}, err
	}

	return LoginResponse{
		AccessToken: token.Value,
		ExpiresAt:   token.ExpiresAt.UTC().Format(time.RFC3339),
		User:        NewUserView(u),
	}, nil
}
