package ports

import (
	"context"
	"io"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/user"
)

// Clock supplies the current time to handlers.
type Clock interface {
	Now() time.Time
}

// EventPublisher delivers committed domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, events []kernel.DomainEvent) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Compare returns nil when plain matches hash.
	Compare(hash, plain string) error
}

// Principal is the authenticated caller carried by an access token.
type Principal struct {
	UserID kernel.UUID
	Email  string
	Role   user.Role
}

// AccessToken is a signed bearer token and its expiry.
type AccessToken struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(principal Principal) (AccessToken, error)
	Verify(token string) (Principal, error)
}

// LoginAttemptLimiter throttles repeated login attempts per key (email or client IP).
type LoginAttemptLimiter interface {
	// Allow records an attempt and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempts after a successful login.
	Reset(ctx context.Context, key string) error
}

// PhotoStorage keeps parcel photos and returns a reference stored on the parcel.
type PhotoStorage interface {
	Save(ctx context.Context, originalName string, content io.Reader) (string, error)
	Delete(ctx context.Context, reference string) error
}
