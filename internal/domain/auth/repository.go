package auth

import (
	"context"
	"time"
)

// RefreshTokenRepository stores hashed refresh tokens for revocation checks.
type RefreshTokenRepository interface {
	CreateRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time, session SessionTrackingRequest) error
	// IsRefreshTokenRevoked reports the owner and whether the token is revoked or expired.
	IsRefreshTokenRevoked(ctx context.Context, token string) (userID int64, revoked bool, err error)
	RevokeRefreshToken(ctx context.Context, token string) error
}
