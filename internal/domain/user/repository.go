package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	LinkGoogleAccount(ctx context.Context, id int64, googleID string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
