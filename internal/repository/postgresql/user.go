package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, role, employee_id, google_id, last_login_at, created_at, updated_at`

func scanUser(row rowScanner) (user.User, error) {
	var u user.User
	var role string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.EmployeeID, &u.GoogleID, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt)
	u.Role = user.Role(role)
	return u, err
}

func (r *userRepositoryImpl) get(ctx context.Context, where string, arg interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetByEmail matches case-insensitively.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.get(ctx, "LOWER(email) = LOWER($1)", strings.TrimSpace(email))
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id int64) (user.User, error) {
	return r.get(ctx, "id = $1", id)
}

func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, role, employee_id, google_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	created, err := scanUser(q.QueryRow(ctx, query,
		strings.ToLower(strings.TrimSpace(newUser.Email)), newUser.PasswordHash, string(newUser.Role), newUser.EmployeeID, newUser.GoogleID,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_user_email") {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *userRepositoryImpl) LinkGoogleAccount(ctx context.Context, id int64, googleID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET google_id = $1, updated_at = NOW() WHERE id = $2`, googleID, id)
	if err != nil {
		return fmt.Errorf("failed to link google account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `UPDATE users SET last_login_at = $1 WHERE id = $2`, at, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}
