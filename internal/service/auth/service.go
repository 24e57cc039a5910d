package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/auth"
	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/exellar/payroll-backend-go/internal/pkg/database"
	"github.com/exellar/payroll-backend-go/internal/pkg/email"
	"github.com/exellar/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx        database.Transactor
	userRepo  user.UserRepository
	tokenRepo auth.RefreshTokenRepository
	jwt       jwt.Service
	mailer    email.EmailService
	now       func() time.Time
}

// NewAuthService builds the auth service. mailer may be nil to disable
// login notifications.
func NewAuthService(
	tx database.Transactor,
	userRepo user.UserRepository,
	tokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
	mailer email.EmailService,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:        tx,
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwt:       jwtService,
		mailer:    mailer,
		now:       time.Now,
	}
}

// HashPassword is used by the admin seed as well as tests.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Google-only accounts have no password.
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	resp, err := a.issueTokens(ctx, userData, session)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	slog.Info("user logged in", "user_id", userData.ID, "ip", session.IPAddress)
	a.notifyLogin(userData.Email, session)
	return resp, nil
}

func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.userRepo.GetByEmail(ctx, googleEmail)
	switch {
	case errors.Is(err, user.ErrUserNotFound):
		userData, err = a.userRepo.Create(ctx, user.User{
			Email:    googleEmail,
			Role:     user.RoleEmployee,
			GoogleID: &googleID,
		})
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
		slog.Info("user created from google login", "user_id", userData.ID)
	case err != nil:
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	case userData.GoogleID == nil:
		if err := a.userRepo.LinkGoogleAccount(ctx, userData.ID, googleID); err != nil {
			return auth.TokenResponse{}, err
		}
		userData.GoogleID = &googleID
	}

	resp, err := a.issueTokens(ctx, userData, session)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	a.notifyLogin(userData.Email, session)
	return resp, nil
}

func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != jwt.TokenTypeRefresh {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userID, revoked, err := a.tokenRepo.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			return auth.AccessTokenResponse{}, err
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, err
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(userData.ID, userData.Email, userData.EmployeeID, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string, accessToken string) error {
	if refreshToken != "" {
		err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
			_, revoked, err := a.tokenRepo.IsRefreshTokenRevoked(ctx, refreshToken)
			if err != nil {
				return err
			}
			if revoked {
				return nil
			}
			return a.tokenRepo.RevokeRefreshToken(ctx, refreshToken)
		})
		// Unknown tokens are already as good as revoked.
		if err != nil && !errors.Is(err, auth.ErrInvalidToken) {
			return fmt.Errorf("failed to revoke refresh token: %w", err)
		}
	}

	if accessToken != "" {
		if token, err := jwtauth.VerifyToken(a.jwt.JWTAuth(), accessToken); err == nil {
			a.jwt.RevokeToken(accessToken, token.Expiration().Unix())
		}
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	resp := auth.TokenResponse{
		User: auth.UserResponse{
			ID:         u.ID,
			Email:      u.Email,
			Role:       string(u.Role),
			EmployeeID: u.EmployeeID,
		},
	}

	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		resp.AccessToken, resp.AccessTokenExpiresIn, err = a.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeID, u.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.jwt.GenerateRefreshToken(u.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		expiresAt := time.Unix(resp.RefreshTokenExpiresIn, 0)
		if err := a.tokenRepo.CreateRefreshToken(ctx, u.ID, resp.RefreshToken, expiresAt, session); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return a.userRepo.TouchLastLogin(ctx, u.ID, a.now())
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}
	return resp, nil
}

// notifyLogin mails the account owner in the background; failures are only logged.
func (a *AuthServiceImpl) notifyLogin(to string, session auth.SessionTrackingRequest) {
	if a.mailer == nil {
		return
	}
	at := a.now()
	go func() {
		if err := a.mailer.SendLoginNotification(to, session.IPAddress, session.UserAgent, at); err != nil {
			slog.Warn("failed to send login notification", "error", err)
		}
	}()
}
