package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	// LoginWithGoogle signs in the account owning email, creating an employee-role user on first login.
	LoginWithGoogle(ctx context.Context, email string, googleID string, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// Logout revokes the refresh token and, when given, the access token.
	Logout(ctx context.Context, refreshToken string, accessToken string) error
}
