package jwt

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	RefreshCookieName = "refresh_token"
)

var ErrInvalidClaims = errors.New("invalid token claims")

type Service interface {
	GenerateAccessToken(userID int64, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	ClearRefreshTokenCookie() *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTTL     time.Duration
	refreshTTL    time.Duration
	secureCookie  bool
	tokenAuth     *jwtauth.JWTAuth
	revokedTokens map[string]int64
	mu            sync.RWMutex
	now           func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses the expirations as Go durations, e.g. "15m" or "168h".
func NewJWTService(secretKey, accessTokenExpiration, refreshTokenExpiration string, secureCookie bool) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(accessTokenExpiration)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := time.ParseDuration(refreshTokenExpiration)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		secureCookie:  secureCookie,
		tokenAuth:     jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens: make(map[string]int64),
		now:           time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID int64, email string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTTL).Unix()

	claims := map[string]interface{}{
		"user_id":     strconv.FormatInt(userID, 10),
		"email":       email,
		"employee_id": nil,
		"role":        string(role),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// GenerateRefreshToken issues a refresh token with a random jti so two tokens
// issued in the same second never collide.
func (j *JWTService) GenerateRefreshToken(userID int64) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": strconv.FormatInt(userID, 10),
		"jti":     uuid.NewString(),
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) ClearRefreshTokenCookie() *http.Cookie {
	return &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/api/v1/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken blocks an access token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp <= now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// Claims is the typed view of an access token.
type Claims struct {
	UserID     int64
	Email      string
	EmployeeID *string
	Role       user.Role
	Type       string
}

// ParseClaims reads the claims map produced by jwtauth.FromContext.
func ParseClaims(m map[string]interface{}) (Claims, error) {
	var c Claims

	rawID, _ := m["user_id"].(string)
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidClaims
	}
	c.UserID = id
	c.Email, _ = m["email"].(string)
	if emp, ok := m["employee_id"].(string); ok && emp != "" {
		c.EmployeeID = &emp
	}
	role, _ := m["role"].(string)
	c.Role = user.Role(role)
	c.Type, _ = m["type"].(string)
	return c, nil
}
