package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/auth"
	"github.com/exellar/payroll-backend-go/internal/handler/http/middleware"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
	"github.com/exellar/payroll-backend-go/internal/pkg/jwt"
	"github.com/exellar/payroll-backend-go/internal/pkg/oauth"
	"github.com/go-chi/jwtauth/v5"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 5 * time.Minute
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService    jwt.Service
	authService   auth.AuthService
	googleService oauth.GoogleService
	secureCookie  bool
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService, googleService oauth.GoogleService, secureCookie bool) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:    jwtService,
		authService:   authService,
		googleService: googleService,
		secureCookie:  secureCookie,
	}
}

func session(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := a.authService.Login(r.Context(), req, session(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.SuccessWithMessage(w, "Login successful", tokens)
}

// RefreshToken reads the refresh token from its cookie, falling back to the JSON body.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if cookie, err := r.Cookie(jwt.RefreshCookieName); err == nil && cookie.Value != "" {
		req.RefreshToken = cookie.Value
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Token refreshed", result)
}

func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	var refreshToken string
	if cookie, err := r.Cookie(jwt.RefreshCookieName); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" && r.ContentLength > 0 {
		var req auth.RefreshTokenRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		refreshToken = req.RefreshToken
	}

	if err := a.authService.Logout(r.Context(), refreshToken, jwtauth.TokenFromHeader(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.ClearRefreshTokenCookie())
	response.SuccessWithMessage(w, "Logged out", nil)
}

func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if !a.googleService.Enabled() {
		response.HandleError(w, auth.ErrGoogleNotConfigured)
		return
	}

	state, err := a.googleService.GenerateState()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/v1/auth/google",
		Expires:  time.Now().Add(oauthStateTTL),
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	if !a.googleService.Enabled() {
		response.HandleError(w, auth.ErrGoogleNotConfigured)
		return
	}

	query := r.URL.Query()
	if errValue := query.Get("error"); errValue != "" {
		slog.Warn("google oauth callback returned an error", "error", errValue)
		response.Unauthorized(w, "Google sign-in was not completed")
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	state := query.Get("state")
	if err != nil || cookie.Value == "" || state == "" || cookie.Value != state {
		response.HandleError(w, auth.ErrInvalidOAuthState)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Path:     "/api/v1/auth/google",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	code := strings.TrimSpace(query.Get("code"))
	if code == "" {
		response.BadRequest(w, "Missing authorization code", map[string]string{"code": "code is required"})
		return
	}

	info, err := a.googleService.Authenticate(r.Context(), code)
	if err != nil {
		slog.Error("google authentication failed", "error", err)
		response.Unauthorized(w, "Google sign-in failed")
		return
	}
	if !info.VerifiedEmail {
		response.HandleError(w, auth.ErrEmailNotVerified)
		return
	}

	tokens, err := a.authService.LoginWithGoogle(r.Context(), info.Email, info.GoogleID, session(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.SuccessWithMessage(w, "Login successful", tokens)
}
