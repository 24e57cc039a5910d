package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/exellar/payroll-backend-go/internal/domain/auth"
	"github.com/exellar/payroll-backend-go/internal/handler/http/response"
)

// Limiter is satisfied by ratelimit.KeyedLimiter.
type Limiter interface {
	Allow(key string) bool
}

// RateLimitByIP limits requests per client address. Put chi's RealIP in front
// of it when running behind a proxy.
func RateLimitByIP(limiter Limiter, retryAfterSeconds int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(ClientIP(r)) {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				response.HandleError(w, auth.ErrTooManyAttempts)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP strips the port from RemoteAddr, which RealIP may already have rewritten.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
