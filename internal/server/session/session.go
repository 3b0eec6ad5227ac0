// Package session carries the caller's identity through an HTTP request.
//
// Identity verifies the session cookie and records the user id; ResolveUser
// then loads the user record. Handlers read both back with
// UserIDFromContext and UserFromContext.
package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/response"
)

type ctxKey string

const (
	userIDKey ctxKey = "userID"
	userKey   ctxKey = "user"
)

// UserIDFromContext returns the verified user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// UserFromContext returns the resolved user or nil for anonymous requests.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUserID stores a verified user id in ctx.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// WithUser stores a resolved user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Identity reads the session cookie. A missing or empty cookie leaves the
// request anonymous; a cookie that fails verification is cleared and the
// request ends with 401 invalid_token, so the next request is anonymous.
func Identity(secret []byte, cookie CookieOptions, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(common.SessionCookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.GetUserIDFromToken(c.Value, secret)
			if err != nil {
				log.Debug(r.Context(), "rejected session cookie", "error", err)
				ClearToken(w, cookie)
				response.Error(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// UserFinder loads a user by id, returning common.ErrorNotFound when absent.
type UserFinder interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ResolveUser attaches the user named by the verified id. A user that no
// longer exists leaves the request without a user; other lookup failures
// end it with 500.
func ResolveUser(users UserFinder, log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
			case errors.Is(err, common.ErrorNotFound):
				log.Warn(r.Context(), "session for unknown user", "user_id", userID)
				next.ServeHTTP(w, r)
			default:
				log.Error(r.Context(), "failed to resolve session user", "user_id", userID, "error", err)
				response.Error(w, err)
			}
		})
	}
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

// SetToken writes the session cookie.
func SetToken(w http.ResponseWriter, token string, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearToken expires the session cookie in the browser.
func ClearToken(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
