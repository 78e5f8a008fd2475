package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/utils"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "access_token"

const identityKey = "identity"

// Session returns middleware that resolves the session cookie into an
// Identity stored in the request context.  An absent cookie is not an
// error; the request proceeds anonymously and the role gate redirects
// where needed.  A present but malformed or expired token clears the
// cookie and responds 401 with the login page so the visitor can start
// over.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(SessionCookieName)
			if err != nil || ck.Value == "" {
				return next(c)
			}
			ident, err := utils.DecodeSessionToken(secret, ck.Value)
			if err != nil {
				ClearSessionCookie(c)
				return c.Render(http.StatusUnauthorized, "login.html",
					echo.Map{"Msg": "Your session has expired, please log in again"})
			}
			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity resolved by Session, or nil when the
// request is anonymous.
func IdentityFrom(c echo.Context) *utils.Identity {
	if v, ok := c.Get(identityKey).(utils.Identity); ok {
		return &v
	}
	return nil
}

// SetSessionCookie attaches a signed session token to the response.
func SetSessionCookie(c echo.Context, tok utils.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    tok.Token,
		Expires:  tok.Exp,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
