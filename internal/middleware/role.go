package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/auth"
	"github.com/iliyamo/garage-repair-shop/internal/model"
)

const userKey = "user"

// RequireRole returns middleware that runs the role gate for a route
// namespace.  On proceed the persisted user is stored in the context for
// handlers; otherwise the visitor is redirected to the gate's target
// (their own home route, or the login page).  The check runs once per
// protected route entry.
func RequireRole(users auth.UserFinder, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			d, err := auth.Authorize(ctx, users, IdentityFrom(c), role)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authorization failed"})
			}
			if !d.Proceed {
				return c.Redirect(http.StatusFound, d.Target)
			}
			c.Set(userKey, d.User)
			return next(c)
		}
	}
}

// UserFrom returns the user loaded by RequireRole, or nil on routes that
// did not pass the gate.
func UserFrom(c echo.Context) *model.User {
	if u, ok := c.Get(userKey).(*model.User); ok {
		return u
	}
	return nil
}
