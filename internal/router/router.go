// Package router defines how HTTP routes are registered.  Every route
// has exactly one explicit registration here; handlers never shadow each
// other across files.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/handler"
)

// RegisterPublic registers the routes that do not require a session:
// the landing page, the session lifecycle, the contact form and the
// health check.  The rl middleware throttles the form submissions.
func RegisterPublic(e *echo.Echo, a *handler.AuthHandler, ct *handler.ContactHandler, rl echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)
	e.Static("/static", "static")

	e.GET("/", a.Landing)
	e.GET("/login", a.LoginPage)
	e.POST("/login", a.Login, rl)
	e.GET("/register", a.RegisterPage)
	e.POST("/register", a.Register, rl)
	e.GET("/logout", a.Logout)

	e.GET("/contact", ct.Page)
	e.POST("/contact", ct.Submit, rl)
	e.GET("/contact/delete/:id", ct.Delete)
}
