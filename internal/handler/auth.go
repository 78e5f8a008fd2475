package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/auth"
	"github.com/iliyamo/garage-repair-shop/internal/config"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	"github.com/iliyamo/garage-repair-shop/internal/utils"
)

// UserStore is what the session lifecycle needs from the user
// repository.  *repository.UserRepo satisfies it; tests may substitute
// a stub.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Create(ctx context.Context, u *model.User, password string, cost int) (uint64, error)
}

// AuthHandler bundles dependencies for the session lifecycle endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// Landing serves GET /.  A visitor with a resolvable session is sent to
// their role home; everyone else gets the landing page.
func (h *AuthHandler) Landing(c echo.Context) error {
	if ident := middleware.IdentityFrom(c); ident != nil && ident.Username != "" {
		ctx, cancel := reqContext(c)
		defer cancel()
		if u, err := h.Users.GetByUsername(ctx, ident.Username); err == nil {
			return c.Redirect(http.StatusFound, auth.RoleHome(u.Role))
		}
	}
	return c.Render(http.StatusOK, "home.html", echo.Map{})
}

// LoginPage serves the login form.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{})
}

// Login verifies the credentials, issues a session token and sets the
// access_token cookie.  The login flow uses the configured TTL (an hour
// by default) instead of the short DefaultSessionTTL.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.Render(http.StatusOK, "login.html", echo.Map{"Msg": "Username is not registered"})
		}
		return c.Render(http.StatusOK, "login.html", echo.Map{"Msg": "Login failed, try again"})
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return c.Render(http.StatusOK, "login.html", echo.Map{"Msg": "Wrong password!"})
	}

	ttl := time.Duration(h.Cfg.SessionTTLMin) * time.Minute
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.Username, u.ID, ttl)
	if err != nil {
		log.Printf("login: issue token failed: %v", err)
		return c.Render(http.StatusOK, "login.html", echo.Map{"Msg": "Login failed, try again"})
	}
	middleware.SetSessionCookie(c, tok)
	return c.Redirect(http.StatusFound, auth.RoleHome(u.Role))
}

// RegisterPage serves the registration form.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", echo.Map{})
}

// Register creates a customer account from the form.  Validation
// failures re-render the form with an inline message; on success the
// visitor lands on the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	email := strings.TrimSpace(c.FormValue("email"))
	username := strings.TrimSpace(c.FormValue("username"))
	first := strings.TrimSpace(c.FormValue("firstname"))
	last := strings.TrimSpace(c.FormValue("lastname"))
	password := c.FormValue("password")
	password2 := c.FormValue("password2")

	if email == "" || username == "" || password == "" {
		return c.Render(http.StatusOK, "register.html", echo.Map{"Msg": "Email, username and password are required"})
	}
	if password != password2 {
		return c.Render(http.StatusOK, "register.html", echo.Map{"Msg": "Verify password must be the same"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u := model.User{
		Email:     email,
		Username:  username,
		FirstName: first,
		LastName:  last,
		Role:      model.RoleCustomer,
	}
	if _, err := h.Users.Create(ctx, &u, password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return c.Render(http.StatusOK, "register.html", echo.Map{"Msg": "Username or Email is already in use"})
		}
		log.Printf("register: create user failed: %v", err)
		return c.Render(http.StatusOK, "register.html", echo.Map{"Msg": "Registration failed, try again"})
	}
	return c.Render(http.StatusOK, "login.html", echo.Map{"Msg": "User successfully created"})
}

// Logout clears the session cookie and returns to the landing page.
func (h *AuthHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusFound, "/")
}
