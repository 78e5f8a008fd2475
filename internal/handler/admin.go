package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// AdminHandler serves the admin overview and user administration.
type AdminHandler struct {
	Users    *repository.UserRepo
	Messages *repository.MessageRepo
}

func NewAdminHandler(users *repository.UserRepo, messages *repository.MessageRepo) *AdminHandler {
	if users == nil || messages == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: users, Messages: messages}
}

// Home lists all accounts and contact messages.
func (h *AdminHandler) Home(c echo.Context) error {
	return h.render(c, "")
}

func (h *AdminHandler) render(c echo.Context, msg string) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		log.Printf("admin: list users failed: %v", err)
		msg = "Could not load users"
	}
	msgs, err := h.Messages.List(ctx)
	if err != nil {
		log.Printf("admin: list messages failed: %v", err)
	}
	return c.Render(http.StatusOK, "admin.html", echo.Map{
		"User": middleware.UserFrom(c), "Users": users, "Messages": msgs, "Msg": msg})
}

// ChangeRole assigns a new role to an account.  A live session of that
// account keeps working; the new role applies on its next gate lookup.
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Redirect(http.StatusFound, "/admin")
	}
	role := strings.TrimSpace(c.FormValue("role"))
	if !model.ValidRole(role) {
		return h.render(c, "Unknown role")
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return h.render(c, "No such user")
		}
		log.Printf("admin: change role of user %d failed: %v", id, err)
		return h.render(c, "Could not change the role, try again")
	}
	return c.Redirect(http.StatusFound, "/admin")
}
