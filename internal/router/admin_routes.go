package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/handler"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// RegisterAdmin registers the admin namespace.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, users *repository.UserRepo) {
	g := e.Group("/admin", middleware.RequireRole(users, model.RoleAdmin))

	g.GET("", h.Home)
	g.POST("/users/:id/role", h.ChangeRole)
}
