package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/handler"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// RegisterCustomer registers the customer namespace.  Every route runs
// the role gate for the customer role; visitors with another role are
// redirected to their own home.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, users *repository.UserRepo) {
	g := e.Group("/customer", middleware.RequireRole(users, model.RoleCustomer))

	g.GET("", h.Home)
	g.GET("/repairs", h.RepairsPage)
	g.GET("/repairs/:id", h.Repair)
	g.GET("/calendar", h.Calendar)
	g.POST("/calendar", h.ProposeRepair)
}
