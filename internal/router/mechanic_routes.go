package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/handler"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/model"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
)

// RegisterMechanic registers the mechanic namespace: repairs, the parts
// storage and the workshop calendar.  Every route runs the role gate for
// the mechanic role.
func RegisterMechanic(e *echo.Echo, m *handler.MechanicHandler, s *handler.StorageHandler, users *repository.UserRepo) {
	g := e.Group("/mechanic", middleware.RequireRole(users, model.RoleMechanic))

	g.GET("", m.Home)
	g.GET("/calendar", m.Calendar)

	// ---- Repairs ----
	g.GET("/repairs", m.RepairsPage)
	g.POST("/repairs", m.CreateRepair)
	g.GET("/repairs/delete/:id", m.DeleteRepair)
	g.GET("/repairs/:id", m.RepairPage)
	g.POST("/repairs/:id", m.UpdateRepair)
	g.POST("/repairs/:id/parts", m.AttachPart)
	g.GET("/repairs/:id/parts/delete/:part_id", m.DetachPart)
	g.POST("/repairs/:id/parts/:part_id", m.UpdateQuantity)

	// ---- Storage ----
	g.GET("/storage", s.List)
	g.POST("/storage", s.Create)
	g.GET("/storage/delete/:id", s.Delete)
	g.GET("/storage/:id", s.PartPage)
	g.POST("/storage/:id", s.Update)
}
